package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-stack-keeper/internal/adapter"
	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenRegister
	screenList
	screenDetail
	screenForm
)

type appModel struct {
	ctx           context.Context
	server        adapter.ServerAdapter
	currentScreen screen

	welcome  welcomeModel
	login    loginModel
	register registerModel
	list     listModel
	detail   detailModel
	form     formStackModel

	err          error
	showError    bool
	errorOverlay errorOverlayModel
	showConfirm  bool
	confirm      confirmModel

	pendingDelete string
}

func newAppModel(ctx context.Context, server adapter.ServerAdapter) appModel {
	return appModel{
		ctx:           ctx,
		server:        server,
		currentScreen: screenWelcome,
		welcome:       newWelcomeModel(),
		login:         newLoginModel(),
		register:      newRegisterModel(),
		list:          newListModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				if m.pendingDelete == "" {
					return m, nil
				}
				return m, m.cmdDeleteStack(m.pendingDelete)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = ""
			}
			return m, nil
		}
	case authDoneMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.currentScreen = screenList
		m.list.loading = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
	case listLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.list.stacks = msg.listing.Stacks
		m.list.page = msg.listing.Page
		m.list.pages = msg.listing.Pages
		m.list.total = msg.listing.Total
		if m.list.idx >= len(m.list.stacks) {
			m.list.idx = len(m.list.stacks) - 1
		}
		if m.list.idx < 0 {
			m.list.idx = 0
		}
		return m, nil
	case stackLoadedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.detail.stack = msg.stack.Stack
		m.currentScreen = screenDetail
		return m, nil
	case stackSavedMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.currentScreen = screenList
		m.list.loading = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
	case stackDeletedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.pendingDelete = ""
		m.currentScreen = screenList
		m.list.loading = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
	case copiedMsg:
		if m.currentScreen == screenDetail {
			m.detail.status = "Copied!"
		}
		m.list.status = "Copied!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.detail.status = ""
		m.list.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenWelcome:
		body = m.welcome.View()
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenList:
		body = m.list.View()
	case screenDetail:
		body = m.detail.View()
	case screenForm:
		body = m.form.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) setSubmitting(v bool) {
	m.login.submitting = v
	m.register.submitting = v
	m.form.submitting = v
}

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		switch m.welcome.idx {
		case 0:
			m.currentScreen = screenLogin
		case 1:
			m.currentScreen = screenRegister
		default:
			// anonymous browsing, listing and detail are public
			m.currentScreen = screenList
			m.list.loading = true
			return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
		}
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login = focusNextLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = focusPrevLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			login := strings.TrimSpace(m.login.inputs[0].Value())
			pass := m.login.inputs[1].Value()
			if login == "" || pass == "" {
				m.showErrorf("Login and password are required")
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(models.User{Login: login, Password: pass})
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.register = focusNextRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register = focusPrevRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			name := strings.TrimSpace(m.register.inputs[0].Value())
			login := strings.TrimSpace(m.register.inputs[1].Value())
			pass := m.register.inputs[2].Value()
			repeat := m.register.inputs[3].Value()
			if login == "" || pass == "" {
				m.showErrorf("Login and password are required")
				return m, nil
			}
			if pass != repeat {
				m.showErrorf("Passwords do not match")
				return m, nil
			}
			m.register.submitting = true
			return m, m.cmdRegister(models.User{Name: name, Login: login, Password: pass})
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.searching {
			switch {
			case key.Matches(msg, keys.enter):
				m.list.searching = false
				m.list.like = strings.TrimSpace(m.list.search.Value())
				m.list.page = 1
				m.list.loading = true
				return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
			case key.Matches(msg, keys.esc):
				m.list.searching = false
				return m, nil
			}
			var cmd tea.Cmd
			m.list.search, cmd = m.list.search.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.up):
			if m.list.idx > 0 {
				m.list.idx--
			}
		case key.Matches(msg, keys.down):
			if m.list.idx < len(m.list.stacks)-1 {
				m.list.idx++
			}
		case key.Matches(msg, keys.left):
			if m.list.page > 1 {
				m.list.page--
				m.list.loading = true
				return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
			}
		case key.Matches(msg, keys.right):
			if m.list.page < m.list.pages {
				m.list.page++
				m.list.loading = true
				return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
			}
		case key.Matches(msg, keys.enter):
			stack, ok := m.list.current()
			if !ok {
				return m, nil
			}
			return m, m.cmdLoadStack(stack.Name)
		case key.Matches(msg, keys.search):
			m.list.searching = true
			m.list.search.SetValue(m.list.like)
			m.list.search.Focus()
			return m, nil
		case key.Matches(msg, keys.newItem):
			m.form = newFormStackModel(nil)
			m.currentScreen = screenForm
		case key.Matches(msg, keys.edit):
			stack, ok := m.list.current()
			if !ok {
				return m, nil
			}
			m.form = newFormStackModel(&stack)
			m.currentScreen = screenForm
		case key.Matches(msg, keys.delete):
			stack, ok := m.list.current()
			if !ok {
				return m, nil
			}
			m.showConfirm = true
			m.confirm.message = stack.Name
			m.pendingDelete = stack.Name
		case key.Matches(msg, keys.quit):
			m.err = ErrUserQuit
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.list.loading {
			var cmd tea.Cmd
			m.list.spinner, cmd = m.list.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
		return m, nil
	case key.Matches(keyMsg, keys.edit):
		stack := m.detail.stack
		m.form = newFormStackModel(&stack)
		m.currentScreen = screenForm
		return m, nil
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.confirm.message = m.detail.stack.Name
		m.pendingDelete = m.detail.stack.Name
		return m, nil
	case key.Matches(keyMsg, keys.copy):
		names := m.detail.packageNames()
		if len(names) == 0 {
			return m, nil
		}
		return m, cmdCopyToClipboard(strings.Join(names, "\n"))
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			if m.form.editing {
				m.currentScreen = screenDetail
			} else {
				m.currentScreen = screenList
			}
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form = focusNextForm(m.form)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form = focusPrevForm(m.form)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			request := m.form.toRequest()
			if request.Name == "" {
				m.showErrorf("Stack name is required")
				return m, nil
			}
			m.form.submitting = true
			return m, m.cmdSaveStack(request)
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m appModel) cmdLogin(user models.User) tea.Cmd {
	ctx := m.ctx
	server := m.server
	return func() tea.Msg {
		_, err := server.Login(ctx, user)
		return authDoneMsg{err: err}
	}
}

func (m appModel) cmdRegister(user models.User) tea.Cmd {
	ctx := m.ctx
	server := m.server
	return func() tea.Msg {
		_, err := server.Register(ctx, user)
		return authDoneMsg{err: err}
	}
}

func (m appModel) cmdLoadList() tea.Cmd {
	ctx := m.ctx
	server := m.server
	query := m.list.query()
	return func() tea.Msg {
		listing, err := server.ListStacks(ctx, query)
		return listLoadedMsg{listing: listing, err: err}
	}
}

func (m appModel) cmdLoadStack(name string) tea.Cmd {
	ctx := m.ctx
	server := m.server
	return func() tea.Msg {
		stack, err := server.GetStack(ctx, name)
		return stackLoadedMsg{stack: stack, err: err}
	}
}

func (m appModel) cmdSaveStack(request models.SaveStackRequest) tea.Cmd {
	ctx := m.ctx
	server := m.server
	return func() tea.Msg {
		_, err := server.SaveStack(ctx, request)
		return stackSavedMsg{err: err}
	}
}

func (m appModel) cmdDeleteStack(name string) tea.Cmd {
	ctx := m.ctx
	server := m.server
	return func() tea.Msg {
		_, err := server.DeleteStack(ctx, name)
		return stackDeletedMsg{err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return stackSavedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func focusNextLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextForm(m formStackModel) formStackModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevForm(m formStackModel) formStackModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
