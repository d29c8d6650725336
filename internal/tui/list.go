package tui

import (
	"fmt"

	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

type listModel struct {
	stacks      []models.Stack
	idx         int
	page        int
	pages       int
	total       int
	loading     bool
	spinner     spinner.Model
	status      string
	searching   bool
	search      textinput.Model
	like        string
	lastErr     error
	rowsPerPage int
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	search := textinput.New()
	search.Placeholder = "filter by name"
	search.CharLimit = 128
	search.Width = 40

	return listModel{spinner: s, loading: true, page: 1, search: search}
}

func (m listModel) current() (models.Stack, bool) {
	if len(m.stacks) == 0 || m.idx < 0 || m.idx >= len(m.stacks) {
		return models.Stack{}, false
	}
	return m.stacks[m.idx], true
}

func (m listModel) query() models.StackQuery {
	return models.StackQuery{
		Like:        m.like,
		Page:        m.page,
		RowsPerPage: m.rowsPerPage,
	}
}

func (m listModel) View() string {
	header := titleStyle.Render("Stacks")
	if m.loading {
		header += "  " + m.spinner.View()
	}
	out := header + "\n\n"

	if m.searching {
		out += "Filter: " + m.search.View() + "\n\n"
	} else if m.like != "" {
		out += "Filter: " + m.like + "\n\n"
	}

	if m.loading {
		out += "Loading...\n"
	} else if len(m.stacks) == 0 {
		out += "No stacks found\n"
	} else {
		for i, stack := range m.stacks {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			out += fmt.Sprintf("%s%s  %s\n", cursor, stack.Name, helpStyle.Render(fitText(stack.Description, 40)))
		}
		out += fmt.Sprintf("\npage %d/%d  %d total\n", m.page, m.pages, m.total)
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}
	if m.lastErr != nil {
		out += "\nError: " + m.lastErr.Error() + "\n"
	}

	if m.searching {
		out += "\n" + helpStyle.Render("enter apply  esc cancel")
	} else {
		out += "\n" + helpStyle.Render("enter open  n new  e edit  d delete  / filter  ←/→ page  q quit")
	}
	return out
}
