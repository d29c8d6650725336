package tui

import (
	"strings"

	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
)

// formStackModel edits or creates a stack. Packages, users, and groups are
// entered as comma-delimited lists.
type formStackModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	editing    bool
}

const (
	formFieldName = iota
	formFieldDescription
	formFieldPackages
	formFieldUsers
	formFieldGroups
)

func newFormStackModel(stack *models.Stack) formStackModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "stack name"
	nameInput.CharLimit = 128
	nameInput.Width = 48
	nameInput.Focus()

	descriptionInput := textinput.New()
	descriptionInput.Placeholder = "description"
	descriptionInput.CharLimit = 512
	descriptionInput.Width = 48

	packagesInput := textinput.New()
	packagesInput.Placeholder = "packages, comma-separated"
	packagesInput.Width = 48

	usersInput := textinput.New()
	usersInput.Placeholder = "owner logins, comma-separated"
	usersInput.Width = 48

	groupsInput := textinput.New()
	groupsInput.Placeholder = "owning groups, comma-separated"
	groupsInput.Width = 48

	m := formStackModel{
		inputs: []textinput.Model{nameInput, descriptionInput, packagesInput, usersInput, groupsInput},
	}

	if stack != nil {
		m.editing = true
		m.inputs[formFieldName].SetValue(stack.Name)
		m.inputs[formFieldDescription].SetValue(stack.Description)

		packages := make([]string, 0, len(stack.Packages))
		for _, pkg := range stack.Packages {
			packages = append(packages, pkg.Name)
		}
		m.inputs[formFieldPackages].SetValue(strings.Join(packages, ", "))

		users := make([]string, 0, len(stack.Users))
		for _, user := range stack.Users {
			users = append(users, user.Login)
		}
		m.inputs[formFieldUsers].SetValue(strings.Join(users, ", "))

		groups := make([]string, 0, len(stack.Groups))
		for _, group := range stack.Groups {
			groups = append(groups, group.Name)
		}
		m.inputs[formFieldGroups].SetValue(strings.Join(groups, ", "))
	}

	return m
}

func (m formStackModel) toRequest() models.SaveStackRequest {
	return models.SaveStackRequest{
		Name:        strings.TrimSpace(m.inputs[formFieldName].Value()),
		Description: strings.TrimSpace(m.inputs[formFieldDescription].Value()),
		Packages:    splitList(m.inputs[formFieldPackages].Value()),
		Users:       splitList(m.inputs[formFieldUsers].Value()),
		Groups:      splitList(m.inputs[formFieldGroups].Value()),
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (m formStackModel) View() string {
	title := "New stack"
	if m.editing {
		title = "Edit stack"
	}

	out := titleStyle.Render(title) + "\n\n"
	out += "Name:        " + m.inputs[formFieldName].View() + "\n"
	out += "Description: " + m.inputs[formFieldDescription].View() + "\n"
	out += "Packages:    " + m.inputs[formFieldPackages].View() + "\n"
	out += "Owners:      " + m.inputs[formFieldUsers].View() + "\n"
	out += "Groups:      " + m.inputs[formFieldGroups].View() + "\n"

	if m.submitting {
		out += "\nSaving...\n"
	}

	out += "\n" + helpStyle.Render("enter save  tab next field  esc back")
	return out
}
