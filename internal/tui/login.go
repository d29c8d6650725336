package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newLoginModel() loginModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 64
	loginInput.Width = 40
	loginInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return loginModel{inputs: []textinput.Model{loginInput, passwordInput}}
}

func (m loginModel) View() string {
	out := titleStyle.Render("Log in") + "\n\n"
	out += "Login:    " + m.inputs[0].View() + "\n"
	out += "Password: " + m.inputs[1].View() + "\n"

	if m.submitting {
		out += "\nLogging in...\n"
	}

	out += "\n" + helpStyle.Render("enter submit  tab next field  esc back  q quit")
	return out
}
