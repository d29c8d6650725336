package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type registerModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newRegisterModel() registerModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "display name"
	nameInput.CharLimit = 128
	nameInput.Width = 40
	nameInput.Focus()

	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 64
	loginInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	repeatInput := textinput.New()
	repeatInput.Placeholder = "repeat password"
	repeatInput.CharLimit = 256
	repeatInput.Width = 40
	repeatInput.EchoMode = textinput.EchoPassword
	repeatInput.EchoCharacter = '*'

	return registerModel{inputs: []textinput.Model{nameInput, loginInput, passwordInput, repeatInput}}
}

func (m registerModel) View() string {
	out := titleStyle.Render("Register") + "\n\n"
	out += "Name:            " + m.inputs[0].View() + "\n"
	out += "Login:           " + m.inputs[1].View() + "\n"
	out += "Password:        " + m.inputs[2].View() + "\n"
	out += "Repeat password: " + m.inputs[3].View() + "\n"

	if m.submitting {
		out += "\nRegistering...\n"
	}

	out += "\n" + helpStyle.Render("enter submit  tab next field  esc back  q quit")
	return out
}
