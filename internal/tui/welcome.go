package tui

type welcomeModel struct {
	items []string
	idx   int
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{items: []string{"Log in", "Register", "Browse stacks"}}
}

func (m welcomeModel) View() string {
	out := titleStyle.Render("Stack Keeper") + "\n\nChoose an action:\n\n"
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		out += cursor + item + "\n"
	}
	out += "\n" + helpStyle.Render("q quit")
	return out
}
