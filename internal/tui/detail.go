package tui

import (
	"strings"

	"github.com/MKhiriev/go-stack-keeper/models"
)

type detailModel struct {
	stack  models.Stack
	status string
}

func (m detailModel) packageNames() []string {
	names := make([]string, 0, len(m.stack.Packages))
	for _, pkg := range m.stack.Packages {
		names = append(names, pkg.Name)
	}
	return names
}

func (m detailModel) View() string {
	out := titleStyle.Render(m.stack.Name) + "\n" + uiDivider + "\n\n"

	owners := make([]string, 0, len(m.stack.Users))
	for _, user := range m.stack.Users {
		owners = append(owners, user.Login)
	}
	groups := make([]string, 0, len(m.stack.Groups))
	for _, group := range m.stack.Groups {
		groups = append(groups, group.Name)
	}

	out += "Description: " + valueOrDash(m.stack.Description) + "\n"
	out += "Owners:      " + valueOrDash(strings.Join(owners, ", ")) + "\n"
	out += "Groups:      " + valueOrDash(strings.Join(groups, ", ")) + "\n"

	out += "\nPackages:\n"
	if len(m.stack.Packages) == 0 {
		out += "  -\n"
	} else {
		for _, pkg := range m.stack.Packages {
			out += "  " + pkg.Name
			if pkg.Requirements != "" {
				out += "  " + helpStyle.Render(pkg.Requirements)
			}
			out += "\n"
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	out += "\n" + helpStyle.Render("c copy packages  e edit  d delete  esc back  q quit")
	return out
}
