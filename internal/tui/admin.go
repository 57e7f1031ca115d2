package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/certichain/certichain/models"
)

var adminActions = []string{"Add admin", "Remove admin", "Check role"}

// adminModel is the owner's roster screen: the roster summary from the
// combined role query plus a single address input with a cycling action.
type adminModel struct {
	input      textinput.Model
	actionIdx  int
	submitting bool
	status     string
	role       models.RoleState
}

func newAdminModel() adminModel {
	input := textinput.New()
	input.Width = 50
	input.Focus()
	return adminModel{input: input}
}

func (m adminModel) View() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Owner:        %s\n", m.role.Owner.Hex()))
	b.WriteString(fmt.Sprintf("Total admins: %d\n\n", m.role.Info.TotalAdmins))

	b.WriteString("Action:  ")
	for i, action := range adminActions {
		if i == m.actionIdx {
			b.WriteString("[" + action + "]")
		} else {
			b.WriteString(" " + action + " ")
		}
		b.WriteString(" ")
	}
	b.WriteString("\nAddress: [" + m.input.View() + "]")

	if m.submitting {
		b.WriteString("\n\nSubmitting...")
	}
	if m.status != "" {
		b.WriteString("\n\n" + m.status)
	}

	return renderPage("ADMIN ROSTER", b.String(), "enter: run action │ tab: cycle action │ esc: back")
}
