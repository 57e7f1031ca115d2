package tui

import (
	"fmt"
	"strings"

	"github.com/certichain/certichain/models"
)

type menuItem struct {
	id    string
	label string
}

type menuModel struct {
	items  []menuItem
	idx    int
	status string
}

func newMenuModel() menuModel {
	m := menuModel{}
	m.rebuild(false, models.RoleUser)
	return m
}

// rebuild recomputes the visible actions for the current role. Write actions
// appear only once a session with the right role exists; the contract still
// enforces every permission on submission.
func (m *menuModel) rebuild(connected bool, view models.RoleView) {
	items := []menuItem{
		{id: "verify", label: "Verify certificate"},
	}

	if connected && (view == models.RoleManufacturer || view == models.RoleOwner) {
		items = append(items,
			menuItem{id: "issue", label: "Issue certificate"},
			menuItem{id: "revoke", label: "Revoke certificate"},
		)
	}
	// Transfer needs no on-chain role: it is a local stub open to every
	// connected account.
	if connected {
		items = append(items, menuItem{id: "transfer", label: "Transfer certificate"})
	}
	if connected && view == models.RoleOwner {
		items = append(items, menuItem{id: "admin", label: "Admin roster"})
	}

	items = append(items, menuItem{id: "history", label: "Activity history"})

	if connected {
		items = append(items, menuItem{id: "disconnect", label: "Disconnect wallet"})
	} else {
		items = append(items, menuItem{id: "connect", label: "Connect wallet"})
	}

	m.items = items
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
}

func (m menuModel) current() menuItem {
	return m.items[m.idx]
}

func (m menuModel) view(sessionLine string) string {
	var b strings.Builder

	b.WriteString(sessionLine)
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", cursor, i+1, item.label))
	}

	return renderPage("CERTICHAIN", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate │ q: quit")
}
