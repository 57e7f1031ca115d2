package tui

import (
	"fmt"
	"strings"

	"github.com/certichain/certichain/models"
)

type historyModel struct {
	entries []models.HistoryEntry
	idx     int
	loading bool
}

func (m historyModel) View() string {
	if m.loading {
		return renderPage("ACTIVITY HISTORY", "Loading...", "esc: back")
	}
	if len(m.entries) == 0 {
		return renderPage("ACTIVITY HISTORY", "No activity recorded yet.", "esc: back")
	}

	var b strings.Builder
	for i, e := range m.entries {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s  %-8s %s", cursor, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Action, e.CertID)
		if e.TxHash != "" {
			line += "  tx " + shortHash(e.TxHash)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return renderPage("ACTIVITY HISTORY", strings.TrimRight(b.String(), "\n"), "↑/↓: navigate │ esc: back")
}

func shortHash(h string) string {
	if len(h) <= 10 {
		return h
	}
	return h[:10] + "..."
}
