package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	validStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	revokedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	notFoundStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
)

func renderPage(title, body, help string) string {
	return titleStyle.Render(title) + "\n\n" + body + "\n\n" + helpStyle.Render(help)
}
