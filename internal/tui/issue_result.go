package tui

import (
	"strings"

	"github.com/certichain/certichain/internal/certops"
)

type issueResultModel struct {
	result   certops.IssueResult
	txURL    string
	txStatus string
	status   string
}

func (m issueResultModel) View() string {
	var b strings.Builder

	b.WriteString("Certificate issued: ")
	b.WriteString(validStyle.Render(m.result.CertID))
	b.WriteString("\n\nTransaction: ")
	b.WriteString(m.result.Outcome.ShortHash())
	if m.txURL != "" {
		b.WriteString("\nExplorer:    ")
		b.WriteString(m.txURL)
	}
	if m.txStatus != "" {
		b.WriteString("\nStatus:      ")
		b.WriteString(m.txStatus)
	}
	b.WriteString("\n\nQR image saved to: ")
	b.WriteString(m.result.QRPath)

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}

	return renderPage("ISSUED", b.String(), "c: copy ID │ t: copy tx hash │ esc: back to menu")
}
