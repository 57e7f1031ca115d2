package tui

import "github.com/charmbracelet/bubbles/textinput"

type revokeModel struct {
	input      textinput.Model
	submitting bool
	status     string
}

func newRevokeModel() revokeModel {
	input := textinput.New()
	input.Width = 50
	input.Focus()
	return revokeModel{input: input}
}

func (m revokeModel) View() string {
	body := "Certificate ID: [" + m.input.View() + "]"
	if m.submitting {
		body += "\n\nSubmitting transaction, waiting for receipt..."
	}
	if m.status != "" {
		body += "\n\n" + m.status
	}
	return renderPage("REVOKE CERTIFICATE", body, "enter: revoke │ esc: back")
}
