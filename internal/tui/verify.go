package tui

import "github.com/charmbracelet/bubbles/textinput"

type verifyModel struct {
	input      textinput.Model
	submitting bool
}

func newVerifyModel() verifyModel {
	input := textinput.New()
	input.Width = 60
	input.Focus()
	return verifyModel{input: input}
}

func (m verifyModel) View() string {
	body := "Certificate ID or QR payload: [" + m.input.View() + "]\n\n"
	body += "Or decode a QR image: type its file path above and press ctrl+u."
	if m.submitting {
		body += "\n\nLooking up..."
	}
	return renderPage("VERIFY CERTIFICATE", body,
		"enter: verify │ ctrl+s: scan drop dir │ ctrl+u: decode image file │ esc: back")
}
