package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/certichain/certichain/internal/certops"
)

type transferModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	result     *certops.TransferResult
}

func newTransferModel() transferModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
	}
	inputs[0].Focus()
	return transferModel{inputs: inputs}
}

func (m transferModel) View() string {
	if m.result != nil {
		body := "Certificate: " + m.result.CertID + "\n"
		body += "Recipient:   " + m.result.Recipient.Hex() + "\n\n"
		body += notFoundStyle.Render(m.result.Message)
		return renderPage("TRANSFER CERTIFICATE", body, "esc: back to menu")
	}

	body := "Certificate ID: [" + m.inputs[0].View() + "]\n"
	body += "Recipient:      [" + m.inputs[1].View() + "]"
	return renderPage("TRANSFER CERTIFICATE", body, "enter: transfer │ tab: next field │ esc: back")
}
