package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/certichain/certichain/internal/certops"
)

var issueLabels = []string{
	"Product name",
	"Mfg date (YYYY-MM-DD)",
	"Location",
	"Intended region",
	"Details (optional)",
	"Notes (optional)",
}

type issueModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newIssueModel() issueModel {
	inputs := make([]textinput.Model, len(issueLabels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
	}
	inputs[0].Focus()
	return issueModel{inputs: inputs}
}

func (m issueModel) toFields() certops.IssueFields {
	return certops.IssueFields{
		ProductName:    m.inputs[0].Value(),
		MfgDate:        m.inputs[1].Value(),
		Location:       m.inputs[2].Value(),
		IntendedRegion: m.inputs[3].Value(),
		Details:        m.inputs[4].Value(),
		Notes:          m.inputs[5].Value(),
	}
}

func (m issueModel) View() string {
	out := ""
	for i, label := range issueLabels {
		out += label + ": [" + m.inputs[i].View() + "]\n"
	}
	if m.submitting {
		out += "\nSubmitting transaction, waiting for receipt..."
	}
	return renderPage("ISSUE CERTIFICATE", out, "enter: issue │ tab: next field │ esc: back")
}
