package tui

import "github.com/charmbracelet/bubbles/textinput"

type connectModel struct {
	input      textinput.Model
	submitting bool
}

func newConnectModel() connectModel {
	input := textinput.New()
	input.Width = 50
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.Focus()
	return connectModel{input: input}
}

func (m connectModel) View() string {
	body := "Keystore passphrase: [" + m.input.View() + "]"
	if m.submitting {
		body += "\n\nConnecting..."
	}
	return renderPage("CONNECT WALLET", body, "enter: connect │ esc: back")
}
