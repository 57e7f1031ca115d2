package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	enter       key.Binding
	esc         key.Binding
	tab         key.Binding
	backtab     key.Binding
	quit        key.Binding
	scan        key.Binding
	upload      key.Binding
	copy        key.Binding
	copyTx      key.Binding
	copyPayload key.Binding
	refresh     key.Binding
	yes         key.Binding
	no          key.Binding
}

var keys = keyMap{
	up:          key.NewBinding(key.WithKeys("up", "k")),
	down:        key.NewBinding(key.WithKeys("down", "j")),
	enter:       key.NewBinding(key.WithKeys("enter")),
	esc:         key.NewBinding(key.WithKeys("esc")),
	tab:         key.NewBinding(key.WithKeys("tab")),
	backtab:     key.NewBinding(key.WithKeys("shift+tab")),
	quit:        key.NewBinding(key.WithKeys("q", "ctrl+c")),
	scan:        key.NewBinding(key.WithKeys("ctrl+s")),
	upload:      key.NewBinding(key.WithKeys("ctrl+u")),
	copy:        key.NewBinding(key.WithKeys("c")),
	copyTx:      key.NewBinding(key.WithKeys("t")),
	copyPayload: key.NewBinding(key.WithKeys("p")),
	refresh:     key.NewBinding(key.WithKeys("r")),
	yes:         key.NewBinding(key.WithKeys("y")),
	no:          key.NewBinding(key.WithKeys("n")),
}
