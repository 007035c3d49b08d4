package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Draw     key.Binding
	NewGame  key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Draw: key.NewBinding(
		key.WithKeys("d", " "),
		key.WithHelp("d/space", "draw"),
	),
	NewGame: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new deal"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll messages"),
	),
	ScrollDn: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll messages"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Draw, k.NewGame, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Draw, k.NewGame},
		{k.ScrollUp, k.ScrollDn},
		{k.Help, k.Quit},
	}
}
