package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the start page. Every other key
// edits the query.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFolder key.Binding
	PrevFolder key.Binding
	Open       key.Binding
	Clear      key.Binding
	YankURL    key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		NextFolder: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next folder"),
		),
		PrevFolder: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev folder"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "yank URL"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}
