package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application key bindings
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Filter     key.Binding
	StartAudit key.Binding
	Ownership  key.Binding
	ExportPDF  key.Binding
	ExportCSV  key.Binding
	Chat       key.Binding
	ClearChat  key.Binding
	Refresh    key.Binding
	Escape     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		StartAudit: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "start audit"),
		),
		Ownership: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "discover ownership"),
		),
		ExportPDF: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export pdf"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export csv"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chat"),
		),
		ClearChat: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear chat session"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
