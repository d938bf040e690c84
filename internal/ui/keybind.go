package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the overlay's global key bindings.
type KeyMap struct {
	ToggleDefault key.Binding
	CopyDefault   key.Binding
	Resize        key.Binding
	Quit          key.Binding
}

// Ensure KeyMap implements help.KeyMap.
var _ help.KeyMap = KeyMap{}

// DefaultKeyMap returns the standard bindings: backtick expands the default
// panel, ctrl+y copies its text.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleDefault: key.NewBinding(
			key.WithKeys("`"),
			key.WithHelp("`", "expand debug"),
		),
		CopyDefault: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy debug"),
		),
		Resize: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "relayout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleDefault, k.CopyDefault, k.Resize, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
