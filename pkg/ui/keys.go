// Package ui provides the Bubble Tea quote-watch TUI.
package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit       key.Binding
	NextMarket key.Binding
	ToggleSide key.Binding
	Flip       key.Binding
	Clear      key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextMarket: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next market"),
		),
		ToggleSide: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "pt/yt"),
		),
		Flip: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "buy/sell"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.NextMarket, k.ToggleSide, k.Flip}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.NextMarket, k.ToggleSide},
		{k.Flip, k.Clear, k.Help},
	}
}
