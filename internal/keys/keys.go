// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the showcase.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Focus    key.Binding

	// Appearance
	ToggleMode key.Binding
	Light      key.Binding
	Dark       key.Binding
	System     key.Binding

	// Motion
	Play     key.Binding
	Cancel   key.Binding
	Sequence key.Binding
	Flags    key.Binding

	// General
	Help key.Binding
	Logs key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus next button"),
		),

		ToggleMode: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle theme"),
		),
		Light: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "light"),
		),
		Dark: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "dark"),
		),
		System: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "system"),
		),

		Play: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p", "play sequence"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel sequence"),
		),
		Sequence: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next sequence"),
		),
		Flags: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle motion"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "debug logs"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleMode, k.Play, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Focus},
		{k.ToggleMode, k.Light, k.Dark, k.System},
		{k.Play, k.Cancel, k.Sequence, k.Flags},
		{k.Help, k.Logs, k.Quit},
	}
}
