package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the timer screen.
type KeyMap struct {
	Toggle     key.Binding
	Stop       key.Binding
	Skip       key.Binding
	Reset      key.Binding
	Focus      key.Binding
	LongFocus  key.Binding
	ShortBreak key.Binding
	LongBreak  key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Skip: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "skip"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Focus: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "focus"),
		),
		LongFocus: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "long focus"),
		),
		ShortBreak: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "short break"),
		),
		LongBreak: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "long break"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Stop, k.Skip, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stop, k.Skip, k.Reset},
		{k.Focus, k.LongFocus, k.ShortBreak, k.LongBreak},
		{k.Help, k.Quit},
	}
}
