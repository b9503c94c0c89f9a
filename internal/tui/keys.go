package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextHunk   key.Binding
	PrevHunk   key.Binding
	CycleMode  key.Binding
	ToggleLine key.Binding
	Help       key.Binding
	Save       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextHunk: key.NewBinding(
		key.WithKeys("n", "tab"),
		key.WithHelp("n/tab", "next hunk"),
	),
	PrevHunk: key.NewBinding(
		key.WithKeys("N", "shift+tab"),
		key.WithHelp("N/S-tab", "prev hunk"),
	),
	CycleMode: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "cycle none/all/partial"),
	),
	ToggleLine: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle line (partial mode)"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save plan and quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit without saving"),
	),
}
