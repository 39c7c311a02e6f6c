package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

// keyMap is the browser's key bindings. Row movement is delegated to the
// table's own bindings; the rest are handled by the root model.
type keyMap struct {
	table  table.KeyMap
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		table: table.DefaultKeyMap(),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.table.LineUp, k.table.LineDown, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.table.LineUp, k.table.LineDown, k.table.GotoTop, k.table.GotoBottom},
		{k.table.PageUp, k.table.PageDown, k.table.HalfPageUp, k.table.HalfPageDown},
		{k.Reload, k.Help, k.Quit},
	}
}
