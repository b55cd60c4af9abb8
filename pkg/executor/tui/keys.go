package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

// keyMap holds the list-screen bindings. The help overlay is built from it.
type keyMap struct {
	New       key.Binding
	View      key.Binding
	Edit      key.Binding
	Delete    key.Binding
	CopyPhone key.Binding
	CopyCard  key.Binding
	Search    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new contact"),
		),
		View: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter/v", "show contact card"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit selected contact"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d/del", "delete selected contact"),
		),
		CopyPhone: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy phone number"),
		),
		CopyCard: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy contact card"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search (enter keeps, esc clears)"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "show this help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
	}
}

// bindings lists every binding in help order, table navigation included.
func (k keyMap) bindings() []key.Binding {
	nav := []key.Binding{
		key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "page up/down")),
		key.NewBinding(key.WithKeys("g", "G"), key.WithHelp("g/G", "first/last contact")),
	}
	return append([]key.Binding{
		k.New, k.View, k.Edit, k.Delete,
		k.CopyPhone, k.CopyCard, k.Search, k.Help, k.Quit,
	}, nav...)
}

// tableKeyMap is the table's default key map with the half-page bindings
// moved off "d" and "u", which the list screen uses for its own actions.
func tableKeyMap() table.KeyMap {
	km := table.DefaultKeyMap()
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "½ page down"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "½ page up"))
	return km
}
