package tui

import "charm.land/bubbles/v2/key"

// keyMap holds the app-level bindings. Editing keys go to the focused
// editor and are not listed here.
type keyMap struct {
	New    key.Binding
	Picker key.Binding
	Rename key.Binding
	Focus  key.Binding
	Delete key.Binding
	Select key.Binding
	Up     key.Binding
	Down   key.Binding
	Commit key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		Picker: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "find")),
		Rename: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "rename")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Delete: key.NewBinding(key.WithKeys("delete", "d"), key.WithHelp("d", "delete")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save title")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	}
}

// helpFor returns the bindings worth showing for the focused pane.
func (k keyMap) helpFor(f focus) []key.Binding {
	switch f {
	case focusList:
		return []key.Binding{k.Select, k.Delete, k.New, k.Picker, k.Focus, k.Quit}
	case focusTitle:
		return []key.Binding{k.Commit, k.Cancel, k.Focus, k.Quit}
	default:
		return []key.Binding{k.New, k.Picker, k.Rename, k.Focus, k.Quit}
	}
}
