package editor

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/tap/internal/textedit"
)

var keyNames = map[rune]string{
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyBackspace: "backspace",
	tea.KeyDelete:    "delete",
	tea.KeyEnter:     "enter",
	tea.KeyTab:       "tab",
	tea.KeyEscape:    "esc",
}

// KeyEvent converts a bubbletea key press into the editor's key event.
// Ctrl (or super, where the terminal reports it) is the platform modifier.
// Char is set only for unmodified printable input.
func KeyEvent(msg tea.KeyPressMsg) textedit.KeyEvent {
	k := msg.Key()
	mods := textedit.Modifiers{
		Shift:   k.Mod&tea.ModShift != 0,
		Control: k.Mod&tea.ModCtrl != 0,
		Alt:     k.Mod&tea.ModAlt != 0,
	}
	mods.Platform = mods.Control || k.Mod&tea.ModSuper != 0

	name, ok := keyNames[k.Code]
	if !ok {
		name = string(k.Code)
	}
	ev := textedit.KeyEvent{Key: name, Mods: mods}
	if !mods.Platform && !mods.Alt && k.Text != "" {
		ev.Char = k.Text
	}
	return ev
}

// HandleKey gives a key to the editor: control keys through its key
// handler, typed text through the input path so a composition in progress
// is replaced. It reports whether the editor used the key.
func (m *Model) HandleKey(msg tea.KeyPressMsg) bool {
	ev := KeyEvent(msg)
	if m.ed.HandleKey(ev) {
		return true
	}
	if ev.Char == "" {
		return false
	}
	m.ed.ReplaceText(nil, ev.Char)
	return true
}
