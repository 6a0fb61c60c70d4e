package editor

import (
	"image"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/tap/internal/textedit"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want textedit.KeyEvent
	}{
		{"char", tea.KeyPressMsg{Code: 'a', Text: "a"}, textedit.KeyEvent{Key: "a", Char: "a"}},
		{"shifted char", tea.KeyPressMsg{Code: 'a', Text: "A", Mod: tea.ModShift},
			textedit.KeyEvent{Key: "a", Char: "A", Mods: textedit.Modifiers{Shift: true}}},
		{"ctrl", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl},
			textedit.KeyEvent{Key: "c", Mods: textedit.Modifiers{Control: true, Platform: true}}},
		{"super", tea.KeyPressMsg{Code: 'v', Mod: tea.ModSuper},
			textedit.KeyEvent{Key: "v", Mods: textedit.Modifiers{Platform: true}}},
		{"shift left", tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModShift},
			textedit.KeyEvent{Key: "left", Mods: textedit.Modifiers{Shift: true}}},
		{"enter", tea.KeyPressMsg{Code: tea.KeyEnter}, textedit.KeyEvent{Key: "enter"}},
		{"alt char", tea.KeyPressMsg{Code: 'f', Text: "f", Mod: tea.ModAlt},
			textedit.KeyEvent{Key: "f", Mods: textedit.Modifiers{Alt: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyEvent(tt.msg); got != tt.want {
				t.Errorf("KeyEvent = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHandleKeyTypesAndMoves(t *testing.T) {
	m, ed := newPane(t, "", image.Rect(0, 0, 20, 3))

	for _, r := range "héllo" {
		if !m.HandleKey(tea.KeyPressMsg{Code: r, Text: string(r)}) {
			t.Fatalf("typing %q not handled", r)
		}
	}
	if got := ed.Text(); got != "héllo" {
		t.Fatalf("text = %q", got)
	}

	m.HandleKey(tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModShift})
	if got := ed.SelectedText(); got != "o" {
		t.Errorf("selected = %q, want %q", got, "o")
	}
	m.HandleKey(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if got := ed.Text(); got != "héllx" {
		t.Errorf("text = %q", got)
	}

	if m.HandleKey(tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl}) {
		t.Error("unbound ctrl key reported as handled")
	}
}
