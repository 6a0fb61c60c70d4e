package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/tap/internal/document"
	"github.com/xonecas/tap/internal/textedit"
)

// handleKeyPress routes a key: open dialogs first, then app bindings, then
// the focused pane. The bool asks the caller to flush and quit.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if m.confirm != nil {
		return m.updateConfirm(msg), false
	}
	if m.picker != nil {
		return m.updatePicker(msg), false
	}

	if handler := m.keyPressHandlers()[msg.Keystroke()]; handler != nil {
		if cmd, quit, handled := handler(m); handled {
			return cmd, quit
		}
	}

	switch m.focus {
	case focusList:
		return m.handleListKey(msg), false
	case focusTitle:
		return m.handleTitleKey(msg), false
	default:
		return m.handleEditorKey(msg), false
	}
}

func (m *Model) keyPressHandlers() map[string]func(*Model) (tea.Cmd, bool, bool) {
	return map[string]func(*Model) (tea.Cmd, bool, bool){
		"ctrl+q":    (*Model).handleQuit,
		"ctrl+c":    (*Model).handleCtrlC,
		"ctrl+n":    (*Model).handleNew,
		"ctrl+p":    (*Model).handlePicker,
		"ctrl+r":    (*Model).handleRename,
		"tab":       (*Model).handleTab,
		"shift+tab": (*Model).handleShiftTab,
	}
}

func (m *Model) handleQuit() (tea.Cmd, bool, bool) {
	return nil, true, true
}

// handleCtrlC copies when the focused editor has a selection, else quits.
func (m *Model) handleCtrlC() (tea.Cmd, bool, bool) {
	if ed := m.focusedEditor(); ed != nil && !ed.Selection().Empty() {
		return nil, false, false
	}
	return nil, true, true
}

func (m *Model) handleNew() (tea.Cmd, bool, bool) {
	m.mgr.Enqueue(document.CreateNote{})
	return nil, false, true
}

func (m *Model) handlePicker() (tea.Cmd, bool, bool) {
	m.openPicker()
	return nil, false, true
}

func (m *Model) handleRename() (tea.Cmd, bool, bool) {
	if !m.hasNote() {
		return nil, false, true
	}
	m.setFocus(focusTitle)
	m.title.Editor().SelectAll()
	return nil, false, true
}

// handleTab cycles focus, except in the content editor where it indents.
func (m *Model) handleTab() (tea.Cmd, bool, bool) {
	if m.focus == focusEditor {
		return nil, false, false
	}
	m.setFocus(m.nextFocus(1))
	return nil, false, true
}

func (m *Model) handleShiftTab() (tea.Cmd, bool, bool) {
	m.setFocus(m.nextFocus(-1))
	return nil, false, true
}

// nextFocus steps through list, title, editor. Panes that need an open
// note are skipped when there is none.
func (m *Model) nextFocus(step int) focus {
	if !m.hasNote() {
		return focusList
	}
	return focus((int(m.focus) + step + 3) % 3)
}

func (m *Model) focusedEditor() *textedit.Editor {
	switch m.focus {
	case focusTitle:
		return m.title.Editor()
	case focusEditor:
		return m.content.Editor()
	}
	return nil
}

// ---------------------------------------------------------------------------
// Per-pane keys
// ---------------------------------------------------------------------------

func (m *Model) handleListKey(msg tea.KeyPressMsg) tea.Cmd {
	notes := m.mgr.Notes()
	if len(notes) == 0 {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.listSel > 0 {
			m.listSel--
			m.mgr.Enqueue(document.SelectNote{ID: notes[m.listSel].ID})
		}
	case key.Matches(msg, m.keys.Down):
		if m.listSel < len(notes)-1 {
			m.listSel++
			m.mgr.Enqueue(document.SelectNote{ID: notes[m.listSel].ID})
		}
	case key.Matches(msg, m.keys.Select):
		m.mgr.Enqueue(document.SelectNote{ID: notes[m.listSel].ID})
		m.setFocus(focusEditor)
	case key.Matches(msg, m.keys.Delete):
		m.openConfirm(notes[m.listSel])
	}
	return nil
}

func (m *Model) handleTitleKey(msg tea.KeyPressMsg) tea.Cmd {
	if !m.hasNote() {
		return nil
	}
	if key.Matches(msg, m.keys.Commit, m.keys.Cancel) {
		m.setFocus(focusEditor)
		return nil
	}
	m.title.HandleKey(msg)
	return nil
}

func (m *Model) handleEditorKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		m.setFocus(focusList)
		return nil
	}
	if !m.hasNote() {
		return m.flash("no note open: ctrl+n creates one", false)
	}
	ed := m.content.Editor()
	if msg.Keystroke() == "tab" {
		if m.softTabs {
			ed.ReplaceText(nil, strings.Repeat(" ", m.tabWidth))
		} else {
			ed.ReplaceText(nil, "\t")
		}
		return nil
	}
	m.content.HandleKey(msg)
	return nil
}
