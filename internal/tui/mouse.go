package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/tap/internal/document"
	"github.com/xonecas/tap/internal/textedit"
	"github.com/xonecas/tap/internal/tui/editor"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling: dialogs first, then the pane under the pointer. A drag
// keeps going to the editor it started in.
// ---------------------------------------------------------------------------

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	m := msg.Mouse()
	return m.X, m.Y
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.confirm != nil {
		return nil
	}
	if m.picker != nil {
		return m.updatePicker(msg)
	}

	x, y := mouseXY(msg)
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.Button == tea.MouseLeft {
			m.handleClick(x, y, ev.Mod&tea.ModShift != 0)
		}
	case tea.MouseMotionMsg:
		for _, ed := range m.editors() {
			if ed.State() == textedit.Selecting {
				ed.MouseMove(editor.Point(x, y))
			}
		}
	case tea.MouseReleaseMsg:
		for _, ed := range m.editors() {
			ed.MouseUp()
		}
	case tea.MouseWheelMsg:
		m.handleWheel(ev, x, y)
	}
	return nil
}

func (m *Model) editors() []*textedit.Editor {
	return []*textedit.Editor{m.title.Editor(), m.content.Editor()}
}

func (m *Model) handleClick(x, y int, shift bool) {
	switch {
	case inRect(x, y, m.layout.list):
		m.setFocus(focusList)
		idx := m.listScroll + y - m.layout.list.Min.Y
		notes := m.mgr.Notes()
		if idx >= 0 && idx < len(notes) {
			m.listSel = idx
			m.mgr.Enqueue(document.SelectNote{ID: notes[idx].ID})
		}
	case inRect(x, y, m.layout.title) && m.hasNote():
		m.setFocus(focusTitle)
		m.title.Editor().MouseDown(editor.Point(x, y), shift)
	case inRect(x, y, m.layout.editor) && m.hasNote():
		m.setFocus(focusEditor)
		m.content.Editor().MouseDown(editor.Point(x, y), shift)
	}
}

func (m *Model) handleWheel(ev tea.MouseWheelMsg, x, y int) {
	delta := 0
	switch ev.Button {
	case tea.MouseWheelUp:
		delta = -wheelLines
	case tea.MouseWheelDown:
		delta = wheelLines
	default:
		return
	}
	switch {
	case inRect(x, y, m.layout.editor):
		m.content.ScrollBy(delta)
	case inRect(x, y, m.layout.list):
		h := m.layout.list.Dy()
		m.listScroll = max(min(m.listScroll+delta, m.mgr.Len()-h), 0)
	}
}
