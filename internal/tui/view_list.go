package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// renderList renders the visible note titles, newest first. The active
// note is accented; the highlight is shown while the list has focus. A
// note whose last write failed is marked with "*".
func (m Model) renderList() []string {
	w, h := m.layout.list.Dx(), m.layout.list.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	notes := m.mgr.Notes()
	active := m.mgr.ActiveID()

	lines := make([]string, 0, h)
	for i := m.listScroll; i < len(notes) && len(lines) < h; i++ {
		n := notes[i]
		mark := " "
		if m.mgr.Dirty(n.ID) {
			mark = "*"
		}
		text := ansi.Truncate(" "+oneLine(displayTitle(n.Title)), w-1, "…")
		if tw := lipgloss.Width(text); tw < w-1 {
			text += strings.Repeat(" ", w-1-tw)
		}

		style := m.styles.ListItem
		switch {
		case i == m.listSel && m.focus == focusList:
			style = m.styles.ListFocus
		case n.ID == active:
			style = m.styles.ListActive
		}
		lines = append(lines, style.Render(text)+m.styles.Dirty.Render(mark))
	}
	return lines
}

// oneLine flattens whitespace runs so a title stays on its row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
