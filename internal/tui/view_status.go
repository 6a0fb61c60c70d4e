package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// renderStatusBar writes the status separator and bar.
func (m Model) renderStatusBar(b *strings.Builder, bgFill lipgloss.Style) {
	b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	// -- Left segments --
	var leftParts []string

	count := m.mgr.Len()
	noun := "notes"
	if count == 1 {
		noun = "note"
	}
	leftParts = append(leftParts, m.styles.StatusText.Render(fmt.Sprintf(" %d %s", count, noun)))

	if dirty := m.mgr.DirtyCount(); dirty > 0 {
		leftParts = append(leftParts, m.styles.Dirty.Render(fmt.Sprintf("● %d unsaved", dirty)))
	}
	if m.inMemory {
		leftParts = append(leftParts, m.styles.Error.Render("in-memory"))
	}
	if m.status != "" {
		st := m.styles.StatusKey
		if m.statusErr {
			st = m.styles.Error
		}
		leftParts = append(leftParts, st.Render(m.status))
	}

	left := strings.Join(leftParts, m.styles.StatusText.Render("  "))

	// -- Right: key help for the focused pane, truncated to what is left --
	leftW := lipgloss.Width(left)
	h := m.help
	h.SetWidth(max(m.width-leftW-3, 1))
	right := h.ShortHelpView(m.keys.helpFor(m.focus))

	// -- Compose: left + gap + right + trailing space --
	rightW := lipgloss.Width(right)
	if leftW+rightW+1 > m.width {
		left = ansi.Truncate(left, max(m.width-rightW-1, 0), "…")
		leftW = lipgloss.Width(left)
	}
	gap := m.width - leftW - rightW - 1
	if gap < 0 {
		gap = 0
	}
	b.WriteString(left)
	b.WriteString(bgFill.Render(strings.Repeat(" ", gap)))
	b.WriteString(right)
	b.WriteString(bgFill.Render(" "))
}
