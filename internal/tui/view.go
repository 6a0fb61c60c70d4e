package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// render returns the screen: an open dialog replaces the panes.
func (m Model) render() string {
	switch {
	case m.confirm != nil:
		return m.confirm.View(m.width, m.height)
	case m.picker != nil:
		return m.picker.View(m.width, m.height)
	}
	return m.renderContent()
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	ly := m.layout
	contentH := ly.list.Dy()
	rightW := ly.editor.Dx()
	var b strings.Builder

	listLines := m.renderList()
	titleLines := strings.Split(m.title.View(), "\n")
	editorLines := strings.Split(m.content.View(), "\n")
	bgFill := m.styles.BgFill
	divider := m.styles.Border.Render("│")

	for row := 0; row < contentH; row++ {
		writeCell(&b, listLines, row, ly.list.Dx(), bgFill)
		b.WriteString(divider)
		switch {
		case row < ly.title.Dy():
			writeCell(&b, titleLines, row, rightW, bgFill)
		case row < ly.editor.Min.Y:
			b.WriteString(m.styles.Border.Render(strings.Repeat("─", rightW)))
		default:
			writeCell(&b, editorLines, row-ly.editor.Min.Y, rightW, bgFill)
		}
		b.WriteByte('\n')
	}

	m.renderStatusBar(&b, bgFill)
	return b.String()
}

// writeCell writes lines[row] padded or cut to w cells.
func writeCell(b *strings.Builder, lines []string, row, w int, bgFill lipgloss.Style) {
	if w <= 0 {
		return
	}
	if row < 0 || row >= len(lines) {
		b.WriteString(bgFill.Render(strings.Repeat(" ", w)))
		return
	}
	line := lines[row]
	lw := lipgloss.Width(line)
	if lw > w {
		line = ansi.Truncate(line, w, "")
		lw = lipgloss.Width(line)
	}
	b.WriteString(line)
	if lw < w {
		b.WriteString(bgFill.Render(strings.Repeat(" ", w-lw)))
	}
}
