package editor

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/tap/internal/textedit"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

type cellKind int

const (
	kindText cellKind = iota
	kindSelected
	kindMarked
	kindSelectedMarked
	kindCursor
)

type cell struct {
	text string
	w    int
	kind cellKind
}

// View renders the visible lines, one per row, padded to the pane width,
// and records the layout in the editor.
func (m Model) View() string {
	w, h := m.bounds.Dx(), m.bounds.Dy()
	if w <= 0 || h <= 0 {
		return ""
	}
	m.ed.SetLayout(m.layout())

	text := m.ed.Text()
	if text == "" && !m.focus && m.Placeholder != "" {
		return m.placeholderView()
	}

	sel := m.ed.Selection().Range
	marked, hasMarked := m.ed.MarkedBytes()
	caret := -1
	if m.focus {
		caret = m.ed.Caret()
	}

	lines := strings.Split(text, string(textedit.LineSeparator))
	start := textedit.LineStart(text, m.scroll)

	var b strings.Builder
	for row := 0; row < h; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		i := m.scroll + row
		if i >= len(lines) {
			b.WriteString(m.Styles.Text.Render(strings.Repeat(" ", w)))
			continue
		}
		line := lines[i]
		cells := m.lineCells(line, start, caret, sel, marked, hasMarked)
		m.writeRow(&b, cells, w)
		start += len(line) + 1
	}
	return b.String()
}

// lineCells turns one line into styled cells. start is the line's offset
// in the whole text.
func (m Model) lineCells(line string, start, caret int, sel, marked textedit.Range, hasMarked bool) []cell {
	tab := m.tabWidth()
	var cells []cell
	col := 0
	for _, c := range textedit.Clusters(line) {
		off := start + c.Offset
		s, cw := cellText(c, col, tab)
		kind := kindText
		inSel := off >= sel.Start && off < sel.End
		inMarked := hasMarked && off >= marked.Start && off < marked.End
		switch {
		case off == caret:
			kind = kindCursor
		case inSel && inMarked:
			kind = kindSelectedMarked
		case inSel:
			kind = kindSelected
		case inMarked:
			kind = kindMarked
		}
		if kind == kindCursor && cw > 1 && c.Text == "\t" {
			// Only the first cell of a tab carries the caret.
			cells = append(cells, cell{text: " ", w: 1, kind: kindCursor})
			cells = append(cells, cell{text: strings.Repeat(" ", cw-1), w: cw - 1, kind: kindText})
		} else {
			cells = append(cells, cell{text: s, w: cw, kind: kind})
		}
		col += cw
	}
	if caret == start+len(line) {
		cells = append(cells, cell{text: " ", w: 1, kind: kindCursor})
	}
	return cells
}

// writeRow writes the part of cells inside [hscroll, hscroll+w) and pads
// the rest. A wide cluster cut by either edge becomes blanks.
func (m Model) writeRow(b *strings.Builder, cells []cell, w int) {
	lo, hi := m.hscroll, m.hscroll+w
	var run strings.Builder
	runKind := kindText
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(m.styleFor(runKind).Render(run.String()))
			run.Reset()
		}
	}
	add := func(s string, k cellKind) {
		if k != runKind {
			flush()
			runKind = k
		}
		run.WriteString(s)
	}

	col, used := 0, 0
	for _, c := range cells {
		end := col + c.w
		switch {
		case end <= lo || col >= hi:
		case col >= lo && end <= hi:
			add(c.text, c.kind)
			used += c.w
		default:
			n := min(end, hi) - max(col, lo)
			add(strings.Repeat(" ", n), c.kind)
			used += n
		}
		col = end
	}
	if used < w {
		add(strings.Repeat(" ", w-used), kindText)
	}
	flush()
}

func (m Model) styleFor(k cellKind) lipgloss.Style {
	switch k {
	case kindSelected:
		return m.Styles.Selection
	case kindMarked:
		return m.Styles.Text.Underline(true)
	case kindSelectedMarked:
		return m.Styles.Selection.Underline(true)
	case kindCursor:
		return m.Styles.Cursor
	default:
		return m.Styles.Text
	}
}

// placeholderView shows the placeholder on the first row of an empty,
// unfocused pane.
func (m Model) placeholderView() string {
	w, h := m.bounds.Dx(), m.bounds.Dy()
	ph := ansi.Truncate(m.Placeholder, w, "")
	var b strings.Builder
	b.WriteString(m.Styles.Placeholder.Render(ph))
	if pw := lipgloss.Width(ph); pw < w {
		b.WriteString(m.Styles.Text.Render(strings.Repeat(" ", w-pw)))
	}
	for row := 1; row < h; row++ {
		b.WriteByte('\n')
		b.WriteString(m.Styles.Text.Render(strings.Repeat(" ", w)))
	}
	return b.String()
}
