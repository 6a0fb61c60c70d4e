// Package editor draws a textedit.Editor into a rectangle of terminal cells.
//
// The pane owns scrolling and nothing else: text, selection and composition
// live in the textedit.Editor. Every View writes the layout it drew back into
// the editor so mouse hits resolve against what is on screen.
package editor

import (
	"image"

	"charm.land/lipgloss/v2"

	"github.com/xonecas/tap/internal/textedit"
)

// Styles holds the pane's text styles.
type Styles struct {
	Text        lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style
}

// DefaultStyles returns plain text with a reversed selection.
func DefaultStyles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle(),
		Selection:   lipgloss.NewStyle().Reverse(true),
		Cursor:      lipgloss.NewStyle().Background(lipgloss.Color("#00AA00")).Foreground(lipgloss.Color("#000000")),
		Placeholder: lipgloss.NewStyle().Faint(true),
	}
}

// Model is an editor pane.
type Model struct {
	ed     *textedit.Editor
	bounds image.Rectangle

	scroll  int // first visible line
	hscroll int // first visible column
	rev     uint64
	focus   bool

	TabWidth    int
	Placeholder string
	Styles      Styles
}

// New returns a pane drawing ed.
func New(ed *textedit.Editor) Model {
	return Model{
		ed:       ed,
		TabWidth: defaultTabWidth,
		Styles:   DefaultStyles(),
	}
}

// Editor returns the editor being drawn.
func (m *Model) Editor() *textedit.Editor { return m.ed }

// SetBounds places the pane on screen.
func (m *Model) SetBounds(r image.Rectangle) {
	m.bounds = r
	m.ScrollToCaret()
}

// Place moves the pane so its top-left corner is at origin, keeping its
// size, and rewrites the hit layout. For overlays positioned after render.
func (m *Model) Place(origin image.Point) {
	m.bounds = m.bounds.Add(origin.Sub(m.bounds.Min))
	m.ed.SetLayout(m.layout())
}

// Bounds returns the pane's screen rectangle.
func (m *Model) Bounds() image.Rectangle { return m.bounds }

func (m *Model) Focus()        { m.focus = true }
func (m *Model) Blur()         { m.focus = false }
func (m *Model) Focused() bool { return m.focus }

// Scroll returns the first visible line and column.
func (m *Model) Scroll() (line, col int) { return m.scroll, m.hscroll }

// Sync follows the caret when the editor changed since the last call, so a
// wheel scroll sticks until the next edit or caret move.
func (m *Model) Sync() {
	if rev := m.ed.Revision(); rev != m.rev {
		m.rev = rev
		m.ScrollToCaret()
	}
}

// ScrollToCaret scrolls the least amount that brings the caret into view.
func (m *Model) ScrollToCaret() {
	h, w := m.bounds.Dy(), m.bounds.Dx()
	if h <= 0 || w <= 0 {
		return
	}
	text := m.ed.Text()
	caret := m.ed.Caret()
	line := textedit.LineAt(text, caret)
	switch {
	case line < m.scroll:
		m.scroll = line
	case line >= m.scroll+h:
		m.scroll = line - h + 1
	}

	start := textedit.LineStart(text, line)
	ll := cellLine{text: text[start:textedit.LineEnd(text, line)], tab: m.tabWidth()}
	col := int(ll.XForIndex(caret - start))
	switch {
	case col < m.hscroll:
		m.hscroll = col
	case col >= m.hscroll+w:
		m.hscroll = col - w + 1
	}
	m.clampScroll()
}

// ScrollBy moves the view by n lines without moving the caret.
func (m *Model) ScrollBy(n int) {
	m.scroll += n
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxScroll := textedit.LineCount(m.ed.Text()) - m.bounds.Dy()
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
	if m.hscroll < 0 {
		m.hscroll = 0
	}
}

// Point converts screen cell coordinates to the editor's hit-test space.
// The layout written by View is in screen cells, so this is the identity
// apart from the type.
func Point(x, y int) textedit.Point {
	return textedit.Point{X: float64(x), Y: float64(y)}
}

func (m *Model) tabWidth() int {
	if m.TabWidth <= 0 {
		return defaultTabWidth
	}
	return m.TabWidth
}

// layout is what View leaves in the editor's hit tester: screen-space
// bounds shifted by the scroll offsets, one cellLine per buffer line.
func (m *Model) layout() textedit.Layout {
	origin := textedit.Point{
		X: float64(m.bounds.Min.X - m.hscroll),
		Y: float64(m.bounds.Min.Y - m.scroll),
	}
	return textedit.Layout{
		Bounds: textedit.Bounds{
			Min: origin,
			Max: textedit.Point{X: float64(m.bounds.Max.X), Y: float64(m.bounds.Max.Y)},
		},
		Lines: layoutLines(m.ed.Text(), m.tabWidth()),
	}
}
