package editor

import (
	"image"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"

	"github.com/xonecas/tap/internal/textedit"
)

func newPane(t *testing.T, text string, r image.Rectangle) (Model, *textedit.Editor) {
	t.Helper()
	ed := textedit.New(textedit.Options{LineHeight: 1})
	ed.Load("note-1", text)
	m := New(ed)
	m.SetBounds(r)
	m.Focus()
	return m, ed
}

func TestCellLineTabStops(t *testing.T) {
	l := cellLine{text: "a\tb", tab: 4}
	cases := []struct {
		idx  int
		want float64
	}{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},
	}
	for _, tc := range cases {
		if got := l.XForIndex(tc.idx); got != tc.want {
			t.Errorf("XForIndex(%d) = %v, want %v", tc.idx, got, tc.want)
		}
	}
	if got := l.ClosestIndexForX(2); got != 1 {
		t.Errorf("ClosestIndexForX(2) = %d, want 1", got)
	}
	if got := l.ClosestIndexForX(3); got != 2 {
		t.Errorf("ClosestIndexForX(3) = %d, want 2", got)
	}
	if got := l.ClosestIndexForX(99); got != 3 {
		t.Errorf("ClosestIndexForX(99) = %d, want 3", got)
	}
}

func TestCellLineWideClusters(t *testing.T) {
	l := cellLine{text: "日本", tab: 4}
	if got := l.XForIndex(3); got != 2 {
		t.Errorf("XForIndex(3) = %v, want 2", got)
	}
	if got := l.ClosestIndexForX(0.5); got != 0 {
		t.Errorf("ClosestIndexForX(0.5) = %d, want 0", got)
	}
	if got := l.ClosestIndexForX(2); got != 3 {
		t.Errorf("ClosestIndexForX(2) = %d, want 3", got)
	}
}

func TestViewGolden(t *testing.T) {
	text := "hello world\n\tindented\nwide 日本\nlast line"
	m, ed := newPane(t, text, image.Rect(0, 0, 16, 5))
	ed.MoveTo(0)
	ed.SelectTo(5)

	golden.RequireEqual(t, []byte(ansi.Strip(m.View())))
}

func TestViewRowsHavePaneWidth(t *testing.T) {
	m, _ := newPane(t, "a\n\tb\n日本日本日本", image.Rect(0, 0, 5, 4))
	for i, row := range strings.Split(m.View(), "\n") {
		if w := ansi.StringWidth(row); w != 5 {
			t.Errorf("row %d: width %d, want 5", i, w)
		}
	}
}

func TestScrollFollowsCaret(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "line"+string(rune('0'+i)))
	}
	m, ed := newPane(t, strings.Join(lines, "\n"), image.Rect(10, 2, 30, 5))

	if line, _ := m.Scroll(); line != 7 {
		t.Fatalf("scroll = %d, want 7", line)
	}

	ed.MoveTo(0)
	m.Sync()
	if line, _ := m.Scroll(); line != 0 {
		t.Fatalf("scroll after MoveTo(0) = %d, want 0", line)
	}
}

func TestWheelScrollSticksUntilEdit(t *testing.T) {
	m, ed := newPane(t, "a\nb\nc\nd\ne\nf", image.Rect(0, 0, 10, 2))
	ed.MoveTo(0)
	m.Sync()

	m.ScrollBy(3)
	m.Sync()
	if line, _ := m.Scroll(); line != 3 {
		t.Fatalf("scroll = %d, want 3", line)
	}

	ed.Insert("x")
	m.Sync()
	if line, _ := m.Scroll(); line != 0 {
		t.Fatalf("scroll after edit = %d, want 0", line)
	}
}

func TestScrollByClamps(t *testing.T) {
	m, _ := newPane(t, "a\nb\nc", image.Rect(0, 0, 10, 2))
	m.ScrollBy(50)
	if line, _ := m.Scroll(); line != 1 {
		t.Fatalf("scroll = %d, want 1", line)
	}
	m.ScrollBy(-50)
	if line, _ := m.Scroll(); line != 0 {
		t.Fatalf("scroll = %d, want 0", line)
	}
}

func TestClickAfterScrollHitsVisibleLine(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "line"+string(rune('0'+i)))
	}
	text := strings.Join(lines, "\n")
	m, ed := newPane(t, text, image.Rect(10, 2, 30, 5))
	_ = m.View()

	ed.MouseDown(Point(12, 2), false)
	ed.MouseUp()

	want := textedit.LineStart(text, 7) + 2
	if got := ed.Caret(); got != want {
		t.Fatalf("caret = %d, want %d", got, want)
	}
}

func TestHorizontalScroll(t *testing.T) {
	text := "abcdefghijklmnopqrstuvwxyz"
	m, ed := newPane(t, text, image.Rect(0, 0, 10, 1))

	if _, col := m.Scroll(); col != 17 {
		t.Fatalf("hscroll = %d, want 17", col)
	}
	if got := ansi.Strip(m.View()); got != "rstuvwxyz " {
		t.Fatalf("view = %q", got)
	}

	ed.MouseDown(Point(0, 0), false)
	ed.MouseUp()
	if got := ed.Caret(); got != 17 {
		t.Fatalf("caret = %d, want 17", got)
	}
}

func TestDragSelectsAcrossLines(t *testing.T) {
	m, ed := newPane(t, "first\nsecond", image.Rect(0, 0, 20, 2))
	_ = m.View()

	ed.MouseDown(Point(2, 0), false)
	ed.MouseMove(Point(3, 1))
	ed.MouseUp()

	if got := ed.SelectedText(); got != "rst\nsec" {
		t.Fatalf("selection = %q, want %q", got, "rst\nsec")
	}
}

func TestLineCellsMarkedAndSelected(t *testing.T) {
	m, ed := newPane(t, "", image.Rect(0, 0, 10, 1))
	ed.ReplaceAndMark(nil, "abcd", &textedit.Range{Start: 1, End: 3})

	sel := ed.Selection().Range
	marked, ok := ed.MarkedBytes()
	if !ok {
		t.Fatal("expected marked range")
	}
	cells := m.lineCells("abcd", 0, ed.Caret(), sel, marked, ok)

	want := []cellKind{kindMarked, kindSelectedMarked, kindSelectedMarked, kindMarked}
	if ed.Caret() == 3 {
		want[3] = kindCursor
	}
	if len(cells) < len(want) {
		t.Fatalf("got %d cells, want at least %d", len(cells), len(want))
	}
	for i, k := range want {
		if cells[i].kind != k {
			t.Errorf("cell %d: kind %d, want %d", i, cells[i].kind, k)
		}
	}
}

func TestPlaceholderWhenEmptyAndBlurred(t *testing.T) {
	m, _ := newPane(t, "", image.Rect(0, 0, 12, 2))
	m.Blur()
	m.Placeholder = "No note"

	got := ansi.Strip(m.View())
	if got != "No note     \n            " {
		t.Fatalf("view = %q", got)
	}
}

func TestPlaceholderTruncatesByCells(t *testing.T) {
	m, _ := newPane(t, "", image.Rect(0, 0, 5, 1))
	m.Blur()
	m.Placeholder = "日本語のメモ"

	got := ansi.Strip(m.View())
	if got != "日本 " {
		t.Fatalf("view = %q", got)
	}
	if w := ansi.StringWidth(got); w != 5 {
		t.Fatalf("width = %d, want 5", w)
	}
}
