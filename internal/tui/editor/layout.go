package editor

import (
	"strings"

	"github.com/xonecas/tap/internal/textedit"
)

// defaultTabWidth is the tab stop interval in cells.
const defaultTabWidth = 4

// cellText returns what a cluster draws at column col and how many cells it
// takes. Tabs advance to the next stop; zero-width clusters get one blank
// cell so the caret can sit on them.
func cellText(c textedit.Cluster, col, tab int) (string, int) {
	if c.Text == "\t" {
		w := tab - col%tab
		return strings.Repeat(" ", w), w
	}
	if c.Width <= 0 {
		return " ", 1
	}
	return c.Text, c.Width
}

// cellLine lays one line out on the terminal grid, one unit per cell.
type cellLine struct {
	text string
	tab  int
}

// ClosestIndexForX returns the boundary before the cluster under x, or the
// one after it when x is past the cluster's midpoint.
func (l cellLine) ClosestIndexForX(x float64) int {
	col := 0
	for _, c := range textedit.Clusters(l.text) {
		_, w := cellText(c, col, l.tab)
		if x < float64(col)+float64(w)/2 {
			return c.Offset
		}
		col += w
	}
	return len(l.text)
}

// XForIndex returns the column where byte offset i starts.
func (l cellLine) XForIndex(i int) float64 {
	col := 0
	for _, c := range textedit.Clusters(l.text) {
		if c.Offset >= i {
			break
		}
		_, w := cellText(c, col, l.tab)
		col += w
	}
	return float64(col)
}

// layoutLines builds a cellLine per line of text.
func layoutLines(text string, tab int) []textedit.LineLayout {
	lines := strings.Split(text, string(textedit.LineSeparator))
	out := make([]textedit.LineLayout, len(lines))
	for i, l := range lines {
		out[i] = cellLine{text: l, tab: tab}
	}
	return out
}
