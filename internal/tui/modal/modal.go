// Package modal holds the overlay dialogs: a filterable note picker and a
// yes/no confirmation.
package modal

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Action is the result of handling a message. nil means no action.
type Action any

// ActionClose signals the dialog should be dismissed.
type ActionClose struct{}

// Colors holds the theme colors for a dialog.
type Colors struct {
	Fg     string
	Bg     string
	Dim    string
	SelFg  string
	SelBg  string
	Border string
}

// frame draws content in the rounded dialog box.
func (c Colors) frame() lipgloss.Style {
	bg := lipgloss.Color(c.Bg)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Border)).
		BorderBackground(bg).
		Foreground(lipgloss.Color(c.Fg)).
		Background(bg)
}

// center places box in the middle of an appWidth x appHeight screen.
func (c Colors) center(appWidth, appHeight int, box string) string {
	return lipgloss.Place(appWidth, appHeight, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(lipgloss.Color(c.Bg))))
}

// oneLine flattens line breaks so an entry stays on its row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// fit pads or truncates s to exactly w cells.
func fit(s string, w int) string {
	if lipgloss.Width(s) > w {
		s = ansi.Truncate(s, w, "…")
	}
	if sw := lipgloss.Width(s); sw < w {
		return s + strings.Repeat(" ", w-sw)
	}
	return s
}
