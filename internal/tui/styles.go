package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/xonecas/tap/internal/tui/editor"
	"github.com/xonecas/tap/internal/tui/modal"
)

// Palette is a set of theme colors as hex strings.
type Palette struct {
	Fg        string
	Bg        string
	Dim       string
	Border    string
	Accent    string
	Selection string
	Error     string
}

var (
	darkPalette = Palette{
		Fg:        "#d0d0d0",
		Bg:        "#161616",
		Dim:       "#6c6c6c",
		Border:    "#2a2a2a",
		Accent:    "#00AA00",
		Selection: "#3a3a3a",
		Error:     "#d75f5f",
	}
	lightPalette = Palette{
		Fg:        "#262626",
		Bg:        "#fafafa",
		Dim:       "#8a8a8a",
		Border:    "#d0d0d0",
		Accent:    "#007700",
		Selection: "#d7d7d7",
		Error:     "#af0000",
	}
)

// paletteFor returns the palette for a theme name. Unknown names get dark.
func paletteFor(theme string) Palette {
	if theme == "light" {
		return lightPalette
	}
	return darkPalette
}

// Styles are the rendered styles derived from a palette.
type Styles struct {
	BgFill     lipgloss.Style
	Text       lipgloss.Style
	Dim        lipgloss.Style
	Border     lipgloss.Style
	Title      lipgloss.Style
	ListItem   lipgloss.Style
	ListActive lipgloss.Style
	ListFocus  lipgloss.Style
	StatusText lipgloss.Style
	StatusKey  lipgloss.Style
	Dirty      lipgloss.Style
	Error      lipgloss.Style
}

func newStyles(p Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	base := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Fg))
	return Styles{
		BgFill:     lipgloss.NewStyle().Background(bg),
		Text:       base,
		Dim:        base.Foreground(lipgloss.Color(p.Dim)),
		Border:     base.Foreground(lipgloss.Color(p.Border)),
		Title:      base.Bold(true),
		ListItem:   base,
		ListActive: base.Foreground(lipgloss.Color(p.Accent)).Bold(true),
		ListFocus:  lipgloss.NewStyle().Background(lipgloss.Color(p.Selection)).Foreground(lipgloss.Color(p.Fg)).Bold(true),
		StatusText: base.Foreground(lipgloss.Color(p.Dim)),
		StatusKey:  base.Foreground(lipgloss.Color(p.Fg)),
		Dirty:      base.Foreground(lipgloss.Color(p.Error)),
		Error:      base.Foreground(lipgloss.Color(p.Error)),
	}
}

// editorStyles returns the editor pane styles for a palette.
func editorStyles(p Palette) editor.Styles {
	bg := lipgloss.Color(p.Bg)
	base := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Fg))
	return editor.Styles{
		Text:        base,
		Selection:   base.Reverse(true),
		Cursor:      lipgloss.NewStyle().Background(lipgloss.Color(p.Accent)).Foreground(bg),
		Placeholder: base.Foreground(lipgloss.Color(p.Dim)),
	}
}

// modalColors returns the modal colors for a palette.
func modalColors(p Palette) modal.Colors {
	return modal.Colors{
		Fg:     p.Fg,
		Bg:     p.Bg,
		Dim:    p.Dim,
		SelFg:  p.Bg,
		SelBg:  p.Fg,
		Border: p.Border,
	}
}
