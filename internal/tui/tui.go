// Package tui is the terminal host: a note list, a title line and the
// content editor, with a status bar. It turns bubbletea input into editor
// and document commands and draws the result.
package tui

import (
	"image"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/tap/internal/constants"
	"github.com/xonecas/tap/internal/document"
	"github.com/xonecas/tap/internal/textedit"
	"github.com/xonecas/tap/internal/tui/editor"
	"github.com/xonecas/tap/internal/tui/modal"
)

type focus int

const (
	focusList focus = iota
	focusTitle
	focusEditor
)

func (f focus) String() string {
	switch f {
	case focusList:
		return "list"
	case focusTitle:
		return "title"
	default:
		return "editor"
	}
}

const (
	statusRows = 2 // separator + bar
	titleRows  = 2 // title + separator
	wheelLines = 3
)

// Options configure the host.
type Options struct {
	Manager   *document.Manager
	Content   *textedit.Editor
	Title     *textedit.Editor
	Theme     string
	ListWidth int
	TabWidth  int
	SoftTabs  bool
	// InMemory marks a session whose notes will not survive exit.
	InMemory bool
}

// Model is the application model.
type Model struct {
	width  int
	height int
	layout layout
	listW  int

	mgr     *document.Manager
	content editor.Model
	title   editor.Model
	focus   focus

	listSel    int
	listScroll int
	lastActive string
	lastSel    int
	lastListH  int

	picker  *modal.Picker
	confirm *modal.Confirm

	clip    *termClipboard
	keys    keyMap
	help    help.Model
	palette Palette
	styles  Styles

	tabWidth int
	softTabs bool
	inMemory bool

	status    string
	statusErr bool
	statusSeq int
}

// New creates the host. The manager must already be bootstrapped.
func New(opts Options) Model {
	p := paletteFor(opts.Theme)

	clip := newTermClipboard()
	opts.Content.SetClipboard(clip)
	opts.Title.SetClipboard(clip)

	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = constants.SoftTabWidth
	}

	content := editor.New(opts.Content)
	content.TabWidth = tabWidth
	content.Styles = editorStyles(p)
	content.Placeholder = "No note open. ctrl+n creates one."

	title := editor.New(opts.Title)
	title.Styles = editorStyles(p)
	title.Styles.Text = title.Styles.Text.Bold(true)
	title.Placeholder = constants.UntitledNote

	st := newStyles(p)
	h := help.New()
	h.Styles.ShortKey = st.StatusKey
	h.Styles.ShortDesc = st.StatusText
	h.Styles.ShortSeparator = st.Dim
	h.Styles.Ellipsis = st.Dim

	listW := opts.ListWidth
	if listW <= 0 {
		listW = constants.DefaultListWidth
	}

	m := Model{
		listW:    listW,
		mgr:      opts.Manager,
		content:  content,
		title:    title,
		clip:     clip,
		keys:     defaultKeyMap(),
		help:     h,
		palette:  p,
		styles:   st,
		tabWidth: tabWidth,
		softTabs: opts.SoftTabs,
		inMemory: opts.InMemory,
	}
	m.setFocus(focusEditor)
	m.syncList()
	return m
}

// Init starts the retry ticker and warns about an in-memory session.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{retryTick()}
	if m.inMemory {
		cmds = append(cmds, func() tea.Msg {
			return statusMsg{text: "storage unavailable: notes are kept in memory only", err: true}
		})
	}
	return tea.Batch(cmds...)
}

// Focus returns the focused pane's name.
func (m Model) Focus() string { return m.focus.String() }

// setFocus moves focus. Leaving the title commits it.
func (m *Model) setFocus(f focus) {
	if m.focus == focusTitle && f != focusTitle {
		m.mgr.CommitTitle()
	}
	m.focus = f
	m.title.Blur()
	m.content.Blur()
	switch f {
	case focusTitle:
		m.title.Focus()
	case focusEditor:
		m.content.Focus()
	}
}

// hasNote reports whether a note is open for editing.
func (m *Model) hasNote() bool {
	return m.mgr.Index(m.mgr.ActiveID()) >= 0
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

type layout struct {
	list   image.Rectangle
	div    image.Rectangle
	title  image.Rectangle
	editor image.Rectangle
}

// generateLayout splits the screen into the list column, a one-cell
// divider, and the title over the editor on the right.
func generateLayout(width, height, listW int) layout {
	contentH := max(height-statusRows, 0)
	listW = min(listW, width/2)
	listW = max(listW, min(constants.MinListWidth, width))
	right := listW + 1
	edge := max(width, right)
	return layout{
		list:   image.Rect(0, 0, listW, contentH),
		div:    image.Rect(listW, 0, right, contentH),
		title:  image.Rect(right, 0, edge, min(1, contentH)),
		editor: image.Rect(right, min(titleRows, contentH), edge, contentH),
	}
}

func inRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}
