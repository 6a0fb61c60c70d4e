package modal

import (
	"image"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xonecas/tap/internal/textedit"
	"github.com/xonecas/tap/internal/tui/editor"
)

// ActionSelect signals an entry was chosen.
type ActionSelect struct{ Entry Entry }

// Entry is one note in the picker.
type Entry struct {
	ID      string
	Title   string
	Preview string
}

// SearchFunc returns the entries matching query.
type SearchFunc func(query string) []Entry

const (
	searchDelay     = 250 * time.Millisecond
	defaultWidthPct = 60
	minBoxWidth     = 30
	minBoxHeight    = 8
	chromeRows      = 4 // border, query, rule, border
)

// searchMsg fires when typing pauses. Only the latest generation searches.
type searchMsg struct{ gen int }

// Picker is a query line over the notes matching it.
type Picker struct {
	query   editor.Model
	entries []Entry
	cursor  int // highlighted entry
	offset  int // first visible entry
	// browsing shows the highlight; up and down move it.
	browsing bool

	search SearchFunc
	gen    int
	colors Colors

	// rows is where the last View drew the entries.
	rows image.Rectangle

	Prompt   string
	WidthPct int
}

// NewPicker returns a picker listing search("").
func NewPicker(search SearchFunc, prompt string, colors Colors) Picker {
	q := editor.New(textedit.New(textedit.Options{SingleLine: true, LineHeight: 1}))
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Fg)).Background(lipgloss.Color(colors.Bg))
	q.Styles = editor.Styles{
		Text:        text,
		Selection:   text.Reverse(true),
		Cursor:      text.Reverse(true),
		Placeholder: text.Foreground(lipgloss.Color(colors.Dim)),
	}
	q.Placeholder = "type to filter"
	q.Focus()

	return Picker{
		query:    q,
		entries:  search(""),
		search:   search,
		colors:   colors,
		Prompt:   prompt,
		WidthPct: defaultWidthPct,
	}
}

// Highlight moves the highlight to the entry with id, if listed.
func (p *Picker) Highlight(id string) {
	for i, e := range p.entries {
		if e.ID == id {
			p.cursor = i
			p.setBrowsing(true)
			return
		}
	}
}

// Query returns the filter text.
func (p *Picker) Query() string { return p.query.Editor().Text() }

// Entries returns the current matches.
func (p *Picker) Entries() []Entry { return p.entries }

// Paste inserts text into the query.
func (p *Picker) Paste(text string) tea.Cmd {
	p.setBrowsing(false)
	p.query.Editor().ReplaceText(nil, text)
	return p.schedule()
}

func (p *Picker) setBrowsing(on bool) {
	p.browsing = on
	if on {
		p.query.Blur()
	} else {
		p.query.Focus()
	}
}

// schedule starts a new search generation that runs after searchDelay.
func (p *Picker) schedule() tea.Cmd {
	p.gen++
	gen := p.gen
	return tea.Tick(searchDelay, func(time.Time) tea.Msg {
		return searchMsg{gen: gen}
	})
}

// HandleMsg processes a tea.Msg and returns an optional Action. The
// tea.Cmd carries the pending search and must be dispatched.
func (p *Picker) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return p.handleKey(msg)
	case tea.MouseClickMsg:
		return p.handleClick(msg), nil
	case tea.MouseMotionMsg:
		if ed := p.query.Editor(); ed.State() == textedit.Selecting {
			ed.MouseMove(editor.Point(msg.X, msg.Y))
		}
	case tea.MouseReleaseMsg:
		p.query.Editor().MouseUp()
	case tea.MouseWheelMsg:
		p.handleWheel(msg)
	case searchMsg:
		if msg.gen == p.gen {
			p.entries = p.search(p.Query())
			p.cursor, p.offset = 0, 0
			p.setBrowsing(false)
		}
	}
	return nil, nil
}

func (p *Picker) handleKey(msg tea.KeyPressMsg) (Action, tea.Cmd) {
	switch msg.Keystroke() {
	case "esc", "ctrl+p":
		return ActionClose{}, nil
	case "enter":
		if len(p.entries) == 0 {
			return nil, nil
		}
		return ActionSelect{Entry: p.entries[min(p.cursor, len(p.entries)-1)]}, nil
	case "up":
		p.step(-1)
		return nil, nil
	case "down":
		p.step(1)
		return nil, nil
	}

	// Anything else edits the query.
	before := p.Query()
	p.setBrowsing(false)
	p.query.HandleKey(msg)
	if p.Query() != before {
		return nil, p.schedule()
	}
	return nil, nil
}

// step moves the highlight by d. Down from the query enters the list; up
// from the first entry returns to the query.
func (p *Picker) step(d int) {
	if len(p.entries) == 0 {
		return
	}
	if !p.browsing {
		if d > 0 {
			p.setBrowsing(true)
		}
		return
	}
	switch next := p.cursor + d; {
	case next < 0:
		p.setBrowsing(false)
	case next < len(p.entries):
		p.cursor = next
	}
}

// handleClick chooses the clicked entry or places the caret in the query.
func (p *Picker) handleClick(msg tea.MouseClickMsg) Action {
	if msg.Button != tea.MouseLeft {
		return nil
	}
	pt := image.Pt(msg.X, msg.Y)
	if pt.In(p.query.Bounds()) {
		p.setBrowsing(false)
		p.query.Editor().MouseDown(editor.Point(msg.X, msg.Y), msg.Mod&tea.ModShift != 0)
		return nil
	}
	if !pt.In(p.rows) {
		return nil
	}
	i := p.offset + msg.Y - p.rows.Min.Y
	if i >= len(p.entries) {
		return nil
	}
	p.cursor = i
	p.setBrowsing(true)
	return ActionSelect{Entry: p.entries[i]}
}

func (p *Picker) handleWheel(msg tea.MouseWheelMsg) {
	if len(p.entries) == 0 {
		return
	}
	p.setBrowsing(true)
	switch msg.Button {
	case tea.MouseWheelUp:
		p.cursor = max(p.cursor-1, 0)
	case tea.MouseWheelDown:
		p.cursor = min(p.cursor+1, len(p.entries)-1)
	}
}

// View renders the picker centred in an appWidth x appHeight screen.
func (p *Picker) View(appWidth, appHeight int) string {
	pct := p.WidthPct
	if pct <= 0 || pct > 100 {
		pct = defaultWidthPct
	}
	w := max(appWidth*pct/100, minBoxWidth)
	h := max(appHeight*80/100, minBoxHeight)
	innerW := max(w-6, 10) // border + padding
	listH := max(h-chromeRows, 1)

	prompt := p.Prompt
	if prompt == "" {
		prompt = "> "
	}
	promptW := lipgloss.Width(prompt)
	p.query.SetBounds(image.Rect(0, 0, max(innerW-promptW, 1), 1))

	rule := lipgloss.NewStyle().Foreground(lipgloss.Color(p.colors.Dim)).Render(strings.Repeat("─", innerW))
	lines := append([]string{prompt + p.query.View(), rule}, p.renderEntries(innerW, listH)...)
	box := p.colors.frame().Padding(0, 1).Width(w - 2).Render(strings.Join(lines, "\n"))

	// Record where the query and entries landed for mouse hits.
	left := max((appWidth-lipgloss.Width(box))/2, 0)
	top := max((appHeight-lipgloss.Height(box))/2, 0)
	p.query.Place(image.Pt(left+2+promptW, top+1))
	p.rows = image.Rect(left+2, top+3, left+2+innerW, top+3+listH)

	return p.colors.center(appWidth, appHeight, box)
}

func (p *Picker) renderEntries(w, h int) []string {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+h {
		p.offset = p.cursor - h + 1
	}

	bg := lipgloss.Color(p.colors.Bg)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(p.colors.Dim)).Background(bg)
	sel := lipgloss.NewStyle().Foreground(lipgloss.Color(p.colors.SelFg)).Background(lipgloss.Color(p.colors.SelBg))

	lines := make([]string, 0, h)
	if len(p.entries) == 0 {
		lines = append(lines, fit(dim.Render("no matching notes"), w))
	}
	for i := p.offset; i < len(p.entries) && len(lines) < h; i++ {
		e := p.entries[i]
		if i == p.cursor && p.browsing {
			lines = append(lines, sel.Render(fit(oneLine(e.Title), w)))
			continue
		}
		line := oneLine(e.Title)
		if e.Preview != "" {
			line += dim.Render("  " + oneLine(e.Preview))
		}
		lines = append(lines, fit(line, w))
	}
	for len(lines) < h {
		lines = append(lines, strings.Repeat(" ", w))
	}
	return lines
}
