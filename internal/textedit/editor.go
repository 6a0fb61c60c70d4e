// Package textedit is the in-memory editing core: one plain-text buffer with a
// single caret or contiguous selection, grapheme-aware navigation, vertical
// movement with column memory, mouse hit testing against the last rendered
// layout, and the UTF-16 input-method protocol needed for composed text.
//
// Everything here runs synchronously on the goroutine that owns the UI event
// loop. The package holds no locks and performs no I/O; persistence happens in
// listeners subscribed to ChangeEvent.
package textedit

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// State is the mouse interaction state.
type State int

const (
	Idle      State = iota // no drag in progress
	Selecting              // button held, dragging a selection
)

func (s State) String() string {
	if s == Selecting {
		return "selecting"
	}
	return "idle"
}

// Modifiers are the modifier keys held during a key event. Platform is the
// primary shortcut modifier (cmd on macOS, ctrl elsewhere).
type Modifiers struct {
	Shift    bool
	Control  bool
	Alt      bool
	Platform bool
}

// KeyEvent is a key press by symbolic name ("left", "backspace", "a", ...).
// Char holds the text the key would type, if any; such events are left to
// the text input path and ignored by HandleKey.
type KeyEvent struct {
	Key  string
	Char string
	Mods Modifiers
}

// Options configure an Editor.
type Options struct {
	Field      Field
	SingleLine bool    // strip line separators, ignore enter
	LineHeight float64 // hit-test line pitch; DefaultLineHeight when zero
	Clipboard  Clipboard
}

// Editor composes the buffer, selection, marked range and hit tester into
// the editing surface driven by key, mouse and input-method events.
type Editor struct {
	buf   Buffer
	hit   HitTester
	state State

	// goal is the byte column kept across consecutive vertical moves, -1
	// when no vertical move is in progress.
	goal int

	docID      string
	field      Field
	singleLine bool
	clipboard  Clipboard
	listeners  []Listener
	rev        uint64
}

// New returns an empty editor.
func New(opts Options) *Editor {
	return &Editor{
		hit:        HitTester{LineHeight: opts.LineHeight},
		goal:       -1,
		field:      opts.Field,
		singleLine: opts.SingleLine,
		clipboard:  opts.Clipboard,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (e *Editor) Text() string            { return e.buf.Text() }
func (e *Editor) Selection() Selection    { return e.buf.Selection() }
func (e *Editor) Caret() int              { return e.buf.sel.Caret() }
func (e *Editor) State() State            { return e.state }
func (e *Editor) DocID() string           { return e.docID }
func (e *Editor) Field() Field            { return e.field }
func (e *Editor) SingleLine() bool        { return e.singleLine }
func (e *Editor) LineHeight() float64     { return e.hit.lineHeight() }
func (e *Editor) SetClipboard(c Clipboard) { e.clipboard = c }

// Revision increases on every change to text or selection. Renderers can
// compare it to skip work.
func (e *Editor) Revision() uint64 { return e.rev }

// MarkedBytes returns the composing range in byte offsets.
func (e *Editor) MarkedBytes() (Range, bool) { return e.buf.MarkedRange() }

// SelectedText returns the selected text, or "".
func (e *Editor) SelectedText() string { return e.buf.Slice(e.buf.sel.Range) }

// Subscribe registers l for change events. The document layer subscribes
// once; switching documents goes through Load and the event's DocID.
func (e *Editor) Subscribe(l Listener) { e.listeners = append(e.listeners, l) }

// Load makes docID the active document with the given text. The caret goes
// to the end of the text. No change event is emitted.
func (e *Editor) Load(docID, text string) {
	if e.singleLine {
		text = stripLineBreaks(text)
	}
	e.docID = docID
	e.buf.SetText(text)
	e.state = Idle
	e.goal = -1
	e.hit.Invalidate()
	e.touch()
}

// Clear detaches the editor from any document.
func (e *Editor) Clear() { e.Load("", "") }

// SetLayout stores the layout of the latest render pass.
func (e *Editor) SetLayout(l Layout) { e.hit.SetLayout(l) }

// OffsetForPoint hit-tests p against the cached layout.
func (e *Editor) OffsetForPoint(p Point) int { return e.hit.OffsetForPoint(e.buf.text, p) }

// ---------------------------------------------------------------------------
// Change plumbing
// ---------------------------------------------------------------------------

// touch records a state change and checks the selection invariant.
func (e *Editor) touch() {
	e.rev++
	sel := e.buf.sel
	invariant(sel.Start <= sel.End, "selection start <= end")
	invariant(sel.End <= len(e.buf.text), "selection within text")
	if r, ok := e.buf.MarkedRange(); ok {
		invariant(r.Start <= r.End && r.End <= len(e.buf.text), "marked range within text")
	}
}

func (e *Editor) emit() {
	e.goal = -1
	e.touch()
	ev := ChangeEvent{DocID: e.docID, Field: e.field, Text: e.buf.text}
	for _, l := range e.listeners {
		l.ContentChanged(ev)
	}
}

// replace is the single native-offset entry point for committed edits.
func (e *Editor) replace(r *Range, text string) {
	if e.singleLine {
		text = stripLineBreaks(text)
	}
	if text == "" {
		if _, marking := e.buf.MarkedRange(); !marking {
			target := e.buf.sel.Range
			if r != nil {
				target = *r
			}
			if target.Start >= target.End {
				return
			}
		}
	}
	e.buf.ReplaceRange(r, text)
	e.emit()
}

// stripLineBreaks turns each line break byte into a space. Byte and UTF-16
// lengths are unchanged, so ranges relative to s still apply.
func stripLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, s)
}

// ---------------------------------------------------------------------------
// Selection model
// ---------------------------------------------------------------------------

// MoveTo collapses the selection to a caret at o.
func (e *Editor) MoveTo(o int) {
	e.goal = -1
	e.buf.sel.MoveTo(runeFloor(e.buf.text, o))
	e.touch()
}

// SelectTo extends the selection's caret end to o.
func (e *Editor) SelectTo(o int) {
	e.goal = -1
	e.buf.sel.SelectTo(runeFloor(e.buf.text, o))
	e.touch()
}

// SelectAll selects the whole buffer, caret at the end.
func (e *Editor) SelectAll() {
	e.buf.sel.SelectAll(len(e.buf.text))
	e.goal = -1
	e.touch()
}

// MoveLeft steps one grapheme left, or collapses a selection to its start.
func (e *Editor) MoveLeft() {
	sel := e.buf.sel
	if sel.Empty() {
		e.MoveTo(PrevBoundary(e.buf.text, sel.Caret()))
		return
	}
	e.MoveTo(sel.Start)
}

// MoveRight steps one grapheme right, or collapses a selection to its end.
func (e *Editor) MoveRight() {
	sel := e.buf.sel
	if sel.Empty() {
		e.MoveTo(NextBoundary(e.buf.text, sel.End))
		return
	}
	e.MoveTo(sel.End)
}

// SelectLeft moves the caret one grapheme left, extending the selection.
func (e *Editor) SelectLeft() {
	e.SelectTo(PrevBoundary(e.buf.text, e.Caret()))
}

// SelectRight moves the caret one grapheme right, extending the selection.
func (e *Editor) SelectRight() {
	e.SelectTo(NextBoundary(e.buf.text, e.Caret()))
}

// MoveUp moves the caret to the previous line, keeping its column.
func (e *Editor) MoveUp() { e.moveVertical(-1, false) }

// MoveDown moves the caret to the next line, keeping its column.
func (e *Editor) MoveDown() { e.moveVertical(1, false) }

// SelectUp extends the selection one line up from the caret.
func (e *Editor) SelectUp() { e.moveVertical(-1, true) }

// SelectDown extends the selection one line down from the caret.
func (e *Editor) SelectDown() { e.moveVertical(1, true) }

// moveVertical moves the caret delta lines. The anchor stays pinned when
// extending. On the first or last line this is a no-op.
func (e *Editor) moveVertical(delta int, extend bool) {
	text := e.buf.text
	caret := e.Caret()
	line := LineAt(text, caret)
	target := line + delta
	if target < 0 || target >= LineCount(text) {
		return
	}

	col := caret - LineStart(text, line)
	if e.goal >= 0 {
		col = e.goal
	}
	goal := col

	start := LineStart(text, target)
	if n := LineLength(text, target); col > n {
		col = n
	}
	next := SnapBoundary(text, start+col)

	if extend {
		e.buf.sel.Span(e.buf.sel.Anchor(), next)
		e.touch()
	} else {
		e.MoveTo(next)
	}
	e.goal = goal
}

// LineHome moves (or selects) to the start of the caret's line.
func (e *Editor) LineHome(extend bool) {
	text := e.buf.text
	o := LineStart(text, LineAt(text, e.Caret()))
	if extend {
		e.SelectTo(o)
		return
	}
	e.MoveTo(o)
}

// LineEnd moves (or selects) to the end of the caret's line.
func (e *Editor) LineEnd(extend bool) {
	text := e.buf.text
	o := LineEnd(text, LineAt(text, e.Caret()))
	if extend {
		e.SelectTo(o)
		return
	}
	e.MoveTo(o)
}

// ---------------------------------------------------------------------------
// Editing
// ---------------------------------------------------------------------------

// Backspace deletes the selection, or the grapheme before the caret.
func (e *Editor) Backspace() {
	if e.buf.sel.Empty() {
		e.buf.sel.SelectTo(PrevBoundary(e.buf.text, e.Caret()))
	}
	e.replace(nil, "")
}

// Delete deletes the selection, or the grapheme after the caret.
func (e *Editor) Delete() {
	if e.buf.sel.Empty() {
		e.buf.sel.SelectTo(NextBoundary(e.buf.text, e.Caret()))
	}
	e.replace(nil, "")
}

// Insert replaces the selection (or marked range) with text.
func (e *Editor) Insert(text string) { e.replace(nil, text) }

// Copy writes the selection to the clipboard.
func (e *Editor) Copy() {
	text := e.SelectedText()
	if text == "" || e.clipboard == nil {
		return
	}
	if err := e.clipboard.WriteText(text); err != nil {
		log.Warn().Err(err).Msg("clipboard write failed")
	}
}

// Cut copies the selection and deletes it.
func (e *Editor) Cut() {
	if e.buf.sel.Empty() {
		return
	}
	e.Copy()
	e.replace(nil, "")
}

// Paste inserts the clipboard text over the selection.
func (e *Editor) Paste() {
	if e.clipboard == nil {
		return
	}
	text, err := e.clipboard.ReadText()
	if err != nil {
		log.Warn().Err(err).Msg("clipboard read failed")
		return
	}
	if text != "" {
		e.replace(nil, text)
	}
}

// ---------------------------------------------------------------------------
// Event dispatch
// ---------------------------------------------------------------------------

// HandleKey applies a control key. It reports whether the key was used.
func (e *Editor) HandleKey(ev KeyEvent) bool {
	if ev.Key == "enter" {
		if e.singleLine {
			return false
		}
		e.replace(nil, "\n")
		return true
	}
	if ev.Char != "" {
		return false
	}

	shift := ev.Mods.Shift
	switch ev.Key {
	case "backspace":
		e.Backspace()
	case "delete":
		e.Delete()
	case "left":
		if shift {
			e.SelectLeft()
		} else {
			e.MoveLeft()
		}
	case "right":
		if shift {
			e.SelectRight()
		} else {
			e.MoveRight()
		}
	case "up":
		if shift {
			e.SelectUp()
		} else {
			e.MoveUp()
		}
	case "down":
		if shift {
			e.SelectDown()
		} else {
			e.MoveDown()
		}
	case "home":
		e.LineHome(shift)
	case "end":
		e.LineEnd(shift)
	default:
		if !ev.Mods.Platform {
			return false
		}
		switch ev.Key {
		case "a":
			e.SelectAll()
		case "c":
			e.Copy()
		case "x":
			e.Cut()
		case "v":
			e.Paste()
		default:
			return false
		}
	}
	return true
}

// MouseDown starts a drag at p. With shift the selection extends to p,
// otherwise the caret collapses there.
func (e *Editor) MouseDown(p Point, shift bool) {
	e.state = Selecting
	o := e.OffsetForPoint(p)
	if shift {
		e.SelectTo(o)
		return
	}
	e.MoveTo(o)
}

// MouseMove extends the selection while dragging.
func (e *Editor) MouseMove(p Point) {
	if e.state != Selecting {
		return
	}
	e.SelectTo(e.OffsetForPoint(p))
}

// MouseUp ends a drag.
func (e *Editor) MouseUp() {
	e.state = Idle
}
