package textedit

import "unicode/utf8"

// Buffer owns the text, the selection and the optional marked (composing)
// range. Mutations go through ReplaceRange and ReplaceAndMark; the Editor
// wraps them and reports every change to its listeners.
type Buffer struct {
	text    string
	sel     Selection
	marked  Range
	marking bool
}

// NewBuffer returns a buffer holding text with the caret at the end.
func NewBuffer(text string) Buffer {
	var b Buffer
	b.SetText(text)
	return b
}

// Text returns the current content.
func (b *Buffer) Text() string { return b.text }

// Len returns the content length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// Selection returns the current selection.
func (b *Buffer) Selection() Selection { return b.sel }

// MarkedRange returns the composing range, if any.
func (b *Buffer) MarkedRange() (Range, bool) { return b.marked, b.marking }

// SetText replaces the content wholesale. The caret moves to the end and
// any marked range is dropped.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.sel.MoveTo(len(text))
	b.Unmark()
}

// Unmark drops the marked range without touching the text.
func (b *Buffer) Unmark() {
	b.marked = Range{}
	b.marking = false
}

// Slice returns the text covered by r, clamped to valid boundaries.
func (b *Buffer) Slice(r Range) string {
	r = clampRange(b.text, r)
	return b.text[r.Start:r.End]
}

// target resolves the range an edit applies to: the explicit one, else the
// marked range, else the selection.
func (b *Buffer) target(r *Range) Range {
	switch {
	case r != nil:
		return clampRange(b.text, *r)
	case b.marking:
		return b.marked
	default:
		return b.sel.Range
	}
}

// ReplaceRange deletes r (nil meaning the marked range or the selection),
// inserts text at its start and collapses the caret after the insertion.
// It returns the range now covered by text.
func (b *Buffer) ReplaceRange(r *Range, text string) Range {
	rng := b.target(r)
	b.text = b.text[:rng.Start] + text + b.text[rng.End:]
	end := rng.Start + len(text)
	b.sel.MoveTo(end)
	b.Unmark()
	return Range{Start: rng.Start, End: end}
}

// ReplaceAndMark behaves like ReplaceRange but marks the inserted text as
// composing. inner, when set, is a byte range relative to text that becomes
// the selection; otherwise the caret collapses after the insertion.
func (b *Buffer) ReplaceAndMark(r *Range, text string, inner *Range) Range {
	rng := b.target(r)
	b.text = b.text[:rng.Start] + text + b.text[rng.End:]
	end := rng.Start + len(text)
	b.marked = Range{Start: rng.Start, End: end}
	b.marking = true
	if inner != nil {
		in := clampRange(text, *inner)
		b.sel.MoveTo(rng.Start + in.Start)
		b.sel.SelectTo(rng.Start + in.End)
	} else {
		b.sel.MoveTo(end)
	}
	return b.marked
}

// clampRange normalizes r, limits it to s and pulls both ends back onto
// scalar value boundaries.
func clampRange(s string, r Range) Range {
	r = r.Normalized()
	return Range{Start: runeFloor(s, r.Start), End: runeFloor(s, r.End)}
}

// runeFloor returns the nearest scalar value boundary at or before o.
func runeFloor(s string, o int) int {
	o = clampOffset(s, o)
	for o > 0 && o < len(s) && !utf8.RuneStart(s[o]) {
		o--
	}
	return o
}
