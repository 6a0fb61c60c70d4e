package textedit

// Input-method protocol. Every range crossing this boundary is in UTF-16
// code units; the editor converts to byte offsets before touching the
// buffer and back again on the way out.

// TextInRange returns the text covered by r16 and the range actually used
// after clamping, both in UTF-16 units.
func (e *Editor) TextInRange(r16 Range) (string, Range) {
	text := e.buf.text
	r := clampRange(text, RangeFromUTF16(text, r16))
	return text[r.Start:r.End], RangeToUTF16(text, r)
}

// SelectedRange returns the selection in UTF-16 units. The bool reports
// whether the selection is reversed, with the caret at Start.
func (e *Editor) SelectedRange() (Range, bool) {
	sel := e.buf.sel
	return RangeToUTF16(e.buf.text, sel.Range), sel.Reversed
}

// MarkedRange returns the composing range in UTF-16 units, if any.
func (e *Editor) MarkedRange() (Range, bool) {
	r, ok := e.buf.MarkedRange()
	if !ok {
		return Range{}, false
	}
	return RangeToUTF16(e.buf.text, r), true
}

// Unmark commits the composing text as it stands.
func (e *Editor) Unmark() {
	if _, ok := e.buf.MarkedRange(); !ok {
		return
	}
	e.buf.Unmark()
	e.touch()
}

// ReplaceText replaces r16 (nil meaning the marked range, else the
// selection) with text and clears any marked range.
func (e *Editor) ReplaceText(r16 *Range, text string) {
	e.replace(e.fromUTF16(r16), text)
}

// ReplaceAndMark replaces r16 with text and marks the result as composing.
// inner16, relative to text, becomes the selection inside the composition.
func (e *Editor) ReplaceAndMark(r16 *Range, text string, inner16 *Range) {
	if e.singleLine {
		text = stripLineBreaks(text)
	}
	var inner *Range
	if inner16 != nil {
		in := RangeFromUTF16(text, *inner16)
		inner = &in
	}
	e.buf.ReplaceAndMark(e.fromUTF16(r16), text, inner)
	e.emit()
}

// BoundsForRange returns the on-screen box of r16, or false when no layout
// has been rendered yet.
func (e *Editor) BoundsForRange(r16 Range) (Bounds, bool) {
	text := e.buf.text
	return e.hit.BoundsForRange(text, RangeFromUTF16(text, r16))
}

// CharacterIndexForPoint returns the UTF-16 offset nearest to p.
func (e *Editor) CharacterIndexForPoint(p Point) (int, bool) {
	if !e.hit.HasLayout() {
		return 0, false
	}
	text := e.buf.text
	return ToUTF16(text, e.hit.OffsetForPoint(text, p)), true
}

func (e *Editor) fromUTF16(r16 *Range) *Range {
	if r16 == nil {
		return nil
	}
	r := RangeFromUTF16(e.buf.text, *r16)
	return &r
}
