package textedit

// Range is a half-open [Start, End) span of byte offsets, or of UTF-16 code
// units when it crosses the input-method boundary.
type Range struct {
	Start int
	End   int
}

// Len returns End - Start.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool { return r.Start == r.End }

// Normalized returns r with Start <= End.
func (r Range) Normalized() Range {
	if r.End < r.Start {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Selection is the caret plus an optional selected span. When Reversed is
// true the anchor is End and the caret sits at Start; otherwise the caret is
// at End.
type Selection struct {
	Range
	Reversed bool
}

// Caret returns the offset the user is actively moving.
func (s Selection) Caret() int {
	if s.Reversed {
		return s.Start
	}
	return s.End
}

// Anchor returns the fixed end of the selection.
func (s Selection) Anchor() int {
	if s.Reversed {
		return s.End
	}
	return s.Start
}

// MoveTo collapses the selection to a caret at o.
func (s *Selection) MoveTo(o int) {
	s.Range = Range{Start: o, End: o}
	s.Reversed = false
}

// SelectTo moves the caret end to o, keeping the anchor. Dragging past the
// anchor flips the direction and renormalizes the range.
func (s *Selection) SelectTo(o int) {
	if s.Reversed {
		s.Start = o
	} else {
		s.End = o
	}
	if s.End < s.Start {
		s.Reversed = !s.Reversed
		s.Range = Range{Start: s.End, End: s.Start}
	}
}

// SelectAll anchors at 0 and puts the caret at n.
func (s *Selection) SelectAll(n int) {
	s.MoveTo(0)
	s.SelectTo(n)
}

// Span sets the selection from an explicit anchor and caret.
func (s *Selection) Span(anchor, caret int) {
	if caret < anchor {
		s.Range = Range{Start: caret, End: anchor}
		s.Reversed = true
		return
	}
	s.Range = Range{Start: anchor, End: caret}
	s.Reversed = false
}
