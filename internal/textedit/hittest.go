package textedit

import "math"

// DefaultLineHeight is the line pitch used when none is configured.
const DefaultLineHeight = 20.0

// Point is a position in the renderer's coordinate space.
type Point struct {
	X, Y float64
}

// Bounds is an axis-aligned rectangle; Min is the top-left corner.
type Bounds struct {
	Min, Max Point
}

func (b Bounds) Left() float64   { return b.Min.X }
func (b Bounds) Top() float64    { return b.Min.Y }
func (b Bounds) Right() float64  { return b.Max.X }
func (b Bounds) Bottom() float64 { return b.Max.Y }

// LineLayout is the shaped form of one line as produced by the renderer.
// Indexes are byte offsets within the line. Implementations must clamp
// out-of-range input: a layout may be one render pass older than the text.
type LineLayout interface {
	// ClosestIndexForX returns the character boundary nearest to x.
	ClosestIndexForX(x float64) int
	// XForIndex returns the horizontal position of boundary i.
	XForIndex(i int) float64
}

// Layout is what the last render pass left behind: the viewport bounds and
// the shaped lines. Lines may be shorter than the buffer's line count.
type Layout struct {
	Bounds Bounds
	Lines  []LineLayout
}

// line returns the layout for line i, falling back to the first line.
func (l *Layout) line(i int) LineLayout {
	if i >= 0 && i < len(l.Lines) && l.Lines[i] != nil {
		return l.Lines[i]
	}
	if len(l.Lines) > 0 {
		return l.Lines[0]
	}
	return nil
}

// HitTester maps points to text offsets and back using the cached layout.
// A missing layout is not an error: lookups degrade to offset 0.
type HitTester struct {
	LineHeight float64
	layout     *Layout
}

// SetLayout caches the layout from the latest render pass.
func (h *HitTester) SetLayout(l Layout) { h.layout = &l }

// Invalidate drops the cached layout.
func (h *HitTester) Invalidate() { h.layout = nil }

// HasLayout reports whether a layout is cached.
func (h *HitTester) HasLayout() bool { return h.layout != nil }

func (h *HitTester) lineHeight() float64 {
	if h.LineHeight <= 0 {
		return DefaultLineHeight
	}
	return h.LineHeight
}

// OffsetForPoint returns the byte offset in text closest to p.
func (h *HitTester) OffsetForPoint(text string, p Point) int {
	if text == "" || h.layout == nil {
		return 0
	}
	vb := h.layout.Bounds

	line := int(math.Floor((p.Y - vb.Top()) / h.lineHeight()))
	if line < 0 {
		line = 0
	}
	if line >= LineCount(text) {
		return len(text)
	}

	start := LineStart(text, line)
	if p.X < vb.Left() {
		return start
	}
	n := LineLength(text, line)
	if n == 0 {
		return start
	}
	ll := h.layout.line(line)
	if ll == nil {
		return start
	}
	idx := ll.ClosestIndexForX(p.X - vb.Left())
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	return SnapBoundary(text, start+idx)
}

// BoundsForRange returns the box spanning r on the line holding r.Start.
// A range running past that line is cut at the line end.
func (h *HitTester) BoundsForRange(text string, r Range) (Bounds, bool) {
	if h.layout == nil {
		return Bounds{}, false
	}
	r = clampRange(text, r)
	line := LineAt(text, r.Start)
	ll := h.layout.line(line)
	if ll == nil {
		return Bounds{}, false
	}

	start := LineStart(text, line)
	end := r.End
	if lineEnd := LineEnd(text, line); end > lineEnd {
		end = lineEnd
	}

	vb := h.layout.Bounds
	lh := h.lineHeight()
	top := vb.Top() + float64(line)*lh
	return Bounds{
		Min: Point{X: vb.Left() + ll.XForIndex(r.Start-start), Y: top},
		Max: Point{X: vb.Left() + ll.XForIndex(end-start), Y: top + lh},
	}, true
}
