package textedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectToFlips(t *testing.T) {
	var s Selection
	s.MoveTo(3)
	s.SelectTo(1)

	assert.True(t, s.Reversed)
	assert.Equal(t, Range{Start: 1, End: 3}, s.Range)
	assert.Equal(t, 1, s.Caret())
	assert.Equal(t, 3, s.Anchor())

	// Crossing the anchor again flips back.
	s.SelectTo(5)
	assert.False(t, s.Reversed)
	assert.Equal(t, Range{Start: 3, End: 5}, s.Range)
	assert.Equal(t, 5, s.Caret())
}

func TestSelectToNormalized(t *testing.T) {
	for _, seq := range [][]int{
		{4, 0, 7, 2},
		{0, 0, 0},
		{9, 1, 1, 9},
	} {
		var s Selection
		s.MoveTo(seq[0])
		for _, o := range seq[1:] {
			s.SelectTo(o)
			assert.LessOrEqual(t, s.Start, s.End)
			assert.Equal(t, o, s.Caret())
			assert.Equal(t, seq[0], s.Anchor())
		}
	}
}

func TestSelectAllAndSpan(t *testing.T) {
	var s Selection
	s.SelectAll(10)
	assert.Equal(t, Range{Start: 0, End: 10}, s.Range)
	assert.Equal(t, 10, s.Caret())

	s.Span(6, 2)
	assert.Equal(t, Range{Start: 2, End: 6}, s.Range)
	assert.True(t, s.Reversed)
	assert.Equal(t, 6, s.Anchor())

	s.MoveTo(4)
	assert.True(t, s.Empty())
	assert.False(t, s.Reversed)
}
