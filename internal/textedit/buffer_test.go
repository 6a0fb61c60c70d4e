package textedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceRangeInsertionLaw(t *testing.T) {
	tests := []struct {
		text   string
		r      Range
		insert string
	}{
		{"", Range{0, 0}, "hello"},
		{"hello", Range{1, 4}, "EY"},
		{"hello", Range{5, 5}, "猫"},
		{"a\U0001F600b", Range{1, 5}, ""},
		{"abc", Range{3, 0}, "x"},
	}
	for _, tt := range tests {
		b := NewBuffer(tt.text)
		got := b.ReplaceRange(&tt.r, tt.insert)
		s := tt.r.Normalized().Start
		assert.Equal(t, Range{Start: s, End: s + len(tt.insert)}, got)
		assert.Equal(t, tt.insert, b.Slice(Range{Start: s, End: s + len(tt.insert)}))
		assert.Equal(t, s+len(tt.insert), b.Selection().Caret())
		assert.True(t, b.Selection().Empty())
	}
}

func TestReplaceRangeTargets(t *testing.T) {
	b := NewBuffer("hello")
	b.sel.MoveTo(1)
	b.sel.SelectTo(3)
	b.ReplaceRange(nil, "X")
	assert.Equal(t, "hXlo", b.Text())

	// A marked range wins over the selection.
	b.ReplaceAndMark(nil, "ab", nil)
	assert.Equal(t, "hXablo", b.Text())
	r, ok := b.MarkedRange()
	require.True(t, ok)
	assert.Equal(t, Range{Start: 2, End: 4}, r)

	b.sel.MoveTo(0)
	b.ReplaceRange(nil, "Z")
	assert.Equal(t, "hXZlo", b.Text())
	_, ok = b.MarkedRange()
	assert.False(t, ok)
}

func TestReplaceAndMarkInner(t *testing.T) {
	b := NewBuffer("xy")
	b.sel.MoveTo(1)
	b.ReplaceAndMark(nil, "abc", &Range{Start: 1, End: 2})

	assert.Equal(t, "xabcy", b.Text())
	r, ok := b.MarkedRange()
	require.True(t, ok)
	assert.Equal(t, Range{Start: 1, End: 4}, r)
	assert.Equal(t, Range{Start: 2, End: 3}, b.Selection().Range)

	// Out of range inner selections clamp to the inserted text.
	b = NewBuffer("")
	b.ReplaceAndMark(nil, "ab", &Range{Start: 1, End: 40})
	assert.Equal(t, Range{Start: 1, End: 2}, b.Selection().Range)
}

func TestSliceClampsToScalars(t *testing.T) {
	b := NewBuffer("a猫b")
	assert.Equal(t, "a", b.Slice(Range{Start: 0, End: 2}))
	assert.Equal(t, "猫b", b.Slice(Range{Start: 1, End: 99}))
	assert.Equal(t, "", b.Slice(Range{Start: -5, End: 0}))
}

func TestSetText(t *testing.T) {
	b := NewBuffer("abc")
	b.ReplaceAndMark(nil, "x", nil)
	b.SetText("new")
	assert.Equal(t, 3, b.Selection().Caret())
	_, ok := b.MarkedRange()
	assert.False(t, ok)
}
