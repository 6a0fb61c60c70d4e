package textedit

import (
	"strings"

	"github.com/rivo/uniseg"
)

// ---------------------------------------------------------------------------
// Grapheme boundaries
// ---------------------------------------------------------------------------

// clampOffset limits o to [0, len(s)].
func clampOffset(s string, o int) int {
	if o < 0 {
		return 0
	}
	if o > len(s) {
		return len(s)
	}
	return o
}

// PrevBoundary returns the last grapheme cluster boundary strictly before o,
// or 0 at the start of s.
func PrevBoundary(s string, o int) int {
	o = clampOffset(s, o)
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		next := pos + len(cluster)
		if next >= o {
			return pos
		}
		pos = next
	}
	return pos
}

// NextBoundary returns the first grapheme cluster boundary strictly after o,
// or len(s) at the end of s.
func NextBoundary(s string, o int) int {
	o = clampOffset(s, o)
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
		if pos > o {
			return pos
		}
	}
	return len(s)
}

// SnapBoundary returns the largest grapheme cluster boundary <= o.
func SnapBoundary(s string, o int) int {
	o = clampOffset(s, o)
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		next := pos + len(cluster)
		if next > o {
			return pos
		}
		pos = next
	}
	return pos
}

// Cluster is one user-perceived character of a line.
type Cluster struct {
	Offset int    // byte offset within the string passed to Clusters
	Text   string // the cluster itself
	Width  int    // monospace cells (0, 1 or 2)
}

// Clusters splits s into grapheme clusters with their cell widths.
func Clusters(s string) []Cluster {
	if s == "" {
		return nil
	}
	out := make([]Cluster, 0, len(s))
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, Cluster{Offset: pos, Text: cluster, Width: width})
		pos += len(cluster)
	}
	return out
}

// ---------------------------------------------------------------------------
// Lines. Derived from content on every call, never cached.
// ---------------------------------------------------------------------------

// LineSeparator splits buffer content into lines.
const LineSeparator = '\n'

// LineCount returns the number of lines in s. The empty string has one line.
func LineCount(s string) int {
	return strings.Count(s, string(LineSeparator)) + 1
}

// LineAt returns the index of the line containing o. An offset sitting on a
// separator belongs to the line that ends there.
func LineAt(s string, o int) int {
	o = clampOffset(s, o)
	return strings.Count(s[:o], string(LineSeparator))
}

// LineStart returns the offset of the first byte of line i, or len(s) when i
// is past the last line.
func LineStart(s string, i int) int {
	if i <= 0 {
		return 0
	}
	idx := 0
	for n := 0; n < i; n++ {
		j := strings.IndexByte(s[idx:], LineSeparator)
		if j < 0 {
			return len(s)
		}
		idx += j + 1
	}
	return idx
}

// LineEnd returns the offset just before the separator ending line i, or
// len(s) for the last line and anything past it.
func LineEnd(s string, i int) int {
	if i >= LineCount(s) {
		return len(s)
	}
	start := LineStart(s, i)
	j := strings.IndexByte(s[start:], LineSeparator)
	if j < 0 {
		return len(s)
	}
	return start + j
}

// LineLength returns the byte length of line i, or 0 when i is out of range.
func LineLength(s string, i int) int {
	if i < 0 || i >= LineCount(s) {
		return 0
	}
	return LineEnd(s, i) - LineStart(s, i)
}
