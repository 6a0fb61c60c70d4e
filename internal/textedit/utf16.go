package textedit

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Input methods address text in UTF-16 code units while the buffer is UTF-8.
// These helpers are the only place the two meet. Each call walks the string
// from the start, which is fine for note-sized buffers.

// ToUTF16 converts a byte offset in s to a UTF-16 offset.
func ToUTF16(s string, o int) int {
	u8, u16 := 0, 0
	for u8 < len(s) && u8 < o {
		r, size := utf8.DecodeRuneInString(s[u8:])
		u8 += size
		u16 += utf16.RuneLen(r)
	}
	return u16
}

// FromUTF16 converts a UTF-16 offset to a byte offset in s. Offsets that
// split a surrogate pair land after the scalar value; offsets past the end
// clamp to len(s).
func FromUTF16(s string, u int) int {
	u8, u16 := 0, 0
	for u8 < len(s) && u16 < u {
		r, size := utf8.DecodeRuneInString(s[u8:])
		u8 += size
		u16 += utf16.RuneLen(r)
	}
	return u8
}

// RangeToUTF16 converts a byte range to UTF-16 units.
func RangeToUTF16(s string, r Range) Range {
	r = r.Normalized()
	return Range{Start: ToUTF16(s, r.Start), End: ToUTF16(s, r.End)}
}

// RangeFromUTF16 converts a UTF-16 range to byte offsets.
func RangeFromUTF16(s string, r Range) Range {
	r = r.Normalized()
	return Range{Start: FromUTF16(s, r.Start), End: FromUTF16(s, r.End)}
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	return ToUTF16(s, len(s))
}
