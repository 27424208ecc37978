// Package helpers holds small, dependency-free utilities shared across the
// lowering, emission, and declaration pipelines: UTF-16 code unit conversion
// (sourcemap columns are counted in UTF-16 units, not bytes) and an
// allocate-once string/byte joiner.
package helpers

import (
	"strings"
	"unicode/utf8"
)

// StringToUTF16 decodes a UTF-8 Go string into UTF-16 code units, the unit
// the V3 sourcemap spec and the emitted escape sequences count in.
func StringToUTF16(text string) []uint16 {
	decoded := make([]uint16, 0, len(text))
	for _, c := range text {
		if c <= 0xFFFF {
			decoded = append(decoded, uint16(c))
		} else {
			c -= 0x10000
			decoded = append(decoded, uint16(0xD800+((c>>10)&0x3FF)), uint16(0xDC00+(c&0x3FF)))
		}
	}
	return decoded
}

// UTF16ToString re-encodes UTF-16 code units (including surrogate pairs) back
// into a UTF-8 Go string.
func UTF16ToString(text []uint16) string {
	var temp [utf8.UTFMax]byte
	b := strings.Builder{}
	n := len(text)
	for i := 0; i < n; i++ {
		r1 := rune(text[i])
		if r1 >= 0xD800 && r1 <= 0xDBFF && i+1 < n {
			if r2 := rune(text[i+1]); r2 >= 0xDC00 && r2 <= 0xDFFF {
				r1 = (r1-0xD800)<<10 | (r2 - 0xDC00) + 0x10000
				i++
			}
		}
		width := utf8.EncodeRune(temp[:], r1)
		b.Write(temp[:width])
	}
	return b.String()
}

// UTF16Len counts the number of UTF-16 code units a UTF-8 string decodes to,
// without allocating the intermediate slice. Used for the sourcemap column
// invariant (property 4 in the spec's testable-properties list).
func UTF16Len(text string) int32 {
	var n int32
	for _, c := range text {
		if c <= 0xFFFF {
			n++
		} else {
			n += 2
		}
	}
	return n
}

// IsHighSurrogate reports whether c is the first unit of a UTF-16 pair.
func IsHighSurrogate(c uint16) bool { return c >= 0xD800 && c <= 0xDBFF }

// IsLowSurrogate reports whether c is the second unit of a UTF-16 pair.
func IsLowSurrogate(c uint16) bool { return c >= 0xDC00 && c <= 0xDFFF }
