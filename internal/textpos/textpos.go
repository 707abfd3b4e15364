// Package textpos does caret arithmetic in UTF-16 code units.
//
// Host text widgets address text by UTF-16 code unit, so every offset that
// crosses the host boundary is counted here, never in runes or graphemes.
package textpos

import (
	"strings"
	"unicode/utf16"
)

// Pos is a caret position as a 0-based line index and a UTF-16 column.
type Pos struct {
	Line int
	Col  int
}

// Len16 returns the length of s in UTF-16 code units.
func Len16(s string) int {
	n := 0
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}

// Slice16 returns the substring of s covering [start, end) in UTF-16 code
// units. Bounds are clamped; a reversed range yields the empty string.
func Slice16(s string, start, end int) string {
	u := utf16.Encode([]rune(s))
	if start < 0 {
		start = 0
	}
	if end > len(u) {
		end = len(u)
	}
	if start >= end {
		return ""
	}
	return string(utf16.Decode(u[start:end]))
}

// ClampOffset clamps a flat UTF-16 offset into [0, Len16(s)].
func ClampOffset(s string, off int) int {
	if off < 0 {
		return 0
	}
	if n := Len16(s); off > n {
		return n
	}
	return off
}

// ToPos converts a flat UTF-16 offset into a (line, column) position over
// text. The offset is clamped first.
func ToPos(text string, off int) Pos {
	off = ClampOffset(text, off)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		n := Len16(line)
		if off <= n {
			return Pos{Line: i, Col: off}
		}
		off -= n + 1 // the newline
	}
	last := len(lines) - 1
	return Pos{Line: last, Col: Len16(lines[last])}
}

// ToOffset converts a (line, column) position into a flat UTF-16 offset over
// text. Line and column are clamped to valid bounds.
func ToOffset(text string, p Pos) int {
	lines := strings.Split(text, "\n")
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(lines) {
		p.Line = len(lines) - 1
	}
	off := 0
	for i := 0; i < p.Line; i++ {
		off += Len16(lines[i]) + 1
	}
	col := p.Col
	if col < 0 {
		col = 0
	}
	if n := Len16(lines[p.Line]); col > n {
		col = n
	}
	return off + col
}
