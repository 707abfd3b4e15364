// Package style toggles markdown formatting markers around a selection.
//
// All selection arithmetic is in UTF-16 code units to match host widget
// offsets. Toggling is its own inverse: re-applying a toggle to its result
// restores the original text, except for the documented bare-marker fallback
// on caret positions that resolve no word.
package style

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"mdlive/internal/textpos"
)

// Marker is an inline formatting marker pair.
type Marker string

const (
	Bold          Marker = "**"
	Italic        Marker = "*"
	Strikethrough Marker = "~~"
	Code          Marker = "`"
)

// Selection is a UTF-16 selection range; Length 0 is a bare caret.
type Selection struct {
	Start  int
	Length int
}

// ToggleInline wraps or unwraps the marker around the selection and returns
// the updated text with the updated selection.
//
// A selection already wrapped by the marker is unwrapped; a selection whose
// immediate neighbors are the marker pair has the outer markers removed;
// anything else is wrapped. A bare caret resolves the word under it first,
// falling back to inserting an empty marker pair at the caret.
func ToggleInline(text string, sel Selection, m Marker) (string, Selection) {
	mk := string(m)
	ml := len(mk) // markers are ASCII, one UTF-16 unit per byte
	n := textpos.Len16(text)

	start := textpos.ClampOffset(text, sel.Start)
	length := sel.Length
	if length < 0 {
		length = 0
	}
	end := start + length
	if end > n {
		end = n
	}

	if start == end {
		ws, we, ok := wordAt(text, start)
		if !ok {
			out := textpos.Slice16(text, 0, start) + mk + mk + textpos.Slice16(text, start, n)
			return out, Selection{Start: start + ml}
		}
		start, end = ws, we
	}

	selected := textpos.Slice16(text, start, end)
	selLen := end - start

	// Selection text is itself wrapped: strip the pair.
	if selLen >= 2*ml && strings.HasPrefix(selected, mk) && strings.HasSuffix(selected, mk) {
		inner := textpos.Slice16(selected, ml, selLen-ml)
		out := textpos.Slice16(text, 0, start) + inner + textpos.Slice16(text, end, n)
		return out, Selection{Start: start, Length: selLen - 2*ml}
	}

	// Marker pair immediately surrounds the selection: strip the outer pair.
	if start >= ml && end+ml <= n &&
		textpos.Slice16(text, start-ml, start) == mk &&
		textpos.Slice16(text, end, end+ml) == mk {
		out := textpos.Slice16(text, 0, start-ml) + selected + textpos.Slice16(text, end+ml, n)
		return out, Selection{Start: start - ml, Length: selLen}
	}

	out := textpos.Slice16(text, 0, start) + mk + selected + mk + textpos.Slice16(text, end, n)
	return out, Selection{Start: start + ml, Length: selLen}
}

// wordAt resolves the word containing the caret, checking the character at
// the caret first and then the one immediately before it. Returns the word's
// UTF-16 range.
func wordAt(text string, caret int) (int, int, bool) {
	state := -1
	rest := text
	pos := 0 // UTF-16 offset of rest's start

	var beforeStart, beforeEnd int
	haveBefore := false

	for len(rest) > 0 {
		seg, tail, next := uniseg.FirstWordInString(rest, state)
		segLen := textpos.Len16(seg)
		segStart, segEnd := pos, pos+segLen

		if isWordSegment(seg) {
			if caret >= segStart && caret < segEnd {
				return segStart, segEnd, true
			}
			if caret == segEnd {
				beforeStart, beforeEnd = segStart, segEnd
				haveBefore = true
			}
		}
		if segStart > caret {
			break
		}
		rest = tail
		state = next
		pos = segEnd
	}

	if haveBefore {
		return beforeStart, beforeEnd, true
	}
	return 0, 0, false
}

func isWordSegment(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
