// Package block segments canonical markdown into edit-granularity blocks.
//
// Blocks are separated by blank lines, except inside an open code fence,
// where blank lines belong to the block. Join is the exact left inverse of
// Split for the canonical "\n\n" separator.
package block

import (
	"strings"

	"mdlive/internal/classify"
)

// Split cuts source at every blank-line boundary that is not inside an open
// fence. Empty input yields a single empty block; a trailing "\n\n" yields an
// extra empty trailing block; an unterminated fence runs to the end of input.
func Split(source string) []string {
	var blocks []string
	start := 0
	i := 0
	fenceOpen := false
	var fenceChar byte
	fenceLen := 0

	for i < len(source) {
		j := strings.IndexByte(source[i:], '\n')
		if j < 0 {
			updateFence(source[i:], &fenceOpen, &fenceChar, &fenceLen)
			break
		}
		line := source[i : i+j]
		updateFence(line, &fenceOpen, &fenceChar, &fenceLen)

		// A boundary is "\n\n": this line's newline followed by another.
		if !fenceOpen && i+j+1 < len(source) && source[i+j+1] == '\n' {
			blocks = append(blocks, source[start:i+j])
			start = i + j + 2
			i = start
			continue
		}
		i = i + j + 1
	}

	return append(blocks, source[start:])
}

// Join reassembles blocks with the canonical separator.
func Join(blocks []string) string {
	return strings.Join(blocks, "\n\n")
}

// updateFence advances the open-fence state across one line.
func updateFence(line string, open *bool, ch *byte, length *int) {
	if *open {
		if classify.ClosesFence(line, *ch, *length) {
			*open = false
		}
		return
	}
	info := classify.Classify(line)
	if info.Kind == classify.Fence {
		*open = true
		*ch = info.FenceChar
		*length = info.FenceLen
	}
}

// OpenFence scans the lines of a block and reports whether it ends inside an
// unclosed fence, returning the opening character and length when it does.
func OpenFence(blockText string) (ch byte, length int, open bool) {
	for _, line := range strings.Split(blockText, "\n") {
		updateFence(line, &open, &ch, &length)
	}
	return ch, length, open
}
