// Package projection reconciles a host-edited display buffer back into the
// canonical source and remaps the caret across re-renders.
//
// Rendering is one source line to one display line, so a line-level
// prefix/suffix diff of the display maps directly onto the canonical line
// list.
package projection

import (
	"strings"

	"mdlive/internal/textpos"
)

// Patch is the interior line span that changed between two renderings.
type Patch struct {
	// Start is the first differing line index; End is exclusive, both against
	// the previous rendering.
	Start int
	End   int
	// Lines is the replacement interior from the edited display.
	Lines []string
}

// Empty reports whether the edit changed nothing.
func (p Patch) Empty() bool {
	return p.Start == p.End && len(p.Lines) == 0
}

// Diff computes the minimal patch between the previously rendered display
// lines and the newly edited display lines: common prefix, then common
// suffix bounded by the prefix, then the interior span.
func Diff(prev, edited []string) Patch {
	prefix := 0
	for prefix < len(prev) && prefix < len(edited) && prev[prefix] == edited[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(prev)-prefix && suffix < len(edited)-prefix &&
		prev[len(prev)-1-suffix] == edited[len(edited)-1-suffix] {
		suffix++
	}

	interior := edited[prefix : len(edited)-suffix]
	return Patch{Start: prefix, End: len(prev) - suffix, Lines: append([]string(nil), interior...)}
}

// Apply replaces the patch span in the canonical source's line list and
// rejoins it. If the patch indices fall outside the current line count (an
// external load raced a local edit), the patch is skipped and the edited
// text wins outright.
func Apply(source string, p Patch, edited []string) (string, bool) {
	lines := strings.Split(source, "\n")
	if p.Start < 0 || p.End < p.Start || p.End > len(lines) {
		return strings.Join(edited, "\n"), false
	}
	merged := make([]string, 0, len(lines)-(p.End-p.Start)+len(p.Lines))
	merged = append(merged, lines[:p.Start]...)
	merged = append(merged, p.Lines...)
	merged = append(merged, lines[p.End:]...)
	return strings.Join(merged, "\n"), true
}

// Reconcile runs the full cycle: diff the edited display against the
// previous rendering and patch the canonical source.
func Reconcile(source string, prevDisplay, editedDisplay []string) string {
	out, _ := Apply(source, Diff(prevDisplay, editedDisplay), editedDisplay)
	return out
}

// RemapCaret carries a caret across a re-render: the caret is captured as
// (line, column) against the pre-render text, the column is clamped to the
// new line's length, and the result is flattened against the new text.
func RemapCaret(oldText string, caretOffset int, newText string) int {
	pos := textpos.ToPos(oldText, caretOffset)
	return textpos.ToOffset(newText, pos)
}
