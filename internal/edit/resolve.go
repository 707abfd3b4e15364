// Package edit resolves Enter and Backspace at a caret into block mutations:
// continue in place, split into a new block, merge with the previous block,
// or auto-complete an open code fence.
package edit

import (
	"strconv"
	"strings"

	"mdlive/internal/block"
	"mdlive/internal/classify"
	"mdlive/internal/table"
	"mdlive/internal/textpos"
)

// ReturnAction is the outcome of Enter at the exact end of a block.
type ReturnAction struct {
	// Current is the possibly modified current block text.
	Current string
	// Next is the new following block when Split is set.
	Next string
	// Split inserts Next as a new block immediately after the current one,
	// with the caret at the end of Next.
	Split bool
	// Caret is the UTF-16 caret offset inside Current when Split is false.
	Caret int
}

// ResolveReturn resolves Enter pressed at the end of blockText. Enter at any
// interior position is not routed here; the caller falls through to default
// splitting.
func ResolveReturn(blockText string) ReturnAction {
	lines := strings.Split(blockText, "\n")
	last := lines[len(lines)-1]
	info := classify.Classify(last)

	// An opening fence with no close yet: complete it in place and leave the
	// caret on the blank line between the fences.
	if ch, length, open := block.OpenFence(blockText); open {
		if info.Kind == classify.Fence {
			closing := strings.Repeat(string(ch), length)
			return ReturnAction{
				Current: blockText + "\n\n" + closing,
				Caret:   textpos.Len16(blockText) + 1,
			}
		}
		// Inside an open fence body: a plain newline, still in the block.
		return ReturnAction{
			Current: blockText + "\n",
			Caret:   textpos.Len16(blockText) + 1,
		}
	}

	cont := continuation(info, last)

	if stayInBlock(info, last, lines, cont) {
		current := blockText
		if cont != "" {
			current += "\n" + cont
		} else {
			current += "\n"
		}
		return ReturnAction{Current: current, Caret: textpos.Len16(current)}
	}

	return ReturnAction{Current: trimExitMarker(blockText, info), Next: cont, Split: true}
}

// continuation computes the prefix auto-inserted after the trailing line.
// An empty result signals list/quote/table exit.
func continuation(info classify.Line, last string) string {
	switch info.Kind {
	case classify.ListItem:
		if info.Content == "" {
			return ""
		}
		box := ""
		if info.Task {
			box = "[ ] "
		}
		if info.Ordered {
			return info.Indent + strconv.Itoa(info.Number+1) + ". " + box
		}
		return info.Indent + info.Bullet + " " + box
	case classify.Quote:
		if info.Content == "" {
			return ""
		}
		return info.Indent + info.QuotePrefix
	case classify.TableRow:
		row, ok := table.ParseRow(last)
		if !ok {
			return ""
		}
		if row.IsSeparator {
			return table.EmptyRowTemplate(len(row.Cells), row.Indent)
		}
		return ""
	default:
		return ""
	}
}

// stayInBlock decides whether the continuation extends the current block
// instead of opening a new one.
func stayInBlock(info classify.Line, last string, lines []string, cont string) bool {
	switch info.Kind {
	case classify.Quote:
		return info.Content != ""
	case classify.ListItem:
		return info.Content != ""
	case classify.TableRow:
		row, ok := table.ParseRow(last)
		if !ok {
			return false
		}
		if row.IsSeparator {
			// Keep the empty-row template inside the table's block.
			return true
		}
		if row.IsAllEmpty {
			return false
		}
		// A lone populated row with no separator yet: the table is still
		// awaiting its separator line, so keep editing in place.
		return trailingRowCount(lines) == 1 && !hasSeparator(lines)
	default:
		return false
	}
}

func trailingRowCount(lines []string) int {
	n := 0
	for i := len(lines) - 1; i >= 0; i-- {
		if _, ok := table.ParseRow(lines[i]); !ok {
			break
		}
		n++
	}
	return n
}

func hasSeparator(lines []string) bool {
	for _, line := range lines {
		if row, ok := table.ParseRow(line); ok && row.IsSeparator {
			return true
		}
	}
	return false
}

// trimExitMarker drops a trailing empty list/quote marker line when the user
// exits a list by pressing Enter on an empty item, and trims any trailing
// spaces otherwise.
func trimExitMarker(blockText string, info classify.Line) string {
	exit := (info.Kind == classify.ListItem || info.Kind == classify.Quote) && info.Content == ""
	if !exit && info.Kind == classify.TableRow {
		if row, ok := table.ParseRow(lastLine(blockText)); ok && row.IsAllEmpty {
			exit = true
		}
	}
	if !exit {
		return strings.TrimRight(blockText, " \t")
	}
	if i := strings.LastIndexByte(blockText, '\n'); i >= 0 {
		return blockText[:i]
	}
	return ""
}

func lastLine(text string) string {
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return text[i+1:]
	}
	return text
}

// MergeResult is the outcome of Backspace at column 0 of a block.
type MergeResult struct {
	// Merged is the previous block with the current block appended after a
	// single newline.
	Merged string
	// Caret is the UTF-16 offset of the former boundary inside Merged.
	Caret int
}

// ResolveBackspace merges blocks[index] into its predecessor when the caret
// sits at offset 0 of a block that is not the first. Any other position is
// not handled and falls through to default character deletion.
func ResolveBackspace(blocks []string, index, caretOffset int) (MergeResult, bool) {
	if caretOffset != 0 || index <= 0 || index >= len(blocks) {
		return MergeResult{}, false
	}
	prev := blocks[index-1]
	return MergeResult{
		Merged: prev + "\n" + blocks[index],
		Caret:  textpos.Len16(prev) + 1,
	}, true
}
