// Package app coordinates the editing core: it owns the canonical source,
// applies edit actions and style toggles, and reconciles host-driven edits.
package app

import (
	"strings"

	"mdlive/internal/block"
	"mdlive/internal/edit"
	"mdlive/internal/projection"
	"mdlive/internal/render"
	"mdlive/internal/style"
	"mdlive/internal/table"
	"mdlive/internal/textpos"
)

// Session owns the canonical markdown source for one document. All mutation
// goes through its methods; no partially applied state is observable between
// calls.
type Session struct {
	source      string
	heights     *edit.HeightCache
	lastDisplay []string // exact line strings last rendered, for diffing
}

func NewSession(initial string) *Session {
	s := &Session{heights: edit.NewHeightCache()}
	s.SetSource(initial)
	return s
}

// Source returns the canonical text.
func (s *Session) Source() string {
	return s.source
}

// SetSource replaces the document wholesale (external load). The previous
// display cache is discarded.
func (s *Session) SetSource(text string) {
	s.source = text
	s.lastDisplay = strings.Split(text, "\n")
}

// Render recomputes the styled projection and caches the exact line strings
// it was rendered from.
func (s *Session) Render() []render.Line {
	s.lastDisplay = strings.Split(s.source, "\n")
	return render.Render(s.source)
}

// RenderHTML recomputes the HTML projection and caches the line strings.
func (s *Session) RenderHTML() string {
	s.lastDisplay = strings.Split(s.source, "\n")
	return render.RenderHTML(s.source)
}

// SetHeight records a host-measured pixel height for a block index.
func (s *Session) SetHeight(blockIndex int, height float64) {
	s.heights.Set(blockIndex, height)
}

// Height returns the cached pixel height for a block index.
func (s *Session) Height(blockIndex int) (float64, bool) {
	return s.heights.Get(blockIndex)
}

// blockAt locates the block containing the caret offset, returning its index
// and the block list plus the caret offset within the block.
func (s *Session) blockAt(caret int) (blocks []string, index, inner int) {
	blocks = block.Split(s.source)
	caret = textpos.ClampOffset(s.source, caret)
	start := 0
	for i, b := range blocks {
		n := textpos.Len16(b)
		if caret <= start+n || i == len(blocks)-1 {
			inner = caret - start
			if inner < 0 {
				inner = 0 // caret was inside the separator
			}
			if inner > n {
				inner = n
			}
			return blocks, i, inner
		}
		start += n + 2 // the "\n\n" separator
	}
	return blocks, 0, caret
}

// HandleReturn resolves Enter at the caret. It is only handled when the
// caret sits at the exact end of its block; otherwise ok is false and the
// host falls through to its default behavior. Returns the caret offset to
// apply after the mutation.
func (s *Session) HandleReturn(caret int) (int, bool) {
	blocks, i, inner := s.blockAt(caret)
	if inner != textpos.Len16(blocks[i]) {
		return caret, false
	}

	act := edit.ResolveReturn(blocks[i])
	blocks[i] = act.Current

	blockStart := 0
	for j := 0; j < i; j++ {
		blockStart += textpos.Len16(blocks[j]) + 2
	}

	if !act.Split {
		s.source = block.Join(blocks)
		return blockStart + act.Caret, true
	}

	next := make([]string, 0, len(blocks)+1)
	next = append(next, blocks[:i+1]...)
	next = append(next, act.Next)
	next = append(next, blocks[i+1:]...)
	s.heights.ShiftInsert(i + 1)
	s.source = block.Join(next)

	newBlockStart := blockStart + textpos.Len16(blocks[i]) + 2
	return newBlockStart + textpos.Len16(act.Next), true
}

// HandleBackspace resolves Backspace at the caret: at offset 0 of a block
// that is not the first, the block merges into its predecessor. Any other
// position is unhandled.
func (s *Session) HandleBackspace(caret int) (int, bool) {
	blocks, i, inner := s.blockAt(caret)
	res, ok := edit.ResolveBackspace(blocks, i, inner)
	if !ok {
		return caret, false
	}

	prevStart := 0
	for j := 0; j < i-1; j++ {
		prevStart += textpos.Len16(blocks[j]) + 2
	}

	merged := make([]string, 0, len(blocks)-1)
	merged = append(merged, blocks[:i-1]...)
	merged = append(merged, res.Merged)
	merged = append(merged, blocks[i+1:]...)
	s.heights.ShiftRemove(i)
	s.source = block.Join(merged)

	return prevStart + res.Caret, true
}

// ToggleInline toggles an inline marker over the selection.
func (s *Session) ToggleInline(sel style.Selection, m style.Marker) style.Selection {
	s.source, sel = style.ToggleInline(s.source, sel, m)
	return sel
}

// ToggleHeading toggles a heading level over the selected lines.
func (s *Session) ToggleHeading(sel style.Selection, level int) style.Selection {
	s.source, sel = style.ToggleHeading(s.source, sel, level)
	return sel
}

// ToggleUnorderedList toggles unordered list markers over the selected lines.
func (s *Session) ToggleUnorderedList(sel style.Selection) style.Selection {
	s.source, sel = style.ToggleUnorderedList(s.source, sel)
	return sel
}

// ToggleOrderedList toggles ordered list markers over the selected lines.
func (s *Session) ToggleOrderedList(sel style.Selection) style.Selection {
	s.source, sel = style.ToggleOrderedList(s.source, sel)
	return sel
}

// ToggleQuote toggles blockquote markers over the selected lines.
func (s *Session) ToggleQuote(sel style.Selection) style.Selection {
	s.source, sel = style.ToggleQuote(s.source, sel)
	return sel
}

// ToggleTask flips the task checkbox with the given visible index.
func (s *Session) ToggleTask(visibleIndex int) bool {
	out, ok := table.ToggleTask(s.source, visibleIndex)
	s.source = out
	return ok
}

// ReconcileDisplay folds a host-side edit of the display lines back into the
// canonical source and remaps the caret. applying must be true when the host
// widget mutation was issued by this session itself, in which case the edit
// is not re-interpreted.
func (s *Session) ReconcileDisplay(editedLines []string, caret int, applying bool) int {
	if applying {
		return caret
	}
	before := s.source
	s.source = projection.Reconcile(s.source, s.lastDisplay, editedLines)
	s.lastDisplay = append([]string(nil), editedLines...)
	return projection.RemapCaret(before, caret, s.source)
}
