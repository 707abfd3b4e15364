package app

import (
	"strings"
	"testing"

	"mdlive/internal/style"
)

func TestHandleReturnSplitsParagraph(t *testing.T) {
	s := NewSession("# Title\n\nParagraph")
	caret, ok := s.HandleReturn(len("# Title\n\nParagraph"))
	if !ok {
		t.Fatal("Enter at end of block not handled")
	}
	if s.Source() != "# Title\n\nParagraph\n\n" {
		t.Errorf("source = %q", s.Source())
	}
	if caret != len("# Title\n\nParagraph\n\n") {
		t.Errorf("caret = %d", caret)
	}
}

func TestHandleReturnInteriorUnhandled(t *testing.T) {
	s := NewSession("Paragraph")
	if _, ok := s.HandleReturn(3); ok {
		t.Error("interior Enter should fall through to the host")
	}
	if s.Source() != "Paragraph" {
		t.Errorf("source mutated: %q", s.Source())
	}
}

func TestHandleReturnListStaysInBlock(t *testing.T) {
	s := NewSession("- item")
	caret, ok := s.HandleReturn(6)
	if !ok {
		t.Fatal("not handled")
	}
	if s.Source() != "- item\n- " {
		t.Errorf("source = %q", s.Source())
	}
	if caret != len("- item\n- ") {
		t.Errorf("caret = %d", caret)
	}
}

func TestHandleReturnFenceAutoComplete(t *testing.T) {
	s := NewSession("intro\n\n```swift")
	caret, ok := s.HandleReturn(len("intro\n\n```swift"))
	if !ok {
		t.Fatal("not handled")
	}
	if s.Source() != "intro\n\n```swift\n\n```" {
		t.Errorf("source = %q", s.Source())
	}
	if caret != len("intro\n\n")+9 {
		t.Errorf("caret = %d, want the blank line inside the fence", caret)
	}
}

func TestHandleReturnSecondBlockCaret(t *testing.T) {
	s := NewSession("first\n\nsecond")
	caret, ok := s.HandleReturn(len("first\n\nsecond"))
	if !ok {
		t.Fatal("not handled")
	}
	if s.Source() != "first\n\nsecond\n\n" {
		t.Errorf("source = %q", s.Source())
	}
	if caret != len(s.Source()) {
		t.Errorf("caret = %d, want end of the new empty block", caret)
	}
}

func TestHandleBackspaceMergesBlocks(t *testing.T) {
	s := NewSession("# Title\n\nParagraph")
	caret, ok := s.HandleBackspace(len("# Title\n\n"))
	if !ok {
		t.Fatal("Backspace at block start not handled")
	}
	if s.Source() != "# Title\nParagraph" {
		t.Errorf("source = %q", s.Source())
	}
	if caret != len("# Title\n") {
		t.Errorf("caret = %d", caret)
	}
}

func TestHandleBackspaceFirstBlockUnhandled(t *testing.T) {
	s := NewSession("only")
	if _, ok := s.HandleBackspace(0); ok {
		t.Error("first block has nothing to merge into")
	}
}

func TestHandleBackspaceInteriorUnhandled(t *testing.T) {
	s := NewSession("a\n\nb")
	if _, ok := s.HandleBackspace(4); ok {
		t.Error("interior Backspace should fall through")
	}
}

func TestHeightsFollowSplitsAndMerges(t *testing.T) {
	s := NewSession("a\n\nb")
	s.SetHeight(0, 10)
	s.SetHeight(1, 20)

	if _, ok := s.HandleReturn(1); !ok {
		t.Fatal("split not handled")
	}
	if h, _ := s.Height(2); h != 20 {
		t.Errorf("height of shifted block = %v, want 20", h)
	}

	// Merge the inserted empty block back into the first.
	if _, ok := s.HandleBackspace(3); !ok {
		t.Fatal("merge not handled")
	}
	if h, _ := s.Height(1); h != 20 {
		t.Errorf("height after merge = %v, want 20", h)
	}
}

func TestToggleInline(t *testing.T) {
	s := NewSession("hello world")
	sel := s.ToggleInline(style.Selection{Start: 0, Length: 5}, style.Bold)
	if s.Source() != "**hello** world" {
		t.Errorf("source = %q", s.Source())
	}
	if sel != (style.Selection{Start: 2, Length: 5}) {
		t.Errorf("sel = %+v", sel)
	}
}

func TestToggleTask(t *testing.T) {
	s := NewSession("- [ ] first\n- [x] second")
	if !s.ToggleTask(1) {
		t.Fatal("ToggleTask did not flip")
	}
	if s.Source() != "- [ ] first\n- [ ] second" {
		t.Errorf("source = %q", s.Source())
	}
	if s.ToggleTask(9) {
		t.Error("out-of-range index reported flipped")
	}
}

func TestReconcileDisplay(t *testing.T) {
	s := NewSession("alpha\nbeta")
	caret := s.ReconcileDisplay([]string{"alpha", "beta!"}, 10, false)
	if s.Source() != "alpha\nbeta!" {
		t.Errorf("source = %q", s.Source())
	}
	if caret != 10 {
		t.Errorf("caret = %d", caret)
	}
}

func TestReconcileDisplayApplyingIsNoOp(t *testing.T) {
	s := NewSession("alpha")
	caret := s.ReconcileDisplay([]string{"changed"}, 3, true)
	if s.Source() != "alpha" {
		t.Errorf("source = %q, want untouched during self-applied writes", s.Source())
	}
	if caret != 3 {
		t.Errorf("caret = %d", caret)
	}
}

func TestReconcileDisplayRemapsCaret(t *testing.T) {
	s := NewSession("long line\nnext")
	// Host shortened line 0; a caret past the new end clamps to it.
	caret := s.ReconcileDisplay([]string{"long", "next"}, 9, false)
	if s.Source() != "long\nnext" {
		t.Errorf("source = %q", s.Source())
	}
	if caret != 4 {
		t.Errorf("caret = %d, want clamped to the shortened line", caret)
	}
}

func TestRenderProjectionShape(t *testing.T) {
	s := NewSession("# T\n\n- a")
	lines := s.Render()
	if len(lines) != len(strings.Split(s.Source(), "\n")) {
		t.Errorf("rendered %d lines for %d source lines", len(lines), len(strings.Split(s.Source(), "\n")))
	}
	if !strings.Contains(s.RenderHTML(), "<h1") {
		t.Error("HTML projection missing heading")
	}
}
