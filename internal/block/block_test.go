package block

import (
	"reflect"
	"testing"
)

func TestSplitHeadingAndParagraph(t *testing.T) {
	got := Split("# Title\n\nParagraph")
	want := []string{"# Title", "Paragraph"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %q, want %q", got, want)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	got := Split("")
	if !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("Split(\"\") = %q, want one empty block", got)
	}
}

func TestSplitTrailingSeparator(t *testing.T) {
	got := Split("Paragraph\n\n")
	want := []string{"Paragraph", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %q, want %q", got, want)
	}
}

func TestSplitFencedBlock(t *testing.T) {
	src := "```swift\nprint(\"hi\")\n```\n\nTail"
	got := Split(src)
	if len(got) != 2 {
		t.Fatalf("Split = %d blocks %q, want 2", len(got), got)
	}
	if got[0] != "```swift\nprint(\"hi\")\n```" {
		t.Errorf("first block = %q", got[0])
	}
	if got[1] != "Tail" {
		t.Errorf("second block = %q", got[1])
	}
}

func TestSplitBlankLineInsideFenceDoesNotSplit(t *testing.T) {
	src := "```\na\n\nb\n```"
	got := Split(src)
	if len(got) != 1 {
		t.Fatalf("Split = %d blocks %q, want 1", len(got), got)
	}
}

func TestSplitUnterminatedFenceRunsToEnd(t *testing.T) {
	src := "```\ncode\n\nmore"
	got := Split(src)
	if len(got) != 1 || got[0] != src {
		t.Errorf("Split = %q, want the whole input as one block", got)
	}
}

func TestSplitShortClosingFenceDoesNotClose(t *testing.T) {
	// Closing needs the same character and at least the opening length.
	src := "````\ncode\n```\n\nmore"
	got := Split(src)
	if len(got) != 1 {
		t.Errorf("Split = %q, want 1 block (``` cannot close ````)", got)
	}
}

func TestJoinIsLeftInverseOfSplit(t *testing.T) {
	inputs := []string{
		"",
		"one",
		"# Title\n\nParagraph",
		"a\n\n\nb",
		"a\n\n\n\nb",
		"Paragraph\n\n",
		"```go\nx := 1\n\ny := 2\n```\n\ntail",
		"~~~\ntilde fence\n~~~",
		"\n\n",
		"- a\n- b\n\n> q",
	}
	for _, in := range inputs {
		if got := Join(Split(in)); got != in {
			t.Errorf("Join(Split(%q)) = %q", in, got)
		}
	}
}

func TestOpenFence(t *testing.T) {
	ch, n, open := OpenFence("```swift")
	if !open || ch != '`' || n != 3 {
		t.Errorf("OpenFence = (%q, %d, %v), want ('`', 3, true)", ch, n, open)
	}
	if _, _, open := OpenFence("```\ncode\n```"); open {
		t.Error("closed fence reported open")
	}
	if _, _, open := OpenFence("plain text"); open {
		t.Error("plain text reported open")
	}
}
