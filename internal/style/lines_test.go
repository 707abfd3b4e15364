package style

import "testing"

func TestToggleHeading(t *testing.T) {
	cases := []struct {
		text  string
		level int
		want  string
	}{
		{"title", 2, "## title"},
		{"## title", 2, "title"},
		{"# title", 2, "## title"},
		{"### title", 1, "# title"},
	}
	for _, c := range cases {
		got, _ := ToggleHeading(c.text, Selection{}, c.level)
		if got != c.want {
			t.Errorf("ToggleHeading(%q, %d) = %q, want %q", c.text, c.level, got, c.want)
		}
	}
}

func TestToggleHeadingSelection(t *testing.T) {
	got, sel := ToggleHeading("title", Selection{}, 2)
	if got != "## title" {
		t.Errorf("text = %q", got)
	}
	if sel != (Selection{Start: 0, Length: 8}) {
		t.Errorf("sel = %+v, want the full rewritten line", sel)
	}
}

func TestToggleUnorderedList(t *testing.T) {
	cases := []struct{ text, want string }{
		{"item", "- item"},
		{"- item", "item"},
		{"1. item", "- item"},
		{"  3. item", "  - item"},
	}
	for _, c := range cases {
		if got, _ := ToggleUnorderedList(c.text, Selection{}); got != c.want {
			t.Errorf("ToggleUnorderedList(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestToggleOrderedList(t *testing.T) {
	cases := []struct{ text, want string }{
		{"item", "1. item"},
		{"1. item", "item"},
		{"- item", "1. item"},
	}
	for _, c := range cases {
		if got, _ := ToggleOrderedList(c.text, Selection{}); got != c.want {
			t.Errorf("ToggleOrderedList(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestToggleQuote(t *testing.T) {
	cases := []struct{ text, want string }{
		{"line", "> line"},
		{"> line", "line"},
		{">tight", "tight"},
	}
	for _, c := range cases {
		if got, _ := ToggleQuote(c.text, Selection{}); got != c.want {
			t.Errorf("ToggleQuote(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestToggleSpansSelectedLines(t *testing.T) {
	got, sel := ToggleUnorderedList("alpha\nbeta\ngamma", Selection{Start: 0, Length: 8})
	if got != "- alpha\n- beta\ngamma" {
		t.Errorf("text = %q", got)
	}
	if sel != (Selection{Start: 0, Length: 14}) {
		t.Errorf("sel = %+v", sel)
	}
}

func TestToggleCaretTouchesOwnLine(t *testing.T) {
	got, _ := ToggleQuote("alpha\nbeta", Selection{Start: 7})
	if got != "alpha\n> beta" {
		t.Errorf("text = %q", got)
	}
}

func TestToggleClampsSelection(t *testing.T) {
	got, _ := ToggleQuote("alpha", Selection{Start: 100, Length: 100})
	if got != "> alpha" {
		t.Errorf("text = %q", got)
	}
}
