package render

import "testing"

func flatten(spans []Span) string {
	s := ""
	for _, sp := range spans {
		s += sp.Text
	}
	return s
}

func TestInlineSpansPlain(t *testing.T) {
	spans := InlineSpans("plain text", baseStyle())
	if len(spans) != 1 || spans[0].Text != "plain text" {
		t.Errorf("spans = %+v", spans)
	}
	if spans[0].Style.Bold || spans[0].Style.Code {
		t.Errorf("plain text picked up styling: %+v", spans[0].Style)
	}
}

func TestInlineSpansBold(t *testing.T) {
	spans := InlineSpans("a **b** c", baseStyle())
	if len(spans) != 3 {
		t.Fatalf("spans = %+v", spans)
	}
	if spans[1].Text != "b" || !spans[1].Style.Bold {
		t.Errorf("bold span = %+v", spans[1])
	}
	if flatten(spans) != "a b c" {
		t.Errorf("flattened = %q", flatten(spans))
	}
}

func TestInlineSpansUnderscoreBold(t *testing.T) {
	spans := InlineSpans("__strong__", baseStyle())
	if len(spans) != 1 || spans[0].Text != "strong" || !spans[0].Style.Bold {
		t.Errorf("spans = %+v", spans)
	}
}

func TestInlineSpansItalicSkipsBoldMarkers(t *testing.T) {
	spans := InlineSpans("**bold** and *em*", baseStyle())
	var bold, italic int
	for _, sp := range spans {
		if sp.Style.Bold {
			bold++
		}
		if sp.Style.Italic {
			italic++
			if sp.Text != "em" {
				t.Errorf("italic span text = %q", sp.Text)
			}
		}
	}
	if bold != 1 || italic != 1 {
		t.Errorf("bold=%d italic=%d spans=%+v", bold, italic, spans)
	}
}

func TestInlineSpansCodeWinsOverBold(t *testing.T) {
	spans := InlineSpans("`**not bold**`", baseStyle())
	if len(spans) != 1 {
		t.Fatalf("spans = %+v", spans)
	}
	if !spans[0].Style.Code || spans[0].Style.Bold {
		t.Errorf("span = %+v, want code style untouched by the bold pass", spans[0])
	}
	if spans[0].Text != "**not bold**" {
		t.Errorf("text = %q", spans[0].Text)
	}
}

func TestInlineSpansLink(t *testing.T) {
	spans := InlineSpans("see [docs](https://example.com) here", baseStyle())
	if len(spans) != 3 {
		t.Fatalf("spans = %+v", spans)
	}
	link := spans[1]
	if !link.Style.Link || link.Text != "docs" || link.Style.URL != "https://example.com" {
		t.Errorf("link span = %+v", link)
	}
}

func TestInlineSpansStrike(t *testing.T) {
	spans := InlineSpans("~~old~~ new", baseStyle())
	if len(spans) != 2 || !spans[0].Style.Strike || spans[0].Text != "old" {
		t.Errorf("spans = %+v", spans)
	}
}

func TestInlineSpansUnterminatedMarkers(t *testing.T) {
	for _, text := range []string{"**open", "`tick", "[label](open", "*star"} {
		spans := InlineSpans(text, baseStyle())
		if flatten(spans) != text {
			t.Errorf("InlineSpans(%q) flattened = %q, want literal text", text, flatten(spans))
		}
	}
}

func TestInlineSpansEmptyLine(t *testing.T) {
	spans := InlineSpans("", baseStyle())
	if len(spans) != 1 || spans[0].Text != "" {
		t.Errorf("spans = %+v, want one empty base span", spans)
	}
}
