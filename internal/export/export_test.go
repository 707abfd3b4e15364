package export

import (
	"strings"
	"testing"
)

func TestPageRendersDocument(t *testing.T) {
	e := New()
	src := "# Title\n\n- [x] done\n- [ ] open\n\n| a | b |\n| --- | --- |\n| 1 | 2 |"
	html, err := e.Page([]byte(src))
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Title") {
		t.Error("missing heading")
	}
	if !strings.Contains(html, "checkbox") {
		t.Error("missing task checkboxes")
	}
	if !strings.Contains(html, "<table") {
		t.Error("missing table")
	}
	if !strings.HasPrefix(html, "<!DOCTYPE html>") && !strings.Contains(html, "<html") {
		t.Error("fragment not wrapped in a full page")
	}
}

func TestPageHighlightsFences(t *testing.T) {
	e := New()
	page, err := e.Page([]byte("```go\nfunc main() {}\n```"))
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(page, "pre") {
		t.Error("missing code block")
	}
}
