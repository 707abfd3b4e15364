package render

import (
	_ "embed"
	"strings"
)

//go:embed page.html
var pageTemplate string

// Shell returns the empty HTML page shell served on the initial connection;
// content arrives over the WebSocket afterwards.
func Shell() string {
	return strings.Replace(pageTemplate, "{{CONTENT}}", "", 1)
}

// Page returns a complete HTML page with the rendered fragment inlined, for
// hosts without a WebSocket round trip.
func Page(source string) string {
	return WrapPage(RenderHTML(source))
}

// WrapPage inlines an already rendered fragment into the page shell.
func WrapPage(fragment string) string {
	return strings.Replace(pageTemplate, "{{CONTENT}}", fragment, 1)
}
