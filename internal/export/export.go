// Package export renders a document to a complete shareable HTML page.
//
// Unlike the live projection, which needs a strict one-line-to-one-node
// mapping, export favors fidelity: it runs the full GFM pipeline with alert
// callouts and syntax highlighting.
package export

import (
	"bytes"

	highlighting "github.com/yuin/goldmark-highlighting"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	alertcallouts "github.com/zmtcreative/gm-alert-callouts"

	"mdlive/internal/render"
)

// Exporter wraps a pre-configured goldmark pipeline.
type Exporter struct {
	md goldmark.Markdown
}

func New() *Exporter {
	md := goldmark.New(
		goldmark.WithExtensions(
			alertcallouts.AlertCallouts,
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
			extension.Linkify,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Exporter{md: md}
}

// Page converts markdown source and returns a self-contained HTML page.
func (e *Exporter) Page(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := e.md.Convert(source, &buf); err != nil {
		return "", err
	}
	return render.WrapPage(buf.String()), nil
}
