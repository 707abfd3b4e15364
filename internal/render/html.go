package render

import (
	"fmt"
	"strconv"
	"strings"

	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"

	"mdlive/internal/classify"
	"mdlive/internal/table"
)

// RenderHTML produces the HTML fragment form of the projection. Literal text
// is escaped before inline substitution; consecutive list, quote and table
// lines are grouped into single elements; task checkboxes carry their visible
// index in a data attribute.
func RenderHTML(source string) string {
	lines := strings.Split(source, "\n")
	var b strings.Builder

	taskIndex := 0
	i := 0
	for i < len(lines) {
		info := classify.Classify(lines[i])
		switch info.Kind {
		case classify.Blank:
			i++

		case classify.Fence:
			i = writeCodeBlock(&b, lines, i, info)

		case classify.Heading:
			level := info.Level
			if level > 6 {
				level = 6
			}
			fmt.Fprintf(&b, "<h%d%s>%s</h%d>\n", level, lineAttr(i), inlineHTML(info.Content), level)
			i++

		case classify.Rule:
			fmt.Fprintf(&b, "<hr%s>\n", lineAttr(i))
			i++

		case classify.Quote:
			i = writeQuoteGroup(&b, lines, i)

		case classify.TableRow:
			if blk, consumed, ok := table.Parse(lines, i); ok {
				writeTable(&b, blk, i)
				i += consumed
				break
			}
			fmt.Fprintf(&b, "<p%s>%s</p>\n", lineAttr(i), inlineHTML(lines[i]))
			i++

		case classify.ListItem:
			i = writeListGroup(&b, lines, i, &taskIndex)

		default:
			fmt.Fprintf(&b, "<p%s>%s</p>\n", lineAttr(i), inlineHTML(lines[i]))
			i++
		}
	}
	return b.String()
}

// escapeHTML escapes the characters that are markup-significant in literal
// text and attribute values.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// inlineHTML escapes text and then applies the inline precedence passes,
// emitting one element per styled span.
func inlineHTML(text string) string {
	spans := InlineSpans(escapeHTML(text), baseStyle())
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(spanHTML(s))
	}
	return b.String()
}

func spanHTML(s Span) string {
	out := s.Text
	switch {
	case s.Style.Code:
		out = "<code>" + out + "</code>"
	case s.Style.Link:
		out = `<a href="` + s.Style.URL + `">` + out + "</a>"
	case s.Style.Bold:
		out = "<strong>" + out + "</strong>"
	case s.Style.Italic:
		out = "<em>" + out + "</em>"
	case s.Style.Strike:
		out = "<del>" + out + "</del>"
	}
	return out
}

// writeCodeBlock consumes a fenced region and emits highlighted HTML.
// Returns the index of the line after the closing fence (or end of input for
// an unterminated fence).
func writeCodeBlock(b *strings.Builder, lines []string, start int, open classify.Line) int {
	i := start + 1
	var code []string
	for i < len(lines) && !classify.ClosesFence(lines[i], open.FenceChar, open.FenceLen) {
		code = append(code, lines[i])
		i++
	}
	if i < len(lines) {
		i++ // closing fence
	}
	fmt.Fprintf(b, "<div%s>\n", lineAttr(start))
	writeHighlighted(b, strings.Join(code, "\n"), open.Info)
	b.WriteString("</div>\n")
	return i
}

// lineAttr tags an element with the 1-based source line it starts on, for
// preview cursor sync.
func lineAttr(lineIndex int) string {
	return fmt.Sprintf(" data-md-line=%q", strconv.Itoa(lineIndex+1))
}

// writeHighlighted renders a code block through chroma with inline styles so
// the fragment stays self-contained; unknown languages fall back to a plain
// escaped block.
func writeHighlighted(b *strings.Builder, code, lang string) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		fmt.Fprintf(b, "<pre><code>%s</code></pre>\n", escapeHTML(code))
		return
	}
	formatter := chromahtml.New(chromahtml.PreventSurroundingPre(false))
	chromaStyle := styles.Get("github")
	if chromaStyle == nil {
		chromaStyle = styles.Fallback
	}
	if err := formatter.Format(b, chromaStyle, iterator); err != nil {
		fmt.Fprintf(b, "<pre><code>%s</code></pre>\n", escapeHTML(code))
		return
	}
	b.WriteString("\n")
}

func writeQuoteGroup(b *strings.Builder, lines []string, start int) int {
	fmt.Fprintf(b, "<blockquote%s>\n", lineAttr(start))
	i := start
	for i < len(lines) {
		info := classify.Classify(lines[i])
		if info.Kind != classify.Quote {
			break
		}
		fmt.Fprintf(b, "<p>%s</p>\n", inlineHTML(info.Content))
		i++
	}
	b.WriteString("</blockquote>\n")
	return i
}

// writeListGroup consumes contiguous list lines (plus indented continuation
// lines) and emits one list element. Switching between ordered and unordered
// closes the group.
func writeListGroup(b *strings.Builder, lines []string, start int, taskIndex *int) int {
	first := classify.Classify(lines[start])
	tag := "ul"
	if first.Ordered {
		tag = "ol"
	}
	fmt.Fprintf(b, "<%s%s>\n", tag, lineAttr(start))

	i := start
	open := false
	for i < len(lines) {
		info := classify.Classify(lines[i])
		if info.Kind == classify.ListItem && info.Ordered == first.Ordered {
			if open {
				b.WriteString("</li>\n")
			}
			b.WriteString("<li>")
			if info.Task {
				checked := ""
				if info.Checked {
					checked = " checked"
				}
				fmt.Fprintf(b, `<input type="checkbox"%s data-task-index="%d"> `, checked, *taskIndex)
				*taskIndex = *taskIndex + 1
			}
			b.WriteString(inlineHTML(info.Content))
			open = true
			i++
			continue
		}
		// Indented non-list text continues the previous item.
		if open && info.Kind == classify.Paragraph && info.Indent != "" {
			b.WriteString(" " + inlineHTML(info.Content))
			i++
			continue
		}
		break
	}
	if open {
		b.WriteString("</li>\n")
	}
	fmt.Fprintf(b, "</%s>\n", tag)
	return i
}

func writeTable(b *strings.Builder, blk table.Block, start int) {
	fmt.Fprintf(b, "<table%s>\n<thead>\n<tr>", lineAttr(start))
	for i, cell := range blk.PaddedCells(blk.Header) {
		fmt.Fprintf(b, "<th%s>%s</th>", alignAttr(blk.Align(i)), inlineHTML(cell))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range blk.Body {
		b.WriteString("<tr>")
		for i, cell := range blk.PaddedCells(row) {
			fmt.Fprintf(b, "<td%s>%s</td>", alignAttr(blk.Align(i)), inlineHTML(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
}

func alignAttr(a table.Alignment) string {
	switch a {
	case table.AlignLeft:
		return ` style="text-align:left"`
	case table.AlignCenter:
		return ` style="text-align:center"`
	case table.AlignRight:
		return ` style="text-align:right"`
	default:
		return ""
	}
}
