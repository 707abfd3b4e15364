// Package render projects markdown source into its display form: a styled
// run list per source line, or an HTML fragment for the web preview surface.
//
// The renderer is a single pass over the lines with one in-code flag and one
// table lookahead; every source line produces exactly one rendered line, so
// the projection can be diffed line-for-line against host edits.
package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"mdlive/internal/classify"
	"mdlive/internal/table"
)

const ruleWidth = 40

// Render produces the styled-run projection of source, one Line per source
// line.
func Render(source string) []Line {
	lines := strings.Split(source, "\n")
	out := make([]Line, 0, len(lines))

	inCode := false
	var fenceChar byte
	fenceLen := 0
	prevKind := LineBlank

	i := 0
	for i < len(lines) {
		raw := lines[i]

		if inCode {
			if classify.ClosesFence(raw, fenceChar, fenceLen) {
				inCode = false
				out = append(out, fenceDelimiterLine(raw))
			} else {
				out = append(out, codeLine(raw))
			}
			prevKind = LineCode
			i++
			continue
		}

		info := classify.Classify(raw)
		switch info.Kind {
		case classify.Fence:
			inCode = true
			fenceChar = info.FenceChar
			fenceLen = info.FenceLen
			out = append(out, fenceDelimiterLine(raw))
			prevKind = LineCode

		case classify.Blank:
			out = append(out, Line{Kind: LineBlank, Spans: []Span{{Style: baseStyle()}}})
			prevKind = LineBlank

		case classify.Heading:
			out = append(out, Line{
				Kind:       LineHeading,
				Spans:      InlineSpans(info.Content, headingStyle(info.Level)),
				GroupStart: true,
			})
			prevKind = LineHeading

		case classify.Quote:
			st := baseStyle()
			st.Fg = ColorSecondary
			spans := []Span{{Text: "▌ ", Style: Style{Scale: 1.0, Fg: ColorSecondary}}}
			spans = append(spans, InlineSpans(info.Content, st)...)
			out = append(out, Line{Kind: LineQuote, Spans: spans, GroupStart: prevKind != LineQuote})
			prevKind = LineQuote

		case classify.Rule:
			out = append(out, Line{
				Kind:       LineRule,
				Spans:      []Span{{Text: strings.Repeat("─", ruleWidth), Style: Style{Scale: 1.0, Fg: ColorRule}}},
				GroupStart: true,
			})
			prevKind = LineRule

		case classify.TableRow:
			if blk, consumed, ok := table.Parse(lines, i); ok {
				grid := renderTableGrid(blk)
				for g, gl := range grid {
					gl.GroupStart = g == 0 && prevKind != LineTable
					out = append(out, gl)
				}
				prevKind = LineTable
				i += consumed
				continue
			}
			// No valid separator follows: plain paragraph.
			out = append(out, paragraphLine(raw, prevKind))
			prevKind = LineParagraph

		case classify.ListItem:
			out = append(out, listItemLine(info, prevKind != LineList))
			prevKind = LineList

		default:
			// Indented text after a list item continues the previous item.
			if prevKind == LineList && info.Indent != "" {
				st := baseStyle()
				spans := []Span{{Text: info.Indent + "  ", Style: st}}
				spans = append(spans, InlineSpans(info.Content, st)...)
				out = append(out, Line{Kind: LineList, Spans: spans})
				prevKind = LineList
				break
			}
			out = append(out, paragraphLine(raw, prevKind))
			prevKind = LineParagraph
		}
		i++
	}

	return out
}

func paragraphLine(raw string, prevKind LineKind) Line {
	return Line{
		Kind:       LineParagraph,
		Spans:      InlineSpans(raw, baseStyle()),
		GroupStart: prevKind != LineParagraph,
	}
}

func codeLine(raw string) Line {
	st := baseStyle()
	st.Code = true
	st.Bg = ColorCodeBg
	return Line{Kind: LineCode, Spans: []Span{{Text: raw, Style: st}}}
}

func fenceDelimiterLine(raw string) Line {
	st := baseStyle()
	st.Code = true
	st.Fg = ColorSecondary
	st.Bg = ColorCodeBg
	return Line{Kind: LineCode, Spans: []Span{{Text: raw, Style: st}}}
}

func listItemLine(info classify.Line, groupStart bool) Line {
	st := baseStyle()
	marker := info.Indent
	if info.Ordered {
		marker += strconv.Itoa(info.Number) + ". "
	} else {
		marker += "• "
	}
	spans := []Span{{Text: marker, Style: Style{Scale: 1.0, Fg: ColorSecondary}}}
	if info.Task {
		spans = append(spans, Span{Text: taskGlyph(info.Mark) + " ", Style: st})
	}
	spans = append(spans, InlineSpans(info.Content, st)...)
	return Line{Kind: LineList, Spans: spans, GroupStart: groupStart}
}

// taskGlyph maps the checkbox mark to its tri-state glyph.
func taskGlyph(mark byte) string {
	switch mark {
	case 'x':
		return "☑"
	case 'X':
		return "☒"
	default:
		return "☐"
	}
}

// renderTableGrid lays a table block out as an aligned monospace grid, one
// rendered line per source row.
func renderTableGrid(blk table.Block) []Line {
	widths := blk.ColumnWidths()

	mono := baseStyle()
	mono.Code = true
	header := mono
	header.Bold = true

	lines := make([]Line, 0, 2+len(blk.Body))
	lines = append(lines, Line{Kind: LineTable, Spans: []Span{{Text: gridRow(blk.PaddedCells(blk.Header), widths, blk), Style: header}}})

	var sep strings.Builder
	sep.WriteByte('|')
	for _, w := range widths {
		sep.WriteString(strings.Repeat("-", w+2))
		sep.WriteByte('|')
	}
	sepStyle := mono
	sepStyle.Fg = ColorSecondary
	lines = append(lines, Line{Kind: LineTable, Spans: []Span{{Text: sep.String(), Style: sepStyle}}})

	for _, row := range blk.Body {
		lines = append(lines, Line{Kind: LineTable, Spans: []Span{{Text: gridRow(blk.PaddedCells(row), widths, blk), Style: mono}}})
	}
	return lines
}

func gridRow(cells []string, widths []int, blk table.Block) string {
	var b strings.Builder
	b.WriteString("| ")
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(padCell(cell, widths[i], blk.Align(i)))
	}
	b.WriteString(" |")
	return b.String()
}

func padCell(cell string, width int, align table.Alignment) string {
	gap := width - runewidth.StringWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch align {
	case table.AlignRight:
		return strings.Repeat(" ", gap) + cell
	case table.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}
