// Package table models markdown tables: rows, separators, alignments and the
// assembly of header + separator + body into a renderable block.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"mdlive/internal/classify"
)

// Alignment is a column alignment selected by separator colons.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Row is a parsed table row line.
type Row struct {
	Indent      string
	Cells       []string
	IsSeparator bool
	IsAllEmpty  bool
}

// ParseRow parses a line as a table row. The line must have table-like pipe
// context and yield at least two cells.
func ParseRow(line string) (Row, bool) {
	if !classify.IsTableRowLine(line) {
		return Row{}, false
	}
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	trimmed = strings.TrimRight(trimmed, " \t")

	inner := strings.TrimPrefix(trimmed, "|")
	inner = strings.TrimSuffix(inner, "|")
	parts := strings.Split(inner, "|")
	if len(parts) < 2 {
		return Row{}, false
	}

	row := Row{Indent: indent, Cells: make([]string, len(parts)), IsSeparator: true, IsAllEmpty: true}
	for i, p := range parts {
		cell := strings.TrimSpace(p)
		row.Cells[i] = cell
		if cell != "" {
			row.IsAllEmpty = false
		}
		if !isSeparatorCell(cell) {
			row.IsSeparator = false
		}
	}
	return row, true
}

// isSeparatorCell accepts an optional leading colon, three or more dashes,
// and an optional trailing colon.
func isSeparatorCell(cell string) bool {
	s := strings.TrimPrefix(cell, ":")
	s = strings.TrimSuffix(s, ":")
	if len(s) < 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			return false
		}
	}
	return true
}

// CellAlignment maps a separator cell to its column alignment.
func CellAlignment(cell string) Alignment {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	case left:
		return AlignLeft
	default:
		return AlignNone
	}
}

// EmptyRowTemplate builds an all-empty row with the given column count and
// leading indent, e.g. "|  |  |" for two columns.
func EmptyRowTemplate(columns int, indent string) string {
	if columns < 1 {
		columns = 1
	}
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString("|")
	for i := 0; i < columns; i++ {
		b.WriteString("  |")
	}
	return b.String()
}

// Block is a full table: header row, valid separator, and body rows.
type Block struct {
	Header     Row
	Alignments []Alignment
	Body       []Row
	Columns    int
}

// Parse assembles a table block starting at lines[start]. It requires a
// header row immediately followed by a valid separator row, then consumes
// contiguous table rows until a fence line or a non-table line. Returns the
// number of lines consumed.
func Parse(lines []string, start int) (Block, int, bool) {
	if start+1 >= len(lines) {
		return Block{}, 0, false
	}
	header, ok := ParseRow(lines[start])
	if !ok || header.IsSeparator {
		return Block{}, 0, false
	}
	sep, ok := ParseRow(lines[start+1])
	if !ok || !sep.IsSeparator {
		return Block{}, 0, false
	}

	blk := Block{Header: header, Columns: len(header.Cells)}
	for _, cell := range sep.Cells {
		blk.Alignments = append(blk.Alignments, CellAlignment(cell))
	}
	if len(sep.Cells) > blk.Columns {
		blk.Columns = len(sep.Cells)
	}

	consumed := 2
	for i := start + 2; i < len(lines); i++ {
		if classify.Classify(lines[i]).Kind == classify.Fence {
			break
		}
		row, ok := ParseRow(lines[i])
		if !ok {
			break
		}
		if len(row.Cells) > blk.Columns {
			blk.Columns = len(row.Cells)
		}
		blk.Body = append(blk.Body, row)
		consumed++
	}
	return blk, consumed, true
}

// PaddedCells right-pads a row's cells to the block's column count.
func (b Block) PaddedCells(r Row) []string {
	cells := make([]string, b.Columns)
	copy(cells, r.Cells)
	return cells
}

// ColumnWidths returns the display width of each column: the widest cell
// content across header and body, minimum 3.
func (b Block) ColumnWidths() []int {
	widths := make([]int, b.Columns)
	for i := range widths {
		widths[i] = 3
	}
	measure := func(r Row) {
		for i, cell := range r.Cells {
			if i >= b.Columns {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(b.Header)
	for _, r := range b.Body {
		measure(r)
	}
	return widths
}

// Align returns the alignment for column i, AlignNone when the separator had
// fewer cells.
func (b Block) Align(i int) Alignment {
	if i < len(b.Alignments) {
		return b.Alignments[i]
	}
	return AlignNone
}
