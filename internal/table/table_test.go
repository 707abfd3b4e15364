package table

import (
	"reflect"
	"testing"
)

func TestParseRow(t *testing.T) {
	row, ok := ParseRow("| Name | Value |")
	if !ok {
		t.Fatal("ParseRow rejected a plain row")
	}
	if !reflect.DeepEqual(row.Cells, []string{"Name", "Value"}) {
		t.Errorf("Cells = %q", row.Cells)
	}
	if row.IsSeparator || row.IsAllEmpty {
		t.Errorf("flags = sep %v empty %v, want false/false", row.IsSeparator, row.IsAllEmpty)
	}
}

func TestParseRowIndent(t *testing.T) {
	row, ok := ParseRow("  | a | b |")
	if !ok {
		t.Fatal("ParseRow rejected an indented row")
	}
	if row.Indent != "  " {
		t.Errorf("Indent = %q", row.Indent)
	}
}

func TestParseRowRejectsNonRows(t *testing.T) {
	for _, line := range []string{"plain", "no|context", "| single |", ""} {
		if _, ok := ParseRow(line); ok {
			t.Errorf("ParseRow(%q) accepted, want reject", line)
		}
	}
}

func TestParseRowSeparator(t *testing.T) {
	cases := []struct {
		line string
		sep  bool
	}{
		{"| --- | --- |", true},
		{"| :--- | ---: |", true},
		{"| :---: | --- |", true},
		{"| -- | --- |", false},
		{"| --- | x |", false},
	}
	for _, c := range cases {
		row, ok := ParseRow(c.line)
		if !ok {
			t.Errorf("ParseRow(%q) rejected", c.line)
			continue
		}
		if row.IsSeparator != c.sep {
			t.Errorf("ParseRow(%q).IsSeparator = %v, want %v", c.line, row.IsSeparator, c.sep)
		}
	}
}

func TestParseRowAllEmpty(t *testing.T) {
	row, ok := ParseRow("|  |  |")
	if !ok || !row.IsAllEmpty {
		t.Errorf("ParseRow(\"|  |  |\") = %+v ok=%v, want all-empty row", row, ok)
	}
}

func TestCellAlignment(t *testing.T) {
	cases := []struct {
		cell string
		want Alignment
	}{
		{"---", AlignNone},
		{":---", AlignLeft},
		{"---:", AlignRight},
		{":---:", AlignCenter},
	}
	for _, c := range cases {
		if got := CellAlignment(c.cell); got != c.want {
			t.Errorf("CellAlignment(%q) = %v, want %v", c.cell, got, c.want)
		}
	}
}

func TestEmptyRowTemplate(t *testing.T) {
	if got := EmptyRowTemplate(2, ""); got != "|  |  |" {
		t.Errorf("EmptyRowTemplate(2) = %q", got)
	}
	if got := EmptyRowTemplate(3, "  "); got != "  |  |  |  |" {
		t.Errorf("EmptyRowTemplate(3, indent) = %q", got)
	}
	if got := EmptyRowTemplate(0, ""); got != "|  |" {
		t.Errorf("EmptyRowTemplate(0) = %q, want one column minimum", got)
	}
}

func TestParse(t *testing.T) {
	lines := []string{
		"| Name | Value |",
		"| :--- | ---: |",
		"| a | 1 |",
		"| b | 2 |",
		"tail",
	}
	blk, consumed, ok := Parse(lines, 0)
	if !ok {
		t.Fatal("Parse rejected a valid table")
	}
	if consumed != 4 {
		t.Errorf("consumed = %d, want 4", consumed)
	}
	if blk.Columns != 2 || len(blk.Body) != 2 {
		t.Errorf("Columns = %d, body = %d rows", blk.Columns, len(blk.Body))
	}
	if blk.Align(0) != AlignLeft || blk.Align(1) != AlignRight {
		t.Errorf("alignments = %v", blk.Alignments)
	}
}

func TestParseRequiresSeparator(t *testing.T) {
	lines := []string{"| Name | Value |", "| a | 1 |"}
	if _, _, ok := Parse(lines, 0); ok {
		t.Error("Parse accepted a table with no separator row")
	}
}

func TestParseStopsAtFence(t *testing.T) {
	lines := []string{
		"| a | b |",
		"| --- | --- |",
		"```",
		"| not | a row |",
	}
	_, consumed, ok := Parse(lines, 0)
	if !ok || consumed != 2 {
		t.Errorf("Parse consumed %d lines (ok=%v), want 2", consumed, ok)
	}
}

func TestColumnWidths(t *testing.T) {
	lines := []string{
		"| Name | V |",
		"| --- | --- |",
		"| longest cell | 1 |",
	}
	blk, _, ok := Parse(lines, 0)
	if !ok {
		t.Fatal("Parse rejected table")
	}
	widths := blk.ColumnWidths()
	if widths[0] != len("longest cell") {
		t.Errorf("widths[0] = %d", widths[0])
	}
	if widths[1] != 3 {
		t.Errorf("widths[1] = %d, want minimum 3", widths[1])
	}
}

func TestColumnWidthsWideRunes(t *testing.T) {
	lines := []string{
		"| 名前 | v |",
		"| --- | --- |",
	}
	blk, _, ok := Parse(lines, 0)
	if !ok {
		t.Fatal("Parse rejected table")
	}
	if w := blk.ColumnWidths()[0]; w != 4 {
		t.Errorf("width of CJK header = %d, want 4", w)
	}
}

func TestToggleTask(t *testing.T) {
	text := "- [ ] first\n- [x] second"
	got, ok := ToggleTask(text, 1)
	if !ok {
		t.Fatal("ToggleTask did not flip")
	}
	if got != "- [ ] first\n- [ ] second" {
		t.Errorf("ToggleTask = %q", got)
	}
	got, ok = ToggleTask(text, 0)
	if !ok || got != "- [x] first\n- [x] second" {
		t.Errorf("ToggleTask index 0 = %q (ok=%v)", got, ok)
	}
}

func TestToggleTaskSkipsFences(t *testing.T) {
	text := "```\n- [ ] fake\n```\n- [ ] real"
	got, ok := ToggleTask(text, 0)
	if !ok {
		t.Fatal("ToggleTask did not flip")
	}
	if got != "```\n- [ ] fake\n```\n- [x] real" {
		t.Errorf("ToggleTask = %q", got)
	}
}

func TestToggleTaskUppercaseMark(t *testing.T) {
	got, ok := ToggleTask("- [X] shouting", 0)
	if !ok || got != "- [ ] shouting" {
		t.Errorf("ToggleTask = %q (ok=%v)", got, ok)
	}
}

func TestToggleTaskOutOfRange(t *testing.T) {
	text := "- [ ] only"
	if got, ok := ToggleTask(text, 5); ok || got != text {
		t.Errorf("ToggleTask out of range = %q (ok=%v), want unchanged", got, ok)
	}
	if _, ok := ToggleTask(text, -1); ok {
		t.Error("negative index flipped a box")
	}
}
