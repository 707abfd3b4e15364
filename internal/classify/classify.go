// Package classify assigns each source line a single syntactic kind.
//
// The classifier is the one place line-level markdown syntax is decided; the
// renderer and the edit-action resolver both consume its output instead of
// re-matching patterns. Classification is total: anything unrecognized is a
// paragraph.
package classify

import "strings"

// Kind is the syntactic role of a single line.
type Kind int

const (
	Blank Kind = iota
	Heading
	Quote
	Rule
	Fence
	TableRow
	ListItem
	Paragraph
)

// Line is the classification of one source line.
type Line struct {
	Kind   Kind
	Indent string // leading whitespace, verbatim

	// Heading
	Level int

	// ListItem
	Ordered bool
	Number  int    // ordered item number
	Bullet  string // "-", "+" or "*" for unordered items
	Task    bool
	Checked bool
	Mark    byte // ' ', 'x' or 'X' for task items

	// Quote: full nesting prefix as written, e.g. "> > ".
	QuotePrefix string

	// Fence
	FenceChar byte // '`' or '~'
	FenceLen  int
	Info      string // info string after the fence token

	// Content is the text after the recognized marker (heading text, item
	// text after any task box, quoted text, cell source for table rows).
	Content string
}

// Classify determines the kind of a single line. It never fails; lines that
// match nothing are paragraphs.
func Classify(line string) Line {
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]

	if strings.TrimSpace(line) == "" {
		return Line{Kind: Blank, Indent: indent}
	}

	if ch, n, info, ok := fenceToken(trimmed); ok {
		return Line{Kind: Fence, Indent: indent, FenceChar: ch, FenceLen: n, Info: info}
	}

	if level, text, ok := headingMarker(trimmed); ok {
		return Line{Kind: Heading, Indent: indent, Level: level, Content: text}
	}

	if strings.HasPrefix(trimmed, ">") {
		prefix, rest := quotePrefix(trimmed)
		return Line{Kind: Quote, Indent: indent, QuotePrefix: prefix, Content: rest}
	}

	if isRule(trimmed) {
		return Line{Kind: Rule, Indent: indent}
	}

	if IsTableRowLine(line) {
		return Line{Kind: TableRow, Indent: indent, Content: trimmed}
	}

	if item, ok := listMarker(trimmed); ok {
		item.Indent = indent
		return item
	}

	return Line{Kind: Paragraph, Indent: indent, Content: trimmed}
}

// fenceToken recognizes a code-fence line: a run of 3+ backticks or tildes.
// Returns the fence character, its length, and the trailing info string.
func fenceToken(trimmed string) (byte, int, string, bool) {
	if trimmed == "" {
		return 0, 0, "", false
	}
	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return 0, 0, "", false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, "", false
	}
	return ch, n, strings.TrimSpace(trimmed[n:]), true
}

// ClosesFence reports whether line closes a fence opened with openChar and
// openLen: same character, length at least the opening length.
func ClosesFence(line string, openChar byte, openLen int) bool {
	info := Classify(line)
	return info.Kind == Fence && info.FenceChar == openChar && info.FenceLen >= openLen && info.Info == ""
}

func headingMarker(trimmed string) (int, string, bool) {
	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	if n == 0 || n >= len(trimmed) || trimmed[n] != ' ' {
		return 0, "", false
	}
	return n, strings.TrimLeft(trimmed[n:], " "), true
}

// quotePrefix consumes the nesting prefix of a quote line: each level is a
// '>' optionally followed by one space.
func quotePrefix(trimmed string) (string, string) {
	i := 0
	for i < len(trimmed) && trimmed[i] == '>' {
		i++
		if i < len(trimmed) && trimmed[i] == ' ' {
			i++
		}
	}
	return trimmed[:i], trimmed[i:]
}

func isRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	ch := trimmed[0]
	if ch != '-' && ch != '*' && ch != '_' {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != ch {
			return false
		}
	}
	return true
}

// IsTableRowLine reports whether a line has table-like pipe context: a
// leading or trailing pipe, or a pipe surrounded by spaces. Plain prose that
// merely contains '|' does not qualify.
func IsTableRowLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") {
		return false
	}
	if strings.HasPrefix(trimmed, "|") || strings.HasSuffix(trimmed, "|") {
		return true
	}
	return strings.Contains(trimmed, " | ")
}

func listMarker(trimmed string) (Line, bool) {
	// Unordered: -, + or * followed by whitespace.
	if len(trimmed) >= 2 && (trimmed[0] == '-' || trimmed[0] == '+' || trimmed[0] == '*') &&
		(trimmed[1] == ' ' || trimmed[1] == '\t') {
		rest := strings.TrimLeft(trimmed[1:], " \t")
		item := Line{Kind: ListItem, Bullet: trimmed[:1], Content: rest}
		applyTaskBox(&item)
		return item, true
	}

	// Ordered: digits followed by a dot and whitespace.
	n := 0
	num := 0
	for n < len(trimmed) && trimmed[n] >= '0' && trimmed[n] <= '9' {
		num = num*10 + int(trimmed[n]-'0')
		n++
	}
	if n > 0 && n+1 < len(trimmed) && trimmed[n] == '.' &&
		(trimmed[n+1] == ' ' || trimmed[n+1] == '\t') {
		rest := strings.TrimLeft(trimmed[n+1:], " \t")
		item := Line{Kind: ListItem, Ordered: true, Number: num, Content: rest}
		applyTaskBox(&item)
		return item, true
	}

	return Line{}, false
}

// applyTaskBox strips a leading [ ]/[x]/[X] box from item content.
func applyTaskBox(item *Line) {
	c := item.Content
	if len(c) < 3 || c[0] != '[' || c[2] != ']' {
		return
	}
	mark := c[1]
	if mark != ' ' && mark != 'x' && mark != 'X' {
		return
	}
	if len(c) > 3 && c[3] != ' ' {
		return
	}
	item.Task = true
	item.Checked = mark != ' '
	item.Mark = mark
	item.Content = strings.TrimLeft(c[3:], " ")
}
