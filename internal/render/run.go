package render

// ColorToken names a host-mapped color. The core never deals in concrete
// colors; the host resolves tokens against its theme.
type ColorToken string

const (
	ColorDefault   ColorToken = ""
	ColorSecondary ColorToken = "secondary"
	ColorLink      ColorToken = "link"
	ColorCodeBg    ColorToken = "code-bg"
	ColorRule      ColorToken = "rule"
)

// Style is the visual attribute set for one run of text.
type Style struct {
	Bold   bool
	Italic bool
	Strike bool
	Code   bool // monospace
	Link   bool
	URL    string

	// Scale is a size multiplier relative to body text (1.0).
	Scale float64

	Fg ColorToken
	Bg ColorToken
}

// Span is a run of text with uniform style.
type Span struct {
	Text  string
	Style Style
}

// LineKind tags the rendered role of a source line, used by the host for
// spacing and grouping decisions.
type LineKind int

const (
	LineBlank LineKind = iota
	LineParagraph
	LineHeading
	LineQuote
	LineList
	LineCode
	LineTable
	LineRule
)

// Line is the rendered projection of exactly one source line.
type Line struct {
	Kind  LineKind
	Spans []Span

	// GroupStart marks the first line of a contiguous quote, list or table
	// group; the host inserts paragraph spacing only before group starts.
	GroupStart bool
}

func baseStyle() Style {
	return Style{Scale: 1.0}
}

// headingScales maps heading level 1-6 to a size multiplier; deeper levels
// clamp to the last entry.
var headingScales = [6]float64{2.0, 1.5, 1.25, 1.12, 1.0, 0.9}

func headingStyle(level int) Style {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Style{Bold: true, Scale: headingScales[level-1]}
}
