package render

import "strings"

// Inline markup is resolved in a fixed precedence order: inline code, links,
// bold, italic, strikethrough. Each pass scans only the still-unstyled
// segments of the line and replaces matches with styled segments, so a later
// pass never re-enters text an earlier pass claimed.

type segment struct {
	text   string
	styled bool
	style  Style
}

type matcher func(text string, base Style) (start, end int, styled segment, ok bool)

// InlineSpans resolves inline markup over one line of source text.
func InlineSpans(text string, base Style) []Span {
	segs := []segment{{text: text}}
	for _, m := range []matcher{matchCode, matchLink, matchBold, matchItalic, matchStrike} {
		segs = applyPass(segs, m, base)
	}

	var spans []Span
	for _, s := range segs {
		if s.text == "" && !s.styled {
			continue
		}
		if s.styled {
			spans = append(spans, Span{Text: s.text, Style: s.style})
		} else {
			spans = append(spans, Span{Text: s.text, Style: base})
		}
	}
	if spans == nil {
		spans = []Span{{Text: text, Style: base}}
	}
	return spans
}

func applyPass(segs []segment, match matcher, base Style) []segment {
	var out []segment
	for _, s := range segs {
		if s.styled {
			out = append(out, s)
			continue
		}
		rest := s.text
		for rest != "" {
			start, end, styled, ok := match(rest, base)
			if !ok {
				out = append(out, segment{text: rest})
				break
			}
			if start > 0 {
				out = append(out, segment{text: rest[:start]})
			}
			out = append(out, styled)
			rest = rest[end:]
		}
	}
	return out
}

func matchCode(text string, base Style) (int, int, segment, bool) {
	i := strings.IndexByte(text, '`')
	if i < 0 {
		return 0, 0, segment{}, false
	}
	j := strings.IndexByte(text[i+1:], '`')
	if j < 0 {
		return 0, 0, segment{}, false
	}
	st := base
	st.Code = true
	st.Bg = ColorCodeBg
	return i, i + j + 2, segment{text: text[i+1 : i+1+j], styled: true, style: st}, true
}

func matchLink(text string, base Style) (int, int, segment, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		c := strings.IndexByte(text[i:], ']')
		if c < 0 {
			return 0, 0, segment{}, false
		}
		closeBracket := i + c
		if closeBracket+1 >= len(text) || text[closeBracket+1] != '(' {
			continue
		}
		p := strings.IndexByte(text[closeBracket+2:], ')')
		if p < 0 {
			continue
		}
		st := base
		st.Link = true
		st.Fg = ColorLink
		st.URL = text[closeBracket+2 : closeBracket+2+p]
		label := text[i+1 : closeBracket]
		return i, closeBracket + 2 + p + 1, segment{text: label, styled: true, style: st}, true
	}
	return 0, 0, segment{}, false
}

func matchBold(text string, base Style) (int, int, segment, bool) {
	bestStart := -1
	var bestEnd int
	var bestInner string
	for _, delim := range []string{"**", "__"} {
		i := strings.Index(text, delim)
		if i < 0 {
			continue
		}
		j := strings.Index(text[i+2:], delim)
		if j < 0 {
			continue
		}
		if bestStart < 0 || i < bestStart {
			bestStart = i
			bestEnd = i + j + 4
			bestInner = text[i+2 : i+2+j]
		}
	}
	if bestStart < 0 {
		return 0, 0, segment{}, false
	}
	st := base
	st.Bold = true
	return bestStart, bestEnd, segment{text: bestInner, styled: true, style: st}, true
}

// matchItalic matches a single * or _ pair where neither delimiter is part
// of a doubled marker, so bold markers are never consumed.
func matchItalic(text string, base Style) (int, int, segment, bool) {
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '*' && ch != '_' {
			continue
		}
		if doubled(text, i) {
			continue
		}
		for j := i + 1; j < len(text); j++ {
			if text[j] == ch && !doubled(text, j) {
				st := base
				st.Italic = true
				return i, j + 1, segment{text: text[i+1 : j], styled: true, style: st}, true
			}
		}
	}
	return 0, 0, segment{}, false
}

func doubled(text string, i int) bool {
	ch := text[i]
	return (i > 0 && text[i-1] == ch) || (i+1 < len(text) && text[i+1] == ch)
}

func matchStrike(text string, base Style) (int, int, segment, bool) {
	i := strings.Index(text, "~~")
	if i < 0 {
		return 0, 0, segment{}, false
	}
	j := strings.Index(text[i+2:], "~~")
	if j < 0 {
		return 0, 0, segment{}, false
	}
	st := base
	st.Strike = true
	return i, i + j + 4, segment{text: text[i+2 : i+2+j], styled: true, style: st}, true
}
