package style

import (
	"strings"

	"mdlive/internal/classify"
	"mdlive/internal/textpos"
)

// ToggleHeading toggles a heading of the given level (1-6) on every line
// touched by the selection. A same-level heading is stripped; any other
// heading marker is replaced with the requested level.
func ToggleHeading(text string, sel Selection, level int) (string, Selection) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	marker := strings.Repeat("#", level) + " "
	return applyToLines(text, sel, func(line string) string {
		info := classify.Classify(line)
		if info.Kind == classify.Heading {
			if info.Level == level {
				return info.Indent + info.Content
			}
			return info.Indent + marker + info.Content
		}
		trimmed := strings.TrimLeft(line, " \t")
		return line[:len(line)-len(trimmed)] + marker + trimmed
	})
}

// ToggleUnorderedList toggles "- " list markers on the selected lines,
// converting ordered items in place.
func ToggleUnorderedList(text string, sel Selection) (string, Selection) {
	return applyToLines(text, sel, func(line string) string {
		indent, rest, ordered, ok := splitListPrefix(line)
		switch {
		case ok && ordered:
			return indent + "- " + rest
		case ok:
			return indent + rest
		default:
			trimmed := strings.TrimLeft(line, " \t")
			return line[:len(line)-len(trimmed)] + "- " + trimmed
		}
	})
}

// ToggleOrderedList toggles "1. " list markers on the selected lines,
// converting unordered items in place.
func ToggleOrderedList(text string, sel Selection) (string, Selection) {
	return applyToLines(text, sel, func(line string) string {
		indent, rest, ordered, ok := splitListPrefix(line)
		switch {
		case ok && !ordered:
			return indent + "1. " + rest
		case ok:
			return indent + rest
		default:
			trimmed := strings.TrimLeft(line, " \t")
			return line[:len(line)-len(trimmed)] + "1. " + trimmed
		}
	})
}

// ToggleQuote toggles one "> " level on the selected lines.
func ToggleQuote(text string, sel Selection) (string, Selection) {
	return applyToLines(text, sel, func(line string) string {
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]
		if strings.HasPrefix(trimmed, "> ") {
			return indent + trimmed[2:]
		}
		if strings.HasPrefix(trimmed, ">") {
			return indent + trimmed[1:]
		}
		return indent + "> " + trimmed
	})
}

// splitListPrefix splits a list item into indent, the raw content after the
// marker (task boxes included), and whether the marker was ordered.
func splitListPrefix(line string) (indent, rest string, ordered, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	indent = line[:len(line)-len(trimmed)]

	if len(trimmed) >= 2 && (trimmed[0] == '-' || trimmed[0] == '+' || trimmed[0] == '*') &&
		(trimmed[1] == ' ' || trimmed[1] == '\t') {
		return indent, strings.TrimLeft(trimmed[1:], " \t"), false, true
	}

	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(trimmed) && trimmed[i] == '.' &&
		(trimmed[i+1] == ' ' || trimmed[i+1] == '\t') {
		return indent, strings.TrimLeft(trimmed[i+1:], " \t"), true, true
	}
	return "", "", false, false
}

// applyToLines rewrites every line touched by the selection and returns the
// updated text with a selection spanning the full replacement region.
func applyToLines(text string, sel Selection, transform func(string) string) (string, Selection) {
	lines := strings.Split(text, "\n")
	first, last := touchedLines(lines, sel)

	regionStart := 0
	for i := 0; i < first; i++ {
		regionStart += textpos.Len16(lines[i]) + 1
	}

	for i := first; i <= last; i++ {
		lines[i] = transform(lines[i])
	}

	regionLen := 0
	for i := first; i <= last; i++ {
		if i > first {
			regionLen++
		}
		regionLen += textpos.Len16(lines[i])
	}

	return strings.Join(lines, "\n"), Selection{Start: regionStart, Length: regionLen}
}

// touchedLines returns the inclusive line range intersected by the
// selection; a caret touches only its own line.
func touchedLines(lines []string, sel Selection) (int, int) {
	total := 0
	for i, line := range lines {
		total += textpos.Len16(line)
		if i < len(lines)-1 {
			total++
		}
	}
	start := sel.Start
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	length := sel.Length
	if length < 0 {
		length = 0
	}
	end := start + length
	if end > total {
		end = total
	}

	first, last := 0, 0
	lineStart := 0
	for i, line := range lines {
		lineEnd := lineStart + textpos.Len16(line)
		if start >= lineStart && start <= lineEnd {
			first = i
		}
		if end >= lineStart && (end <= lineEnd || i == len(lines)-1) {
			last = i
			break
		}
		if i == len(lines)-1 {
			last = i
		}
		lineStart = lineEnd + 1
	}
	if last < first {
		last = first
	}
	return first, last
}
