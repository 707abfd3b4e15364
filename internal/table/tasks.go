package table

import (
	"strings"

	"mdlive/internal/classify"
)

// ToggleTask flips the task checkbox with the given visible index: the
// 0-based ordinal of the task item among all task items in document order,
// skipping fenced-code interiors. Returns the updated text and whether a
// checkbox was flipped; an unmatched index leaves the text unchanged.
func ToggleTask(text string, visibleIndex int) (string, bool) {
	if visibleIndex < 0 {
		return text, false
	}
	lines := strings.Split(text, "\n")
	fenceOpen := false
	var fenceChar byte
	fenceLen := 0
	seen := 0

	for i, line := range lines {
		info := classify.Classify(line)
		if fenceOpen {
			if classify.ClosesFence(line, fenceChar, fenceLen) {
				fenceOpen = false
			}
			continue
		}
		if info.Kind == classify.Fence {
			fenceOpen = true
			fenceChar = info.FenceChar
			fenceLen = info.FenceLen
			continue
		}
		if info.Kind != classify.ListItem || !info.Task {
			continue
		}
		if seen != visibleIndex {
			seen++
			continue
		}
		flipped, ok := flipTaskBox(line)
		if !ok {
			return text, false
		}
		lines[i] = flipped
		return strings.Join(lines, "\n"), true
	}
	return text, false
}

// flipTaskBox locates the [ ]/[x]/[X] box after the list marker and inverts
// its mark.
func flipTaskBox(line string) (string, bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i >= len(line) {
		return "", false
	}
	switch line[i] {
	case '-', '+', '*':
		i++
	default:
		start := i
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
		if i == start || i >= len(line) || line[i] != '.' {
			return "", false
		}
		i++
	}
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i+2 >= len(line) || line[i] != '[' || line[i+2] != ']' {
		return "", false
	}
	mark := line[i+1]
	out := []byte(line)
	if mark == ' ' {
		out[i+1] = 'x'
	} else {
		out[i+1] = ' '
	}
	return string(out), true
}
