package tui

import "strings"

// wrapLines splits runes at newlines and soft-wraps lines wider than width
// after the last space that fits. width <= 0 disables soft wrapping.
func wrapLines(runes []styledRune, width int) [][]styledRune {
	var lines [][]styledRune
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if item.isNewline {
			lines = append(lines, append(line, item))
			line = []styledRune{}
			lineWidth = 0
			lastSpaceIdx = -1
			i++
			continue
		}
		if width > 0 && lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 && lastSpaceIdx < len(line)-1 {
				lines = append(lines, line[:lastSpaceIdx+1])
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				lines = append(lines, line)
				line = []styledRune{}
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	return append(lines, line)
}

func renderLines(lines [][]styledRune) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteRune('\n')
		}
		for _, item := range line {
			b.WriteString(item.s)
		}
	}
	return b.String()
}

// cursorLine returns the index of the line holding the status span, or -1.
func cursorLine(lines [][]styledRune) int {
	for i, line := range lines {
		for _, item := range line {
			if item.cursor {
				return i
			}
		}
	}
	return -1
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
