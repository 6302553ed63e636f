package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const maskRune = '•'

// maskText hides text behind one mask rune per character, capped at limit.
func maskText(text string, limit int) string {
	n := utf8.RuneCountInString(text)
	if limit > 0 && n > limit {
		n = limit
	}
	return strings.Repeat(string(maskRune), n)
}

// wrapText splits text into lines no wider than width cells, breaking after
// the last space when one fits on the line.
func wrapText(text string, width int) []string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return []string{text}
	}
	var lines []string
	line := make([]rune, 0, width)
	lineWidth := 0
	lastSpace := -1

	runes := []rune(text)
	for i := 0; i < len(runes); {
		r := runes[i]
		w := runewidth.RuneWidth(r)
		if lineWidth+w > width && len(line) > 0 {
			if lastSpace >= 0 {
				lines = append(lines, string(line[:lastSpace+1]))
				line = append([]rune{}, line[lastSpace+1:]...)
				lineWidth = runewidth.StringWidth(string(line))
				lastSpace = lastSpaceIndex(line)
			} else {
				lines = append(lines, string(line))
				line = line[:0]
				lineWidth = 0
				lastSpace = -1
			}
			continue
		}
		line = append(line, r)
		lineWidth += w
		if r == ' ' {
			lastSpace = len(line) - 1
		}
		i++
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

func lastSpaceIndex(line []rune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == ' ' {
			return i
		}
	}
	return -1
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
