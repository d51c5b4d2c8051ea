package render

import "strings"

// Measurer reports the rendered width of text in a given style.
type Measurer interface {
	TextWidth(style TextStyle, text string) float64
}

// Wrap breaks text into lines no wider than width. Words are kept in order
// and joined by single spaces; a word wider than width is split by rune.
func Wrap(m Measurer, style TextStyle, text string, width float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		if line != "" {
			if candidate := line + " " + word; m.TextWidth(style, candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = ""
		}
		if m.TextWidth(style, word) <= width {
			line = word
			continue
		}
		chunks := splitWord(m, style, word, width)
		lines = append(lines, chunks[:len(chunks)-1]...)
		line = chunks[len(chunks)-1]
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// splitWord cuts a single word into chunks that fit width. Every chunk holds
// at least one rune so a too-narrow width still terminates.
func splitWord(m Measurer, style TextStyle, word string, width float64) []string {
	runes := []rune(word)
	var chunks []string
	for start := 0; start < len(runes); {
		end := start + 1
		for end < len(runes) && m.TextWidth(style, string(runes[start:end+1])) <= width {
			end++
		}
		chunks = append(chunks, string(runes[start:end]))
		start = end
	}
	return chunks
}
