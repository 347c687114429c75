// Package textlayout measures, wraps and draws card text. Shadows are an
// explicit per-call parameter rather than shared drawing-surface state, so
// a forgotten reset cannot bleed a shadow into the next draw.
package textlayout

import (
	"strings"

	"golang.org/x/image/font"
)

// MeasureFunc returns the drawn width of s in pixels.
type MeasureFunc func(s string) float64

// FaceMeasure adapts a font.Face into a MeasureFunc.
func FaceMeasure(face font.Face) MeasureFunc {
	return func(s string) float64 {
		return float64(font.MeasureString(face, s).Ceil())
	}
}

// Wrap splits text into lines no wider than maxWidth using greedy
// line-fill. A single word wider than maxWidth is split with a trailing
// hyphen at the longest prefix that fits; if not even one rune fits, the
// word is kept whole on its own line (degraded output, not an error).
// Empty or whitespace-only text yields no lines.
func Wrap(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range words {
		if line == "" {
			line = startLine(word, maxWidth, measure, &lines)
			continue
		}
		tentative := line + " " + word
		if measure(tentative) < maxWidth {
			line = tentative
			continue
		}
		lines = append(lines, line)
		line = startLine(word, maxWidth, measure, &lines)
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// startLine opens a new line with word, emitting hyphenated prefix lines
// while the remainder is still too wide. Returns the word (or remainder)
// that begins the new line.
func startLine(word string, maxWidth float64, measure MeasureFunc, lines *[]string) string {
	for measure(word) > maxWidth {
		prefix := hyphenPrefix(word, maxWidth, measure)
		if prefix == "" {
			break
		}
		*lines = append(*lines, prefix+"-")
		word = word[len(prefix):]
	}
	return word
}

// hyphenPrefix returns the longest prefix of word such that prefix+"-"
// fits in maxWidth, or "" when no prefix fits.
func hyphenPrefix(word string, maxWidth float64, measure MeasureFunc) string {
	runes := []rune(word)
	for n := len(runes) - 1; n > 0; n-- {
		p := string(runes[:n])
		if measure(p+"-") <= maxWidth {
			return p
		}
	}
	return ""
}
