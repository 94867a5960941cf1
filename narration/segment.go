package narration

import (
	"strings"
	"unicode"
)

// Placeholder is spoken when a stop has no description text.
const Placeholder = "No description available."

// Segment splits free text into sentence-like narration units. A unit runs up
// to and including a terminator (`.`, `!` or `?`) that is followed by
// whitespace or the end of the text. Units are trimmed and empty units are
// dropped. Text without a terminator is a single unit; empty or
// whitespace-only text yields exactly one Placeholder unit.
func Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{Placeholder}
	}

	var units []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			// Mid-word punctuation, a decimal point or a run like "?!"
			// whose boundary is the final mark.
			continue
		}
		if unit := strings.TrimSpace(string(runes[start : i+1])); unit != "" {
			units = append(units, unit)
		}
		start = i + 1
	}

	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		units = append(units, rest)
	}

	if len(units) == 0 {
		return []string{Placeholder}
	}
	return units
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
