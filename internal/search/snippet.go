package search

import (
	"strings"
	"unicode/utf8"
)

// Snippet extracts a context window around the keyword's occurrence
// in the bio, preferring occurrences near biographical cue phrases so
// the exported cell reads like evidence rather than menu text.
func Snippet(text, keyword string, goldTerms []string, radius int) string {
	if text == "" || keyword == "" {
		return ""
	}

	clean := strings.NewReplacer("\n", " ", "\r", " ").Replace(text)
	lower := strings.ToLower(clean)
	kw := strings.ToLower(keyword)

	indices := keywordIndices(lower, kw)
	if len(indices) == 0 {
		end := runeFloor(clean, min(len(clean), 2*radius))
		return "..." + strings.TrimSpace(clean[:end]) + "..."
	}

	best := indices[0]
	for _, idx := range indices {
		if nearGoldTerm(lower, idx, len(kw), goldTerms) {
			best = idx
			break
		}
	}

	start := runeFloor(clean, max(0, best-radius))
	end := runeFloor(clean, min(len(clean), best+len(kw)+radius))
	return "..." + strings.TrimSpace(clean[start:end]) + "..."
}

// runeFloor walks i back to the nearest rune boundary so the window
// never slices a multibyte character in half.
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// keywordIndices returns every occurrence position, capped to keep
// pathological bios cheap.
func keywordIndices(lower, kw string) []int {
	var indices []int
	for from := 0; len(indices) < 32; {
		idx := strings.Index(lower[from:], kw)
		if idx < 0 {
			break
		}
		indices = append(indices, from+idx)
		from += idx + len(kw)
	}
	return indices
}

// nearGoldTerm reports whether any cue phrase sits within 60 chars of
// the keyword occurrence.
func nearGoldTerm(lower string, idx, kwLen int, goldTerms []string) bool {
	start := max(0, idx-60)
	end := min(len(lower), idx+kwLen+60)
	zone := lower[start:end]
	for _, term := range goldTerms {
		if strings.Contains(zone, term) {
			return true
		}
	}
	return false
}
