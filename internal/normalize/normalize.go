// Package normalize derives canonical comparison keys from scraped
// name and school strings. Keys are for lookup only, never display.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultStopWords are the tokens stripped from school/name strings
// before key comparison. Stripping is substring-based, not word-based:
// a school containing a stop-word inside another word is truncated too.
// The corpus heuristics are tuned to that behavior, so it stays.
var DefaultStopWords = []string{
	"university", "univ", "college", "state", "the", "of",
	"athletics", "inst", "tech", "a&m",
}

// Normalizer produces lookup keys with an injected stop-word list.
type Normalizer struct {
	stopWords []string
}

// New creates a Normalizer. A nil or empty list falls back to
// DefaultStopWords.
func New(stopWords []string) *Normalizer {
	if len(stopWords) == 0 {
		stopWords = DefaultStopWords
	}
	return &Normalizer{stopWords: stopWords}
}

// foldTransformer decomposes accented characters and drops the
// combining marks, so "José" and "Jose" share a key.
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// smartPunct maps typographic punctuation back to ASCII before the
// alphanumeric filter runs.
var smartPunct = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
)

// Key canonicalizes s into a comparison key: fold diacritics, lower,
// strip stop-words, keep only a-z0-9. Total and deterministic; empty
// or placeholder input yields "".
func (n *Normalizer) Key(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}

	if folded, _, err := transform.String(foldTransformer, s); err == nil {
		s = folded
	}
	s = smartPunct.Replace(s)
	s = strings.ToLower(s)

	for _, word := range n.stopWords {
		s = strings.ReplaceAll(s, word, "")
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LastName returns the final whitespace-separated token of a display
// name, or "" when the name is empty.
func LastName(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
