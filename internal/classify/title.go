package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/model"
)

// fallbackStaffTitle replaces a generic coach/staff title when no
// concrete role phrase turns up in the bio.
const fallbackStaffTitle = "Football Staff"

// TitleCleaner rewrites export titles into readable coaching titles:
// scouting-report abbreviations expand to full position names, and
// generic titles on non-player rows are replaced by a concrete role
// hunted from the bio text.
type TitleCleaner struct {
	h *config.Heuristics
}

// NewTitleCleaner creates a title cleaner over the given tables.
func NewTitleCleaner(h *config.Heuristics) *TitleCleaner {
	return &TitleCleaner{h: h}
}

// Clean expands abbreviations, strips leading junk, and for a
// coach/staff row with a generic title scans the bio for the concrete
// role. Player titles are never hunted.
func (c *TitleCleaner) Clean(title, bio string, role model.Role) string {
	title = c.expand(title)
	title = strings.TrimLeftFunc(title, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	if role != model.RolePlayer && c.isGeneric(title) {
		title = c.hunt(bio)
	}
	return title
}

// expand rewrites whole words found in the abbreviation table
// ("COORD" -> "Coordinator"), ignoring case and trailing punctuation.
func (c *TitleCleaner) expand(title string) string {
	words := strings.Fields(title)
	if len(words) == 0 {
		return strings.TrimSpace(title)
	}

	punct := strings.NewReplacer(".", "", ",", "")
	for i, w := range words {
		key := punct.Replace(strings.ToUpper(w))
		if full, ok := c.h.TitleAbbreviations[key]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}

func (c *TitleCleaner) isGeneric(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return true
	}
	for _, g := range c.h.GenericTitles {
		if t == g {
			return true
		}
	}
	return false
}

// hunt scans the leading bio window for role phrases in table order.
func (c *TitleCleaner) hunt(bio string) string {
	zone := strings.ToLower(bio)
	if len(zone) > c.h.RoleHuntWindow {
		zone = zone[:runeStart(zone, c.h.RoleHuntWindow)]
	}
	for _, rh := range c.h.RoleHunts {
		if strings.Contains(zone, rh.Contains) {
			return rh.Title
		}
	}
	return fallbackStaffTitle
}

// runeStart walks i back to the nearest rune boundary so byte-window
// slicing never splits a multibyte character.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
