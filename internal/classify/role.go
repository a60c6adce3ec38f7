package classify

import (
	"regexp"
	"strings"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/model"
)

// heightWeightRe matches player-card stat lines like `6'2" 210 lbs`.
var heightWeightRe = regexp.MustCompile(`\d'\s?\d{1,2}"?\s+\d{2,3}\s*lbs`)

// RoleClassifier decides COACH/STAFF vs PLAYER vs UNCERTAIN.
//
// Precedence is fixed: roster contact signal, then explicit title
// keywords, then player position keywords, then bio physical markers,
// then the PLAYER default. Earlier builds of this tool disagreed on
// the ordering; this one is applied uniformly.
type RoleClassifier struct {
	h *config.Heuristics
}

// NewRoleClassifier creates a role classifier over the given tables.
func NewRoleClassifier(h *config.Heuristics) *RoleClassifier {
	return &RoleClassifier{h: h}
}

// Classify derives the role from the title and bio. master is the
// reconciled roster record when one matched; presence in the staff
// roster with contact info outweighs every text heuristic.
func (c *RoleClassifier) Classify(title, bio string, master *model.MasterRecord) model.Role {
	if master != nil && (master.Email != "" || master.Twitter != "") {
		return model.RoleCoachStaff
	}

	t := strings.ToLower(title)
	if strings.Contains(t, "coach") {
		return model.RoleCoachStaff
	}
	for _, kw := range c.h.StaffTitleKeywords {
		if strings.Contains(t, kw) {
			return model.RoleCoachStaff
		}
	}
	for _, kw := range c.h.PlayerPositionKeywords {
		if matchesKeyword(t, kw) {
			return model.RolePlayer
		}
	}

	b := strings.ToLower(bio)
	if len(b) > 5000 {
		b = b[:runeStart(b, 5000)]
	}
	for _, marker := range c.h.PlayerBioMarkers {
		if strings.Contains(b, marker) {
			return model.RolePlayer
		}
	}
	for _, year := range c.h.ClassYearWords {
		if strings.Contains(b, year) {
			return model.RolePlayer
		}
	}
	if heightWeightRe.MatchString(b) {
		return model.RolePlayer
	}

	// An explicit "Unknown" title with no other signal stays uncertain.
	if strings.TrimSpace(t) == "unknown" {
		return model.RoleUncertain
	}
	return model.RolePlayer
}

// matchesKeyword matches position abbreviations ("qb") as whole
// tokens so "qb" doesn't fire inside unrelated words, while longer
// phrases match as substrings.
func matchesKeyword(title, kw string) bool {
	if len(kw) > 2 {
		return strings.Contains(title, kw)
	}
	for _, tok := range strings.FieldsFunc(title, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if tok == kw {
			return true
		}
	}
	return false
}
