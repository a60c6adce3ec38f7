// Package parser extracts a Name/Title/School candidate from the top
// of a scraped bio.
package parser

import (
	"strings"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/model"
)

// schoolMarkers flag a part that was positionally assigned to the
// title slot but is really the school name.
var schoolMarkers = []string{"university", "college", "athletics"}

// yearFragments detect roster-year leakage ("2024 Football Roster")
// into the title or school slot.
var yearFragments = []string{"202", "203"}

// Parser finds and splits the header line of a bio. Stateless apart
// from its injected heuristic tables.
type Parser struct {
	h *config.Heuristics

	// DefaultRole is the verdict when no header line is found.
	// The corpus tooling flip-flopped here; this build fixes it to
	// COACH_STAFF and applies it uniformly.
	DefaultRole model.Role
}

// New creates a Parser over the given heuristic tables.
func New(h *config.Heuristics) *Parser {
	return &Parser{h: h, DefaultRole: model.RoleCoachStaff}
}

// Parse extracts the header triple from raw bio text. Degenerate
// input yields an all-empty header carrying DefaultRole.
func (p *Parser) Parse(bio string) model.ParsedHeader {
	line, delim := p.findHeaderLine(bio)
	if line == "" {
		return model.ParsedHeader{Role: p.DefaultRole}
	}

	parts := p.splitParts(line, delim)
	header := model.ParsedHeader{Role: model.RoleCoachStaff}

	switch {
	case len(parts) >= 3:
		header.Name, header.Title, header.School = parts[0], parts[1], parts[2]
	case len(parts) == 2:
		header.Name, header.School = parts[0], parts[1]
		header.Title = "Staff"
	case len(parts) == 1:
		header.Name = parts[0]
	default:
		return model.ParsedHeader{Role: p.DefaultRole}
	}

	p.fixSwappedSchool(&header)
	header.School = p.aliasSchool(header.School)

	if containsAny(header.Title, yearFragments) || containsAny(header.School, yearFragments) {
		header.Role = model.RolePlayer
		header.Title = "Roster Member"
	}

	return header
}

// findHeaderLine scans the first MaxHeaderLines non-blank lines for
// the first one containing a delimiter, skipping source-URL lines.
func (p *Parser) findHeaderLine(bio string) (string, string) {
	scanned := 0
	for _, line := range strings.Split(bio, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		scanned++
		if scanned > p.h.MaxHeaderLines {
			break
		}
		if strings.Contains(strings.ToLower(line), "http") || strings.Contains(line, "SOURCE") {
			continue
		}
		for _, delim := range p.h.Delimiters {
			if strings.Contains(line, delim) {
				return line, delim
			}
		}
	}
	return "", ""
}

// splitParts splits the header line and drops site boilerplate.
func (p *Parser) splitParts(line, delim string) []string {
	var parts []string
	for _, part := range strings.Split(line, delim) {
		part = strings.TrimSpace(part)
		if part == "" || containsAnyFold(part, p.h.GarbagePhrases) {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

// fixSwappedSchool handles "Name - School - Title" orderings: when
// the title slot holds a school marker, shift it into the school slot.
func (p *Parser) fixSwappedSchool(h *model.ParsedHeader) {
	if !containsAnyFold(h.Title, schoolMarkers) {
		return
	}
	realTitle := h.School
	if realTitle == "" || containsAnyFold(realTitle, schoolMarkers) {
		realTitle = "Staff"
	}
	h.School, h.Title = h.Title, realTitle
}

func (p *Parser) aliasSchool(school string) string {
	school = strings.TrimSpace(school)
	if canon, ok := p.h.SchoolAliases[school]; ok {
		return canon
	}
	return school
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAnyFold(s string, subs []string) bool {
	ls := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(ls, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
