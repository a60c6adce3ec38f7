// Package reconcile merges parsed bio headers with the master roster
// using a cascade of match strategies, first non-nil wins.
package reconcile

import (
	"strings"

	"go.uber.org/zap"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/normalize"
	"github.com/gridiron-labs/roster-scout/internal/roster"
)

// Query carries the normalized keys a strategy matches on.
type Query struct {
	Name      string // display name
	NameKey   string
	SchoolKey string
	LastKey   string
}

// Strategy is one pure matching pass against the index.
type Strategy struct {
	Name  string
	Exact bool // exact school+name evidence, trusted for player records
	Match func(q Query, idx *roster.Index) *model.MasterRecord
}

// DefaultStrategies returns the cascade in trust order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{
			Name:  "school_name_exact",
			Exact: true,
			Match: func(q Query, idx *roster.Index) *model.MasterRecord {
				return idx.BySchoolName(q.SchoolKey, q.NameKey)
			},
		},
		{
			Name:  "school_name_variant",
			Exact: true,
			Match: func(q Query, idx *roster.Index) *model.MasterRecord {
				for _, variant := range nameVariants(q.Name, idx.Norm()) {
					if rec := idx.BySchoolName(q.SchoolKey, variant); rec != nil {
						return rec
					}
				}
				return nil
			},
		},
		{
			Name: "school_lastname",
			Match: func(q Query, idx *roster.Index) *model.MasterRecord {
				if candidates := idx.BySchoolLastName(q.SchoolKey, q.LastKey); len(candidates) > 0 {
					return candidates[0]
				}
				return nil
			},
		},
		{
			Name: "name_unique",
			Match: func(q Query, idx *roster.Index) *model.MasterRecord {
				if candidates := idx.ByName(q.NameKey); len(candidates) == 1 {
					return candidates[0]
				}
				return nil
			},
		},
		{
			Name: "name_school_substring",
			Match: func(q Query, idx *roster.Index) *model.MasterRecord {
				candidates := idx.ByName(q.NameKey)
				if len(candidates) == 0 {
					return nil
				}
				if q.SchoolKey != "" {
					for _, cand := range candidates {
						ck := idx.Norm().Key(cand.School)
						if ck != "" && (strings.Contains(ck, q.SchoolKey) || strings.Contains(q.SchoolKey, ck)) {
							return cand
						}
					}
				}
				// Deterministic fallback: first candidate.
				return candidates[0]
			},
		},
	}
}

// nameVariants derives alternate keys for first-name mismatches:
// "Last First" reversal and last-name-only.
func nameVariants(name string, norm *normalize.Normalizer) []string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return nil
	}
	last := fields[len(fields)-1]
	reversed := last + " " + strings.Join(fields[:len(fields)-1], " ")

	var keys []string
	if k := norm.Key(reversed); k != "" {
		keys = append(keys, k)
	}
	if k := norm.Key(last); k != "" {
		keys = append(keys, k)
	}
	return keys
}

// Outcome is a merged, export-ready candidate plus its match evidence.
type Outcome struct {
	Record    model.ResultRecord
	Master    *model.MasterRecord // surviving match, nil when none
	MatchType string
}

// Reconciler merges parsed headers, sidecar fields, and the master
// roster into result candidates.
type Reconciler struct {
	h          *config.Heuristics
	idx        *roster.Index
	strategies []Strategy
}

// New creates a Reconciler running the default cascade.
func New(h *config.Heuristics, idx *roster.Index) *Reconciler {
	return &Reconciler{h: h, idx: idx, strategies: DefaultStrategies()}
}

// Reconcile builds the merged candidate for one bio row. ok=false
// means the row is garbage and must be dropped silently.
func (r *Reconciler) Reconcile(header model.ParsedHeader, src model.BioRecord, textRole model.Role) (*Outcome, bool) {
	name := r.pick(src.Name, header.Name)
	title := r.pick(src.Title, header.Title)
	school := r.pick(src.School, header.School)

	if r.isGarbageName(name) {
		return nil, false
	}

	norm := r.idx.Norm()
	q := Query{
		Name:      name,
		NameKey:   norm.Key(name),
		SchoolKey: norm.Key(school),
		LastKey:   norm.Key(normalize.LastName(name)),
	}

	master, matchType := r.match(q)

	// Player-protection guard: a player record may not inherit a
	// coach's contact info off a fuzzy name collision.
	if master != nil && textRole == model.RolePlayer && !isExactType(matchType) {
		zap.L().Debug("reconcile: discarding fuzzy match for player",
			zap.String("name", name),
			zap.String("match_type", matchType),
		)
		master, matchType = nil, ""
	}

	out := &Outcome{
		Master:    master,
		MatchType: matchType,
		Record: model.ResultRecord{
			Role:    textRole,
			Name:    name,
			Title:   title,
			School:  r.idx.Canonical(school),
			Email:   src.Email,
			Twitter: src.Twitter,
			FullBio: src.FullBio,
		},
	}

	if master != nil {
		r.fill(&out.Record, master)
	}
	return out, true
}

// match runs the cascade; first hit wins.
func (r *Reconciler) match(q Query) (*model.MasterRecord, string) {
	if q.NameKey == "" {
		return nil, ""
	}
	for _, s := range r.strategies {
		if rec := s.Match(q, r.idx); rec != nil {
			return rec, s.Name
		}
	}
	return nil, ""
}

// fill applies the gap-fill policy: matched values only land on blank
// or placeholder fields, except school, where the roster spelling is
// always canonical.
func (r *Reconciler) fill(rec *model.ResultRecord, master *model.MasterRecord) {
	if master.School != "" {
		rec.School = master.School
	}
	if r.isPlaceholder(rec.Email) && master.Email != "" {
		rec.Email = master.Email
	}
	if r.isPlaceholder(rec.Twitter) && len(master.Twitter) > 3 {
		rec.Twitter = master.Twitter
	}
	if r.isPlaceholder(rec.Title) && len(master.Title) > 2 {
		rec.Title = master.Title
	}
}

// pick prefers the sidecar value unless it is a placeholder.
func (r *Reconciler) pick(sidecar, parsed string) string {
	if r.isPlaceholder(sidecar) {
		return strings.TrimSpace(parsed)
	}
	return strings.TrimSpace(sidecar)
}

func (r *Reconciler) isPlaceholder(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range r.h.Placeholders {
		if s == p {
			return true
		}
	}
	return false
}

// isGarbageName recognizes navigation chrome and scraper junk posing
// as a person's name.
func (r *Reconciler) isGarbageName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > r.h.MaxNameLen {
		return true
	}
	if isAllDigits(trimmed) {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, phrase := range r.h.GarbageNames {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isExactType(matchType string) bool {
	return matchType == "school_name_exact" || matchType == "school_name_variant"
}
