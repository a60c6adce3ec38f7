package search

import (
	"sort"

	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/normalize"
)

// Aggregator accumulates result candidates across shards for one
// keyword, deduplicating by normalized (name, school) and keeping the
// first occurrence.
type Aggregator struct {
	norm *normalize.Normalizer
	seen map[[2]string]bool
	rows []model.ResultRecord
}

// NewAggregator creates an empty aggregator.
func NewAggregator(norm *normalize.Normalizer) *Aggregator {
	return &Aggregator{
		norm: norm,
		seen: make(map[[2]string]bool),
	}
}

// Add accepts a candidate unless its (name, school) pair was already
// seen. Returns whether the row was kept.
func (a *Aggregator) Add(rec model.ResultRecord) bool {
	key := [2]string{a.norm.Key(rec.Name), a.norm.Key(rec.School)}
	if a.seen[key] {
		return false
	}
	a.seen[key] = true
	a.rows = append(a.rows, rec)
	return true
}

// Len reports the number of kept rows so far.
func (a *Aggregator) Len() int {
	return len(a.rows)
}

// Finalize sorts the kept rows by (role rank, school, name) and
// returns them. Coaches sort ahead of players, players ahead of
// uncertain records.
func (a *Aggregator) Finalize() []model.ResultRecord {
	sort.SliceStable(a.rows, func(i, j int) bool {
		ri, rj := &a.rows[i], &a.rows[j]
		if ri.Role.Rank() != rj.Role.Rank() {
			return ri.Role.Rank() < rj.Role.Rank()
		}
		if ri.School != rj.School {
			return ri.School < rj.School
		}
		return ri.Name < rj.Name
	})
	return a.rows
}
