// Package roster loads the master staff roster and indexes it for
// the reconciliation cascade.
package roster

import (
	"strings"

	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/normalize"
)

// key is a normalized (school, name-part) lookup pair.
type key struct {
	school string
	name   string
}

// Index holds the three lookup structures built from the master
// roster. Built once per session, read-only afterwards. An empty
// index is valid: every lookup misses and enrichment is a no-op.
type Index struct {
	norm    *normalize.Normalizer
	aliases map[string]string

	bySchoolName map[key]*model.MasterRecord
	byName       map[string][]*model.MasterRecord
	bySchoolLast map[key][]*model.MasterRecord
}

// NewIndex creates an empty index. aliases maps nickname/abbreviation
// spellings to canonical school names.
func NewIndex(norm *normalize.Normalizer, aliases map[string]string) *Index {
	return &Index{
		norm:         norm,
		aliases:      aliases,
		bySchoolName: make(map[key]*model.MasterRecord),
		byName:       make(map[string][]*model.MasterRecord),
		bySchoolLast: make(map[key][]*model.MasterRecord),
	}
}

// Canonical resolves school nicknames and abbreviations to the
// canonical spelling; unknown schools pass through unchanged.
func (x *Index) Canonical(school string) string {
	school = strings.TrimSpace(school)
	if canon, ok := x.aliases[school]; ok {
		return canon
	}
	return school
}

// Add indexes one master record. The record's school is canonicalized
// first; when the raw spelling differs (an alias) the record is
// indexed under both so either spelling resolves to it.
func (x *Index) Add(rec model.MasterRecord) {
	rawSchool := rec.School
	rec.School = x.Canonical(rec.School)

	nameKey := x.norm.Key(rec.Name)
	if nameKey == "" {
		return
	}
	lastKey := x.norm.Key(normalize.LastName(rec.Name))

	stored := &rec
	x.byName[nameKey] = append(x.byName[nameKey], stored)

	schoolKeys := []string{x.norm.Key(rec.School)}
	if rawKey := x.norm.Key(rawSchool); rawKey != "" && rawKey != schoolKeys[0] {
		schoolKeys = append(schoolKeys, rawKey)
	}

	for _, sk := range schoolKeys {
		if sk == "" {
			continue
		}
		k := key{school: sk, name: nameKey}
		if _, exists := x.bySchoolName[k]; !exists {
			x.bySchoolName[k] = stored
		}
		if lastKey != "" {
			lk := key{school: sk, name: lastKey}
			x.bySchoolLast[lk] = append(x.bySchoolLast[lk], stored)
		}
	}
}

// BySchoolName looks up the exact (school, name) key.
func (x *Index) BySchoolName(schoolKey, nameKey string) *model.MasterRecord {
	if schoolKey == "" || nameKey == "" {
		return nil
	}
	return x.bySchoolName[key{school: schoolKey, name: nameKey}]
}

// ByName returns every record sharing a normalized full name.
func (x *Index) ByName(nameKey string) []*model.MasterRecord {
	if nameKey == "" {
		return nil
	}
	return x.byName[nameKey]
}

// BySchoolLastName returns records keyed by (school, last name), used
// when first-name variants ("Mike" vs "Michael") break exact lookup.
func (x *Index) BySchoolLastName(schoolKey, lastKey string) []*model.MasterRecord {
	if schoolKey == "" || lastKey == "" {
		return nil
	}
	return x.bySchoolLast[key{school: schoolKey, name: lastKey}]
}

// Norm exposes the index's normalizer so matchers derive keys the
// same way they were built.
func (x *Index) Norm() *normalize.Normalizer {
	return x.norm
}

// Len reports how many distinct normalized names are indexed.
func (x *Index) Len() int {
	return len(x.byName)
}
