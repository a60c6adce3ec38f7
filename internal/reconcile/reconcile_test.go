package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/normalize"
	"github.com/gridiron-labs/roster-scout/internal/roster"
)

func newFixture(records ...model.MasterRecord) *Reconciler {
	h := config.DefaultHeuristics()
	idx := roster.NewIndex(normalize.New(h.StopWords), h.SchoolAliases)
	for _, rec := range records {
		idx.Add(rec)
	}
	return New(h, idx)
}

func TestReconcile_ExactMatchFillsContact(t *testing.T) {
	r := newFixture(model.MasterRecord{
		School: "Auburn", Name: "Mike Jones",
		Email: "mjones@auburn.edu", Twitter: "@mjones", Title: "Recruiting Coordinator",
	})

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Mike Jones", School: "Auburn", Title: "Staff"},
		model.BioRecord{FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	require.NotNil(t, out.Master)

	assert.Equal(t, "school_name_exact", out.MatchType)
	assert.Equal(t, "mjones@auburn.edu", out.Record.Email)
	assert.Equal(t, "@mjones", out.Record.Twitter)
	// "Staff" is a placeholder, so the roster title lands.
	assert.Equal(t, "Recruiting Coordinator", out.Record.Title)
}

func TestReconcile_MeaningfulFieldsNotOverwritten(t *testing.T) {
	r := newFixture(model.MasterRecord{
		School: "Auburn", Name: "Mike Jones",
		Email: "mjones@auburn.edu", Title: "Recruiting Coordinator",
	})

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Mike Jones", School: "Auburn", Title: "Defensive Analyst"},
		model.BioRecord{Email: "personal@gmail.com", FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)

	assert.Equal(t, "Defensive Analyst", out.Record.Title)
	assert.Equal(t, "personal@gmail.com", out.Record.Email)
}

func TestReconcile_MatchedSchoolIsCanonical(t *testing.T) {
	r := newFixture(model.MasterRecord{School: "Ole Miss", Name: "Tom Reed", Email: "tr@olemiss.edu"})

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Tom Reed", School: "Mississippi", Title: "Defensive Coordinator"},
		model.BioRecord{FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	require.NotNil(t, out.Master)
	assert.Equal(t, "Ole Miss", out.Record.School)
}

func TestReconcile_LastNameFallback(t *testing.T) {
	r := newFixture(model.MasterRecord{
		School: "Auburn", Name: "Mike Jones", Email: "mjones@auburn.edu",
	})

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Michael Jones", School: "Auburn", Title: "Recruiting Coordinator"},
		model.BioRecord{FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	require.NotNil(t, out.Master)

	assert.Equal(t, "school_lastname", out.MatchType)
	assert.Equal(t, "mjones@auburn.edu", out.Record.Email)
}

func TestReconcile_ReversedNameVariant(t *testing.T) {
	r := newFixture(model.MasterRecord{School: "Auburn", Name: "Jones Mike", Email: "mj@auburn.edu"})

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Mike Jones", School: "Auburn", Title: "Analyst"},
		model.BioRecord{FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	require.NotNil(t, out.Master)
	assert.Equal(t, "school_name_variant", out.MatchType)
}

func TestReconcile_NameOnlyUnique(t *testing.T) {
	r := newFixture(model.MasterRecord{School: "Baylor", Name: "Sam Reed", Email: "sr@baylor.edu"})

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Sam Reed", Title: "Recruiting Assistant"},
		model.BioRecord{FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	require.NotNil(t, out.Master)

	assert.Equal(t, "name_unique", out.MatchType)
	assert.Equal(t, "Baylor", out.Record.School)
}

func TestReconcile_NameMultiPrefersSubstringSchool(t *testing.T) {
	r := newFixture(
		model.MasterRecord{School: "Auburn", Name: "Chris Lee", Email: "cl@auburn.edu"},
		model.MasterRecord{School: "Boston College", Name: "Chris Lee", Email: "cl@bc.edu"},
	)

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Chris Lee", School: "Boston", Title: "Recruiting Analyst"},
		model.BioRecord{FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	require.NotNil(t, out.Master)
	assert.Equal(t, "cl@bc.edu", out.Record.Email)
}

func TestReconcile_NameMultiFallsBackToFirst(t *testing.T) {
	r := newFixture(
		model.MasterRecord{School: "Auburn", Name: "Chris Lee", Email: "first@auburn.edu"},
		model.MasterRecord{School: "Clemson", Name: "Chris Lee", Email: "second@clemson.edu"},
	)

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Chris Lee", School: "Nowhere Tech", Title: "Analyst"},
		model.BioRecord{FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	require.NotNil(t, out.Master)
	assert.Equal(t, "first@auburn.edu", out.Record.Email)
}

func TestReconcile_PlayerGuardDiscardsFuzzyMatch(t *testing.T) {
	r := newFixture(model.MasterRecord{
		School: "Auburn", Name: "Mike Jones", Email: "coach@auburn.edu",
	})

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Micah Jones", School: "Auburn", Title: "Quarterback"},
		model.BioRecord{FullBio: "bio"},
		model.RolePlayer,
	)
	require.True(t, ok)

	assert.Nil(t, out.Master)
	assert.Empty(t, out.Record.Email)
}

func TestReconcile_PlayerKeepsExactMatch(t *testing.T) {
	r := newFixture(model.MasterRecord{
		School: "Auburn", Name: "Mike Jones", Email: "mj@auburn.edu",
	})

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Mike Jones", School: "Auburn", Title: "Quarterback"},
		model.BioRecord{FullBio: "bio"},
		model.RolePlayer,
	)
	require.True(t, ok)
	require.NotNil(t, out.Master)
	assert.Equal(t, "mj@auburn.edu", out.Record.Email)
}

func TestReconcile_GarbageNamesDropped(t *testing.T) {
	r := newFixture()

	for _, name := range []string{
		"Football Roster",
		"Skip To Main Content",
		"20245",
		"",
		"This Name Is Way Too Long To Be A Real Person Name At All",
	} {
		_, ok := r.Reconcile(
			model.ParsedHeader{Name: name, School: "Auburn"},
			model.BioRecord{FullBio: "bio"},
			model.RoleCoachStaff,
		)
		assert.False(t, ok, "name %q must be dropped", name)
	}
}

func TestReconcile_SidecarPreferredOverParsed(t *testing.T) {
	r := newFixture()

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Wrong Name", School: "Clemson", Title: "Coach"},
		model.BioRecord{Name: "Jane Doe", FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", out.Record.Name)
}

func TestReconcile_PlaceholderSidecarYieldsToParsed(t *testing.T) {
	r := newFixture()

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Jane Doe", School: "Clemson", Title: "Coach"},
		model.BioRecord{Name: "Unknown", School: "N/A", FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", out.Record.Name)
	assert.Equal(t, "Clemson", out.Record.School)
}

func TestReconcile_NoMatchKeepsParsedSchoolAliased(t *testing.T) {
	r := newFixture()

	out, ok := r.Reconcile(
		model.ParsedHeader{Name: "Jane Doe", School: "FSU", Title: "Coach"},
		model.BioRecord{FullBio: "bio"},
		model.RoleCoachStaff,
	)
	require.True(t, ok)
	assert.Nil(t, out.Master)
	assert.Equal(t, "Florida State", out.Record.School)
}
