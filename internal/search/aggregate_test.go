package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/normalize"
)

func newAgg() *Aggregator {
	return NewAggregator(normalize.New(config.DefaultHeuristics().StopWords))
}

func TestAggregator_DedupKeepsFirst(t *testing.T) {
	a := newAgg()

	require.True(t, a.Add(model.ResultRecord{Name: "Mike Jones", School: "Auburn", Email: "first"}))
	require.False(t, a.Add(model.ResultRecord{Name: "mike JONES", School: "Auburn University", Email: "second"}))

	rows := a.Finalize()
	require.Len(t, rows, 1)
	assert.Equal(t, "first", rows[0].Email)
}

func TestAggregator_DistinctSchoolsKept(t *testing.T) {
	a := newAgg()
	require.True(t, a.Add(model.ResultRecord{Name: "Mike Jones", School: "Auburn"}))
	require.True(t, a.Add(model.ResultRecord{Name: "Mike Jones", School: "Clemson"}))
	assert.Equal(t, 2, a.Len())
}

func TestAggregator_SortOrder(t *testing.T) {
	a := newAgg()
	a.Add(model.ResultRecord{Role: model.RoleUncertain, Name: "Zed Ash", School: "Auburn"})
	a.Add(model.ResultRecord{Role: model.RolePlayer, Name: "Abe Young", School: "Auburn"})
	a.Add(model.ResultRecord{Role: model.RoleCoachStaff, Name: "Ben Cole", School: "Clemson"})
	a.Add(model.ResultRecord{Role: model.RoleCoachStaff, Name: "Amy Dale", School: "Auburn"})
	a.Add(model.ResultRecord{Role: model.RoleCoachStaff, Name: "Al Baker", School: "Clemson"})

	rows := a.Finalize()
	require.Len(t, rows, 5)

	// Coaches first (school then name), then players, then uncertain.
	assert.Equal(t, "Amy Dale", rows[0].Name)
	assert.Equal(t, "Al Baker", rows[1].Name)
	assert.Equal(t, "Ben Cole", rows[2].Name)
	assert.Equal(t, "Abe Young", rows[3].Name)
	assert.Equal(t, "Zed Ash", rows[4].Name)
}
