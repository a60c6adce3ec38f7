package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/normalize"
	"github.com/gridiron-labs/roster-scout/internal/roster"
	"github.com/gridiron-labs/roster-scout/internal/shard"
)

func discoverShards(t *testing.T, dir string) []string {
	t.Helper()
	paths, err := shard.Discover(dir)
	require.NoError(t, err)
	return paths
}

func newEngine(records ...model.MasterRecord) *Engine {
	h := config.DefaultHeuristics()
	idx := roster.NewIndex(normalize.New(h.StopWords), h.SchoolAliases)
	for _, rec := range records {
		idx.Add(rec)
	}
	return NewEngine(h, idx)
}

func writeShardFile(t *testing.T, dir, name string, bios ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("Full_Bio\n")
	for _, bio := range bios {
		// CSV-quote so embedded newlines survive.
		b.WriteString(`"` + strings.ReplaceAll(bio, `"`, `""`) + `"` + "\n")
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644))
}

const coachBio = "Tom Reed - Defensive Coordinator - Ole Miss\n" +
	"Reed enters his third season directing the football defense. " +
	"He previously led recruiting efforts across the region and his " +
	"linebacker units earned national attention."

const volleyballBio = "Setter Profile - 2025 Volleyball Roster\n" +
	"She anchors the volleyball rotation as setter. A standout " +
	"volleyball recruit, she also assists recruiting visits for the " +
	"volleyball program."

func TestSearch_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeShardFile(t, dir, "shard_1.csv", coachBio)
	writeShardFile(t, dir, "shard_2.csv", volleyballBio)

	e := newEngine(model.MasterRecord{
		School: "Ole Miss", Name: "Tom Reed",
		Email: "treed@olemiss.edu", Title: "Defensive Coordinator",
	})

	results, stats, err := e.Search(context.Background(), discoverShards(t, dir), []string{"recruiting"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 2, stats.Shards)
	require.Len(t, results[0].Rows, 1)

	row := results[0].Rows[0]
	assert.Equal(t, "Tom Reed", row.Name)
	assert.Equal(t, model.RoleCoachStaff, row.Role)
	assert.Equal(t, "Ole Miss", row.School)
	assert.Equal(t, "treed@olemiss.edu", row.Email)
	assert.Equal(t, "Football", row.Sport)
	assert.Contains(t, strings.ToLower(row.ContextSnippet), "recruiting")

	// The volleyball bio landed in the rejected set, not the results.
	require.Len(t, results[0].Rejected, 1)
	assert.Equal(t, "Volleyball", results[0].Rejected[0].Sport)
}

func TestSearch_DedupAcrossShards(t *testing.T) {
	dir := t.TempDir()
	writeShardFile(t, dir, "shard_1.csv", coachBio)
	writeShardFile(t, dir, "shard_2.csv", coachBio)

	e := newEngine()
	results, _, err := e.Search(context.Background(), discoverShards(t, dir), []string{"recruiting"})
	require.NoError(t, err)
	require.Len(t, results[0].Rows, 1)
}

func TestSearch_MultipleKeywords(t *testing.T) {
	dir := t.TempDir()
	writeShardFile(t, dir, "shard_1.csv", coachBio)

	e := newEngine()
	results, _, err := e.Search(context.Background(), discoverShards(t, dir), []string{"recruiting", "linebacker", "nomatch-zzz"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Len(t, results[0].Rows, 1)
	assert.Len(t, results[1].Rows, 1)
	assert.Empty(t, results[2].Rows)
}

func TestSearch_KeywordCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeShardFile(t, dir, "shard_1.csv", coachBio)

	e := newEngine()
	results, _, err := e.Search(context.Background(), discoverShards(t, dir), []string{"RECRUITING"})
	require.NoError(t, err)
	assert.Len(t, results[0].Rows, 1)
}

func TestSearch_EmptyDir(t *testing.T) {
	e := newEngine()
	results, stats, err := e.Search(context.Background(), discoverShards(t, t.TempDir()), []string{"recruiting"})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Shards)
	assert.Empty(t, results[0].Rows)
}

func TestSearch_UnreadableShardSkipped(t *testing.T) {
	dir := t.TempDir()
	writeShardFile(t, dir, "shard_1.csv", coachBio)
	// No bio column at all: shard read fails, search continues.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.csv"), []byte("A,B\n1,2\n"), 0o644))

	e := newEngine()
	results, stats, err := e.Search(context.Background(), discoverShards(t, dir), []string{"recruiting"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Shards)
	assert.Len(t, results[0].Rows, 1)
}

func TestSearch_GarbageRowNeverSurfaces(t *testing.T) {
	dir := t.TempDir()
	garbage := "Football Roster - 2025 Schedule - Statistics\n" +
		"football football recruiting football"
	writeShardFile(t, dir, "shard_1.csv", garbage)

	e := newEngine()
	results, _, err := e.Search(context.Background(), discoverShards(t, dir), []string{"recruiting"})
	require.NoError(t, err)
	assert.Empty(t, results[0].Rows)
}

func TestSearch_RoleRankOrdering(t *testing.T) {
	playerBio := "Derrick Hall - 2025 Football Roster - Auburn\n" +
		"Position: LB Class: Sophomore Height: 6-2 Weight: 230 lbs " +
		"He credits the recruiting staff for his development in football."

	dir := t.TempDir()
	writeShardFile(t, dir, "shard_1.csv", playerBio, coachBio)

	e := newEngine()
	results, _, err := e.Search(context.Background(), discoverShards(t, dir), []string{"recruiting"})
	require.NoError(t, err)
	require.Len(t, results[0].Rows, 2)

	assert.Equal(t, model.RoleCoachStaff, results[0].Rows[0].Role)
	assert.Equal(t, "Tom Reed", results[0].Rows[0].Name)
	assert.Equal(t, model.RolePlayer, results[0].Rows[1].Role)
	assert.Equal(t, "Derrick Hall", results[0].Rows[1].Name)
}

func TestSearch_RejectedRowsNotDeduped(t *testing.T) {
	// Neither bio has a parseable header, so both rejected rows carry
	// an empty name. Every rejected bio still reaches the audit set.
	rejectedA := "The volleyball program hosted recruiting visits.\n" +
		"Her volleyball career began as a setter on a club volleyball team."
	rejectedB := "Season tickets for volleyball are on sale.\n" +
		"The volleyball staff credits recruiting wins for the volleyball title run."

	dir := t.TempDir()
	writeShardFile(t, dir, "shard_1.csv", rejectedA, rejectedB)

	e := newEngine()
	results, stats, err := e.Search(context.Background(), discoverShards(t, dir), []string{"recruiting"})
	require.NoError(t, err)

	require.Len(t, results[0].Rejected, 2)
	assert.Equal(t, 2, stats.Rejected)
	assert.Equal(t, "Volleyball", results[0].Rejected[0].Sport)
	assert.Equal(t, "Volleyball", results[0].Rejected[1].Sport)
	assert.NotEqual(t, results[0].Rejected[0].FullBio, results[0].Rejected[1].FullBio)
}

func TestSearch_GenericTitleHuntedFromBio(t *testing.T) {
	bio := "Gary Poole - Staff - Ole Miss\n" +
		"Poole has served as special teams coordinator since 2019 and " +
		"now leads recruiting for the football program."

	dir := t.TempDir()
	writeShardFile(t, dir, "shard_1.csv", bio)

	e := newEngine()
	results, _, err := e.Search(context.Background(), discoverShards(t, dir), []string{"recruiting"})
	require.NoError(t, err)
	require.Len(t, results[0].Rows, 1)

	row := results[0].Rows[0]
	assert.Equal(t, model.RoleCoachStaff, row.Role)
	assert.Equal(t, "Special Teams Coordinator", row.Title)
}
