package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/gridiron-labs/roster-scout/internal/model"
)

func sampleRows() []model.ResultRecord {
	return []model.ResultRecord{
		{
			Role: model.RoleCoachStaff, Name: "Tom Reed",
			Title: "Defensive Coordinator", School: "Ole Miss",
			Sport: "Football", Email: "treed@olemiss.edu",
			ContextSnippet: "...recruiting...", FullBio: "bio text",
		},
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "recruiting_2026-08-30.xlsx", Filename("recruiting", now))
	assert.Equal(t, "special_teams_2026-08-30.xlsx", Filename("special teams", now))
	assert.Equal(t, "search_2026-08-30.xlsx", Filename("///", now))
	assert.Equal(t, "REJECTED_recruiting_2026-08-30.xlsx", RejectedFilename("recruiting", now))
}

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	wrote, err := WriteWorkbook(path, []Sheet{{Name: "recruiting", Rows: sampleRows()}})
	require.NoError(t, err)
	require.True(t, wrote)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "recruiting", sheet.Name)
	require.GreaterOrEqual(t, len(sheet.Rows), 2)

	header := sheet.Rows[0]
	require.Len(t, header.Cells, len(model.ResultColumns))
	assert.Equal(t, "Role", header.Cells[0].String())
	assert.Equal(t, "Full_Bio", header.Cells[8].String())

	row := sheet.Rows[1]
	assert.Equal(t, "COACH/STAFF", row.Cells[0].String())
	assert.Equal(t, "Tom Reed", row.Cells[1].String())
	assert.Equal(t, "Ole Miss", row.Cells[3].String())
}

func TestWriteWorkbook_SheetPerKeyword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	wrote, err := WriteWorkbook(path, []Sheet{
		{Name: "recruiting", Rows: sampleRows()},
		{Name: "linebacker", Rows: sampleRows()},
		{Name: "empty keyword"},
	})
	require.NoError(t, err)
	require.True(t, wrote)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)
	assert.Equal(t, "recruiting", f.Sheets[0].Name)
	assert.Equal(t, "linebacker", f.Sheets[1].Name)
}

func TestWriteWorkbook_AllEmptySkipsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	wrote, err := WriteWorkbook(path, []Sheet{{Name: "nothing"}})
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.NoFileExists(t, path)
}

func TestSheetName_Truncated(t *testing.T) {
	long := "a-very-long-keyword-that-exceeds-the-sheet-limit"
	assert.Len(t, sheetName(long), 31)
	assert.Equal(t, "results", sheetName("  "))
}
