// Package export writes result sets as styled XLSX workbooks, one
// sheet per searched keyword.
package export

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/gridiron-labs/roster-scout/internal/model"
)

// columnWidths mirror the export schema: narrow role/sport columns,
// wide snippet and bio columns.
var columnWidths = []float64{12, 22, 28, 30, 10, 28, 15, 60, 40}

// Sheet is one keyword's worth of export rows.
type Sheet struct {
	Name string
	Rows []model.ResultRecord
}

// Filename builds the output file name from the primary keyword and
// the search date: "<keyword>_<YYYY-MM-DD>.xlsx".
func Filename(primaryKeyword string, now time.Time) string {
	return sanitize(primaryKeyword) + "_" + now.Format("2006-01-02") + ".xlsx"
}

// RejectedFilename names the companion workbook of non-football rows.
func RejectedFilename(primaryKeyword string, now time.Time) string {
	return "REJECTED_" + Filename(primaryKeyword, now)
}

// WriteWorkbook writes the sheets to path. Empty sheets are skipped;
// a workbook with no non-empty sheet is not written and reports false.
func WriteWorkbook(path string, sheets []Sheet) (bool, error) {
	f := xlsx.NewFile()

	wrote := false
	for _, s := range sheets {
		if len(s.Rows) == 0 {
			continue
		}
		if err := addSheet(f, s); err != nil {
			return false, err
		}
		wrote = true
	}
	if !wrote {
		return false, nil
	}

	if err := f.Save(path); err != nil {
		return false, eris.Wrapf(err, "export: save %s", path)
	}
	return true, nil
}

func addSheet(f *xlsx.File, s Sheet) error {
	sheet, err := f.AddSheet(sheetName(s.Name))
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", s.Name)
	}

	headerStyle := xlsx.NewStyle()
	headerStyle.Font.Bold = true
	headerStyle.Fill = *xlsx.NewFill("solid", "D9EAD3", "FFFFFF")
	headerStyle.ApplyFont = true
	headerStyle.ApplyFill = true

	header := sheet.AddRow()
	for _, col := range model.ResultColumns {
		cell := header.AddCell()
		cell.SetString(col)
		cell.SetStyle(headerStyle)
	}

	for i := range s.Rows {
		row := sheet.AddRow()
		for _, val := range s.Rows[i].Row() {
			row.AddCell().SetString(val)
		}
	}

	for i, w := range columnWidths {
		sheet.SetColWidth(i, i, w)
	}

	// Freeze the header row.
	sheet.SheetViews = []xlsx.SheetView{{
		Pane: &xlsx.Pane{
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
			State:       "frozen",
		},
	}}

	return nil
}

// sheetName fits a keyword into the 31-char sheet-name limit.
func sheetName(keyword string) string {
	name := strings.TrimSpace(keyword)
	if name == "" {
		name = "results"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// sanitize keeps filenames portable across filesystems.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "search"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "search"
	}
	return b.String()
}
