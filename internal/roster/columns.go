package roster

import "strings"

// Field identifies a roster column we need to locate.
type Field int

const (
	FieldSchool Field = iota
	FieldFirstName
	FieldLastName
	FieldEmail
	FieldTwitter
	FieldTitle
	numFields
)

// fieldKeywords are the case-insensitive substrings that suggest a
// header belongs to a field. Feeds rename columns freely, so matching
// is fuzzy and a scoring pass breaks ties.
var fieldKeywords = map[Field][]string{
	FieldSchool:    {"school", "institution", "program"},
	FieldFirstName: {"first name", "first_name", "firstname", "first"},
	FieldLastName:  {"last name", "last_name", "lastname", "last"},
	FieldEmail:     {"email", "e-mail"},
	FieldTwitter:   {"twitter", "handle", "social"},
	FieldTitle:     {"title", "position", "role"},
}

// statusFlagValues are sampled cell values that mark a column as a
// tracking/status column rather than real data ("Emailed? x").
var statusFlagValues = map[string]bool{
	"x": true, "y": true, "yes": true, "no": true, "done": true,
	"sent": true, "✓": true,
}

// Columns maps each Field to a column position, -1 when undetected.
type Columns [numFields]int

// DetectColumns resolves field positions from the header row plus a
// sample of data rows. Each (column, field) pair is scored: header
// keyword hits earn the base score, sampled status-flag values
// penalize, and value shape ("@" for email) rewards. Best positive
// score per field wins; ties go to the leftmost column.
func DetectColumns(header []string, sample [][]string) (Columns, bool) {
	var cols Columns
	for f := range cols {
		cols[f] = -1
	}

	for f := Field(0); f < numFields; f++ {
		best, bestScore := -1, 0
		for i, h := range header {
			score := scoreColumn(f, h, columnSample(sample, i))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		cols[f] = best
	}

	// A roster is unusable without school and at least one name part.
	ok := cols[FieldSchool] != -1 &&
		(cols[FieldFirstName] != -1 || cols[FieldLastName] != -1)
	return cols, ok
}

func scoreColumn(f Field, header string, sample []string) int {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return 0
	}

	score := 0
	for _, kw := range fieldKeywords[f] {
		if strings.Contains(h, kw) {
			score += 10
			break
		}
	}
	if score == 0 {
		return 0
	}

	for _, v := range sample {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if statusFlagValues[v] {
			score -= 3
		}
		if f == FieldEmail && strings.Contains(v, "@") {
			score += 2
		}
	}
	return score
}

func columnSample(sample [][]string, col int) []string {
	var vals []string
	for _, row := range sample {
		if col < len(row) {
			vals = append(vals, row[col])
		}
	}
	return vals
}

// Get fetches the cell for a field, "" when the field is undetected
// or the row is short.
func (c Columns) Get(row []string, f Field) string {
	idx := c[f]
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
