package model

import "time"

// Role classifies who a reconstructed record belongs to.
type Role string

const (
	RoleCoachStaff Role = "COACH/STAFF"
	RolePlayer     Role = "PLAYER"
	RoleUncertain  Role = "UNCERTAIN"
)

// Rank orders roles for result sorting: coaches first, then players,
// then uncertain records.
func (r Role) Rank() int {
	switch r {
	case RoleCoachStaff:
		return 1
	case RolePlayer:
		return 2
	default:
		return 3
	}
}

// BioRecord is one row of a scraped-bio shard. Sidecar fields may be
// empty, "Unknown", or scraped garbage; FullBio is the only field
// guaranteed to carry signal.
type BioRecord struct {
	Name    string `json:"name"`
	School  string `json:"school"`
	Title   string `json:"title"`
	Email   string `json:"email"`
	Twitter string `json:"twitter"`
	FullBio string `json:"full_bio"`
}

// ParsedHeader is the name/title/school candidate extracted from the
// top of a bio. Recomputed per search, never persisted.
type ParsedHeader struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	School string `json:"school"`
	Role   Role   `json:"role"`
}

// MasterRecord is one row of the roster of record. Read-only for the
// duration of a search session; authoritative for contact info and
// canonical school spelling.
type MasterRecord struct {
	School  string `json:"school"`
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Email   string `json:"email,omitempty"`
	Twitter string `json:"twitter,omitempty"`
}

// ResultRecord is one export-ready row: parsed header merged with
// sidecar fields and, when a roster match exists, the master record.
type ResultRecord struct {
	Role           Role   `json:"role"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	School         string `json:"school"`
	Sport          string `json:"sport"`
	Email          string `json:"email"`
	Twitter        string `json:"twitter"`
	ContextSnippet string `json:"context_snippet"`
	FullBio        string `json:"full_bio"`
}

// ResultColumns is the canonical export column order.
var ResultColumns = []string{
	"Role", "Name", "Title", "School", "Sport",
	"Email", "Twitter", "Context_Snippet", "Full_Bio",
}

// Row returns the record's cells in ResultColumns order.
func (r *ResultRecord) Row() []string {
	return []string{
		string(r.Role), r.Name, r.Title, r.School, r.Sport,
		r.Email, r.Twitter, r.ContextSnippet, r.FullBio,
	}
}

// RunStatus represents the state of a recorded search run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// SearchRun is the persisted log entry for one search session.
type SearchRun struct {
	ID         string    `json:"id"`
	Keywords   []string  `json:"keywords"`
	Status     RunStatus `json:"status"`
	Shards     int       `json:"shards"`
	Matches    int       `json:"matches"`
	Rejected   int       `json:"rejected"`
	OutputPath string    `json:"output_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
