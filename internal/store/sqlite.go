package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/gridiron-labs/roster-scout/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS search_runs (
	id          TEXT PRIMARY KEY,
	keywords    TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	shards      INTEGER NOT NULL DEFAULT 0,
	matches     INTEGER NOT NULL DEFAULT 0,
	rejected    INTEGER NOT NULL DEFAULT 0,
	output_path TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_search_runs_status ON search_runs(status);
CREATE INDEX IF NOT EXISTS idx_search_runs_created_at ON search_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, keywords []string) (*model.SearchRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	kwJSON, err := json.Marshal(keywords)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal keywords")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO search_runs (id, keywords, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(kwJSON), string(model.RunStatusRunning), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.SearchRun{
		ID:        id,
		Keywords:  keywords,
		Status:    model.RunStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, run *model.SearchRun) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE search_runs
		 SET status = ?, shards = ?, matches = ?, rejected = ?, output_path = ?, updated_at = ?
		 WHERE id = ?`,
		string(model.RunStatusComplete), run.Shards, run.Matches, run.Rejected,
		run.OutputPath, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}
	return checkRowsAffected(res, runID)
}

func (s *SQLiteStore) FailRun(ctx context.Context, runID string, reason string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE search_runs SET status = ?, output_path = ?, updated_at = ? WHERE id = ?`,
		string(model.RunStatusFailed), reason, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: fail run %s", runID)
	}
	return checkRowsAffected(res, runID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.SearchRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, keywords, status, shards, matches, rejected, output_path, created_at, updated_at
		 FROM search_runs WHERE id = ?`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.SearchRun, error) {
	query := `SELECT id, keywords, status, shards, matches, rejected, output_path, created_at, updated_at
	          FROM search_runs`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.SearchRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.SearchRun, error) {
	var run model.SearchRun
	var kwJSON, status string
	if err := row.Scan(
		&run.ID, &kwJSON, &status, &run.Shards, &run.Matches,
		&run.Rejected, &run.OutputPath, &run.CreatedAt, &run.UpdatedAt,
	); err != nil {
		return nil, err
	}
	run.Status = model.RunStatus(status)
	if err := json.Unmarshal([]byte(kwJSON), &run.Keywords); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal keywords")
	}
	return &run, nil
}

func checkRowsAffected(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}
