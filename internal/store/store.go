// Package store persists the search-run log.
package store

import (
	"context"

	"github.com/gridiron-labs/roster-scout/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
}

// Store defines the persistence interface for search runs. Recording
// history is best-effort: callers log and continue when it fails.
type Store interface {
	CreateRun(ctx context.Context, keywords []string) (*model.SearchRun, error)
	CompleteRun(ctx context.Context, runID string, run *model.SearchRun) error
	FailRun(ctx context.Context, runID string, reason string) error
	GetRun(ctx context.Context, runID string) (*model.SearchRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.SearchRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
