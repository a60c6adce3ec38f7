package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/normalize"
	"github.com/gridiron-labs/roster-scout/internal/roster"
	"github.com/gridiron-labs/roster-scout/internal/search"
	"github.com/gridiron-labs/roster-scout/internal/store"
)

// searchEnv bundles the per-session collaborators: heuristic tables,
// the roster index, the engine, and the optional run log.
type searchEnv struct {
	Heuristics *config.Heuristics
	Engine     *search.Engine
	Store      store.Store // nil when the run log is unavailable
}

// initSearchEnv loads heuristics, syncs and indexes the master
// roster, and opens the run log. Only heuristics failures are fatal;
// roster and store failures degrade.
func initSearchEnv(ctx context.Context) (*searchEnv, error) {
	h, err := config.LoadHeuristics(cfg.Heuristics)
	if err != nil {
		return nil, eris.Wrap(err, "init: load heuristics")
	}

	norm := normalize.New(h.StopWords)
	idx := roster.NewLoader(cfg.Roster, norm, h.SchoolAliases).Load(ctx)

	env := &searchEnv{
		Heuristics: h,
		Engine:     search.NewEngine(h, idx),
	}

	if cfg.Store.Path != "" {
		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			zap.L().Warn("init: run log unavailable", zap.Error(err))
		} else if err := s.Migrate(ctx); err != nil {
			zap.L().Warn("init: run log migration failed", zap.Error(err))
			s.Close()
		} else {
			env.Store = s
		}
	}

	return env, nil
}

// Close releases the run log.
func (e *searchEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}
