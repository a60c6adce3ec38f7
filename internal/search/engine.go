// Package search drives the per-row extraction pipeline over the
// sharded bio corpus and aggregates export-ready result sets.
package search

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gridiron-labs/roster-scout/internal/classify"
	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/parser"
	"github.com/gridiron-labs/roster-scout/internal/reconcile"
	"github.com/gridiron-labs/roster-scout/internal/roster"
	"github.com/gridiron-labs/roster-scout/internal/shard"
)

// KeywordResult is the finished result set for one searched keyword.
type KeywordResult struct {
	Keyword  string               `json:"keyword"`
	Rows     []model.ResultRecord `json:"rows"`
	Rejected []model.ResultRecord `json:"rejected"`
}

// Stats summarizes one search session.
type Stats struct {
	Shards   int `json:"shards"`
	Matches  int `json:"matches"`
	Rejected int `json:"rejected"`
}

// Engine wires the parser, classifiers, and reconciler into the
// per-row pipeline. One Engine serves one roster session; it holds no
// per-search mutable state.
type Engine struct {
	h      *config.Heuristics
	idx    *roster.Index
	parse  *parser.Parser
	sport  *classify.SportClassifier
	role   *classify.RoleClassifier
	titles *classify.TitleCleaner
	rec    *reconcile.Reconciler
}

// NewEngine creates an Engine over the session's roster index.
func NewEngine(h *config.Heuristics, idx *roster.Index) *Engine {
	return &Engine{
		h:      h,
		idx:    idx,
		parse:  parser.New(h),
		sport:  classify.NewSportClassifier(h),
		role:   classify.NewRoleClassifier(h),
		titles: classify.NewTitleCleaner(h),
		rec:    reconcile.New(h, idx),
	}
}

// Search scans the given shard files once, sequentially, testing each
// bio against all keywords. Shards load one at a time and are
// released before the next; keywords fan out concurrently within the
// loaded shard, each confined to its own collector. A shard that
// fails to read is skipped, not fatal. Callers discover paths via
// shard.Discover.
func (e *Engine) Search(ctx context.Context, paths []string, keywords []string) ([]KeywordResult, Stats, error) {
	collectors := make([]*collector, len(keywords))
	for i, kw := range keywords {
		collectors[i] = &collector{
			keyword: kw,
			agg:     NewAggregator(e.idx.Norm()),
		}
	}

	var stats Stats
	for _, path := range paths {
		s, err := shard.Read(path)
		if err != nil {
			zap.L().Warn("search: skipping unreadable shard",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}
		stats.Shards++

		g, gCtx := errgroup.WithContext(ctx)
		for _, c := range collectors {
			c := c
			g.Go(func() error {
				return e.scanShard(gCtx, s, c)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, stats, err
		}

		zap.L().Debug("search: shard scanned",
			zap.String("path", path),
			zap.Int("records", len(s.Records)),
		)
		// The shard slice goes out of scope here; peak memory stays
		// bounded to one shard regardless of corpus size.
	}

	results := make([]KeywordResult, len(keywords))
	for i, c := range collectors {
		results[i] = KeywordResult{
			Keyword:  c.keyword,
			Rows:     c.agg.Finalize(),
			Rejected: c.rejected,
		}
		stats.Matches += len(results[i].Rows)
		stats.Rejected += len(results[i].Rejected)
	}
	return results, stats, nil
}

// collector is one keyword's goroutine-confined accumulation state.
// Rejected rows stay a plain slice: they are audit output, and two
// unparseable bios must not collapse into one dedup key.
type collector struct {
	keyword  string
	agg      *Aggregator
	rejected []model.ResultRecord
}

func (e *Engine) scanShard(ctx context.Context, s *shard.Shard, c *collector) error {
	kwLower := strings.ToLower(c.keyword)
	for i := range s.Records {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		src := &s.Records[i]
		if !strings.Contains(strings.ToLower(src.FullBio), kwLower) {
			continue
		}
		e.processRow(src, c)
	}
	return nil
}

// processRow runs one matching bio through the extraction chain:
// header parse, sport gate, role rules, roster reconciliation.
func (e *Engine) processRow(src *model.BioRecord, c *collector) {
	header := e.parse.Parse(src.FullBio)

	title := src.Title
	if title == "" || strings.EqualFold(title, "unknown") {
		title = header.Title
	}

	sport, keep := e.sport.Classify(src.FullBio, title)
	if !keep {
		if sport != "" {
			c.rejected = append(c.rejected, model.ResultRecord{
				Role:           model.RoleUncertain,
				Name:           firstNonEmpty(src.Name, header.Name),
				Title:          title,
				School:         firstNonEmpty(src.School, header.School),
				Sport:          sport,
				ContextSnippet: Snippet(src.FullBio, c.keyword, e.h.GoldContextTerms, e.h.SnippetRadius),
				FullBio:        src.FullBio,
			})
		}
		return
	}

	textRole := header.Role
	if textRole != model.RolePlayer {
		textRole = e.role.Classify(title, src.FullBio, nil)
	}

	out, ok := e.rec.Reconcile(header, *src, textRole)
	if !ok {
		return
	}

	// Final role: a surviving roster match with contact info outranks
	// the text heuristics.
	out.Record.Role = e.role.Classify(out.Record.Title, src.FullBio, out.Master)
	out.Record.Title = e.titles.Clean(out.Record.Title, src.FullBio, out.Record.Role)
	out.Record.Sport = sport
	out.Record.ContextSnippet = Snippet(src.FullBio, c.keyword, e.h.GoldContextTerms, e.h.SnippetRadius)

	c.agg.Add(out.Record)
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
