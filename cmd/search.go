package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridiron-labs/roster-scout/internal/export"
	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/search"
	"github.com/gridiron-labs/roster-scout/internal/shard"
)

var (
	searchKeywords string
	searchShards   string
	searchOut      string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the bio corpus and export matched contact records",
	Long: `Searches every shard for the given keywords and writes one XLSX
workbook of reconciled contact records (one sheet per keyword), plus a
companion workbook of rows rejected as non-football sports.

Examples:
  roster-scout search --keywords recruiting
  roster-scout search --keywords "recruiting,special teams" --shards ./db_chunks`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		keywords := splitKeywords(searchKeywords)
		if len(keywords) == 0 {
			return eris.New("search: at least one keyword is required")
		}

		shardDir := cfg.Shards.Dir
		if searchShards != "" {
			shardDir = searchShards
		}
		resultsDir := cfg.Output.ResultsDir
		if searchOut != "" {
			resultsDir = searchOut
		}

		paths, err := shard.Discover(shardDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("no database files found")
			return nil
		}

		env, err := initSearchEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var runID string
		if env.Store != nil {
			if run, err := env.Store.CreateRun(ctx, keywords); err != nil {
				zap.L().Warn("search: could not record run", zap.Error(err))
			} else {
				runID = run.ID
			}
		}

		results, stats, err := env.Engine.Search(ctx, paths, keywords)
		if err != nil {
			if runID != "" {
				_ = env.Store.FailRun(ctx, runID, err.Error())
			}
			return err
		}

		for _, res := range results {
			fmt.Printf("  '%s': %d matches\n", res.Keyword, len(res.Rows))
		}
		if stats.Matches == 0 {
			fmt.Println("no matches")
		}

		now := time.Now()
		outputPath, err := writeWorkbooks(results, resultsDir, cfg.Output.RejectedDir, keywords[0], now)
		if err != nil {
			if runID != "" {
				_ = env.Store.FailRun(ctx, runID, err.Error())
			}
			return err
		}

		if runID != "" {
			if err := env.Store.CompleteRun(ctx, runID, &model.SearchRun{
				Shards:     stats.Shards,
				Matches:    stats.Matches,
				Rejected:   stats.Rejected,
				OutputPath: outputPath,
			}); err != nil {
				zap.L().Warn("search: could not record completion", zap.Error(err))
			}
		}

		zap.L().Info("search complete",
			zap.Int("shards", stats.Shards),
			zap.Int("matches", stats.Matches),
			zap.Int("rejected", stats.Rejected),
		)
		if outputPath != "" {
			fmt.Printf("saved %s\n", outputPath)
		}
		return nil
	},
}

// writeWorkbooks exports the result and rejected workbooks, creating
// the output directories on demand. Returns the results path, "" when
// nothing matched.
func writeWorkbooks(results []search.KeywordResult, resultsDir, rejectedDir, primary string, now time.Time) (string, error) {
	var clean, rejected []export.Sheet
	for _, res := range results {
		clean = append(clean, export.Sheet{Name: res.Keyword, Rows: res.Rows})
		rejected = append(rejected, export.Sheet{Name: res.Keyword, Rows: res.Rejected})
	}

	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return "", eris.Wrapf(err, "search: create %s", resultsDir)
	}
	outputPath := filepath.Join(resultsDir, export.Filename(primary, now))
	wrote, err := export.WriteWorkbook(outputPath, clean)
	if err != nil {
		return "", err
	}
	if !wrote {
		outputPath = ""
	}

	if err := os.MkdirAll(rejectedDir, 0o755); err != nil {
		return outputPath, eris.Wrapf(err, "search: create %s", rejectedDir)
	}
	if _, err := export.WriteWorkbook(filepath.Join(rejectedDir, export.RejectedFilename(primary, now)), rejected); err != nil {
		return outputPath, err
	}

	return outputPath, nil
}

func splitKeywords(raw string) []string {
	var keywords []string
	for _, kw := range strings.Split(raw, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func init() {
	searchCmd.Flags().StringVar(&searchKeywords, "keywords", "", "comma-separated keywords to search (required)")
	searchCmd.Flags().StringVar(&searchShards, "shards", "", "shard directory (default from config)")
	searchCmd.Flags().StringVar(&searchOut, "out", "", "results directory (default from config)")
	_ = searchCmd.MarkFlagRequired("keywords")
	rootCmd.AddCommand(searchCmd)
}
