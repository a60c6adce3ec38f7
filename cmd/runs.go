package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridiron-labs/roster-scout/internal/model"
	"github.com/gridiron-labs/roster-scout/internal/store"
)

var (
	runsStatus string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded search runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Migrate(cmd.Context()); err != nil {
			return err
		}

		runs, err := s.ListRuns(cmd.Context(), store.RunFilter{
			Status: model.RunStatus(runsStatus),
			Limit:  runsLimit,
		})
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		for _, run := range runs {
			fmt.Printf("%s  %-8s  %s  shards=%d matches=%d rejected=%d\n",
				run.CreatedAt.Format("2006-01-02 15:04"), run.Status,
				strings.Join(run.Keywords, ","), run.Shards, run.Matches, run.Rejected)
			if run.OutputPath != "" {
				fmt.Printf("  -> %s\n", run.OutputPath)
			}
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsStatus, "status", "", "filter by status (running, complete, failed)")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
