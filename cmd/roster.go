package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridiron-labs/roster-scout/internal/config"
	"github.com/gridiron-labs/roster-scout/internal/normalize"
	"github.com/gridiron-labs/roster-scout/internal/roster"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the master contact roster",
}

var rosterSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the latest master roster",
	RunE: func(cmd *cobra.Command, _ []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		if err := loader.Sync(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", cfg.Roster.File)
		return nil
	},
}

var rosterStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the local roster file and how many contacts it indexes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info, err := os.Stat(cfg.Roster.File)
		if err != nil {
			fmt.Printf("%s: not present, searches will run without reconciliation\n", cfg.Roster.File)
			return nil
		}
		loader, err := newLoader()
		if err != nil {
			return err
		}
		idx := loader.Load(cmd.Context())
		fmt.Printf("%s: %d bytes, modified %s, %d contacts indexed\n",
			cfg.Roster.File, info.Size(), info.ModTime().Format("2006-01-02 15:04:05"), idx.Len())
		return nil
	},
}

func newLoader() (*roster.Loader, error) {
	h, err := config.LoadHeuristics(cfg.Heuristics)
	if err != nil {
		return nil, err
	}
	return roster.NewLoader(cfg.Roster, normalize.New(h.StopWords), h.SchoolAliases), nil
}

func init() {
	rosterCmd.AddCommand(rosterSyncCmd, rosterStatusCmd)
	rootCmd.AddCommand(rosterCmd)
}
