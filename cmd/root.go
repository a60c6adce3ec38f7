package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridiron-labs/roster-scout/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "roster-scout",
	Short: "Keyword search over scraped athletics-staff bios",
	Long: "Searches a sharded corpus of scraped staff/roster bio pages for keywords, " +
		"reconstructs contact records from the noisy text, reconciles them against " +
		"the master roster, and exports styled XLSX workbooks.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
