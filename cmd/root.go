package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/showatlas/showatlas/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "showatlas",
	Short: "Show listing ingestion pipeline",
	Long:  "Fetches show listing websites, extracts candidates deterministically or via Claude, normalizes and validates them, geocodes venues, and promotes staged records into the production catalog.",
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
