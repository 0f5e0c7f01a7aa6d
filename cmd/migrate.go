package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/showatlas/showatlas/internal/catalog"
	"github.com/showatlas/showatlas/internal/scorer"
	"github.com/showatlas/showatlas/internal/staging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the staging, production, and source score tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := initPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := staging.NewStore(pool).Migrate(ctx); err != nil {
			return err
		}
		if err := catalog.NewStore(pool).Migrate(ctx); err != nil {
			return err
		}
		if err := scorer.NewStore(pool).Migrate(ctx); err != nil {
			return err
		}

		zap.L().Info("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
