package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/showatlas/showatlas/internal/catalog"
	"github.com/showatlas/showatlas/internal/promote"
	"github.com/showatlas/showatlas/internal/staging"
)

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Transfer staged PENDING records into the production catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := initPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		stagingStore := staging.NewStore(pool)
		catalogStore := catalog.NewStore(pool)
		if err := catalogStore.Migrate(ctx); err != nil {
			return err
		}

		sum, err := promote.New(stagingStore, catalogStore).Run(ctx)
		if err != nil {
			return err
		}

		for _, msg := range sum.FailureMsgs {
			zap.L().Warn("promotion failure", zap.String("record", msg))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promoteCmd)
}
