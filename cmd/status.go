package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/showatlas/showatlas/internal/model"
	"github.com/showatlas/showatlas/internal/staging"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report staging record counts by lifecycle status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := initPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		counts, err := staging.NewStore(pool).CountByStatus(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%-12s %d\n", model.StatusPending, counts[model.StatusPending])
		fmt.Printf("%-12s %d\n", model.StatusTransferred, counts[model.StatusTransferred])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
