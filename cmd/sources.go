package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/showatlas/showatlas/internal/scorer"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List source reliability scores, highest priority first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := initPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		scores, err := scorer.NewStore(pool).List(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%-8s %-8s %s\n", "SCORE", "STREAK", "URL")
		for _, sc := range scores {
			fmt.Printf("%-8d %-8d %s\n", sc.PriorityScore, sc.ErrorStreak, sc.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
