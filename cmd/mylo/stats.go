package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mylo/internal/store"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show handled-query totals per intent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			st, err := store.Open(cfg.Stats.DBPath, logger)
			if err != nil {
				return fmt.Errorf("open stats store: %w", err)
			}
			defer st.Close()

			totals, err := st.Totals(context.Background())
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Println("No queries recorded yet.")
				return nil
			}

			var sum int64
			for _, intent := range []string{"search", "earnings", "none"} {
				if n, ok := totals[intent]; ok {
					fmt.Printf("  %-10s %d\n", intent, n)
					sum += n
				}
			}
			fmt.Printf("  %-10s %d\n", "total", sum)
			return nil
		},
	}
}
