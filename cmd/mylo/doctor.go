package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mylo/internal/airtable"
	"mylo/internal/notion"
)

const probeTimeout = 10 * time.Second

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config and collaborator connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			check("telegram token set", cfg.Channels.Telegram.Token != "")
			check("notion token set", cfg.Notion.Token != "")
			check("airtable token set", cfg.Airtable.Token != "")
			check("airtable base configured", cfg.Airtable.BaseID != "")

			ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
			defer cancel()

			if cfg.Notion.Token != "" {
				searcher := notion.NewClient(notion.ClientConfig{
					Token:      cfg.Notion.Token,
					APIBase:    cfg.Notion.APIBase,
					APIVersion: cfg.Notion.APIVersion,
					PageSize:   1,
					Logger:     logger,
				})
				_, err := searcher.Search(ctx, "")
				checkErr("notion reachable", err)
			}

			if cfg.Airtable.Token != "" && cfg.Airtable.BaseID != "" {
				ledger := airtable.NewClient(airtable.ClientConfig{
					Token:   cfg.Airtable.Token,
					BaseID:  cfg.Airtable.BaseID,
					APIBase: cfg.Airtable.APIBase,
					Logger:  logger,
				})
				_, err := ledger.FetchRecords(ctx, cfg.Airtable.Table, 1)
				checkErr("airtable reachable", err)
			}

			return nil
		},
	}
}

func check(name string, ok bool) {
	if ok {
		fmt.Printf("  OK   %s\n", name)
	} else {
		fmt.Printf("  FAIL %s\n", name)
	}
}

func checkErr(name string, err error) {
	if err == nil {
		fmt.Printf("  OK   %s\n", name)
	} else {
		fmt.Printf("  FAIL %s: %v\n", name, err)
	}
}
