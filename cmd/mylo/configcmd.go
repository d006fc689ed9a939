package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"mylo/internal/config"
)

func configCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the config file",
	}

	root.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the config with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			data, err := json.MarshalIndent(config.Sanitize(cfg), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "get <path>",
		Short: "Get a config value by dot path (e.g. airtable.table)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			val, err := config.GetByPath(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Println(val)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set a config value by dot path and save",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := config.SetByPath(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			if err := config.Save(cfgPath, cfg); err != nil {
				return err
			}
			logger.Info("config updated", "path", args[0])
			return nil
		},
	})

	return root
}
