package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"referee/src/internal/config"
)

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <item>",
		Short: "Find candidate references for an item and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			engine := buildEngine(cfg, log)
			results, err := engine.FindReferences(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("find references: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
	return cmd
}
