package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"referee/src/internal/config"
	"referee/src/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reference finder over HTTP",
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
			srv := server.New(engine, log)

			log.Info("listening", zap.String("addr", cfg.Listen))
			return http.ListenAndServe(cfg.Listen, srv)
		},
	}
	return cmd
}
