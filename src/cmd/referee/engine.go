package main

import (
	"net/http"

	"go.uber.org/zap"

	"referee/src/internal/config"
	"referee/src/internal/fetch"
	"referee/src/internal/referee"
	"referee/src/internal/wikibase"
)

// buildEngine assembles the pipeline from configuration.
func buildEngine(cfg *config.Config, log *zap.Logger) *referee.Engine {
	client := &http.Client{Timeout: cfg.FetchTimeout}
	loader := wikibase.NewAPIClient(cfg.APIEndpoint, client)
	fetcher := fetch.New(client,
		fetch.WithExtraDenylist(cfg.ExtraDenylist),
		fetch.WithMaxBodyBytes(cfg.MaxBodyBytes),
		fetch.WithLogger(log),
	)
	return referee.New(loader, fetcher,
		referee.WithFetchLimit(cfg.FetchConcurrency),
		referee.WithLogger(log),
	)
}

// newLogger builds a production logger at the configured level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zc.Level = lvl
	}
	return zc.Build()
}
