// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/crimestats/internal/api"
	"github.com/tomtom215/crimestats/internal/cache"
	"github.com/tomtom215/crimestats/internal/chart"
	"github.com/tomtom215/crimestats/internal/config"
	"github.com/tomtom215/crimestats/internal/dataset"
	"github.com/tomtom215/crimestats/internal/logging"
	"github.com/tomtom215/crimestats/internal/metrics"
	"github.com/tomtom215/crimestats/internal/supervisor"
	"github.com/tomtom215/crimestats/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().
		Str("version", version).
		Str("dataset", cfg.Dataset.Path).
		Str("engine", cfg.Analytics.Engine).
		Str("output_dir", cfg.Charts.OutputDir).
		Msg("Starting crimestats")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tbl, loadedAt, err := loadDataset(cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("Failed to load dataset")
	}

	backend, err := newEngine(ctx, cfg, tbl)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize analytics engine")
	}
	defer backend.close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	deps := api.Deps{
		Engine:    backend.engine,
		Renderer:  chart.NewRenderer(cfg.Charts.DPI),
		Publisher: chart.NewPublisher(cfg.Charts.OutputDir),
		Config:    cfg,
		Dataset:   api.DatasetInfo{Source: tbl.Source(), Rows: tbl.Len(), LoadedAt: loadedAt},
		Version:   version,
	}
	if backend.health != nil {
		deps.Health = backend.health
	}
	if cfg.Charts.CacheEnabled {
		chartCache := cache.NewWithoutCleanup[[]byte](cfg.Charts.CacheTTL)
		deps.Cache = chartCache
		tree.AddDataService(services.NewCacheJanitorService(chartCache, cfg.Charts.CacheTTL/2))
	}

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Server.CORSOrigins
	router := api.NewRouter(api.NewHandler(deps), api.NewChiMiddleware(mwConfig))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, services.DefaultShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	logging.Info().Msg("Application stopped gracefully")
}

// loadDataset reads and validates the configured CSV.
func loadDataset(cfg *config.Config) (*dataset.Table, time.Time, error) {
	start := time.Now()
	tbl, err := dataset.Load(cfg.Dataset.Path, dataset.Options{Comma: delimiter(cfg.Dataset.Delimiter)})
	if err != nil {
		return nil, time.Time{}, err
	}
	if err := tbl.Validate(dataset.DefaultSchema()); err != nil {
		return nil, time.Time{}, err
	}

	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(tbl.Len(), elapsed)
	logging.Info().
		Str("path", tbl.Source()).
		Int("rows", tbl.Len()).
		Dur("duration", elapsed).
		Msg("Dataset loaded")
	return tbl, time.Now(), nil
}

// delimiter returns the first rune of s, or zero for the CSV default.
func delimiter(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
