// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/crimestats/internal/analytics"
	"github.com/tomtom215/crimestats/internal/config"
	"github.com/tomtom215/crimestats/internal/database"
	"github.com/tomtom215/crimestats/internal/dataset"
	"github.com/tomtom215/crimestats/internal/logging"
)

// backend is the analytics engine selected by configuration plus whatever
// it needs released on shutdown.
type backend struct {
	engine analytics.Engine
	health *database.Engine
	close  func()
}

// newEngine builds the configured engine. "duckdb" loads tbl into DuckDB and
// guards the SQL engine with a circuit breaker over the in-memory engine.
func newEngine(ctx context.Context, cfg *config.Config, tbl *dataset.Table) (*backend, error) {
	memory := analytics.NewMemoryEngine(tbl, analytics.NewCityClassifier(cfg.Analytics.MetroCities))

	switch cfg.Analytics.Engine {
	case analytics.EngineMemory, "":
		return &backend{engine: memory, close: func() {}}, nil

	case database.EngineDuckDB:
		db, err := database.New(&cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := db.LoadTable(ctx, tbl, cfg.Analytics.MetroCities); err != nil {
			_ = db.Close()
			return nil, err
		}
		logging.Info().Str("path", cfg.Database.Path).Int("rows", tbl.Len()).Msg("Dataset copied into DuckDB")

		sql := database.NewEngine(db, cfg.Analytics.QueryTimeout)
		return &backend{
			engine: analytics.NewResilientEngine(sql, memory, analytics.DefaultResilientConfig()),
			health: sql,
			close: func() {
				if err := db.Close(); err != nil {
					logging.Warn().Err(err).Msg("Failed to close database")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown analytics engine %q", cfg.Analytics.Engine)
	}
}
