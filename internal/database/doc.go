// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

// Package database holds the DuckDB-backed analytics engine.
//
// The dataset is loaded once into an in-process DuckDB (":memory:" by
// default) with LoadTable, and Engine answers every analytics.Engine
// call with SQL. The in-memory engine remains the source of truth for
// ordering: SQL queries break ties on the file row_id so both
// engines return identical series.
//
// Usage:
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.LoadTable(ctx, tbl, cfg.Analytics.MetroCities); err != nil {
//	    return err
//	}
//	engine := database.NewEngine(db, cfg.Analytics.QueryTimeout)
package database
