// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

// Package dataset loads the crime CSV into an immutable Table.
//
// The table is read once at startup and validated against a Schema; a
// missing column is a startup error rather than a per-request failure.
// After that the table is shared read-only by every request, so derived
// values (such as a city's metro classification) are computed by callers
// and never stored back.
//
//	tbl, err := dataset.Load(cfg.Dataset.Path, dataset.Options{})
//	if err != nil { ... }
//	if err := tbl.Validate(dataset.DefaultSchema()); err != nil { ... }
//
// Cells matching the usual NA markers ("", "NA", "NaN", "null", ...) are
// exposed as Text{Valid: false}.
package dataset
