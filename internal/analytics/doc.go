// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

// Package analytics computes the aggregates behind every chart.
//
// Engine is implemented by MemoryEngine (pure Go over a dataset.Table) and
// by database.Engine (SQL over DuckDB). ResilientEngine pairs the two with
// a gobreaker circuit breaker so DuckDB failures degrade to the in-memory
// path instead of failing requests.
//
// Ordering rules shared by all engines:
//   - counts are sorted descending, ties in first-appearance order
//   - closure rates are sorted descending, ties in ascending crime order
//   - CrimeByCity rows and columns are sorted ascending
//   - rows with a missing grouping key are excluded from that grouping
package analytics
