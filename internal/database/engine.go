// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/crimestats/internal/analytics"
	"github.com/tomtom215/crimestats/internal/dataset"
)

// EngineDuckDB is the Name of the SQL engine.
const EngineDuckDB = "duckdb"

// Engine implements analytics.Engine with SQL over the crimes table.
// LoadTable must have been called first.
type Engine struct {
	db      *DB
	timeout time.Duration
}

// NewEngine returns a SQL engine. A positive timeout bounds every query.
func NewEngine(db *DB, timeout time.Duration) *Engine {
	return &Engine{db: db, timeout: timeout}
}

// Name implements analytics.Engine.
func (e *Engine) Name() string { return EngineDuckDB }

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout > 0 {
		return context.WithTimeout(ctx, e.timeout)
	}
	return context.WithCancel(ctx)
}

// queryAndScan runs query and hands every row to scanner.
func (e *Engine) queryAndScan(ctx context.Context, query string, args []any, scanner func(*sql.Rows) error) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	rows, err := e.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		if err := scanner(rows); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration failed: %w", err)
	}
	return nil
}

// countSeries scans (label, count) rows into a Series.
func (e *Engine) countSeries(ctx context.Context, query string, args ...any) (analytics.Series, error) {
	s := analytics.Series{}
	err := e.queryAndScan(ctx, query, args, func(rows *sql.Rows) error {
		var label string
		var count int64
		if err := rows.Scan(&label, &count); err != nil {
			return err
		}
		s = append(s, analytics.Point{Label: label, Value: float64(count)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CrimeByCity implements analytics.Engine.
func (e *Engine) CrimeByCity(ctx context.Context) (*analytics.Matrix, error) {
	type cell struct{ city, crime string }
	counts := make(map[cell]float64)
	cities := make(map[string]struct{})
	crimes := make(map[string]struct{})

	err := e.queryAndScan(ctx, `
		SELECT city, crime_description, COUNT(*)
		FROM crimes
		WHERE city IS NOT NULL AND crime_description IS NOT NULL
		GROUP BY city, crime_description`, nil,
		func(rows *sql.Rows) error {
			var c cell
			var n int64
			if err := rows.Scan(&c.city, &c.crime, &n); err != nil {
				return err
			}
			counts[c] = float64(n)
			cities[c.city] = struct{}{}
			crimes[c.crime] = struct{}{}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("crime by city: %w", err)
	}

	// Ordering happens in Go so it matches the in-memory engine byte for byte
	// regardless of DuckDB collation.
	m := &analytics.Matrix{Rows: keys(cities), Columns: keys(crimes)}
	m.Values = make([][]float64, len(m.Rows))
	for i, city := range m.Rows {
		m.Values[i] = make([]float64, len(m.Columns))
		for j, crime := range m.Columns {
			m.Values[i][j] = counts[cell{city, crime}]
		}
	}
	return m, nil
}

// CrimeClosureRate implements analytics.Engine.
func (e *Engine) CrimeClosureRate(ctx context.Context) ([]analytics.ClosureRow, error) {
	var out []analytics.ClosureRow
	err := e.queryAndScan(ctx, `
		WITH totals AS (
			SELECT crime_description, COUNT(*) AS total
			FROM crimes
			WHERE crime_description IS NOT NULL
			GROUP BY crime_description
		), closed AS (
			SELECT crime_description, COUNT(*) AS closed
			FROM crimes
			WHERE crime_description IS NOT NULL AND case_closed = ?
			GROUP BY crime_description
		)
		SELECT c.crime_description, c.closed, t.total
		FROM closed c
		JOIN totals t ON t.crime_description = c.crime_description`,
		[]any{dataset.ClosedValue},
		func(rows *sql.Rows) error {
			var crime string
			var closed, total int64
			if err := rows.Scan(&crime, &closed, &total); err != nil {
				return err
			}
			out = append(out, analytics.NewClosureRow(crime, int(closed), int(total)))
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("crime closure rate: %w", err)
	}
	if out == nil {
		out = []analytics.ClosureRow{}
	}
	analytics.SortClosureRows(out)
	return out, nil
}

// ClosureRate implements analytics.Engine.
func (e *Engine) ClosureRate(ctx context.Context) (analytics.Series, error) {
	rows, err := e.CrimeClosureRate(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ClosureSeries(rows), nil
}

// ViolentWeapons implements analytics.Engine.
func (e *Engine) ViolentWeapons(ctx context.Context) (analytics.Series, error) {
	s, err := e.countSeries(ctx, `
		SELECT weapon_used, COUNT(*) AS n
		FROM crimes
		WHERE regexp_matches(crime_description, ?, 'i') AND weapon_used IS NOT NULL
		GROUP BY weapon_used
		ORDER BY n DESC, MIN(row_id) ASC`, analytics.ViolentPattern)
	if err != nil {
		return nil, fmt.Errorf("violent weapons: %w", err)
	}
	return s, nil
}

// TopCrimes implements analytics.Engine.
func (e *Engine) TopCrimes(ctx context.Context, n int) (analytics.Series, error) {
	if n <= 0 {
		return analytics.Series{}, nil
	}
	s, err := e.countSeries(ctx, `
		SELECT crime_description, COUNT(*) AS n
		FROM crimes
		WHERE crime_description IS NOT NULL
		GROUP BY crime_description
		ORDER BY n DESC, MIN(row_id) ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("top crimes: %w", err)
	}
	return s, nil
}

// MetroVsNonMetro implements analytics.Engine. The city type is derived in
// the query; nothing is written back to the crimes table. The absent city
// type is padded in Go since GROUP BY yields no row for it.
func (e *Engine) MetroVsNonMetro(ctx context.Context) (analytics.Series, error) {
	s, err := e.countSeries(ctx, metroQuery)
	if err != nil {
		return nil, fmt.Errorf("metro vs non-metro: %w", err)
	}
	return analytics.WithBothCityTypes(s), nil
}

var metroQuery = fmt.Sprintf(`
	SELECT CASE WHEN m.city IS NOT NULL THEN '%s' ELSE '%s' END AS city_type, COUNT(*) AS n
	FROM crimes c
	LEFT JOIN metro_cities m ON m.city = c.city
	GROUP BY city_type
	ORDER BY n DESC, MIN(c.row_id) ASC`, analytics.CityTypeMetro, analytics.CityTypeNonMetro)

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var _ analytics.Engine = (*Engine)(nil)

// ErrNotLoaded is returned by Health when LoadTable has not run.
var ErrNotLoaded = errors.New("database: crimes table not loaded")

// Health verifies the connection and that the crimes table exists.
func (e *Engine) Health(ctx context.Context) error {
	if err := e.db.Ping(ctx); err != nil {
		return err
	}
	var n int64
	err := e.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'crimes'`).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotLoaded
	}
	return nil
}
