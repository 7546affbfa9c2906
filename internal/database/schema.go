// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/crimestats/internal/dataset"
	"github.com/tomtom215/crimestats/internal/logging"
)

var schemaStatements = []string{
	`CREATE OR REPLACE TABLE crimes (
		row_id            BIGINT PRIMARY KEY,
		city              VARCHAR,
		crime_description VARCHAR,
		case_closed       VARCHAR,
		weapon_used       VARCHAR
	)`,
	`CREATE OR REPLACE TABLE metro_cities (
		city VARCHAR PRIMARY KEY
	)`,
}

// LoadTable replaces the crimes and metro_cities tables with the contents
// of tbl and metroCities. Missing cells are stored as NULL. row_id is the
// zero-based file row, so first-appearance ordering survives in SQL.
func (db *DB) LoadTable(ctx context.Context, tbl *dataset.Table, metroCities []string) (err error) {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO crimes (row_id, city, crime_description, case_closed, weapon_used) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	tbl.Each(func(i int, r dataset.Record) bool {
		_, err = stmt.ExecContext(ctx, int64(i),
			nullable(r.City), nullable(r.CrimeDescription), nullable(r.CaseClosed), nullable(r.WeaponUsed))
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert dataset rows: %w", err)
	}

	metroStmt, err := tx.PrepareContext(ctx, `INSERT INTO metro_cities (city) VALUES (?) ON CONFLICT DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare metro insert: %w", err)
	}
	defer closeWithLog(metroStmt, "statement")

	for _, city := range metroCities {
		if _, err = metroStmt.ExecContext(ctx, city); err != nil {
			return fmt.Errorf("failed to insert metro city %q: %w", city, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset load: %w", err)
	}
	return nil
}

// RowCount returns the number of rows in the crimes table.
func (db *DB) RowCount(ctx context.Context) (int, error) {
	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM crimes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return int(n), nil
}

func nullable(t dataset.Text) any {
	if !t.Valid {
		return nil
	}
	return t.String
}
