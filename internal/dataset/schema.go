// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package dataset

import (
	"fmt"
	"strings"
)

// Schema lists the columns a dataset must provide.
type Schema struct {
	Required []string
}

// DefaultSchema returns the columns every chart needs.
func DefaultSchema() Schema {
	return Schema{Required: []string{
		ColumnCity,
		ColumnCrimeDescription,
		ColumnCaseClosed,
		ColumnWeaponUsed,
	}}
}

// SchemaError reports which required columns are absent.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset %s is missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// Validate checks that every required column exists. It returns a
// *SchemaError naming all missing columns, or nil.
func (t *Table) Validate(s Schema) error {
	var missing []string
	for _, col := range s.Required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Source: t.source, Missing: missing}
	}
	return nil
}
