// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package analytics

import "context"

// Point is one labelled value of a Series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is an ordered list of labelled values, one bar per point.
type Series []Point

// Labels returns the point labels in order.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Label
	}
	return out
}

// Sum returns the total of all values.
func (s Series) Sum() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Matrix is a two-dimensional count table. Values[i][j] is the count for
// Rows[i] and Columns[j]; combinations with no rows hold 0.
type Matrix struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// RowTotals returns the sum of each row.
func (m *Matrix) RowTotals() []float64 {
	out := make([]float64, len(m.Rows))
	for i, row := range m.Values {
		for _, v := range row {
			out[i] += v
		}
	}
	return out
}

// ClosureRow holds the merged closed and total counts of one crime type.
type ClosureRow struct {
	Crime  string  `json:"crime_description"`
	Closed int     `json:"closed_cases"`
	Total  int     `json:"total_cases"`
	Rate   float64 `json:"closure_rate"`
}

// ClosureSeries projects rows onto a Series of rates.
func ClosureSeries(rows []ClosureRow) Series {
	out := make(Series, len(rows))
	for i, r := range rows {
		out[i] = Point{Label: r.Crime, Value: r.Rate}
	}
	return out
}

// Engine computes the chart aggregates over the loaded dataset.
// Implementations must not modify the dataset and must return identical
// results for identical input.
type Engine interface {
	// Name identifies the engine in logs and metrics.
	Name() string

	// CrimeByCity counts rows per (city, crime description).
	CrimeByCity(ctx context.Context) (*Matrix, error)

	// ClosureRate returns closed/total per crime description for crime
	// types with at least one closed case, highest rate first.
	ClosureRate(ctx context.Context) (Series, error)

	// ViolentWeapons counts weapons used in violent crimes, most used first.
	ViolentWeapons(ctx context.Context) (Series, error)

	// TopCrimes returns the n most frequent crime descriptions.
	TopCrimes(ctx context.Context, n int) (Series, error)

	// MetroVsNonMetro counts rows per city type, largest bucket first.
	MetroVsNonMetro(ctx context.Context) (Series, error)

	// CrimeClosureRate returns the merged closed and total counts per crime
	// description, highest rate first.
	CrimeClosureRate(ctx context.Context) ([]ClosureRow, error)
}
