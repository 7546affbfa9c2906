// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package analytics

import (
	"context"
	"sort"

	"github.com/tomtom215/crimestats/internal/dataset"
)

// EngineMemory is the Name of the in-memory engine.
const EngineMemory = "memory"

// MemoryEngine aggregates directly over a dataset.Table. Every method is a
// pure function of the table and the classifier.
type MemoryEngine struct {
	table      *dataset.Table
	classifier CityClassifier
}

// NewMemoryEngine returns an engine reading from table.
func NewMemoryEngine(table *dataset.Table, classifier CityClassifier) *MemoryEngine {
	return &MemoryEngine{table: table, classifier: classifier}
}

// Name implements Engine.
func (e *MemoryEngine) Name() string { return EngineMemory }

// CrimeByCity implements Engine. Rows and columns are sorted ascending;
// rows with a missing city or crime description are skipped.
func (e *MemoryEngine) CrimeByCity(ctx context.Context) (*Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type key struct{ city, crime string }
	counts := make(map[key]float64)
	cities := make(map[string]struct{})
	crimes := make(map[string]struct{})

	e.table.Each(func(_ int, r dataset.Record) bool {
		if !r.City.Valid || !r.CrimeDescription.Valid {
			return true
		}
		counts[key{r.City.String, r.CrimeDescription.String}]++
		cities[r.City.String] = struct{}{}
		crimes[r.CrimeDescription.String] = struct{}{}
		return true
	})

	m := &Matrix{Rows: sortedKeys(cities), Columns: sortedKeys(crimes)}
	m.Values = make([][]float64, len(m.Rows))
	for i, city := range m.Rows {
		m.Values[i] = make([]float64, len(m.Columns))
		for j, crime := range m.Columns {
			m.Values[i][j] = counts[key{city, crime}]
		}
	}
	return m, nil
}

// ClosureRate implements Engine.
func (e *MemoryEngine) ClosureRate(ctx context.Context) (Series, error) {
	rows, err := e.CrimeClosureRate(ctx)
	if err != nil {
		return nil, err
	}
	return ClosureSeries(rows), nil
}

// CrimeClosureRate implements Engine. Only crime types with at least one
// closed case appear; ties keep ascending crime description order.
func (e *MemoryEngine) CrimeClosureRate(ctx context.Context) ([]ClosureRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	closed := make(map[string]int)
	e.table.Each(func(_ int, r dataset.Record) bool {
		if !r.CrimeDescription.Valid {
			return true
		}
		totals[r.CrimeDescription.String]++
		if r.Closed() {
			closed[r.CrimeDescription.String]++
		}
		return true
	})

	rows := make([]ClosureRow, 0, len(closed))
	for crime, n := range closed {
		rows = append(rows, NewClosureRow(crime, n, totals[crime]))
	}
	SortClosureRows(rows)
	return rows, nil
}

// NewClosureRow computes the rate for one crime type. total must be positive.
func NewClosureRow(crime string, closed, total int) ClosureRow {
	return ClosureRow{Crime: crime, Closed: closed, Total: total, Rate: float64(closed) / float64(total)}
}

// SortClosureRows orders rows by rate descending, ties by ascending crime.
func SortClosureRows(rows []ClosureRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rate != rows[j].Rate {
			return rows[i].Rate > rows[j].Rate
		}
		return rows[i].Crime < rows[j].Crime
	})
}

// ViolentWeapons implements Engine. Missing weapons are not counted.
func (e *MemoryEngine) ViolentWeapons(ctx context.Context) (Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var c counter
	e.table.Each(func(_ int, r dataset.Record) bool {
		if IsViolent(r.CrimeDescription) && r.WeaponUsed.Valid {
			c.add(r.WeaponUsed.String)
		}
		return true
	})
	return c.series(), nil
}

// TopCrimes implements Engine. Ties keep first-appearance order.
func (e *MemoryEngine) TopCrimes(ctx context.Context, n int) (Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return Series{}, nil
	}

	var c counter
	e.table.Each(func(_ int, r dataset.Record) bool {
		if r.CrimeDescription.Valid {
			c.add(r.CrimeDescription.String)
		}
		return true
	})

	s := c.series()
	if len(s) > n {
		s = s[:n]
	}
	return s, nil
}

// MetroVsNonMetro implements Engine. The classification is computed per
// call; the table is not annotated. Both city types appear whenever the
// table has rows, an absent one with a zero count.
func (e *MemoryEngine) MetroVsNonMetro(ctx context.Context) (Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var c counter
	e.table.Each(func(_ int, r dataset.Record) bool {
		c.add(e.classifier.Classify(r.City))
		return true
	})
	return WithBothCityTypes(c.series()), nil
}

// counter counts labels and remembers the order they were first seen.
type counter struct {
	order  []string
	counts map[string]float64
}

func (c *counter) add(label string) {
	if c.counts == nil {
		c.counts = make(map[string]float64)
	}
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// series returns counts sorted descending, ties in first-seen order.
func (c *counter) series() Series {
	s := make(Series, len(c.order))
	for i, label := range c.order {
		s[i] = Point{Label: label, Value: c.counts[label]}
	}
	sort.SliceStable(s, func(i, j int) bool { return s[i].Value > s[j].Value })
	return s
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
