// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package dataset

// Column names the aggregations depend on.
const (
	ColumnCity             = "City"
	ColumnCrimeDescription = "Crime Description"
	ColumnCaseClosed       = "Case Closed"
	ColumnWeaponUsed       = "Weapon Used"
)

// ClosedValue is the Case Closed value that marks a closed case.
const ClosedValue = "Yes"

// Text is a nullable CSV cell. Valid is false for missing values.
type Text struct {
	String string
	Valid  bool
}

// Record is the typed view of one row restricted to the analysed columns.
type Record struct {
	City             Text
	CrimeDescription Text
	CaseClosed       Text
	WeaponUsed       Text
}

// Closed reports whether the case was closed.
func (r Record) Closed() bool {
	return r.CaseClosed.Valid && r.CaseClosed.String == ClosedValue
}

// Table is an immutable, ordered set of rows loaded from a CSV file. It is
// safe for concurrent use because nothing mutates it after construction.
type Table struct {
	source  string
	header  []string
	index   map[string]int
	rows    [][]string
	records []Record
}

// New builds a Table from a header and rows. Each row must have exactly
// len(header) fields. The slices are retained; callers must not modify them.
func New(source string, header []string, rows [][]string) *Table {
	t := &Table{
		source: source,
		header: header,
		index:  make(map[string]int, len(header)),
		rows:   rows,
	}
	for i, name := range header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	t.records = make([]Record, len(rows))
	for i, row := range rows {
		t.records[i] = Record{
			City:             t.cell(row, ColumnCity),
			CrimeDescription: t.cell(row, ColumnCrimeDescription),
			CaseClosed:       t.cell(row, ColumnCaseClosed),
			WeaponUsed:       t.cell(row, ColumnWeaponUsed),
		}
	}
	return t
}

func (t *Table) cell(row []string, column string) Text {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return Text{}
	}
	v := row[i]
	if IsMissing(v) {
		return Text{}
	}
	return Text{String: v, Valid: true}
}

// Source returns the path or name the table was read from.
func (t *Table) Source() string { return t.source }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.records) }

// Columns returns a copy of the header in file order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.header...)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Record returns row i. It panics if i is out of range, like a slice index.
func (t *Table) Record(i int) Record { return t.records[i] }

// Records returns a copy of every typed record.
func (t *Table) Records() []Record {
	return append([]Record(nil), t.records...)
}

// Each calls fn for every record in file order until fn returns false.
func (t *Table) Each(fn func(i int, r Record) bool) {
	for i, r := range t.records {
		if !fn(i, r) {
			return
		}
	}
}

// Value returns the raw cell at row i in column, and whether the column exists.
func (t *Table) Value(i int, column string) (string, bool) {
	c, ok := t.index[column]
	if !ok {
		return "", false
	}
	return t.rows[i][c], true
}

// missingMarkers are the cell values read as missing. The set matches what
// common dataframe CSV readers treat as NA by default.
var missingMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell value denotes a missing value.
func IsMissing(v string) bool {
	_, ok := missingMarkers[v]
	return ok
}
