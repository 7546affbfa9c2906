// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrEmptyHeader is returned when the input has no header row.
	ErrEmptyHeader = errors.New("dataset: missing header row")

	// ErrColumnMismatch is returned when a row's field count differs from the header.
	ErrColumnMismatch = errors.New("dataset: row field count does not match header")
)

// Options control CSV parsing.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// Load opens path and reads it as CSV.
func Load(path string, opts Options) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path, opts)
}

// Read parses CSV from r. name identifies the source in errors.
func Read(r io.Reader, name string, opts Options) (*Table, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	// Field counts are checked below so the error carries our sentinel.
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", name, err)
	}
	header = normalizeHeader(header)

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read row: %w", name, err)
		}
		if len(row) != len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%s line %d: got %d fields, want %d: %w",
				name, line, len(row), len(header), ErrColumnMismatch)
		}
		rows = append(rows, row)
	}

	return New(name, header, rows), nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}
