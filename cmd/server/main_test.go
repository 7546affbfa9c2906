// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/crimestats/internal/analytics"
	"github.com/tomtom215/crimestats/internal/config"
	"github.com/tomtom215/crimestats/internal/dataset"
)

const sampleCSV = "City,Crime Description,Case Closed,Weapon Used\nMumbai,THEFT,Yes,Knife\nAgra,ASSAULT,No,\n"

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crimes.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(path string) *config.Config {
	return &config.Config{
		Dataset:   config.DatasetConfig{Path: path, Delimiter: ","},
		Analytics: config.AnalyticsConfig{Engine: analytics.EngineMemory, TopN: 5, MetroCities: []string{"Mumbai"}},
	}
}

func TestDelimiter(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"", 0},
		{",", ','},
		{";", ';'},
		{"\t", '\t'},
	}
	for _, tt := range tests {
		if got := delimiter(tt.in); got != tt.want {
			t.Errorf("delimiter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadDataset(t *testing.T) {
	tbl, loadedAt, err := loadDataset(testConfig(writeDataset(t, sampleCSV)))
	if err != nil {
		t.Fatalf("loadDataset() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
	if loadedAt.IsZero() {
		t.Error("loadedAt is zero")
	}
}

func TestLoadDataset_MissingColumn(t *testing.T) {
	_, _, err := loadDataset(testConfig(writeDataset(t, "City,Crime Description\nMumbai,THEFT\n")))
	var schemaErr *dataset.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Errorf("loadDataset() error = %v, want *dataset.SchemaError", err)
	}
}

func TestLoadDataset_MissingFile(t *testing.T) {
	if _, _, err := loadDataset(testConfig(filepath.Join(t.TempDir(), "absent.csv"))); err == nil {
		t.Error("loadDataset() error = nil for a missing file")
	}
}

func TestNewEngine(t *testing.T) {
	tbl, err := dataset.Read(strings.NewReader(sampleCSV), "sample.csv", dataset.Options{})
	if err != nil {
		t.Fatal(err)
	}

	cfg := testConfig("")
	b, err := newEngine(context.Background(), cfg, tbl)
	if err != nil {
		t.Fatalf("newEngine(memory) error = %v", err)
	}
	defer b.close()
	if b.engine.Name() != analytics.EngineMemory {
		t.Errorf("engine = %q, want %q", b.engine.Name(), analytics.EngineMemory)
	}
	if b.health != nil {
		t.Error("memory engine should have no health checker")
	}

	cfg.Analytics.Engine = "oracle"
	if _, err := newEngine(context.Background(), cfg, tbl); err == nil {
		t.Error("newEngine(oracle) error = nil")
	}
}
