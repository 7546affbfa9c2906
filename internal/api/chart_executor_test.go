// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/crimestats/internal/analytics"
	"github.com/tomtom215/crimestats/internal/chart"
	"github.com/tomtom215/crimestats/internal/models"
)

func TestChartExecutor_CacheHit(t *testing.T) {
	t.Parallel()
	renderer := &countingRenderer{next: chart.NewRenderer(chart.DefaultDPI)}
	h := testServer(t, loadTable(t, fixtureCSV), func(d *Deps) {
		withCache(t)(d)
		d.Renderer = renderer
	})

	first := get(t, h, "/top_crimes")
	assertPNG(t, first)
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}

	second := get(t, h, "/top_crimes")
	assertPNG(t, second)
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from rendered body")
	}
	if n := renderer.calls.Load(); n != 1 {
		t.Errorf("render calls = %d, want 1", n)
	}
}

func TestChartExecutor_NoCacheRendersEachTime(t *testing.T) {
	t.Parallel()
	renderer := &countingRenderer{next: chart.NewRenderer(chart.DefaultDPI)}
	h := testServer(t, loadTable(t, fixtureCSV), func(d *Deps) { d.Renderer = renderer })

	a := get(t, h, "/closure_rate")
	b := get(t, h, "/closure_rate")
	assertPNG(t, a)
	assertPNG(t, b)
	if n := renderer.calls.Load(); n != 2 {
		t.Errorf("render calls = %d, want 2", n)
	}
	if a.Body.String() != b.Body.String() {
		t.Error("repeated renders differ")
	}
}

func TestChartExecutor_IfNoneMatch(t *testing.T) {
	t.Parallel()
	h := testServer(t, loadTable(t, fixtureCSV), nil)

	first := get(t, h, "/metro_vs_non_metro")
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req := httptest.NewRequest(http.MethodGet, "/metro_vs_non_metro", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 body length = %d", rec.Body.Len())
	}
}

func TestChartExecutor_Failures(t *testing.T) {
	t.Parallel()
	tbl := loadTable(t, fixtureCSV)

	tests := []struct {
		name     string
		opt      func(*Deps)
		wantCode string
	}{
		{
			name:     "analytics error",
			opt:      func(d *Deps) { d.Engine = failingEngine{err: errBoom} },
			wantCode: models.ErrCodeAnalytics,
		},
		{
			name:     "render error",
			opt:      func(d *Deps) { d.Renderer = failingRenderer{} },
			wantCode: models.ErrCodeRender,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := testServer(t, tbl, tt.opt)

			for _, spec := range chart.Specs {
				rec := get(t, h, "/"+spec.Name)
				if rec.Code != http.StatusInternalServerError {
					t.Fatalf("%s status = %d, want 500", spec.Name, rec.Code)
				}
				resp := decode(t, rec)
				if resp.Status != models.StatusError || resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("%s response = %+v, want %s", spec.Name, resp, tt.wantCode)
				}
			}
		})
	}
}

func TestChartExecutor_PublishFailureStillServes(t *testing.T) {
	t.Parallel()
	pub := &failingPublisher{}
	h := testServer(t, loadTable(t, fixtureCSV), func(d *Deps) { d.Publisher = pub })

	assertPNG(t, get(t, h, "/crime_closure_rate"))
	if n := pub.calls.Load(); n != 1 {
		t.Errorf("publish calls = %d, want 1", n)
	}
}

func TestChartExecutor_CacheHitRepublishes(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	renderer := &countingRenderer{next: chart.NewRenderer(chart.DefaultDPI)}
	h := testServer(t, loadTable(t, fixtureCSV), func(d *Deps) {
		withCache(t)(d)
		d.Renderer = renderer
		d.Publisher = chart.NewPublisher(dir)
	})

	spec, ok := chart.Lookup("violent_weapons")
	if !ok {
		t.Fatal("violent_weapons spec missing")
	}
	target := filepath.Join(dir, spec.FileName+".png")

	first := get(t, h, "/violent_weapons")
	assertPNG(t, first)
	if err := os.Remove(target); err != nil {
		t.Fatalf("remove published file: %v", err)
	}

	second := get(t, h, "/violent_weapons")
	assertPNG(t, second)
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("X-Cache = %q, want HIT", got)
	}
	published, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("published file after cache hit: %v", err)
	}
	if string(published) != second.Body.String() {
		t.Error("republished file differs from response body")
	}
	if n := renderer.calls.Load(); n != 1 {
		t.Errorf("render calls = %d, want 1", n)
	}
}

func TestChartExecutor_CanceledRequest(t *testing.T) {
	t.Parallel()
	renderer := &countingRenderer{next: chart.NewRenderer(chart.DefaultDPI)}
	tbl := loadTable(t, fixtureCSV)
	handler := NewHandler(Deps{
		Engine:   analytics.NewMemoryEngine(tbl, analytics.NewCityClassifier(testMetro)),
		Renderer: renderer,
		Config:   testConfig(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/top_crimes", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.charts.Execute(rec, req, "top_crimes")

	if n := renderer.calls.Load(); n != 0 {
		t.Errorf("render calls = %d, want 0 for a canceled request", n)
	}
}

func TestChartExecutor_UnknownChart(t *testing.T) {
	t.Parallel()
	handler := NewHandler(Deps{Engine: failingEngine{err: errBoom}, Renderer: failingRenderer{}})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	handler.charts.Execute(rec, req, "nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestChartDefs_CoverEverySpec(t *testing.T) {
	t.Parallel()
	if len(chartDefs) != len(chart.Specs) {
		t.Fatalf("chartDefs = %d, specs = %d", len(chartDefs), len(chart.Specs))
	}
	for _, spec := range chart.Specs {
		if _, ok := lookupChart(spec.Name); !ok {
			t.Errorf("no chart definition for %s", spec.Name)
		}
	}
}
