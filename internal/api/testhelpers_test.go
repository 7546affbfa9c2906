// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/crimestats/internal/analytics"
	"github.com/tomtom215/crimestats/internal/cache"
	"github.com/tomtom215/crimestats/internal/chart"
	"github.com/tomtom215/crimestats/internal/config"
	"github.com/tomtom215/crimestats/internal/dataset"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

var testMetro = []string{"Mumbai", "Delhi", "Bangalore", "Kolkata", "Chennai", "Hyderabad", "Pune"}

const fixtureCSV = `City,Crime Description,Case Closed,Weapon Used
Mumbai,THEFT,Yes,
Mumbai,THEFT,No,Knife
Agra,ASSAULT,Yes,Blunt Object
Delhi,HOMICIDE,No,Firearm
Delhi,domestic assault,Yes,Blunt Object
Agra,FRAUD,No,
Pune,KIDNAPPING,No,Knife
Pune,ASSAULT,No,
Surat,THEFT,Yes,Knife
,VANDALISM,No,Knife
`

var errBoom = errors.New("boom")

func loadTable(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Read(strings.NewReader(csv), "fixture.csv", dataset.Options{})
	if err != nil {
		t.Fatalf("dataset.Read() error = %v", err)
	}
	return tbl
}

func testConfig() *config.Config {
	return &config.Config{
		Analytics: config.AnalyticsConfig{Engine: analytics.EngineMemory, TopN: 5, MetroCities: testMetro},
	}
}

// testServer wires a full router over tbl. opt may adjust the deps.
func testServer(t *testing.T, tbl *dataset.Table, opt func(*Deps)) http.Handler {
	t.Helper()
	deps := Deps{
		Engine:    analytics.NewMemoryEngine(tbl, analytics.NewCityClassifier(testMetro)),
		Renderer:  chart.NewRenderer(chart.DefaultDPI),
		Publisher: chart.NewPublisher(t.TempDir()),
		Config:    testConfig(),
		Dataset:   DatasetInfo{Source: tbl.Source(), Rows: tbl.Len(), LoadedAt: time.Now()},
		Version:   "test",
	}
	if opt != nil {
		opt(&deps)
	}
	return NewRouter(NewHandler(deps), nil).SetupChi()
}

func withCache(t *testing.T) func(*Deps) {
	return func(d *Deps) {
		c := cache.New[[]byte](time.Minute)
		t.Cleanup(c.Close)
		d.Cache = c
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func assertPNG(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), pngSignature) {
		t.Error("body is not a PNG")
	}
}

// seriesResponse decodes an aggregates response carrying a series.
type seriesResponse struct {
	Status string `json:"status"`
	Data   struct {
		Chart  string                 `json:"chart"`
		Series []analytics.Point      `json:"series"`
		Matrix *analytics.Matrix      `json:"matrix"`
		Rows   []analytics.ClosureRow `json:"rows"`
	} `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) seriesResponse {
	t.Helper()
	var resp seriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode %s: %v", rec.Body.String(), err)
	}
	return resp
}

// failingEngine returns err from every operation.
type failingEngine struct{ err error }

func (e failingEngine) Name() string { return "failing" }
func (e failingEngine) CrimeByCity(context.Context) (*analytics.Matrix, error) {
	return nil, e.err
}
func (e failingEngine) ClosureRate(context.Context) (analytics.Series, error) { return nil, e.err }
func (e failingEngine) ViolentWeapons(context.Context) (analytics.Series, error) {
	return nil, e.err
}
func (e failingEngine) TopCrimes(context.Context, int) (analytics.Series, error) {
	return nil, e.err
}
func (e failingEngine) MetroVsNonMetro(context.Context) (analytics.Series, error) {
	return nil, e.err
}
func (e failingEngine) CrimeClosureRate(context.Context) ([]analytics.ClosureRow, error) {
	return nil, e.err
}

// breakerEngine looks like a ResilientEngine to the health handler.
type breakerEngine struct {
	analytics.Engine
	state string
}

func (e breakerEngine) BreakerState() string { return e.state }

type countingRenderer struct {
	next  ChartRenderer
	calls atomic.Int32
}

func (r *countingRenderer) Render(spec chart.Spec, data any) ([]byte, error) {
	r.calls.Add(1)
	return r.next.Render(spec, data)
}

type failingRenderer struct{}

func (failingRenderer) Render(chart.Spec, any) ([]byte, error) { return nil, errBoom }

type failingPublisher struct{ calls atomic.Int32 }

func (p *failingPublisher) Publish(string, []byte) (string, error) {
	p.calls.Add(1)
	return "", errBoom
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }
