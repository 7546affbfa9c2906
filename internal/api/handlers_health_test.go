// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/crimestats/internal/analytics"
	"github.com/tomtom215/crimestats/internal/models"
)

func healthOf(t *testing.T, body []byte) models.HealthStatus {
	t.Helper()
	var resp struct {
		Data models.HealthStatus `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Data
}

func TestHealth(t *testing.T) {
	t.Parallel()
	tbl := loadTable(t, fixtureCSV)
	down := healthFunc(func(context.Context) error { return errBoom })
	up := healthFunc(func(context.Context) error { return nil })
	memory := analytics.NewMemoryEngine(tbl, analytics.NewCityClassifier(testMetro))

	tests := []struct {
		name        string
		engine      analytics.Engine
		health      HealthChecker
		wantStatus  string
		wantReady   int
		wantBreaker string
	}{
		{"no checker", memory, nil, HealthHealthy, http.StatusOK, ""},
		{"checker up", memory, up, HealthHealthy, http.StatusOK, ""},
		{"checker down", memory, down, HealthUnhealthy, http.StatusServiceUnavailable, ""},
		{"down behind breaker", breakerEngine{Engine: memory, state: "open"}, down, HealthDegraded, http.StatusOK, "open"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := testServer(t, tbl, func(d *Deps) {
				d.Engine = tt.engine
				d.Health = tt.health
			})

			rec := get(t, h, "/api/v1/health")
			if rec.Code != http.StatusOK {
				t.Fatalf("health status = %d", rec.Code)
			}
			st := healthOf(t, rec.Body.Bytes())
			if st.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", st.Status, tt.wantStatus)
			}
			if st.BreakerState != tt.wantBreaker {
				t.Errorf("BreakerState = %q, want %q", st.BreakerState, tt.wantBreaker)
			}
			if st.RowsLoaded != tbl.Len() {
				t.Errorf("RowsLoaded = %d, want %d", st.RowsLoaded, tbl.Len())
			}
			if st.Version != "test" {
				t.Errorf("Version = %q", st.Version)
			}

			if rec := get(t, h, "/api/v1/health/ready"); rec.Code != tt.wantReady {
				t.Errorf("ready status = %d, want %d", rec.Code, tt.wantReady)
			}
			if rec := get(t, h, "/api/v1/health/live"); rec.Code != http.StatusOK {
				t.Errorf("live status = %d, want 200", rec.Code)
			}
		})
	}
}
