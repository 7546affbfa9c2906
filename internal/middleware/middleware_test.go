// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/crimestats/internal/logging"
	"github.com/tomtom215/crimestats/internal/metrics"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	var capturedID, correlationID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/top_crimes", nil))

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", responseID, err)
	}
	if capturedID != responseID {
		t.Errorf("context ID %q != header ID %q", capturedID, responseID)
	}
	if correlationID == "" {
		t.Error("expected a correlation ID in context")
	}
}

func TestRequestID_PreservesOrReplaces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"valid upstream id", "proxy-1234", true},
		{"control characters", "bad\nid", false},
		{"spaces", "has space", false},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := RequestID(func(w http.ResponseWriter, r *http.Request) {})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			rec := httptest.NewRecorder()
			handler(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if (got == tt.incoming) != tt.keep {
				t.Errorf("X-Request-ID = %q, keep = %v", got, tt.keep)
			}
		})
	}
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/aggregates/{chart}", PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/aggregates/{chart}", "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/aggregates/top_crimes", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", rec.Code)
	}
	if delta := testutil.ToFloat64(counter) - before; delta != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", delta)
	}
	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != 0 {
		t.Errorf("api_active_requests = %v after request, want 0", got)
	}
}

func TestPrometheusMetrics_Unmatched(t *testing.T) {
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedEndpoint, "200")
	before := testutil.ToFloat64(counter)

	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/route", nil))

	if delta := testutil.ToFloat64(counter) - before; delta != 1 {
		t.Errorf("unmatched delta = %v, want 1", delta)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	original := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { logging.SetLogger(original) })

	handler := RequestID(RequestLogger(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	req := httptest.NewRequest(http.MethodGet, "/closure_rate", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	handler(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"level":"error"`, `"status":500`, `"path":"/closure_rate"`, `"request_id":"req-42"`, `"bytes":4`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestCompression(t *testing.T) {
	t.Parallel()

	body := strings.Repeat(`{"label":"THEFT","value":1}`, 100)

	tests := []struct {
		name        string
		contentType string
		accept      string
		wantGzip    bool
	}{
		{"json gzipped", "application/json", "gzip, deflate", true},
		{"text gzipped", "text/plain; charset=utf-8", "gzip", true},
		{"png passthrough", "image/png", "gzip", false},
		{"no accept", "application/json", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := Compression(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(body))
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			gotGzip := rec.Header().Get("Content-Encoding") == "gzip"
			if gotGzip != tt.wantGzip {
				t.Fatalf("Content-Encoding gzip = %v, want %v", gotGzip, tt.wantGzip)
			}

			var got []byte
			if gotGzip {
				zr, err := gzip.NewReader(rec.Body)
				if err != nil {
					t.Fatalf("gzip.NewReader() error = %v", err)
				}
				got, _ = io.ReadAll(zr)
			} else {
				got = rec.Body.Bytes()
			}
			if string(got) != body {
				t.Errorf("body mismatch: got %d bytes, want %d", len(got), len(body))
			}
		})
	}
}
