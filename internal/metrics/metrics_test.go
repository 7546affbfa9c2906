// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/top_crimes", "200"))

	RecordAPIRequest("GET", "/top_crimes", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/top_crimes", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordChartRender(t *testing.T) {
	tests := []struct {
		name       string
		chart      string
		err        error
		wantErrInc float64
	}{
		{"success", "top_crimes_test", nil, 0},
		{"failure", "closure_rate_test", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(ChartRenderErrors.WithLabelValues(tt.chart))
			RecordChartRender(tt.chart, 5*time.Millisecond, tt.err)
			after := testutil.ToFloat64(ChartRenderErrors.WithLabelValues(tt.chart))
			if after-before != tt.wantErrInc {
				t.Errorf("error counter delta = %v, want %v", after-before, tt.wantErrInc)
			}
		})
	}
}

func TestRecordChartCache(t *testing.T) {
	hits := testutil.ToFloat64(ChartCacheHits)
	misses := testutil.ToFloat64(ChartCacheMisses)

	RecordChartCache(true)
	RecordChartCache(false)
	RecordChartCache(false)

	if got := testutil.ToFloat64(ChartCacheHits) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ChartCacheMisses) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordAnalyticsQuery(t *testing.T) {
	before := testutil.ToFloat64(AnalyticsQueryErrors.WithLabelValues("duckdb", "top_crimes"))

	RecordAnalyticsQuery("duckdb", "top_crimes", time.Millisecond, nil)
	RecordAnalyticsQuery("duckdb", "top_crimes", time.Millisecond, errors.New("io"))

	if got := testutil.ToFloat64(AnalyticsQueryErrors.WithLabelValues("duckdb", "top_crimes")) - before; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestRecordAnalyticsFallbackAndBreaker(t *testing.T) {
	before := testutil.ToFloat64(AnalyticsFallbacks.WithLabelValues("crime_by_city"))
	RecordAnalyticsFallback("crime_by_city")
	if got := testutil.ToFloat64(AnalyticsFallbacks.WithLabelValues("crime_by_city")) - before; got != 1 {
		t.Errorf("fallback delta = %v, want 1", got)
	}

	SetCircuitBreakerState("duckdb-test", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("duckdb-test")); got != 2 {
		t.Errorf("breaker state = %v, want 2", got)
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	RecordDatasetLoad(40160, 250*time.Millisecond)

	if got := testutil.ToFloat64(DatasetRowsLoaded); got != 40160 {
		t.Errorf("dataset_rows_loaded = %v, want 40160", got)
	}
	if got := testutil.ToFloat64(DatasetLoadDuration); got != 0.25 {
		t.Errorf("dataset_load_duration_seconds = %v, want 0.25", got)
	}
}

func TestRecordChartPublishError(t *testing.T) {
	before := testutil.ToFloat64(ChartPublishErrors.WithLabelValues("metro_vs_non_metro"))
	RecordChartPublishError("metro_vs_non_metro")
	if got := testutil.ToFloat64(ChartPublishErrors.WithLabelValues("metro_vs_non_metro")) - before; got != 1 {
		t.Errorf("publish error delta = %v, want 1", got)
	}
}
