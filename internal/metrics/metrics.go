// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Chart Metrics
	ChartRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chart_render_duration_seconds",
			Help:    "Time spent rendering a chart to PNG",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"chart"},
	)

	ChartRenderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chart_render_errors_total",
			Help: "Total number of failed chart renders",
		},
		[]string{"chart"},
	)

	ChartCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chart_cache_hits_total",
			Help: "Total number of chart cache hits",
		},
	)

	ChartCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chart_cache_misses_total",
			Help: "Total number of chart cache misses",
		},
	)

	ChartPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chart_publish_errors_total",
			Help: "Total number of failed chart file publications",
		},
		[]string{"chart"},
	)

	// Analytics Metrics
	AnalyticsQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_query_duration_seconds",
			Help:    "Duration of aggregate computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"engine", "operation"},
	)

	AnalyticsQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_query_errors_total",
			Help: "Total number of failed aggregate computations",
		},
		[]string{"engine", "operation"},
	)

	AnalyticsFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_fallbacks_total",
			Help: "Aggregates served by the fallback engine after the primary failed",
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Dataset Metrics
	DatasetRowsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows_loaded",
			Help: "Number of rows in the loaded dataset",
		},
	)

	DatasetLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_load_duration_seconds",
			Help: "Time taken to load and validate the dataset at startup",
		},
	)

	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application build and engine information",
		},
		[]string{"version", "engine"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordChartRender records one render attempt.
func RecordChartRender(chart string, duration time.Duration, err error) {
	ChartRenderDuration.WithLabelValues(chart).Observe(duration.Seconds())
	if err != nil {
		ChartRenderErrors.WithLabelValues(chart).Inc()
	}
}

// RecordChartCache records a chart cache lookup.
func RecordChartCache(hit bool) {
	if hit {
		ChartCacheHits.Inc()
	} else {
		ChartCacheMisses.Inc()
	}
}

// RecordChartPublishError counts a failed write of a chart file.
func RecordChartPublishError(chart string) {
	ChartPublishErrors.WithLabelValues(chart).Inc()
}

// RecordAnalyticsQuery records an aggregate computation.
func RecordAnalyticsQuery(engine, operation string, duration time.Duration, err error) {
	AnalyticsQueryDuration.WithLabelValues(engine, operation).Observe(duration.Seconds())
	if err != nil {
		AnalyticsQueryErrors.WithLabelValues(engine, operation).Inc()
	}
}

// RecordAnalyticsFallback counts an aggregate answered by the fallback engine.
func RecordAnalyticsFallback(operation string) {
	AnalyticsFallbacks.WithLabelValues(operation).Inc()
}

// SetCircuitBreakerState publishes a breaker state (0 closed, 1 half-open, 2 open).
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordDatasetLoad publishes the size and load time of the dataset.
func RecordDatasetLoad(rows int, duration time.Duration) {
	DatasetRowsLoaded.Set(float64(rows))
	DatasetLoadDuration.Set(duration.Seconds())
}
