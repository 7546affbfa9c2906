// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

/*
Package metrics registers the Prometheus collectors exported at /metrics.

# Available Metrics

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

Charts:
  - chart_render_duration_seconds{chart}
  - chart_render_errors_total{chart}
  - chart_cache_hits_total, chart_cache_misses_total
  - chart_publish_errors_total{chart}

Analytics:
  - analytics_query_duration_seconds{engine,operation}
  - analytics_query_errors_total{engine,operation}
  - analytics_fallbacks_total{operation}
  - circuit_breaker_state{name}

Dataset:
  - dataset_rows_loaded
  - dataset_load_duration_seconds

All collectors are registered on the default registry through promauto,
so tests compare deltas rather than absolute values.
*/
package metrics
