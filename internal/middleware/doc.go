// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

/*
Package middleware provides the HTTP middleware shared by every route.

Key Components:

  - RequestID: X-Request-ID propagation plus request and correlation IDs in context
  - RequestLogger: one zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauge
  - Compression: gzip for JSON and text responses (PNG passes through)

All middleware use the func(http.HandlerFunc) http.HandlerFunc shape; the
api package adapts them to chi with its chiMiddleware helper. Order matters:
RequestID must run before RequestLogger so log lines carry the ID.

	handler := middleware.RequestID(
	    middleware.RequestLogger(
	        middleware.PrometheusMetrics(h),
	    ),
	)
*/
package middleware
