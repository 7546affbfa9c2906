// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

/*
Package api serves the crimestats HTTP surface.

Chart routes return PNG bytes:

	GET /crime_analysis       stacked crimes per city
	GET /closure_rate         closure rate per crime type
	GET /violent_crimes       weapons used in violent crimes
	GET /top_crimes           most frequent crime types
	GET /metro_vs_non_metro   crimes in metro and non-metro cities
	GET /crime_closure_rate   closure rate per crime description

Every chart request goes through ChartExecutor: the TTL cache is consulted
first; on a miss the aggregate is computed by the analytics engine, rendered,
published to the output directory and cached. A failed publish is logged and
the PNG is still returned.

JSON endpoints live under /api/v1 and share the models.APIResponse envelope:

	GET /api/v1/health           status, engine, rows loaded, uptime
	GET /api/v1/health/live      liveness
	GET /api/v1/health/ready     readiness (503 when the engine is down with no fallback)
	GET /api/v1/charts           chart names, routes and titles
	GET /api/v1/aggregates/{chart}  the aggregate behind a chart

Prometheus metrics are exposed on /metrics.
*/
package api
