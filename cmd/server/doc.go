// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

/*
Command server loads a crime dataset CSV once at startup and serves PNG
charts of its aggregates over HTTP.

# Startup

 1. Configuration: koanf layers of defaults, optional config.yaml, environment
 2. Logging: zerolog, JSON or console
 3. Dataset: CSV parse and schema check; any failure exits with status 1
 4. Analytics engine: in-memory, or DuckDB behind a circuit breaker that
    falls back to in-memory
 5. Supervisor tree: cache janitor in the data layer, HTTP server in the
    api layer

# Supervisor Tree

	RootSupervisor ("crimestats")
	├── data-layer
	│   └── cache-janitor (when CHART_CACHE_ENABLED)
	└── api-layer
	    └── http-server

# Configuration

	HTTP_HOST=0.0.0.0
	HTTP_PORT=5000
	DATASET_PATH=crime_dataset_india.csv
	ANALYTICS_ENGINE=memory      # memory or duckdb
	ANALYTICS_TOP_N=5
	METRO_CITIES=Mumbai,Delhi,Bangalore,Kolkata,Chennai,Hyderabad,Pune
	CHART_OUTPUT_DIR=.           # empty disables publishing
	CHART_CACHE_ENABLED=true
	CHART_CACHE_TTL=10m
	LOG_LEVEL=info
	LOG_FORMAT=json

# Example

	DATASET_PATH=./data/crime_dataset_india.csv ./server
	curl -o top.png http://localhost:5000/top_crimes

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and in-flight requests get 10s to finish.
*/
package main
