// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package models

import "time"

// ChartInfo describes one chart route in the chart listing.
type ChartInfo struct {
	Name      string `json:"name"`
	Route     string `json:"route"`
	Aggregate string `json:"aggregate"`
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	FileName  string `json:"file_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Aggregate is the payload of /api/v1/aggregates/{chart}. Exactly one of
// Series, Matrix or Rows is set depending on the chart.
type Aggregate struct {
	Chart  string      `json:"chart"`
	Series interface{} `json:"series,omitempty"`
	Matrix interface{} `json:"matrix,omitempty"`
	Rows   interface{} `json:"rows,omitempty"`
}

// HealthStatus is the payload of /api/v1/health.
type HealthStatus struct {
	Status        string     `json:"status"`
	Version       string     `json:"version"`
	Engine        string     `json:"engine"`
	EngineHealthy bool       `json:"engine_healthy"`
	BreakerState  string     `json:"breaker_state,omitempty"`
	Dataset       string     `json:"dataset"`
	RowsLoaded    int        `json:"rows_loaded"`
	LoadedAt      *time.Time `json:"loaded_at,omitempty"`
	CacheHitRate  float64    `json:"cache_hit_rate"`
	Uptime        float64    `json:"uptime_seconds"`
}
