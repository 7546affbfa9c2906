// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Database  DatabaseConfig  `koanf:"database"`
	Charts    ChartsConfig    `koanf:"charts"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Environment string        `koanf:"environment" validate:"oneof=development staging production"`
	CORSOrigins []string      `koanf:"cors_origins"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetConfig locates the CSV loaded at startup.
type DatasetConfig struct {
	Path      string `koanf:"path" validate:"required"`
	Delimiter string `koanf:"delimiter" validate:"len=1"`
}

// AnalyticsConfig selects the aggregation engine.
//
// Engine "memory" aggregates in Go over the loaded table. Engine "duckdb"
// copies the table into DuckDB and aggregates with SQL behind a circuit
// breaker that falls back to the in-memory engine.
type AnalyticsConfig struct {
	Engine       string        `koanf:"engine" validate:"oneof=memory duckdb"`
	TopN         int           `koanf:"top_n" validate:"min=1,max=100"`
	MetroCities  []string      `koanf:"metro_cities" validate:"min=1"`
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"gte=0"`
}

// DatabaseConfig holds DuckDB settings, used only when Analytics.Engine is duckdb.
type DatabaseConfig struct {
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"gte=0"` // 0 = use NumCPU
}

// ChartsConfig controls rendering, publishing and caching of chart images.
type ChartsConfig struct {
	// OutputDir receives the fixed-name PNG files. Empty disables publishing.
	OutputDir    string        `koanf:"output_dir"`
	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheTTL     time.Duration `koanf:"cache_ttl" validate:"gte=0"`
	DPI          float64       `koanf:"dpi" validate:"gt=0,lte=600"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
