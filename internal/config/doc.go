// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

// Package config loads Crimestats configuration with Koanf v2.
//
// Sources, lowest to highest precedence:
//
//  1. Built-in defaults (defaultConfig)
//  2. A YAML file: CONFIG_PATH, config.yaml, config.yml, /etc/crimestats/config.yaml
//  3. Environment variables from an explicit mapping (HTTP_PORT, DATASET_PATH, ...)
//
// Example config.yaml:
//
//	server:
//	  port: 5000
//	dataset:
//	  path: ./crime_dataset_india.csv
//	analytics:
//	  engine: duckdb
//	charts:
//	  output_dir: /var/lib/crimestats/charts
//	  cache_ttl: 5m
//
// Comma-separated environment values are split for list fields
// (CORS_ORIGINS, METRO_CITIES).
package config
