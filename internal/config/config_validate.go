// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/crimestats/internal/validation"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks struct tags first, then the rules tags cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.validateAnalytics(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAnalytics() error {
	seen := make(map[string]bool, len(c.Analytics.MetroCities))
	for _, city := range c.Analytics.MetroCities {
		if strings.TrimSpace(city) == "" {
			return fmt.Errorf("METRO_CITIES must not contain empty names")
		}
		if seen[city] {
			return fmt.Errorf("METRO_CITIES contains duplicate city %q", city)
		}
		seen[city] = true
	}
	if c.Analytics.Engine == "duckdb" && c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required when ANALYTICS_ENGINE=duckdb")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled (got %q)", c.Logging.Level)
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be json or console (got %q)", c.Logging.Format)
	}
	return nil
}
