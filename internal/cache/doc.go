// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

// Package cache provides the in-memory TTL cache used for rendered charts
// and aggregate responses.
//
// Usage:
//
//	charts := cache.New[[]byte](10 * time.Minute)
//	defer charts.Close()
//
//	key := cache.GenerateKey("chart:top_crimes", map[string]string{"engine": "memory"})
//	if png, ok := charts.Get(key); ok {
//	    return png
//	}
//	charts.Set(key, png)
//
// The dataset never changes after load, so entries only expire by TTL.
package cache
