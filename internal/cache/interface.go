// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package cache

import "time"

// Cacher is the subset of Cache used by consumers, so tests can swap in a
// no-op or counting implementation.
type Cacher[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	SetWithTTL(key string, value V, ttl time.Duration)
	Delete(key string)
	Clear()
	GetStats() Stats
	HitRate() float64
}

var _ Cacher[[]byte] = (*Cache[[]byte])(nil)
