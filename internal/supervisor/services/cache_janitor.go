// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package services

import (
	"context"
	"time"

	"github.com/tomtom215/crimestats/internal/logging"
)

// DefaultPruneInterval is used when NewCacheJanitorService gets a
// non-positive interval.
const DefaultPruneInterval = time.Minute

// Pruner drops expired entries and reports how many went.
// Satisfied by *cache.Cache.
type Pruner interface {
	Prune() int
}

// CacheJanitorService prunes a cache on a fixed interval until its context
// is canceled.
type CacheJanitorService struct {
	pruner   Pruner
	interval time.Duration
	name     string
}

// NewCacheJanitorService returns a janitor for pruner.
func NewCacheJanitorService(pruner Pruner, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = DefaultPruneInterval
	}
	return &CacheJanitorService{pruner: pruner, interval: interval, name: "cache-janitor"}
}

// Serve implements suture.Service.
func (j *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.pruner.Prune(); n > 0 {
				logging.Debug().Str("service", j.name).Int("evicted", n).Msg("Pruned chart cache")
			}
		}
	}
}

// String names the service in supervisor events.
func (j *CacheJanitorService) String() string {
	return j.name
}
