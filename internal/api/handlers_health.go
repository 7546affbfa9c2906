// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/crimestats/internal/models"
)

// Health status values.
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

const healthCheckTimeout = 2 * time.Second

// status probes the engine. An unhealthy primary behind a circuit breaker
// is degraded rather than unhealthy because the fallback still answers.
func (h *Handler) status(ctx context.Context) models.HealthStatus {
	st := models.HealthStatus{
		Status:        HealthHealthy,
		Version:       h.version,
		Engine:        h.engine.Name(),
		EngineHealthy: true,
		Dataset:       h.dataset.Source,
		RowsLoaded:    h.dataset.Rows,
		Uptime:        time.Since(h.startTime).Seconds(),
	}
	if !h.dataset.LoadedAt.IsZero() {
		loaded := h.dataset.LoadedAt
		st.LoadedAt = &loaded
	}
	if h.cache != nil {
		st.CacheHitRate = h.cache.HitRate()
	}

	b, resilient := h.engine.(breakerStater)
	if resilient {
		st.BreakerState = b.BreakerState()
	}

	if h.health != nil {
		ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		defer cancel()
		if err := h.health.Health(ctx); err != nil {
			st.EngineHealthy = false
			if resilient {
				st.Status = HealthDegraded
			} else {
				st.Status = HealthUnhealthy
			}
		}
	}
	return st
}

// Health reports engine and dataset state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.NewSuccess(h.status(r.Context())))
}

// HealthLive answers as long as the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.NewSuccess(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}))
}

// HealthReady returns 503 while charts cannot be computed.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	st := h.status(r.Context())
	if st.Status == HealthUnhealthy {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   models.StatusError,
			Data:     st,
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    models.ErrCodeUnavailable,
				Message: "Analytics engine is not available",
			},
		})
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(map[string]interface{}{
		"ready":  true,
		"status": st.Status,
	}))
}
