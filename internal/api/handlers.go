// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/crimestats/internal/analytics"
	"github.com/tomtom215/crimestats/internal/cache"
	"github.com/tomtom215/crimestats/internal/chart"
	"github.com/tomtom215/crimestats/internal/config"
	"github.com/tomtom215/crimestats/internal/logging"
	"github.com/tomtom215/crimestats/internal/models"
)

// WelcomeMessage is the body of GET /.
const WelcomeMessage = "Welcome to the Crime Analysis App!"

// defaultTopN applies when no config is supplied.
const defaultTopN = 5

// ChartRenderer turns an aggregate into PNG bytes.
type ChartRenderer interface {
	Render(spec chart.Spec, data any) ([]byte, error)
}

// ChartPublisher stores rendered PNGs under their fixed file names.
type ChartPublisher interface {
	Publish(name string, png []byte) (string, error)
}

// HealthChecker reports whether the analytics backend is usable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// breakerStater is implemented by analytics.ResilientEngine.
type breakerStater interface {
	BreakerState() string
}

// DatasetInfo describes the table loaded at startup.
type DatasetInfo struct {
	Source   string
	Rows     int
	LoadedAt time.Time
}

// Deps are the collaborators of a Handler. Cache, Publisher and Health are
// optional.
type Deps struct {
	Engine    analytics.Engine
	Renderer  ChartRenderer
	Publisher ChartPublisher
	Cache     cache.Cacher[[]byte]
	Health    HealthChecker
	Config    *config.Config
	Dataset   DatasetInfo
	Version   string
}

// Handler holds the state shared by all routes.
type Handler struct {
	engine    analytics.Engine
	renderer  ChartRenderer
	publisher ChartPublisher
	cache     cache.Cacher[[]byte]
	health    HealthChecker
	config    *config.Config
	dataset   DatasetInfo
	version   string
	startTime time.Time
	charts    *ChartExecutor
}

// NewHandler wires a Handler from deps.
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		engine:    deps.Engine,
		renderer:  deps.Renderer,
		publisher: deps.Publisher,
		cache:     deps.Cache,
		health:    deps.Health,
		config:    deps.Config,
		dataset:   deps.Dataset,
		version:   deps.Version,
		startTime: time.Now(),
	}
	if h.version == "" {
		h.version = "dev"
	}
	h.charts = NewChartExecutor(h)
	return h
}

func (h *Handler) topN() int {
	if h.config == nil || h.config.Analytics.TopN <= 0 {
		return defaultTopN
	}
	return h.config.Analytics.TopN
}

// Index serves the plain-text welcome message.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(WelcomeMessage)); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write index response")
	}
}

// Chart returns the handler for the named chart route.
func (h *Handler) Chart(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.charts.Execute(w, r, name)
	}
}

// Charts lists every chart route.
func (h *Handler) Charts(w http.ResponseWriter, r *http.Request) {
	out := make([]models.ChartInfo, 0, len(chartDefs))
	for _, def := range chartDefs {
		out = append(out, models.ChartInfo{
			Name:      def.spec.Name,
			Route:     "/" + def.spec.Name,
			Aggregate: def.aggregate,
			Title:     def.spec.Title,
			Kind:      string(def.spec.Kind),
			FileName:  def.spec.FileName + ".png",
			Width:     def.spec.Width,
			Height:    def.spec.Height,
		})
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(out))
}

// NotFound is the router's fallback for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Resource not found", nil)
}

// MethodNotAllowed is the router's fallback for known paths with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed", nil)
}
