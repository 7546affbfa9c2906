// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/crimestats/internal/chart"
	"github.com/tomtom215/crimestats/internal/middleware"
)

// Router builds the HTTP handler tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter returns a router serving h. A nil mw uses the default config.
func NewRouter(h *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: h, chiMiddleware: mw}
}

// SetupChi returns the chi mux with all routes and middleware.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chiMiddleware(middleware.RequestLogger))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Index)
	for _, name := range chart.Names() {
		r.Get("/"+name, h.Chart(name))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware(middleware.Compression))

		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})
		r.Get("/charts", h.Charts)
		r.Get("/aggregates/{chart}", func(w http.ResponseWriter, req *http.Request) {
			h.charts.Aggregate(w, req, chi.URLParam(req, "chart"))
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	return r
}
