// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/crimestats/internal/analytics"
	"github.com/tomtom215/crimestats/internal/cache"
	"github.com/tomtom215/crimestats/internal/chart"
	"github.com/tomtom215/crimestats/internal/logging"
	"github.com/tomtom215/crimestats/internal/metrics"
	"github.com/tomtom215/crimestats/internal/models"
)

// aggregateResult carries one aggregate in whichever shape its chart needs.
type aggregateResult struct {
	series analytics.Series
	matrix *analytics.Matrix
	rows   []analytics.ClosureRow
}

// renderData is the value handed to ChartRenderer.Render.
func (a aggregateResult) renderData() any {
	if a.matrix != nil {
		return a.matrix
	}
	return a.series
}

func (a aggregateResult) payload(chartName string) models.Aggregate {
	out := models.Aggregate{Chart: chartName}
	switch {
	case a.matrix != nil:
		out.Matrix = a.matrix
	case a.rows != nil:
		out.Rows = a.rows
	default:
		out.Series = a.series
	}
	return out
}

// chartDef binds a chart spec to the engine operation behind it.
type chartDef struct {
	spec      chart.Spec
	aggregate string
	compute   func(ctx context.Context, e analytics.Engine, topN int) (aggregateResult, error)
}

func seriesOf(fn func(ctx context.Context, e analytics.Engine, topN int) (analytics.Series, error)) func(context.Context, analytics.Engine, int) (aggregateResult, error) {
	return func(ctx context.Context, e analytics.Engine, topN int) (aggregateResult, error) {
		s, err := fn(ctx, e, topN)
		return aggregateResult{series: s}, err
	}
}

var chartDefs = []chartDef{
	{
		spec:      mustSpec(chart.CrimeAnalysis),
		aggregate: "crime_by_city",
		compute: func(ctx context.Context, e analytics.Engine, _ int) (aggregateResult, error) {
			m, err := e.CrimeByCity(ctx)
			return aggregateResult{matrix: m}, err
		},
	},
	{
		spec:      mustSpec(chart.ClosureRate),
		aggregate: "closure_rate",
		compute: seriesOf(func(ctx context.Context, e analytics.Engine, _ int) (analytics.Series, error) {
			return e.ClosureRate(ctx)
		}),
	},
	{
		spec:      mustSpec(chart.ViolentCrimes),
		aggregate: "violent_weapons",
		compute: seriesOf(func(ctx context.Context, e analytics.Engine, _ int) (analytics.Series, error) {
			return e.ViolentWeapons(ctx)
		}),
	},
	{
		spec:      mustSpec(chart.TopCrimes),
		aggregate: "top_crimes",
		compute: seriesOf(func(ctx context.Context, e analytics.Engine, topN int) (analytics.Series, error) {
			return e.TopCrimes(ctx, topN)
		}),
	},
	{
		spec:      mustSpec(chart.MetroVsNonMetro),
		aggregate: "metro_vs_non_metro",
		compute: seriesOf(func(ctx context.Context, e analytics.Engine, _ int) (analytics.Series, error) {
			return e.MetroVsNonMetro(ctx)
		}),
	},
	{
		spec:      mustSpec(chart.CrimeClosureRate),
		aggregate: "crime_closure_rate",
		compute: func(ctx context.Context, e analytics.Engine, _ int) (aggregateResult, error) {
			rows, err := e.CrimeClosureRate(ctx)
			if err != nil {
				return aggregateResult{}, err
			}
			return aggregateResult{rows: rows, series: analytics.ClosureSeries(rows)}, nil
		},
	},
}

func mustSpec(name string) chart.Spec {
	s, ok := chart.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("api: no chart spec named %q", name))
	}
	return s
}

func lookupChart(name string) (chartDef, bool) {
	for _, def := range chartDefs {
		if def.spec.Name == name {
			return def, true
		}
	}
	return chartDef{}, false
}

// ChartExecutor runs the cache-first chart flow: cache lookup, aggregate,
// render, publish, cache store.
type ChartExecutor struct {
	handler *Handler
}

// NewChartExecutor returns an executor bound to h's collaborators.
func NewChartExecutor(h *Handler) *ChartExecutor {
	return &ChartExecutor{handler: h}
}

// cacheKey includes the engine and top-N so a config change never serves a
// stale image.
func (e *ChartExecutor) cacheKey(def chartDef) string {
	return cache.GenerateKey("chart:"+def.spec.Name, map[string]interface{}{
		"engine": e.handler.engine.Name(),
		"top_n":  e.handler.topN(),
	})
}

// compute runs the engine operation behind def and records its latency.
func (e *ChartExecutor) compute(ctx context.Context, def chartDef) (aggregateResult, error) {
	start := time.Now()
	res, err := def.compute(ctx, e.handler.engine, e.handler.topN())
	metrics.RecordAnalyticsQuery(e.handler.engine.Name(), def.aggregate, time.Since(start), err)
	if err != nil {
		return aggregateResult{}, fmt.Errorf("%s: %w", def.aggregate, err)
	}
	return res, nil
}

// publish writes png to the output directory. It runs on every request,
// cache hits included, so the file tracks the response. Failures only log.
func (e *ChartExecutor) publish(ctx context.Context, name string, def chartDef, png []byte) {
	if e.handler.publisher == nil {
		return
	}
	path, err := e.handler.publisher.Publish(def.spec.FileName, png)
	if err != nil {
		metrics.RecordChartPublishError(name)
		logging.Ctx(ctx).Warn().Str("chart", name).Err(err).Msg("Failed to publish chart")
		return
	}
	if path != "" {
		logging.Ctx(ctx).Debug().Str("chart", name).Str("path", path).Msg("Chart published")
	}
}

// Execute serves the PNG for the named chart.
func (e *ChartExecutor) Execute(w http.ResponseWriter, r *http.Request, name string) {
	def, ok := lookupChart(name)
	if !ok {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound,
			"Unknown chart", fmt.Errorf("%w: %s", ErrUnknownChart, name))
		return
	}

	h := e.handler
	ctx := r.Context()
	key := e.cacheKey(def)

	if h.cache != nil {
		if png, ok := h.cache.Get(key); ok {
			metrics.RecordChartCache(true)
			e.publish(ctx, name, def, png)
			respondPNG(w, r, png, true)
			return
		}
		metrics.RecordChartCache(false)
	}

	res, err := e.compute(ctx, def)
	if ctxErr := ctx.Err(); ctxErr != nil {
		logging.Ctx(ctx).Debug().Str("chart", name).Err(ctxErr).Msg("Request canceled before render")
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeAnalytics,
			"Failed to compute "+def.aggregate, err)
		return
	}

	start := time.Now()
	png, err := h.renderer.Render(def.spec, res.renderData())
	metrics.RecordChartRender(name, time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeRender,
			"Failed to render "+name, err)
		return
	}

	e.publish(ctx, name, def, png)

	if h.cache != nil {
		h.cache.Set(key, png)
	}
	respondPNG(w, r, png, false)
}

// Aggregate serves the JSON aggregate behind a chart.
func (e *ChartExecutor) Aggregate(w http.ResponseWriter, r *http.Request, name string) {
	def, ok := lookupChart(name)
	if !ok {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound,
			"Unknown chart", fmt.Errorf("%w: %s", ErrUnknownChart, name))
		return
	}

	start := time.Now()
	res, err := e.compute(r.Context(), def)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeAnalytics,
			"Failed to compute "+def.aggregate, err)
		return
	}

	resp := models.NewSuccess(res.payload(name))
	resp.Metadata.QueryTimeMS = time.Since(start).Milliseconds()
	resp.Metadata.Engine = e.handler.engine.Name()
	respondJSON(w, http.StatusOK, resp)
}
