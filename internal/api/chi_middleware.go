// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package api

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/tomtom215/crimestats/internal/middleware"
)

// ChiMiddlewareConfig holds the CORS settings of the router.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSExposedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds
}

// DefaultChiMiddlewareConfig allows no origins, which leaves CORS off.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		CORSAllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match", middleware.RequestIDHeader},
		CORSExposedHeaders: []string{"ETag", "X-Cache", middleware.RequestIDHeader},
		CORSMaxAge:         86400,
	}
}

// ChiMiddleware builds chi-compatible middleware from a config.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware returns a factory for config; nil uses the defaults.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	m := &ChiMiddleware{config: config}
	// go-chi/cors treats an empty origin list as "*", so no origins means no
	// CORS handler at all.
	if len(config.CORSAllowedOrigins) > 0 {
		m.cors = cors.Handler(cors.Options{
			AllowedOrigins:   config.CORSAllowedOrigins,
			AllowedMethods:   config.CORSAllowedMethods,
			AllowedHeaders:   config.CORSAllowedHeaders,
			ExposedHeaders:   config.CORSExposedHeaders,
			AllowCredentials: config.CORSAllowCredentials,
			MaxAge:           config.CORSMaxAge,
		})
	}
	return m
}

// CORS returns the CORS middleware, or a pass-through when disabled.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	if m.cors == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return m.cors
}

// chiMiddleware adapts the func(http.HandlerFunc) http.HandlerFunc
// middleware of internal/middleware to chi's signature.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}
