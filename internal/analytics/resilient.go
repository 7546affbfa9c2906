// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/crimestats/internal/logging"
	"github.com/tomtom215/crimestats/internal/metrics"
)

// ResilientConfig configures the circuit breaker guarding the primary engine.
type ResilientConfig struct {
	// Name identifies the breaker in logs and metrics.
	Name string

	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period for clearing counts while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
}

// DefaultResilientConfig returns production defaults.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		Name:             "analytics-engine",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// ResilientEngine runs every aggregate on a primary engine behind a circuit
// breaker and answers from a fallback engine when the primary fails or the
// breaker is open. Both engines must compute identical aggregates.
type ResilientEngine struct {
	primary  Engine
	fallback Engine
	cb       *gobreaker.CircuitBreaker[any]
}

// NewResilientEngine wires primary and fallback behind a breaker.
func NewResilientEngine(primary, fallback Engine, cfg ResilientConfig) *ResilientEngine {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A cancelled request says nothing about the engine's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Analytics circuit breaker state changed")
			metrics.SetCircuitBreakerState(name, stateValue(to))
		},
	}
	metrics.SetCircuitBreakerState(cfg.Name, 0)

	return &ResilientEngine{
		primary:  primary,
		fallback: fallback,
		cb:       gobreaker.NewCircuitBreaker[any](settings),
	}
}

func stateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Name reports the primary engine; fallbacks are visible in metrics.
func (e *ResilientEngine) Name() string { return e.primary.Name() }

// State returns the breaker state.
func (e *ResilientEngine) State() gobreaker.State { return e.cb.State() }

// BreakerState returns the breaker state as "closed", "half-open" or "open".
func (e *ResilientEngine) BreakerState() string { return e.cb.State().String() }

// CrimeByCity implements Engine.
func (e *ResilientEngine) CrimeByCity(ctx context.Context) (*Matrix, error) {
	return guard(ctx, e, "crime_by_city", func(en Engine) (*Matrix, error) { return en.CrimeByCity(ctx) })
}

// ClosureRate implements Engine.
func (e *ResilientEngine) ClosureRate(ctx context.Context) (Series, error) {
	return guard(ctx, e, "closure_rate", func(en Engine) (Series, error) { return en.ClosureRate(ctx) })
}

// ViolentWeapons implements Engine.
func (e *ResilientEngine) ViolentWeapons(ctx context.Context) (Series, error) {
	return guard(ctx, e, "violent_weapons", func(en Engine) (Series, error) { return en.ViolentWeapons(ctx) })
}

// TopCrimes implements Engine.
func (e *ResilientEngine) TopCrimes(ctx context.Context, n int) (Series, error) {
	return guard(ctx, e, "top_crimes", func(en Engine) (Series, error) { return en.TopCrimes(ctx, n) })
}

// MetroVsNonMetro implements Engine.
func (e *ResilientEngine) MetroVsNonMetro(ctx context.Context) (Series, error) {
	return guard(ctx, e, "metro_vs_non_metro", func(en Engine) (Series, error) { return en.MetroVsNonMetro(ctx) })
}

// CrimeClosureRate implements Engine.
func (e *ResilientEngine) CrimeClosureRate(ctx context.Context) ([]ClosureRow, error) {
	return guard(ctx, e, "crime_closure_rate", func(en Engine) ([]ClosureRow, error) { return en.CrimeClosureRate(ctx) })
}

func guard[T any](ctx context.Context, e *ResilientEngine, op string, call func(Engine) (T, error)) (T, error) {
	out, err := e.cb.Execute(func() (any, error) {
		return call(e.primary)
	})
	if err == nil {
		return out.(T), nil
	}

	var zero T
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}

	logging.Ctx(ctx).Warn().Err(err).
		Str("operation", op).
		Str("primary", e.primary.Name()).
		Str("fallback", e.fallback.Name()).
		Msg("Primary analytics engine failed, using fallback")
	metrics.RecordAnalyticsFallback(op)

	res, fbErr := call(e.fallback)
	if fbErr != nil {
		return zero, fmt.Errorf("%s: primary: %v; fallback: %w", op, err, fbErr)
	}
	return res, nil
}
