// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

// Package logging provides the zerolog-based logger shared by every
// Crimestats package.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("path", cfg.Dataset.Path).Msg("Loading dataset")
//	logging.Ctx(r.Context()).Error().Err(err).Msg("Render failed")
//
// # Configuration
//
// Level, format and caller reporting come from the logging section of the
// application config (LOG_LEVEL, LOG_FORMAT, LOG_CALLER).
//
// The package also exposes an slog.Handler (SlogHandler) so libraries that
// speak log/slog, such as sutureslog, write into the same stream.
//
// Always terminate event chains with .Msg() or .Send(); an unterminated
// chain is never written.
package logging
