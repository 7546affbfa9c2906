// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package api

import "errors"

// ErrUnknownChart is returned for a chart name with no registered spec.
var ErrUnknownChart = errors.New("api: unknown chart")
