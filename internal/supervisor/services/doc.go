// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

// Package services holds the suture.Service implementations run by the
// supervisor tree: the HTTP server and the chart cache janitor.
package services
