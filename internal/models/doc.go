// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

/*
Package models defines the JSON shapes served by the API.

Every JSON endpoint answers with an APIResponse envelope. Chart routes return
PNG bytes and only use APIResponse for errors.

	respondJSON(w, http.StatusOK, models.NewSuccess(health))
	respondJSON(w, http.StatusInternalServerError,
	    models.NewError(models.ErrCodeAnalytics, "Failed to compute top_crimes", nil))
*/
package models
