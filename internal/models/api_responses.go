// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in APIError.Code.
const (
	ErrCodeAnalytics        = "ANALYTICS_ERROR"
	ErrCodeRender           = "RENDER_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeUnavailable      = "SERVICE_UNAVAILABLE"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// APIResponse wraps every JSON body served under /api/v1.
//
//	{
//	  "status": "success",
//	  "data": [{"label": "THEFT", "value": 12}],
//	  "metadata": {"timestamp": "2026-01-01T12:00:00Z", "query_time_ms": 3}
//	}
//
// Error responses carry Error and no Data:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-01-01T12:00:00Z"},
//	  "error": {"code": "ANALYTICS_ERROR", "message": "Failed to compute top_crimes"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	Engine      string    `json:"engine,omitempty"`
}

// APIError is the machine-readable part of an error response.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewSuccess builds a success response stamped with the current time.
func NewSuccess(data interface{}) *APIResponse {
	return &APIResponse{
		Status:   StatusSuccess,
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now()},
	}
}

// NewError builds an error response stamped with the current time.
func NewError(code, message string, details map[string]interface{}) *APIResponse {
	return &APIResponse{
		Status:   StatusError,
		Metadata: Metadata{Timestamp: time.Now()},
		Error:    &APIError{Code: code, Message: message, Details: details},
	}
}
