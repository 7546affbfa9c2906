// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

// Package validation wraps go-playground/validator v10 behind a shared,
// thread-safe instance and turns field errors into readable messages.
//
//	type ChartsConfig struct {
//	    CacheTTL time.Duration `koanf:"cache_ttl" validate:"gte=0"`
//	    DPI      float64       `koanf:"dpi" validate:"gt=0,lte=600"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("invalid config: %w", err)
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Namespace string
	Tag       string
	Param     string
	Message   string
}

// Error returns the human-readable message.
func (e FieldError) Error() string {
	return e.Message
}

// StructError collects every FieldError of a single ValidateStruct call.
type StructError struct {
	Fields []FieldError
}

// Error joins all field messages with "; ".
func (se *StructError) Error() string {
	if len(se.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(se.Fields))
	for i, f := range se.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates s and returns nil or a *StructError.
//
// The return type is error rather than *StructError so a nil result
// compares equal to nil at call sites.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &StructError{Fields: []FieldError{{Tag: "unknown", Message: err.Error()}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Namespace: fe.Namespace(),
			Tag:       fe.Tag(),
			Param:     fe.Param(),
			Message:   translateError(fe),
		}
	}
	return &StructError{Fields: out}
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"dir":      "%s must be an existing directory",
	"file":     "%s must be an existing file",
	"hostname": "%s must be a valid hostname",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
	"len":   "%s must have length %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Namespace()
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}

	isString := fe.Kind().String() == "string"
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
