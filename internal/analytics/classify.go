// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package analytics

import (
	"regexp"
	"strings"

	"github.com/tomtom215/crimestats/internal/dataset"
)

// City type labels.
const (
	CityTypeMetro    = "Metro"
	CityTypeNonMetro = "Non-Metro"
)

// CityClassifier maps a city to its City Type. The zero value classifies
// everything as Non-Metro. It holds no per-request state.
type CityClassifier struct {
	metro map[string]struct{}
	names []string
}

// NewCityClassifier builds a classifier. Matching is exact and case-sensitive.
func NewCityClassifier(metroCities []string) CityClassifier {
	c := CityClassifier{
		metro: make(map[string]struct{}, len(metroCities)),
		names: append([]string(nil), metroCities...),
	}
	for _, city := range metroCities {
		c.metro[city] = struct{}{}
	}
	return c
}

// MetroCities returns the configured metro list.
func (c CityClassifier) MetroCities() []string {
	return append([]string(nil), c.names...)
}

// Classify returns CityTypeMetro or CityTypeNonMetro. A missing city is Non-Metro.
func (c CityClassifier) Classify(city dataset.Text) string {
	if city.Valid {
		if _, ok := c.metro[city.String]; ok {
			return CityTypeMetro
		}
	}
	return CityTypeNonMetro
}

// WithBothCityTypes appends a zero bucket for any city type missing from a
// non-empty metro series, so charts always show Metro and Non-Metro. An
// empty series stays empty.
func WithBothCityTypes(s Series) Series {
	if len(s) == 0 {
		return s
	}
	for _, label := range []string{CityTypeMetro, CityTypeNonMetro} {
		present := false
		for _, p := range s {
			if p.Label == label {
				present = true
				break
			}
		}
		if !present {
			s = append(s, Point{Label: label})
		}
	}
	return s
}

// ViolentKeywords lists the substrings that mark a violent crime, matched
// case-insensitively.
var ViolentKeywords = []string{"ASSAULT", "HOMICIDE", "EXTORTION", "KIDNAPPING"}

// ViolentPattern is the alternation of ViolentKeywords, usable by SQL engines.
var ViolentPattern = strings.Join(ViolentKeywords, "|")

var violentPattern = regexp.MustCompile("(?i)" + ViolentPattern)

// IsViolent reports whether a crime description names a violent crime.
// Missing descriptions are not violent.
func IsViolent(desc dataset.Text) bool {
	return desc.Valid && violentPattern.MatchString(desc.String)
}
