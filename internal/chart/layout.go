// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package chart

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Layout constants in pixels unless noted.
const (
	titleFontSize = 14.0
	axisFontSize  = 10.0
	tickFontSize  = 9.0

	paddingTop   = 50
	paddingLeft  = 70
	paddingRight = 30
	axisNameGap  = 30

	// averageGlyphWidth approximates the width of one character as a
	// fraction of the font size.
	averageGlyphWidth = 0.6
	maxLabelRunes     = 40
	tickCount         = 5
)

// niceSteps are the mantissas niceMax rounds up to.
var niceSteps = []float64{1, 1.2, 1.5, 2, 2.5, 3, 4, 5, 6, 8, 10}

// niceMax rounds v up to a readable axis maximum. The result is never below 1.
func niceMax(v float64) float64 {
	if v <= 1 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(v)))
	norm := v / mag
	for _, step := range niceSteps {
		if norm <= step+1e-9 {
			return step * mag
		}
	}
	return 10 * mag
}

// labelExtent estimates the vertical space taken by the longest label
// rotated by degrees.
func labelExtent(labels []string, degrees, fontSize float64) int {
	longest := 0
	for _, l := range labels {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	if longest > maxLabelRunes {
		longest = maxLabelRunes
	}
	width := float64(longest) * fontSize * averageGlyphWidth
	rad := degrees * math.Pi / 180
	return int(math.Ceil(math.Abs(width*math.Sin(rad)) + math.Abs(fontSize*1.5*math.Cos(rad))))
}

// bottomPadding is the space below the plot: rotated labels plus the axis name.
func bottomPadding(labels []string, degrees float64) int {
	return labelExtent(labels, degrees, tickFontSize) + axisNameGap + 20
}

// truncate shortens labels longer than maxLabelRunes.
func truncate(label string) string {
	if utf8.RuneCountInString(label) <= maxLabelRunes {
		return label
	}
	r := []rune(label)
	return string(r[:maxLabelRunes-1]) + "..."
}

// formatter returns a go-chart ValueFormatter printing floats with format.
func formatter(format string) func(v interface{}) string {
	return func(v interface{}) string {
		switch t := v.(type) {
		case float64:
			return fmt.Sprintf(format, t)
		case int:
			return fmt.Sprintf(format, float64(t))
		}
		return fmt.Sprint(v)
	}
}
