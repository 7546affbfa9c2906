// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package chart

import (
	"errors"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnknownKind is returned when a spec is rendered with the wrong method
// or carries an unsupported Kind.
var ErrUnknownKind = errors.New("chart: unknown chart kind")

// Kind selects the chart layout.
type Kind string

const (
	// KindBar renders one bar per series point.
	KindBar Kind = "bar"
	// KindStacked renders one bar per matrix row, stacked by column.
	KindStacked Kind = "stacked"
)

// Spec describes how one chart looks.
type Spec struct {
	// Name is the route and cache identifier.
	Name string
	// FileName is the published file name without extension.
	FileName      string
	Kind          Kind
	Title         string
	XLabel        string
	YLabel        string
	LegendTitle   string
	LabelRotation float64
	// Colors are applied to bars in order and cycle; empty uses DefaultColor.
	Colors []drawing.Color
	// ValueFormat formats Y axis ticks, e.g. "%.0f" for counts.
	ValueFormat string
	Width       int
	Height      int
}

// Chart names, matching the route paths.
const (
	CrimeAnalysis    = "crime_analysis"
	ClosureRate      = "closure_rate"
	ViolentCrimes    = "violent_crimes"
	TopCrimes        = "top_crimes"
	MetroVsNonMetro  = "metro_vs_non_metro"
	CrimeClosureRate = "crime_closure_rate"
)

// Named colors used by the chart specs.
var (
	ColorGreen  = drawing.ColorFromHex("008000")
	ColorRed    = drawing.ColorFromHex("ff0000")
	ColorBlue   = drawing.ColorFromHex("0000ff")
	ColorOrange = drawing.ColorFromHex("ffa500")

	// DefaultColor is used when a spec names no colors.
	DefaultColor = drawing.ColorFromHex("1f77b4")
)

// palette colors the columns of stacked charts.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"), drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"), drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"), drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"), drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"), drawing.ColorFromHex("17becf"),
	drawing.ColorFromHex("aec7e8"), drawing.ColorFromHex("ffbb78"),
	drawing.ColorFromHex("98df8a"), drawing.ColorFromHex("ff9896"),
	drawing.ColorFromHex("c5b0d5"), drawing.ColorFromHex("c49c94"),
	drawing.ColorFromHex("f7b6d2"), drawing.ColorFromHex("c7c7c7"),
	drawing.ColorFromHex("dbdb8d"), drawing.ColorFromHex("9edae5"),
}

// Specs lists every chart in route order.
var Specs = []Spec{
	{
		Name:          CrimeAnalysis,
		FileName:      "crime_by_city",
		Kind:          KindStacked,
		Title:         "Most Common Crimes Reported in Different Cities",
		XLabel:        "City",
		YLabel:        "Number of Crimes",
		LegendTitle:   "Crime Type",
		LabelRotation: 45,
		ValueFormat:   "%.0f",
		Width:         1200,
		Height:        600,
	},
	{
		Name:          ClosureRate,
		FileName:      "closure_rate",
		Kind:          KindBar,
		Title:         "Crime Types with Highest Case Closure Rates",
		XLabel:        "Crime Type",
		YLabel:        "Closure Rate",
		LabelRotation: 45,
		Colors:        []drawing.Color{ColorGreen},
		ValueFormat:   "%.2f",
		Width:         1000,
		Height:        500,
	},
	{
		Name:          ViolentCrimes,
		FileName:      "violent_crimes_weapons",
		Kind:          KindBar,
		Title:         "Most Commonly Used Weapons in Violent Crimes",
		XLabel:        "Weapon Type",
		YLabel:        "Frequency",
		LabelRotation: 45,
		Colors:        []drawing.Color{ColorRed},
		ValueFormat:   "%.0f",
		Width:         1000,
		Height:        500,
	},
	{
		Name:          TopCrimes,
		FileName:      "top_crimes",
		Kind:          KindBar,
		Title:         "Top 5 Most Frequently Occurring Crimes",
		XLabel:        "Crime Type",
		YLabel:        "Number of Cases",
		LabelRotation: 45,
		Colors:        []drawing.Color{ColorBlue},
		ValueFormat:   "%.0f",
		Width:         1000,
		Height:        500,
	},
	{
		Name:        MetroVsNonMetro,
		FileName:    "metro_vs_non_metro",
		Kind:        KindBar,
		Title:       "Crime Frequency: Metro vs. Non-Metro Cities",
		XLabel:      "City Type",
		YLabel:      "Number of Crimes",
		Colors:      []drawing.Color{ColorBlue, ColorOrange},
		ValueFormat: "%.0f",
		Width:       800,
		Height:      500,
	},
	{
		Name:          CrimeClosureRate,
		FileName:      "crime_closure_rate",
		Kind:          KindBar,
		Title:         "Crime Types with Highest Case Closure Rates",
		XLabel:        "Crime Description",
		YLabel:        "Closure Rate",
		LabelRotation: 90,
		ValueFormat:   "%.2f",
		Width:         1200,
		Height:        800,
	},
}

// Lookup returns the spec registered under name.
func Lookup(name string) (Spec, bool) {
	for _, s := range Specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Names returns the chart names in route order.
func Names() []string {
	out := make([]string, len(Specs))
	for i, s := range Specs {
		out[i] = s.Name
	}
	return out
}

// color returns the fill color for bar i.
func (s Spec) color(i int) drawing.Color {
	if len(s.Colors) == 0 {
		return DefaultColor
	}
	return s.Colors[i%len(s.Colors)]
}

func (s Spec) valueFormat() string {
	if s.ValueFormat == "" {
		return "%.0f"
	}
	return s.ValueFormat
}
