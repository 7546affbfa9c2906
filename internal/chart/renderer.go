// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package chart

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tomtom215/crimestats/internal/analytics"
)

// NoDataLabel labels the single empty bar of a placeholder chart.
const NoDataLabel = "No data"

// DefaultDPI matches the configured default.
const DefaultDPI = 96.0

// Renderer produces PNG charts. It holds configuration only.
type Renderer struct {
	dpi float64
}

// NewRenderer returns a Renderer drawing at dpi. Non-positive values use DefaultDPI.
func NewRenderer(dpi float64) *Renderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Renderer{dpi: dpi}
}

// RenderBars draws a bar chart with one bar per point, in series order.
func (r *Renderer) RenderBars(spec Spec, series analytics.Series) ([]byte, error) {
	if spec.Kind != KindBar {
		return nil, fmt.Errorf("%w: %s is %q, want %q", ErrUnknownKind, spec.Name, spec.Kind, KindBar)
	}

	bars := make([]chart.Value, 0, len(series))
	labels := make([]string, 0, len(series))
	var max float64
	for i, p := range series {
		label := truncate(p.Label)
		c := spec.color(i)
		bars = append(bars, chart.Value{
			Label: label,
			Value: p.Value,
			Style: chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1},
		})
		labels = append(labels, label)
		max = math.Max(max, p.Value)
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{
			Label: NoDataLabel,
			Style: chart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
		})
		labels = append(labels, NoDataLabel)
	}

	barWidth, barSpacing := barGeometry(spec.Width, len(bars))

	graph := chart.BarChart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Width:      spec.Width,
		Height:     spec.Height,
		DPI:        r.dpi,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    paddingTop,
				Left:   paddingLeft,
				Right:  paddingRight,
				Bottom: bottomPadding(labels, spec.LabelRotation),
			},
		},
		XAxis: chart.Style{
			FontSize:            tickFontSize,
			TextRotationDegrees: spec.LabelRotation,
			TextWrap:            chart.TextWrapNone,
		},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontSize: tickFontSize},
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(max)},
			ValueFormatter: formatter(spec.valueFormat()),
		},
		Bars:     bars,
		Elements: []chart.Renderable{axisNames(spec)},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", spec.Name, err)
	}
	return buf.Bytes(), nil
}

// Render dispatches on spec.Kind. data must be an analytics.Series for bar
// charts and an *analytics.Matrix for stacked charts.
func (r *Renderer) Render(spec Spec, data any) ([]byte, error) {
	switch spec.Kind {
	case KindBar:
		s, ok := data.(analytics.Series)
		if !ok {
			return nil, fmt.Errorf("render %s: want analytics.Series, got %T", spec.Name, data)
		}
		return r.RenderBars(spec, s)
	case KindStacked:
		m, ok := data.(*analytics.Matrix)
		if !ok {
			return nil, fmt.Errorf("render %s: want *analytics.Matrix, got %T", spec.Name, data)
		}
		return r.RenderStacked(spec, m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
}

// barGeometry spreads n bars over the plot width.
func barGeometry(width, n int) (barWidth, spacing int) {
	plot := width - paddingLeft - paddingRight - 60
	if n <= 0 || plot <= 0 {
		return 50, 10
	}
	slot := plot / n
	barWidth = int(float64(slot) * 0.7)
	if barWidth > 80 {
		barWidth = 80
	}
	if barWidth < 1 {
		barWidth = 1
	}
	spacing = slot - barWidth
	if spacing < 1 {
		spacing = 1
	}
	return barWidth, spacing
}

// axisNames draws the X and Y axis names outside the plot area.
func axisNames(spec Spec) chart.Renderable {
	return func(r chart.Renderer, _ chart.Box, defaults chart.Style) {
		font := defaults.Font
		if font == nil {
			f, err := chart.GetDefaultFont()
			if err != nil {
				return
			}
			font = f
		}
		if spec.XLabel != "" {
			w := measure(r, font, spec.XLabel, axisFontSize)
			drawText(r, font, spec.XLabel, (spec.Width-w)/2, spec.Height-12, axisFontSize, 0)
		}
		if spec.YLabel != "" {
			w := measure(r, font, spec.YLabel, axisFontSize)
			drawText(r, font, spec.YLabel, 20, (spec.Height+w)/2, axisFontSize, 270)
		}
	}
}
