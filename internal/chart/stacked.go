// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package chart

import (
	"bytes"
	"fmt"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tomtom215/crimestats/internal/analytics"
)

var (
	gridColor = drawing.ColorFromHex("e0e0e0")
	axisColor = drawing.ColorFromHex("666666")
)

const (
	legendSwatch  = 10
	legendLine    = 16
	legendPadding = 15
)

// RenderStacked draws one bar per matrix row with the row's column counts
// stacked bottom-up in column order. A legend maps colors to columns.
func (r *Renderer) RenderStacked(spec Spec, m *analytics.Matrix) ([]byte, error) {
	if spec.Kind != KindStacked {
		return nil, fmt.Errorf("%w: %s is %q, want %q", ErrUnknownKind, spec.Name, spec.Kind, KindStacked)
	}
	if m == nil || len(m.Rows) == 0 || len(m.Columns) == 0 {
		placeholder := spec
		placeholder.Kind = KindBar
		return r.RenderBars(placeholder, nil)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("render %s: load font: %w", spec.Name, err)
	}
	rr, err := chart.PNG(spec.Width, spec.Height)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", spec.Name, err)
	}
	rr.SetDPI(r.dpi)

	labels := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		labels[i] = truncate(row)
	}

	legendWidth := legendPadding * 2
	for _, col := range append([]string{spec.LegendTitle}, m.Columns...) {
		if w := measure(rr, font, truncate(col), tickFontSize) + legendSwatch + 8; w+legendPadding*2 > legendWidth {
			legendWidth = w + legendPadding*2
		}
	}

	plot := chart.Box{
		Top:    paddingTop,
		Left:   paddingLeft,
		Right:  spec.Width - legendWidth,
		Bottom: spec.Height - bottomPadding(labels, spec.LabelRotation),
	}
	if plot.Right-plot.Left < len(m.Rows) || plot.Bottom-plot.Top < tickCount {
		return nil, fmt.Errorf("render %s: %dx%d is too small for %d bars", spec.Name, spec.Width, spec.Height, len(m.Rows))
	}

	fillRect(rr, chart.Box{Right: spec.Width, Bottom: spec.Height}, drawing.ColorWhite)

	var max float64
	for _, t := range m.RowTotals() {
		max = math.Max(max, t)
	}
	yMax := niceMax(max)
	scale := float64(plot.Height()) / yMax
	format := formatter(spec.valueFormat())

	for i := 0; i <= tickCount; i++ {
		v := yMax * float64(i) / tickCount
		y := plot.Bottom - int(math.Round(v*scale))
		line(rr, plot.Left, y, plot.Right, y, gridColor, 1)
		text := format(v)
		w := measure(rr, font, text, tickFontSize)
		drawText(rr, font, text, plot.Left-w-6, y+4, tickFontSize, 0)
	}

	slot := float64(plot.Width()) / float64(len(m.Rows))
	barWidth := math.Max(1, slot*0.7)
	for i, row := range m.Values {
		left := plot.Left + int(float64(i)*slot+(slot-barWidth)/2)
		right := left + int(barWidth)
		var base float64
		for j, v := range row {
			if v <= 0 {
				continue
			}
			top := base + v
			fillRect(rr, chart.Box{
				Top:    plot.Bottom - int(math.Round(top*scale)),
				Left:   left,
				Right:  right,
				Bottom: plot.Bottom - int(math.Round(base*scale)),
			}, palette[j%len(palette)])
			base = top
		}

		center := left + int(barWidth)/2
		if spec.LabelRotation == 0 {
			w := measure(rr, font, labels[i], tickFontSize)
			drawText(rr, font, labels[i], center-w/2, plot.Bottom+16, tickFontSize, 0)
		} else {
			drawText(rr, font, labels[i], center, plot.Bottom+10, tickFontSize, spec.LabelRotation)
		}
	}

	line(rr, plot.Left, plot.Bottom, plot.Right, plot.Bottom, axisColor, 1)
	line(rr, plot.Left, plot.Top, plot.Left, plot.Bottom, axisColor, 1)

	drawLegend(rr, font, spec.LegendTitle, m.Columns, plot.Right+legendPadding, plot.Top)

	tw := measure(rr, font, spec.Title, titleFontSize)
	drawText(rr, font, spec.Title, (spec.Width-tw)/2, paddingTop-18, titleFontSize, 0)
	if spec.XLabel != "" {
		w := measure(rr, font, spec.XLabel, axisFontSize)
		drawText(rr, font, spec.XLabel, plot.Left+(plot.Width()-w)/2, spec.Height-12, axisFontSize, 0)
	}
	if spec.YLabel != "" {
		w := measure(rr, font, spec.YLabel, axisFontSize)
		drawText(rr, font, spec.YLabel, 20, plot.Top+(plot.Height()+w)/2, axisFontSize, 270)
	}

	var buf bytes.Buffer
	if err := rr.Save(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", spec.Name, err)
	}
	return buf.Bytes(), nil
}

// drawLegend lists one color swatch per column, top-down, starting at (x, y).
func drawLegend(r chart.Renderer, font *truetype.Font, title string, columns []string, x, y int) {
	if title != "" {
		drawText(r, font, title, x, y+legendSwatch, axisFontSize, 0)
		y += legendLine + 4
	}
	for j, col := range columns {
		fillRect(r, chart.Box{Top: y, Left: x, Right: x + legendSwatch, Bottom: y + legendSwatch}, palette[j%len(palette)])
		drawText(r, font, truncate(col), x+legendSwatch+6, y+legendSwatch, tickFontSize, 0)
		y += legendLine
	}
}
