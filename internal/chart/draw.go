// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

package chart

import (
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var textColor = drawing.ColorFromHex("333333")

func drawText(r chart.Renderer, font *truetype.Font, text string, x, y int, size, degrees float64) {
	r.SetFont(font)
	r.SetFontSize(size)
	r.SetFontColor(textColor)
	if degrees != 0 {
		r.SetTextRotation(degrees * math.Pi / 180)
		defer r.ClearTextRotation()
	}
	r.Text(text, x, y)
}

func measure(r chart.Renderer, font *truetype.Font, text string, size float64) int {
	r.SetFont(font)
	r.SetFontSize(size)
	return r.MeasureText(text).Width()
}

func fillRect(r chart.Renderer, b chart.Box, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(b.Left, b.Top)
	r.LineTo(b.Right, b.Top)
	r.LineTo(b.Right, b.Bottom)
	r.LineTo(b.Left, b.Bottom)
	r.Close()
	r.Fill()
}

func line(r chart.Renderer, x1, y1, x2, y2 int, c drawing.Color, width float64) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(width)
	r.MoveTo(x1, y1)
	r.LineTo(x2, y2)
	r.Stroke()
}
