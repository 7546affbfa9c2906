// Crimestats - Crime Dataset Analytics and Chart Rendering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/crimestats

/*
Package chart renders analytics aggregates to PNG and publishes them to disk.

Every chart is described by a Spec (title, axis labels, colors, size, label
rotation). Specs holds the six chart definitions served by the API.

Rendering:

	r := chart.NewRenderer(96)
	png, err := r.RenderBars(spec, series)      // KindBar
	png, err := r.RenderStacked(spec, matrix)   // KindStacked

Bar charts use go-chart's BarChart with extra elements for the axis names.
Stacked charts are drawn directly on a go-chart PNG renderer because the
library's StackedBarChart normalizes every bar to 100%, while the crime
breakdown needs absolute counts.

All drawing state is local to one call, so a Renderer is safe for concurrent
use. Empty input produces a placeholder "No data" chart instead of an error.

Publishing:

	p := chart.NewPublisher(dir)
	path, err := p.Publish(spec.FileName, png)

Publish writes a temporary file in the target directory and renames it over
<dir>/<name>.png, so readers never observe a partially written image.
*/
package chart
