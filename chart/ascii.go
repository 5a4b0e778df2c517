// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/goprox"

	"github.com/guptarohit/asciigraph"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Blue,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Magenta,
	asciigraph.Cyan,
}

// Aligns all series on a common distance axis, from the smallest label
// (clamped to XMin) to the largest one. Missing points are NaN.
func alignSeries(results []goprox.Result) (int, [][]float64) {
	lo, hi := math.MaxInt, math.MinInt
	for _, r := range results {
		for _, b := range r.Series {
			if b.Distance < lo {
				lo = b.Distance
			}
			if b.Distance > hi {
				hi = b.Distance
			}
		}
	}
	if lo < XMin {
		lo = XMin
	}
	if hi < lo {
		return lo, nil
	}

	finite := false
	data := make([][]float64, len(results))
	for i, r := range results {
		row := make([]float64, hi-lo+1)
		for j := range row {
			row[j] = math.NaN()
		}
		for _, b := range r.Series {
			if b.Distance >= lo {
				row[b.Distance-lo] = b.Mean
				finite = finite || !math.IsNaN(b.Mean)
			}
		}
		data[i] = row
	}
	// asciigraph cannot scale an axis without a single value.
	if !finite {
		return lo, nil
	}
	return lo, data
}

// Renders the comparison figure for a terminal. Returns an empty string
// when there is nothing to plot.
func RenderASCII(results []goprox.Result, height int) string {
	lo, data := alignSeries(results)
	if len(data) == 0 {
		return ""
	}

	colors := make([]asciigraph.AnsiColor, len(data))
	names := make([]string, len(data))
	for i, r := range results {
		colors[i] = seriesColors[i%len(seriesColors)]
		names[i] = r.File.Name()
	}
	caption := fmt.Sprintf("%s vs %s from %dmm: %s",
		YLabel, XLabel, lo, strings.Join(names, ", "))

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}
