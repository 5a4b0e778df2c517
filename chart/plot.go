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

// Renders distance/measurement comparison figures.
package chart

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/goprox"

	"github.com/golang/glog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	Title  = "Comparison of Measurements from Multiple Logs"
	XLabel = "Distance [mm]"
	YLabel = "Measurement"

	// Left limit of the distance axis.
	XMin = -5

	width  = 10 * vg.Inch
	height = 5 * vg.Inch
)

// Measurement points with their (zero) error bars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

func newErrPoints(s goprox.Series) errPoints {
	pts := errPoints{
		XYs:     make(plotter.XYs, 0, len(s)),
		YErrors: make(plotter.YErrors, 0, len(s)),
	}
	for _, b := range s {
		// Empty blocks have no mean.
		if math.IsNaN(b.Mean) {
			continue
		}
		pts.XYs = append(pts.XYs, plotter.XY{X: float64(b.Distance), Y: b.Mean})
		pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{0, 0})
	}
	return pts
}

// Builds the comparison figure: one marker+line series per result, sharing
// the axes.
func NewPlot(results []goprox.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Add(plotter.NewGrid())

	for i, r := range results {
		pts := newErrPoints(r.Series)
		if len(pts.XYs) == 0 {
			glog.Warningf("No samples to plot for %s", r.File.Path)
			continue
		}
		line, scatter, err := plotter.NewLinePoints(pts.XYs)
		if err != nil {
			return nil, fmt.Errorf("NewLinePoints failed for %s: %v", r.File.Path, err)
		}
		line.Color = plotutil.Color(i)
		scatter.Color = plotutil.Color(i)
		scatter.Shape = plotutil.Shape(0)

		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return nil, fmt.Errorf("NewYErrorBars failed for %s: %v", r.File.Path, err)
		}
		bars.Color = plotutil.Color(i)

		p.Add(line, scatter, bars)
		p.Legend.Add(r.File.Name(), line, scatter)
	}

	if p.X.Max < XMin {
		p.X.Max = XMin + 1
	}
	p.X.Min = XMin
	p.Legend.Top = true
	return p, nil
}

// Renders the figure in the given format ("png", "svg", "pdf", ...).
func WritePlot(dst io.Writer, results []goprox.Result, format string) error {
	p, err := NewPlot(results)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("WriterTo failed: %v", err)
	}
	if _, err = wt.WriteTo(dst); err != nil {
		return fmt.Errorf("Failed writing plot: %v", err)
	}
	return nil
}

// Saves the figure. Format is picked from the file extension.
func SavePlot(filename string, results []goprox.Result) error {
	p, err := NewPlot(results)
	if err != nil {
		return err
	}
	if err = p.Save(width, height, filename); err != nil {
		return fmt.Errorf("Failed saving plot to %s: %v", filename, err)
	}
	glog.Infof("Saved %s plot to %s",
		strings.TrimPrefix(filepath.Ext(filename), "."), filename)
	return nil
}
