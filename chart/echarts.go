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
	"io"
	"math"
	"os"

	"github.com/google/goprox"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/golang/glog"
)

// Builds an interactive version of the comparison figure.
// Distances are plotted on a value axis since every file has its own offset.
func NewLineChart(results []goprox.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: Title, Width: "1000px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:         "value",
			Name:         XLabel,
			NameLocation: "middle",
			NameGap:      25,
			Min:          XMin,
			SplitLine:    &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:         "value",
			Name:         YLabel,
			NameLocation: "middle",
			NameGap:      50,
			SplitLine:    &opts.SplitLine{Show: opts.Bool(true)},
		}),
	)

	for _, r := range results {
		data := make([]opts.LineData, 0, len(r.Series))
		for _, b := range r.Series {
			if math.IsNaN(b.Mean) {
				continue
			}
			data = append(data, opts.LineData{Value: []interface{}{b.Distance, b.Mean}})
		}
		line.AddSeries(r.File.Name(), data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}
	return line
}

func WriteLineChart(dst io.Writer, results []goprox.Result) error {
	if err := NewLineChart(results).Render(dst); err != nil {
		return fmt.Errorf("Failed rendering chart: %v", err)
	}
	return nil
}

func SaveLineChart(filename string, results []goprox.Result) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("Error creating chart file: %v", err)
	}
	defer f.Close()
	if err = WriteLineChart(f, results); err != nil {
		return err
	}
	glog.Infof("Saved interactive chart to %s", filename)
	return nil
}
