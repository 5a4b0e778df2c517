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

package goprox

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type BlockStats struct {
	Distance int     `json:"distance"`
	Mean     float64 `json:"mean"`
	Var      float64 `json:"var"`
}

// Empty blocks print as nan.
func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

func (s BlockStats) String() string {
	return fmt.Sprintf("Distance: %dmm, Mean: %s, Var: %s",
		s.Distance, formatStat(s.Mean), formatStat(s.Var))
}

// Per-block statistics, index-aligned with the blocks of a NotificationLog.
type Series []BlockStats

// Reduces every block to its distance label, mean and population variance.
// Block i is labeled i-offset.
func Reduce(log NotificationLog, offset int) Series {
	series := make(Series, len(log))
	for i, block := range log {
		mean, variance := math.NaN(), math.NaN()
		if len(block) > 0 {
			mean, variance = stat.PopMeanVariance(block.Float64s(), nil)
		}
		series[i] = BlockStats{i - offset, mean, variance}
	}
	return series
}

func (b Block) Float64s() []float64 {
	x := make([]float64, len(b))
	for i, v := range b {
		x[i] = float64(v)
	}
	return x
}

func (s Series) Distances() []int {
	d := make([]int, len(s))
	for i := range s {
		d[i] = s[i].Distance
	}
	return d
}

func (s Series) Means() []float64 {
	m := make([]float64, len(s))
	for i := range s {
		m[i] = s[i].Mean
	}
	return m
}

func (s Series) Variances() []float64 {
	v := make([]float64, len(s))
	for i := range s {
		v[i] = s[i].Var
	}
	return v
}

// Collects the series in a n (#blocks) by 3 matrix.
//  _                     _
// | d0    mean0    var0   |
// | d1    mean1    var1   |
// | ..     ..       ..    |
// |_dN    meanN    varN  _|
//
// Returns nil for an empty series.
func (s Series) Matrix() mat.Matrix {
	if len(s) == 0 {
		return nil
	}
	data := make([]float64, 0, len(s)*3)
	for _, b := range s {
		data = append(data, float64(b.Distance), b.Mean, b.Var)
	}
	return mat.NewDense(len(s), 3, data)
}
