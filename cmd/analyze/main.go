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

// Compares proximity measurements recorded at different distances.
// Every log holds one notification block per millimeter step; the offset of
// a log is the index of its 0mm block.

// $ go run ./cmd/analyze -plot_out comparison.png
// Data from 0mm.log:
// Distance: -8mm, Mean: 1023.41, Var: 12.80
// Distance: -7mm, Mean: 1021.95, Var: 10.33
// ...
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/goprox"
	"github.com/google/goprox/chart"

	"github.com/golang/glog"
)

var (
	dataDirFlag = flag.String("data_dir", "", "Directory holding <group>/<name>.log files (default: <project>/data)")
	groupFlag   = flag.String("group", goprox.GroupComparator, "Log group: comp or adc")
	filesFlag   = flag.String("files", "", "Comma separated log names within group (default: 0mm,11mm,130mm)")
	offsetsFlag = flag.String("offsets", "", "Comma separated 0mm block index of each file (default: 8,9,9)")
	plotFlag    = flag.String("plot_out", "", "Save the comparison figure (.png, .svg, .pdf)")
	htmlFlag    = flag.String("html_out", "", "Save an interactive .html comparison figure")
	asciiFlag   = flag.Bool("ascii", true, "Draw the comparison figure on the terminal")
	heightFlag  = flag.Int("ascii_height", 15, "Terminal figure height in lines")
)

func init() {
	flag.Parse()
}

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filepath.Dir(filename)))
}

func dataset() ([]goprox.LogFile, error) {
	if *filesFlag == "" && *offsetsFlag == "" {
		return goprox.DefaultLogFiles(*groupFlag), nil
	}
	return goprox.ParseLogFiles(*groupFlag, *filesFlag, *offsetsFlag)
}

func main() {
	defer glog.Flush()

	dataDir := *dataDirFlag
	if dataDir == "" {
		dataDir = filepath.Join(projectRoot(), "data")
	}

	files, err := dataset()
	if err != nil {
		glog.Fatal(err)
	}

	// Each file is reported as soon as it is reduced.
	results, err := goprox.AnalyzeEach(dataDir, files, func(r goprox.Result) {
		if err := goprox.WriteReport(os.Stdout, r); err != nil {
			glog.Fatal(err)
		}
	})
	if err != nil {
		glog.Fatal(err)
	}

	if *asciiFlag {
		fmt.Println(chart.RenderASCII(results, *heightFlag))
	}
	if len(*plotFlag) > 0 {
		if err = chart.SavePlot(*plotFlag, results); err != nil {
			glog.Fatal(err)
		}
	}
	if len(*htmlFlag) > 0 {
		if err = chart.SaveLineChart(*htmlFlag, results); err != nil {
			glog.Fatal(err)
		}
	}
}
