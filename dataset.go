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
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

const (
	LogExt = ".log"

	GroupComparator = "comp"
	GroupAdc        = "adc"
)

// A log file under the data directory, and the index of the block recorded
// at 0mm.
type LogFile struct {
	Path   string // <group>/<name>.log
	Offset int
}

func (f LogFile) Name() string {
	return filepath.Base(f.Path)
}

// The recorded distance sweeps. Sweeps start a few millimeters before
// contact, hence the per-file offsets.
func DefaultLogFiles(group string) []LogFile {
	return []LogFile{
		{group + "/0mm.log", 8},
		{group + "/11mm.log", 9},
		{group + "/130mm.log", 9},
	}
}

// Builds a dataset from comma separated file names and offsets.
// Names are relative to group.
func ParseLogFiles(group, names, offsets string) ([]LogFile, error) {
	n := strings.Split(names, ",")
	o := strings.Split(offsets, ",")
	if len(n) != len(o) {
		return nil, fmt.Errorf("Got %d files but %d offsets", len(n), len(o))
	}
	files := make([]LogFile, len(n))
	for i := range n {
		off, err := strconv.Atoi(strings.TrimSpace(o[i]))
		if err != nil {
			return nil, fmt.Errorf("Invalid offset %q: %v", o[i], err)
		}
		name := strings.TrimSpace(n[i])
		if filepath.Ext(name) != LogExt {
			name += LogExt
		}
		files[i] = LogFile{filepath.ToSlash(filepath.Join(group, name)), off}
	}
	return files, nil
}

type Result struct {
	File   LogFile
	Series Series
}

// Loads and reduces every file of the dataset, in order.
func Analyze(dataDir string, files []LogFile) ([]Result, error) {
	return AnalyzeEach(dataDir, files, nil)
}

// Hands every result to fn before loading the next file. On error, returns
// the results reduced so far.
func AnalyzeEach(dataDir string, files []LogFile, fn func(Result)) ([]Result, error) {
	var results []Result
	for _, f := range files {
		log, err := LoadNotificationLog(filepath.Join(dataDir, filepath.FromSlash(f.Path)))
		if err != nil {
			return results, err
		}
		glog.V(1).Infof("Reducing %d blocks of %s with offset %d", len(log), f.Path, f.Offset)
		r := Result{f, Reduce(log, f.Offset)}
		if fn != nil {
			fn(r)
		}
		results = append(results, r)
	}
	return results, nil
}

// Writes the per-block report of a single file.
func WriteReport(dst io.Writer, r Result) error {
	if _, err := fmt.Fprintf(dst, "Data from %s:\n", r.File.Name()); err != nil {
		return err
	}
	for _, b := range r.Series {
		if _, err := fmt.Fprintln(dst, b); err != nil {
			return err
		}
	}
	return nil
}
