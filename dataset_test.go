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

package goprox_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/google/goprox"
)

func TestDefaultLogFiles(t *testing.T) {
	expected := []goprox.LogFile{
		{"comp/0mm.log", 8},
		{"comp/11mm.log", 9},
		{"comp/130mm.log", 9},
	}
	if got := goprox.DefaultLogFiles(goprox.GroupComparator); !reflect.DeepEqual(got, expected) {
		t.Errorf("Unexpected default dataset %v", got)
	}
}

func TestParseLogFiles(t *testing.T) {
	files, err := goprox.ParseLogFiles("adc", "0mm, 11mm.log", "8,9")
	if err != nil {
		t.Fatalf("ParseLogFiles failed: %v", err)
	}
	expected := []goprox.LogFile{{"adc/0mm.log", 8}, {"adc/11mm.log", 9}}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("Unexpected dataset %v", files)
	}
	if _, err = goprox.ParseLogFiles("adc", "0mm", "8,9"); err == nil {
		t.Errorf("Expected mismatched offsets to fail")
	}
}

func TestAnalyze(t *testing.T) {
	results, err := goprox.Analyze("testdata",
		[]goprox.LogFile{{"comp/0mm.log", 1}, {"comp/11mm.log", 0}})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Unexpected number of results %d", len(results))
	}
	s := results[0].Series
	if len(s) != 3 || s[0].Distance != -1 || s[0].Mean != 20 || s[2].Distance != 1 {
		t.Errorf("Unexpected series %v", s)
	}
	// 0xFF + 255*0x01
	if s[2].Mean != 510 {
		t.Errorf("Unexpected mean %v", s[2].Mean)
	}
	if results[1].File.Name() != "11mm.log" || results[1].Series[0].Mean != 3 {
		t.Errorf("Unexpected second result %v", results[1])
	}
}

func TestAnalyzeFailsOnMissingFile(t *testing.T) {
	if _, err := goprox.Analyze("testdata", []goprox.LogFile{{"comp/missing.log", 0}}); err == nil {
		t.Errorf("Analyze expected to fail on missing file")
	}
}

func TestAnalyzeEachReportsBeforeFailure(t *testing.T) {
	buf := bytes.Buffer{}
	results, err := goprox.AnalyzeEach("testdata",
		[]goprox.LogFile{{"comp/11mm.log", 0}, {"malformed.log", 0}},
		func(r goprox.Result) {
			if err := goprox.WriteReport(&buf, r); err != nil {
				t.Errorf("WriteReport failed: %v", err)
			}
		})
	if err == nil {
		t.Fatalf("AnalyzeEach expected to fail on malformed log")
	}
	if len(results) != 1 {
		t.Errorf("Expected the first result to be returned, got %v", results)
	}
	expected := "Data from 11mm.log:\nDistance: 0mm, Mean: 3.00, Var: 1.00\n"
	if buf.String() != expected {
		t.Errorf("Unexpected report %q", buf.String())
	}
	if strings.Contains(buf.String(), "malformed") {
		t.Errorf("Malformed log was reported")
	}
}
