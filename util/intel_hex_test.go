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

package util_test

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/goprox/util"
)

func TestUicrHexPatch(t *testing.T) {
	words := []util.Word{{util.UicrCustomer, 0x80000001}}
	filename := filepath.Join(t.TempDir(), "uicr.hex")
	if err := util.SaveUicrHex(filename, words); err != nil {
		t.Fatalf("SaveUicrHex failed: %v", err)
	}
	loaded, err := util.LoadUicrWords(filename)
	if err != nil {
		t.Fatalf("LoadUicrWords failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, words) {
		t.Errorf("Loaded words (%v) did not match original (%v)", loaded, words)
	}
}

func TestUicrHexIsLittleEndian(t *testing.T) {
	buf := bytes.Buffer{}
	if err := util.WriteUicrHex(&buf, []util.Word{{util.UicrCustomer, 0x80000001}}); err != nil {
		t.Fatalf("WriteUicrHex failed: %v", err)
	}
	// Data record at offset 0x1080 carrying 01 00 00 80.
	if !strings.Contains(strings.ToUpper(buf.String()), ":0410800001000080EB") {
		t.Errorf("Unexpected hex output:\n%s", buf.String())
	}
}

func TestParseUicrHexRejectsUnalignedData(t *testing.T) {
	// Two bytes at 0x0000.
	src := ":020000000102FB\n:00000001FF\n"
	if _, err := util.ParseUicrHex(strings.NewReader(src)); err == nil {
		t.Errorf("ParseUicrHex expected to fail on unaligned data")
	}
}

func TestLoadUicrWordsMissingFile(t *testing.T) {
	if _, err := util.LoadUicrWords(filepath.Join(t.TempDir(), "missing.hex")); err == nil {
		t.Errorf("LoadUicrWords did not fail as expected. Err: %v", err)
	}
}
