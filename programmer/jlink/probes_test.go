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

package jlink_test

import (
	"testing"

	"github.com/google/goprox/programmer"
	"github.com/google/goprox/programmer/jlink"
)

var _ programmer.DiscoveryFunc = jlink.ListProbes

func TestParseSerial(t *testing.T) {
	snr, err := jlink.ParseSerial("000682012345")
	if err != nil || snr != 682012345 {
		t.Errorf("ParseSerial returned (%v, %v)", snr, err)
	}
}

func TestParseSerialFailsOnGarbage(t *testing.T) {
	for _, s := range []string{"", "000", "J-Link"} {
		if _, err := jlink.ParseSerial(s); err == nil {
			t.Errorf("ParseSerial(%q) expected to fail", s)
		}
	}
}
