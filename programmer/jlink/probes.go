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

// Enumerates SEGGER J-Link probes over USB without the vendor tools.
package jlink

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/google/gousb"
)

const (
	seggerVid = 0x1366
)

// J-Link firmware reports the serial number zero padded to 12 digits.
func ParseSerial(s string) (int, error) {
	s = strings.TrimSpace(s)
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return 0, fmt.Errorf("Invalid serial number %q", s)
	}
	snr, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("Invalid serial number %q: %v", s, err)
	}
	return snr, nil
}

// Implements programmer.DiscoveryFunc
func ListProbes() ([]int, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(seggerVid)
	})
	// OpenDevices may return the devices it managed to open along with an error.
	defer func() {
		for _, d := range devs {
			d.Close()
		}
	}()
	if err != nil && len(devs) == 0 {
		return nil, fmt.Errorf("Opening J-Link devices: %v", err)
	}
	if err != nil {
		glog.Warningf("Some J-Link devices could not be opened: %v", err)
	}

	var snrs []int
	for _, d := range devs {
		s, err := d.SerialNumber()
		if err != nil {
			return nil, fmt.Errorf("Reading serial number of %v: %v", d, err)
		}
		snr, err := ParseSerial(s)
		if err != nil {
			return nil, err
		}
		glog.V(1).Infof("Found J-Link %v (pid %v)", snr, d.Desc.Product)
		snrs = append(snrs, snr)
	}
	return snrs, nil
}
