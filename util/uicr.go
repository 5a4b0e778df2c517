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

package util

import (
	"fmt"
	"sort"

	"github.com/google/goprox/programmer"

	"github.com/golang/glog"
)

const (
	UicrBase           uint32 = 0x10001000
	UicrCustomerOffset uint32 = 0x080
	// CUSTOMER[0] holds the hardware version read by the firmware at boot.
	UicrCustomer = UicrBase + UicrCustomerOffset

	DefaultHardware = "WIMKY001"
	UnknownHardware = "unknown"
)

// Hardware revision name to UICR value.
type HardwareTable map[string]uint32

var HardwareVersions = HardwareTable{
	"WIMKY001": 0x80000001,
	// Erased UICR.
	"rev2": 0xFFFFFFFF,
}

func (t HardwareTable) Value(name string) (uint32, error) {
	v, ok := t[name]
	if !ok {
		return 0, fmt.Errorf("Unknown hardware version %q (known: %v)", name, t.Names())
	}
	return v, nil
}

// Decodes a UICR value the way the firmware does.
func (t HardwareTable) Name(value uint32) string {
	for name, v := range t {
		if v == value {
			return name
		}
	}
	return UnknownHardware
}

func (t HardwareTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A 32bit word to program into target memory.
type Word struct {
	Addr  uint32
	Value uint32
}

func (w Word) String() string {
	return fmt.Sprintf("%#08x=%#08x", w.Addr, w.Value)
}

// Progress messages of the update sequence.
type StatusLogger interface {
	Info(msg string)
	Error(msg string)
}

type glogStatus struct{}

func (glogStatus) Info(msg string)  { glog.Info(msg) }
func (glogStatus) Error(msg string) { glog.Error(msg) }

type Options struct {
	// Skip the reset when writing (or verifying) fails. When false, the
	// failure is reported and the device is still reset.
	AbortOnWriteFailure bool
	// Read back every word after writing it.
	Verify bool
	// Defaults to glog.
	Status StatusLogger
}

func (o *Options) status() StatusLogger {
	if o.Status == nil {
		return glogStatus{}
	}
	return o.Status
}

// Returns the serial number of the single attached probe.
func SelectDevice(discover programmer.DiscoveryFunc) (int, error) {
	devices, err := discover()
	if err != nil {
		return 0, fmt.Errorf("Device discovery failed: %v", err)
	}
	if len(devices) != 1 {
		return 0, fmt.Errorf("Only one device should be connected (found %d: %v)", len(devices), devices)
	}
	return devices[0], nil
}

func writeWords(prog programmer.ProgrammerInterface, snr int, words []Word, verify bool) error {
	var err error
	for _, w := range words {
		if err = prog.WriteWord(snr, w.Addr, w.Value); err != nil {
			return fmt.Errorf("Failed to write %v: %v", w, err)
		}
		if !verify {
			continue
		}
		var actual uint32
		if actual, err = prog.ReadWord(snr, w.Addr); err != nil {
			return fmt.Errorf("Failed to read back %#08x: %v", w.Addr, err)
		}
		if actual != w.Value {
			return fmt.Errorf("Verification of %v failed, read %#08x", w, actual)
		}
	}
	return nil
}

// Writes words to the device, then hard-resets it.
// A write failure aborts only when opts.AbortOnWriteFailure is set.
// A reset failure always does.
func WriteAndReset(prog programmer.ProgrammerInterface, snr int, words []Word, opts Options) error {
	var err error
	status := opts.status()

	status.Info("writing HW version to UICR")
	if err = writeWords(prog, snr, words, opts.Verify); err != nil {
		status.Error(fmt.Sprintf("failed to write HW version to UICR: %v", err))
		if opts.AbortOnWriteFailure {
			return err
		}
	}

	status.Info("Restarting device")
	if err = prog.HardReset(snr); err != nil {
		status.Error("failed to restart device")
		return fmt.Errorf("Failed to restart device: %v", err)
	}
	return nil
}

// Programs the named hardware version into UICR CUSTOMER[0] of the single
// attached device.
func UpdateHardwareVersion(prog programmer.ProgrammerInterface, discover programmer.DiscoveryFunc,
	table HardwareTable, hardware string, opts Options) error {
	value, err := table.Value(hardware)
	if err != nil {
		return err
	}
	snr, err := SelectDevice(discover)
	if err != nil {
		return err
	}
	glog.Infof("Programming %s (%#08x) on device %d", hardware, value, snr)
	return WriteAndReset(prog, snr, []Word{{UicrCustomer, value}}, opts)
}

// Reads UICR CUSTOMER[0] of the single attached device and decodes it.
func ReadHardwareVersion(prog programmer.ProgrammerInterface, discover programmer.DiscoveryFunc,
	table HardwareTable) (string, uint32, error) {
	snr, err := SelectDevice(discover)
	if err != nil {
		return "", 0, err
	}
	value, err := prog.ReadWord(snr, UicrCustomer)
	if err != nil {
		return "", 0, fmt.Errorf("Failed to read UICR: %v", err)
	}
	return table.Name(value), value, nil
}
