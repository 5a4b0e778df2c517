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
	"fmt"
	"strings"
	"testing"

	"github.com/google/goprox/programmer/mocks"
	"github.com/google/goprox/util"

	"github.com/golang/mock/gomock"
)

const snr = 682012345

func oneDevice() ([]int, error) {
	return []int{snr}, nil
}

type recordedStatus struct {
	infos, errors []string
}

func (r *recordedStatus) Info(msg string)  { r.infos = append(r.infos, msg) }
func (r *recordedStatus) Error(msg string) { r.errors = append(r.errors, msg) }

func TestUicrCustomerAddress(t *testing.T) {
	if util.UicrCustomer != 0x10001080 {
		t.Errorf("Unexpected UICR CUSTOMER address %#x", util.UicrCustomer)
	}
}

func TestSelectDeviceRejectsMultipleDevices(t *testing.T) {
	_, err := util.SelectDevice(func() ([]int, error) {
		return []int{12345, 67890}, nil
	})
	if err == nil || !strings.Contains(err.Error(), "Only one device should be connected") {
		t.Errorf("SelectDevice did not fail as expected. Err: %v", err)
	}
}

func TestSelectDeviceRejectsNoDevice(t *testing.T) {
	if _, err := util.SelectDevice(func() ([]int, error) { return nil, nil }); err == nil {
		t.Errorf("SelectDevice expected to fail without devices")
	}
}

func TestUpdateHardwareVersion(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	prog := mocks.NewMockProgrammerInterface(mockCtrl)
	gomock.InOrder(
		prog.EXPECT().WriteWord(snr, uint32(0x10001080), uint32(0x80000001)).Return(nil),
		prog.EXPECT().HardReset(snr).Return(nil),
	)

	status := &recordedStatus{}
	err := util.UpdateHardwareVersion(prog, oneDevice, util.HardwareVersions, "WIMKY001",
		util.Options{Status: status})
	if err != nil {
		t.Errorf("UpdateHardwareVersion failed: %v", err)
	}
	if len(status.infos) != 2 || len(status.errors) != 0 {
		t.Errorf("Unexpected status messages %+v", status)
	}
}

func TestUpdateHardwareVersionFailsOnUnknownHardware(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	prog := mocks.NewMockProgrammerInterface(mockCtrl)
	err := util.UpdateHardwareVersion(prog, oneDevice, util.HardwareVersions, "rev9", util.Options{})
	if err == nil || !strings.Contains(err.Error(), "rev9") {
		t.Errorf("UpdateHardwareVersion did not fail as expected. Err: %v", err)
	}
}

func TestUpdateHardwareVersionRejectsTwoDevicesBeforeWriting(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	prog := mocks.NewMockProgrammerInterface(mockCtrl)
	err := util.UpdateHardwareVersion(prog,
		func() ([]int, error) { return []int{12345, 67890}, nil },
		util.HardwareVersions, "WIMKY001", util.Options{})
	if err == nil {
		t.Errorf("UpdateHardwareVersion expected to fail with two devices")
	}
}

func TestWriteFailureStillResetsByDefault(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	prog := mocks.NewMockProgrammerInterface(mockCtrl)
	gomock.InOrder(
		prog.EXPECT().WriteWord(snr, util.UicrCustomer, uint32(0x80000001)).
			Return(fmt.Errorf("memwr failed")),
		prog.EXPECT().HardReset(snr).Return(nil),
	)

	status := &recordedStatus{}
	err := util.WriteAndReset(prog, snr, []util.Word{{util.UicrCustomer, 0x80000001}},
		util.Options{Status: status})
	if err != nil {
		t.Errorf("WriteAndReset failed: %v", err)
	}
	if len(status.errors) != 1 || !strings.Contains(status.errors[0], "memwr failed") {
		t.Errorf("Write failure was not reported: %+v", status)
	}
}

func TestWriteFailureAbortsWhenStrict(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	prog := mocks.NewMockProgrammerInterface(mockCtrl)
	prog.EXPECT().WriteWord(snr, util.UicrCustomer, uint32(0x80000001)).
		Return(fmt.Errorf("memwr failed"))

	err := util.WriteAndReset(prog, snr, []util.Word{{util.UicrCustomer, 0x80000001}},
		util.Options{AbortOnWriteFailure: true, Status: &recordedStatus{}})
	if err == nil || !strings.Contains(err.Error(), "memwr failed") {
		t.Errorf("WriteAndReset did not fail as expected. Err: %v", err)
	}
}

func TestResetFailureAborts(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	prog := mocks.NewMockProgrammerInterface(mockCtrl)
	gomock.InOrder(
		prog.EXPECT().WriteWord(snr, util.UicrCustomer, uint32(0x80000001)).Return(nil),
		prog.EXPECT().HardReset(snr).Return(fmt.Errorf("hardreset failed")),
	)

	err := util.WriteAndReset(prog, snr, []util.Word{{util.UicrCustomer, 0x80000001}},
		util.Options{Status: &recordedStatus{}})
	if err == nil || !strings.Contains(err.Error(), "hardreset failed") {
		t.Errorf("WriteAndReset did not fail as expected. Err: %v", err)
	}
}

func TestVerificationMismatch(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	prog := mocks.NewMockProgrammerInterface(mockCtrl)
	gomock.InOrder(
		prog.EXPECT().WriteWord(snr, util.UicrCustomer, uint32(0x80000001)).Return(nil),
		// UICR bits can only be cleared without an erase.
		prog.EXPECT().ReadWord(snr, util.UicrCustomer).Return(uint32(0x00000001), nil),
	)

	err := util.WriteAndReset(prog, snr, []util.Word{{util.UicrCustomer, 0x80000001}},
		util.Options{AbortOnWriteFailure: true, Verify: true, Status: &recordedStatus{}})
	if err == nil || !strings.Contains(err.Error(), "Verification") {
		t.Errorf("WriteAndReset did not fail as expected. Err: %v", err)
	}
}

func TestReadHardwareVersion(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	prog := mocks.NewMockProgrammerInterface(mockCtrl)
	gomock.InOrder(
		prog.EXPECT().ReadWord(snr, util.UicrCustomer).Return(uint32(0x80000001), nil),
		prog.EXPECT().ReadWord(snr, util.UicrCustomer).Return(uint32(0x12345678), nil),
	)

	name, _, err := util.ReadHardwareVersion(prog, oneDevice, util.HardwareVersions)
	if err != nil || name != "WIMKY001" {
		t.Errorf("ReadHardwareVersion returned (%v, %v)", name, err)
	}
	name, value, err := util.ReadHardwareVersion(prog, oneDevice, util.HardwareVersions)
	if err != nil || name != util.UnknownHardware || value != 0x12345678 {
		t.Errorf("ReadHardwareVersion returned (%v, %#x, %v)", name, value, err)
	}
}

func TestHardwareTableNames(t *testing.T) {
	names := util.HardwareVersions.Names()
	if len(names) != 2 || names[0] != "WIMKY001" || names[1] != "rev2" {
		t.Errorf("Unexpected names %v", names)
	}
	if util.HardwareVersions.Name(0xFFFFFFFF) != "rev2" {
		t.Errorf("Erased UICR should decode as rev2")
	}
}
