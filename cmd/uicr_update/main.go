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

// Programs the hardware version into UICR CUSTOMER[0] of the single
// connected nRF device, then resets it.
// The firmware picks its pin map from this value at boot.

// $ go run ./cmd/uicr_update -hw WIMKY001
// writing HW version to UICR
// Restarting device
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/goprox/programmer"
	"github.com/google/goprox/programmer/jlink"
	"github.com/google/goprox/programmer/nrfjprog"
	"github.com/google/goprox/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
)

var (
	hwFlag        = flag.String("hw", util.DefaultHardware, "Hardware version to program (WIMKY001, rev2)")
	toolFlag      = flag.String("nrfjprog", nrfjprog.DefaultTool, "Path to the nrfjprog executable")
	discoveryFlag = flag.String("discovery", "nrfjprog", "Probe discovery: nrfjprog or usb")
	strictFlag    = flag.Bool("strict", false, "Do not reset the device if writing UICR fails")
	verifyFlag    = flag.Bool("verify", false, "Read back UICR after writing")
	readFlag      = flag.Bool("read", false, "Only read and decode the programmed hardware version")
	hexFlag       = flag.String("hex", "", "Program the words of this Intel-HEX patch instead of -hw")
	emitHexFlag   = flag.String("emit_hex", "", "Write the -hw value as an Intel-HEX patch and exit")
)

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Mirrors progress to the console in color.
type consoleStatus struct{}

func (consoleStatus) Info(msg string) {
	glog.V(1).Info(msg)
	fmt.Println(infoStyle.Render(msg))
}

func (consoleStatus) Error(msg string) {
	glog.Error(msg)
	fmt.Fprintln(os.Stderr, errorStyle.Render(msg))
}

func init() {
	flag.Parse()
}

func discovery(prog *nrfjprog.Programmer) programmer.DiscoveryFunc {
	switch *discoveryFlag {
	case "nrfjprog":
		return prog.Ids
	case "usb":
		return jlink.ListProbes
	}
	glog.Fatalf("Unknown -discovery %q", *discoveryFlag)
	return nil
}

func main() {
	var err error
	defer glog.Flush()

	if len(*emitHexFlag) > 0 {
		var value uint32
		if value, err = util.HardwareVersions.Value(*hwFlag); err != nil {
			glog.Fatal(err)
		}
		if err = util.SaveUicrHex(*emitHexFlag, []util.Word{{util.UicrCustomer, value}}); err != nil {
			glog.Fatal(err)
		}
		glog.Infof("Wrote %s patch to %s", *hwFlag, *emitHexFlag)
		return
	}

	prog := nrfjprog.NewProgrammer(*toolFlag)
	discover := discovery(prog)

	if *readFlag {
		name, value, err := util.ReadHardwareVersion(prog, discover, util.HardwareVersions)
		if err != nil {
			glog.Fatal(err)
		}
		fmt.Printf("UICR CUSTOMER[0] = %#08x (%s)\n", value, name)
		return
	}

	opts := util.Options{
		AbortOnWriteFailure: *strictFlag,
		Verify:              *verifyFlag,
		Status:              consoleStatus{},
	}

	if len(*hexFlag) > 0 {
		var words []util.Word
		if words, err = util.LoadUicrWords(*hexFlag); err != nil {
			glog.Fatalf("Failed loading hex file: %v", err)
		}
		var snr int
		if snr, err = util.SelectDevice(discover); err != nil {
			glog.Fatal(err)
		}
		err = util.WriteAndReset(prog, snr, words, opts)
	} else {
		err = util.UpdateHardwareVersion(prog, discover, util.HardwareVersions, *hwFlag, opts)
	}
	if err != nil {
		glog.Fatal(err)
	}
}
