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

// Drives nRF targets through Nordic's nrfjprog command line tool.
package nrfjprog

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/golang/glog"
)

const DefaultTool = "nrfjprog"

var (
	digitsRe = regexp.MustCompile(`\d+`)
	// e.g. "0x10001080: 80000001                              |....|"
	memrdRe = regexp.MustCompile(`^0x([0-9A-Fa-f]+):\s+([0-9A-Fa-f]+)`)
)

// Implements programmer.ProgrammerInterface
type Programmer struct {
	tool   string
	runner CommandRunner
}

func NewProgrammer(tool string) *Programmer {
	return NewProgrammerWithRunner(tool, execRunner{})
}

// Exported for testing.
func NewProgrammerWithRunner(tool string, runner CommandRunner) *Programmer {
	if tool == "" {
		tool = DefaultTool
	}
	return &Programmer{tool, runner}
}

func hex32(v uint32) string {
	return fmt.Sprintf("%#x", v)
}

// Extracts probe serial numbers from the output of --ids.
// The tool prints one serial number per line. Lines carrying extra numbers
// (e.g. "Probe 1 found: 12345") contribute their last number.
func ParseIds(out []byte) ([]int, error) {
	var snrs []int
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		runs := digitsRe.FindAllString(scanner.Text(), -1)
		if len(runs) == 0 {
			continue
		}
		snr, err := strconv.Atoi(runs[len(runs)-1])
		if err != nil {
			return nil, fmt.Errorf("Invalid serial number %q: %v", runs[len(runs)-1], err)
		}
		snrs = append(snrs, snr)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return snrs, nil
}

func (p *Programmer) Ids() ([]int, error) {
	out, err := p.runner.Output(p.tool, "--ids")
	if err != nil {
		return nil, fmt.Errorf("Failed listing probes: %v", err)
	}
	snrs, err := ParseIds(out)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("Connected probes: %v", snrs)
	return snrs, nil
}

func (p *Programmer) WriteWord(snr int, addr, value uint32) error {
	glog.V(1).Infof("[nrfjprog-memwr]: snr = %v, addr = %v, val = %v", snr, hex32(addr), hex32(value))
	return p.runner.Run(p.tool,
		"--memwr", hex32(addr), "--val", hex32(value), "--snr", strconv.Itoa(snr))
}

func (p *Programmer) ReadWord(snr int, addr uint32) (uint32, error) {
	glog.V(1).Infof("[nrfjprog-memrd]: snr = %v, addr = %v", snr, hex32(addr))
	out, err := p.runner.Output(p.tool,
		"--memrd", hex32(addr), "--n", "4", "--snr", strconv.Itoa(snr))
	if err != nil {
		return 0, err
	}
	return parseMemrd(out, addr)
}

func parseMemrd(out []byte, addr uint32) (uint32, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		m := memrdRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		a, err := strconv.ParseUint(m[1], 16, 32)
		if err != nil || uint32(a) != addr {
			continue
		}
		v, err := strconv.ParseUint(m[2], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("Invalid memrd value %q: %v", m[2], err)
		}
		return uint32(v), nil
	}
	return 0, fmt.Errorf("No value for address %v in memrd output %q", hex32(addr), out)
}

func (p *Programmer) HardReset(snr int) error {
	glog.V(1).Infof("[nrfjprog-hardreset]: snr = %v", snr)
	return p.runner.Run(p.tool, "--hardreset", "--snr", strconv.Itoa(snr))
}
