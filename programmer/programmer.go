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

// Debug probe programmers.
package programmer

// Lists serial numbers of the attached probes.
type DiscoveryFunc func() ([]int, error)

//go:generate mockgen -destination=mocks/programmer.go -package=mocks github.com/google/goprox/programmer ProgrammerInterface
type ProgrammerInterface interface {
	// Serial numbers of the attached probes.
	Ids() ([]int, error)
	// Writes a single 32bit word to the target memory.
	WriteWord(snr int, addr, value uint32) error
	ReadWord(snr int, addr uint32) (uint32, error)
	// Pulses the target reset line.
	HardReset(snr int) error
}
