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
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/marcinbor85/gohex"
)

const hexLineLength = 16

// Dumps words as an Intel-HEX patch, e.g. for `nrfjprog --program`.
func WriteUicrHex(dst io.Writer, words []Word) error {
	mem := gohex.NewMemory()
	for _, w := range words {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, w.Value)
		if err := mem.AddBinary(w.Addr, buf); err != nil {
			return fmt.Errorf("Failed adding %v: %v", w, err)
		}
	}
	return mem.DumpIntelHex(dst, hexLineLength)
}

func SaveUicrHex(filename string, words []Word) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("Error creating hex file: %v", err)
	}
	defer f.Close()
	return WriteUicrHex(f, words)
}

// Exported for testing.
func ParseUicrHex(src io.Reader) ([]Word, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(src); err != nil {
		return nil, err
	}

	var words []Word
	for _, s := range mem.GetDataSegments() {
		if s.Address%4 != 0 || len(s.Data)%4 != 0 {
			return nil, fmt.Errorf("Segment at %#08x (%d bytes) is not word aligned", s.Address, len(s.Data))
		}
		for i := 0; i < len(s.Data); i += 4 {
			words = append(words, Word{s.Address + uint32(i), binary.LittleEndian.Uint32(s.Data[i:])})
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("Hex file has no data")
	}
	return words, nil
}

// Loads the words of an Intel-HEX patch.
func LoadUicrWords(filename string) ([]Word, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("Error opening hex file: %v", err)
	}
	defer file.Close()
	return ParseUicrHex(file)
}
