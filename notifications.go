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

// Parses sensor notification logs.
package goprox

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

const (
	MarkerStarted = "Notifications started."
	MarkerStopped = "Notifications stopped."

	markerPrefix = "Notifications"

	// Weight of the second token of a sample line.
	// NOTE: not 256. Results recorded so far were computed with 255.
	HighByteMultiplier = 255
)

var ErrShortLine = errors.New("Each line should contain at least two hex values")

// Samples received between a start and a stop marker.
type Block []int

// Blocks in file order.
type NotificationLog []Block

// Combines the first two hex tokens of line into a single sample.
func ParseHexLine(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, ErrShortLine
	}
	var values [2]int64
	for i, f := range fields[:2] {
		digits := strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		v, err := strconv.ParseInt(digits, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("Invalid hex value %q: %v", f, err)
		}
		values[i] = v
	}
	return int(values[0] + HighByteMultiplier*values[1]), nil
}

// Exported for testing.
func ParseNotificationLog(src io.Reader) (NotificationLog, error) {
	var log NotificationLog
	var current Block
	inside := false

	scanner := bufio.NewScanner(src)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == MarkerStarted:
			inside = true
			current = Block{}
			continue
		case line == MarkerStopped:
			// Closed blocks are kept even when empty. current stays set, so a
			// stop marker without a start closes the previous block again.
			if current == nil {
				current = Block{}
			}
			log = append(log, current)
			inside = false
			continue
		}

		if !inside || line == "" || strings.HasPrefix(line, markerPrefix) {
			continue
		}
		v, err := ParseHexLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", lineNum, err)
		}
		current = append(current, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("Failed reading log: %v", err)
	}
	if inside {
		glog.Warningf("Dropping unterminated block with %d samples", len(current))
	}
	return log, nil
}

// Loads notification blocks from file.
func LoadNotificationLog(filename string) (NotificationLog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("Error opening log file: %v", err)
	}
	defer f.Close()

	log, err := ParseNotificationLog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", filename, err)
	}
	glog.V(1).Infof("Loaded %d blocks from %s", len(log), filename)
	return log, nil
}
