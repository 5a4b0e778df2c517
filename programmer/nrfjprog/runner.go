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

package nrfjprog

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/golang/glog"
)

//go:generate mockgen -destination=mocks/runner.go -package=mocks github.com/google/goprox/programmer/nrfjprog CommandRunner
type CommandRunner interface {
	// Runs the command and returns its standard output.
	Output(name string, args ...string) ([]byte, error)
	// Runs the command attached to the console.
	Run(name string, args ...string) error
}

// Returned when the tool ran but exited with a non-zero status.
type ExitError struct {
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", strings.Join(e.Args, " "), e.Code)
}

// Runs commands on the host. Commands block until the tool exits.
type execRunner struct{}

func exitError(err error, name string, args []string) error {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{append([]string{name}, args...), ee.ExitCode()}
	}
	return err
}

func (execRunner) Output(name string, args ...string) ([]byte, error) {
	glog.V(1).Infof("[exec]: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return out, exitError(err, name, args)
	}
	return out, nil
}

func (execRunner) Run(name string, args ...string) error {
	glog.V(1).Infof("[exec]: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return exitError(err, name, args)
	}
	return nil
}
