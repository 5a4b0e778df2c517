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

// Serves notification log statistics and comparison figures over HTTP.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/goprox"
	"github.com/google/goprox/chart"
	"github.com/google/goprox/util"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
	"github.com/labstack/echo"
)

var (
	portFlag = flag.Int("port", 8080, "Server HTTP port number")
	dirFlag  = flag.String("dir", "data", "Data directory holding <group>/<name>.log files, relative to the project root")
)

const (
	waitTimeout = 5 * time.Minute
)

type statsRow struct {
	Distance int      `json:"distance"`
	Mean     *float64 `json:"mean"`
	Var      *float64 `json:"var"`
}

type server struct {
	dataDir string
	broker  *util.Broker
}

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

func dataDirectory() string {
	if filepath.IsAbs(*dirFlag) {
		return *dirFlag
	}
	return filepath.Join(projectRoot(), *dirFlag)
}

// A go-routine that waits for log changes in the data directory and its
// group directories. Notifies changes by publishing a message via broker.
func watchDirectoryChanges(dir string, broker *util.Broker) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		glog.Errorf("NewWatcher failed: %v", err)
		return
	}
	defer watcher.Close()

	if err = watcher.Add(dir); err != nil {
		glog.Errorf("watcher.Add failed: %v", err)
		return
	}
	groups, _ := filepath.Glob(filepath.Join(dir, "*"))
	for _, g := range groups {
		if fi, err := os.Stat(g); err == nil && fi.IsDir() {
			if err = watcher.Add(g); err != nil {
				glog.Warningf("watcher.Add(%s) failed: %v", g, err)
			}
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				glog.Warning("watcher.Events is not ok. Aborting")
				return
			}
			glog.V(1).Infof("Watcher event: %v", event)
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err = watcher.Add(event.Name); err != nil {
						glog.Warningf("watcher.Add(%s) failed: %v", event.Name, err)
					}
					broker.Publish(event.Name)
					continue
				}
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if strings.HasSuffix(event.Name, goprox.LogExt) {
					broker.Publish(event.Name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				glog.Warning("watcher.Errors is not ok. Aborting")
				return
			}
			glog.Warning("Watcher error: ", err)
		}
	}
}

// Blocks until a log changes, the client leaves, or waitTimeout expires.
func (s *server) waitForLogs(c echo.Context) {
	timedOut := time.NewTimer(waitTimeout)
	defer timedOut.Stop()

	changed := s.broker.Subscribe()
	defer s.broker.Unsubscribe(changed)

	select {
	case <-timedOut.C:
		glog.V(1).Infof("Timed out")
	case <-c.Request().Context().Done():
		glog.V(1).Infof("Client disconnected")
	case name := <-changed:
		glog.V(1).Infof("Received change notification for %s", name)
	}
}

func (s *server) listLogs() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dataDir, "*", "*"+goprox.LogExt))
	if err != nil {
		return nil, err
	}
	logs := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(s.dataDir, f)
		if err != nil {
			return nil, err
		}
		logs = append(logs, filepath.ToSlash(rel))
	}
	return logs, nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// Dataset from the group/files/offsets query parameters, defaulting to the
// recorded sweeps.
func datasetFromQuery(c echo.Context) ([]goprox.LogFile, error) {
	group := c.QueryParam("group")
	if group == "" {
		group = goprox.GroupComparator
	}
	if !validName(group) {
		return nil, fmt.Errorf("Invalid group %q", group)
	}
	files, offsets := c.QueryParam("files"), c.QueryParam("offsets")
	if files == "" && offsets == "" {
		return goprox.DefaultLogFiles(group), nil
	}
	dataset, err := goprox.ParseLogFiles(group, files, offsets)
	if err != nil {
		return nil, err
	}
	for _, f := range dataset {
		if !validName(f.Name()) || filepath.Dir(filepath.FromSlash(f.Path)) != group {
			return nil, fmt.Errorf("Invalid file %q", f.Path)
		}
	}
	return dataset, nil
}

func (s *server) analyzeQuery(c echo.Context) ([]goprox.Result, error) {
	dataset, err := datasetFromQuery(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	results, err := goprox.Analyze(s.dataDir, dataset)
	if err != nil {
		glog.Errorf("Analyze failed: %v", err)
		return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return results, nil
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func newServer(dataDir string, broker *util.Broker) *echo.Echo {
	s := &server{dataDir, broker}
	e := echo.New()
	e.HideBanner = true

	// Returns list of <group>/<name>.log files in the data directory.
	e.GET("/logs", func(c echo.Context) error {
		if c.QueryParam("wait") != "false" {
			s.waitForLogs(c)
		}
		logs, err := s.listLogs()
		if err != nil {
			glog.Errorf("Glob failed: %v", err)
			return err
		}
		return c.JSON(http.StatusOK, logs)
	})

	// Returns per-block statistics of a single log file.
	e.GET("/stats/:group/:name", func(c echo.Context) error {
		group, name := c.Param("group"), c.Param("name")
		if !validName(group) || !validName(name) {
			return c.String(http.StatusBadRequest, "Invalid log name")
		}
		offset := 0
		if o := c.QueryParam("offset"); o != "" {
			var err error
			if offset, err = strconv.Atoi(o); err != nil {
				return c.String(http.StatusBadRequest, "Invalid offset")
			}
		}
		if filepath.Ext(name) != goprox.LogExt {
			name += goprox.LogExt
		}
		log, err := goprox.LoadNotificationLog(filepath.Join(s.dataDir, group, name))
		if err != nil {
			glog.Errorf("Error loading log file: %v", err)
			return c.String(http.StatusNotFound, err.Error())
		}

		rows := []statsRow{}
		if m := goprox.Reduce(log, offset).Matrix(); m != nil {
			n, _ := m.Dims()
			for i := 0; i < n; i++ {
				rows = append(rows, statsRow{int(m.At(i, 0)), optional(m.At(i, 1)), optional(m.At(i, 2))})
			}
		}
		return c.JSON(http.StatusOK, rows)
	})

	e.GET("/plot.png", func(c echo.Context) error {
		results, err := s.analyzeQuery(c)
		if err != nil {
			return err
		}
		buf := bytes.Buffer{}
		if err = chart.WritePlot(&buf, results, "png"); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	})

	chartHandler := func(c echo.Context) error {
		results, err := s.analyzeQuery(c)
		if err != nil {
			return err
		}
		buf := bytes.Buffer{}
		if err = chart.WriteLineChart(&buf, results); err != nil {
			return err
		}
		return c.HTMLBlob(http.StatusOK, buf.Bytes())
	}
	e.GET("/", chartHandler)
	e.GET("/chart", chartHandler)

	return e
}

func main() {
	flag.Parse()
	defer glog.Flush()

	dir := dataDirectory()
	watchBroker := util.NewBroker()
	defer watchBroker.Close()
	go watchDirectoryChanges(dir, watchBroker)

	e := newServer(dir, watchBroker)
	glog.Infof("Serving %s", dir)
	glog.Fatal(e.Start(fmt.Sprintf(":%d", *portFlag)))
}
