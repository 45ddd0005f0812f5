// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package health provides the health-status report the pipeline's
// health stage serves, sourced from application-supplied [Checker]s.
package health

import (
	"context"
	"runtime"
	"time"
)

// Status is the reported condition of one checked dependency, or of
// the application as a whole.
type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
)

// Checker reports the status of one dependency (a database, a
// downstream service). Check must return promptly; the health stage
// calls every Checker with the request's context and applies no
// timeout of its own.
type Checker interface {
	Name() string
	Check(ctx context.Context) Status
}

// Report is the JSON shape the health stage serves: overall app
// status, per-service breakdown, process uptime, and memory usage.
type Report struct {
	App      string            `json:"app"`
	Status   Status            `json:"status"`
	Services map[string]Status `json:"services"`
	Uptime   string            `json:"uptime"`
	Memory   MemoryStats       `json:"memory"`
}

// MemoryStats summarizes the process's current memory footprint.
type MemoryStats struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGoroutine    int    `json:"num_goroutine"`
}

// Reporter builds a [Report] by running every registered Checker.
type Reporter struct {
	appName   string
	startedAt time.Time
	checkers  []Checker
}

// NewReporter creates a Reporter for appName whose reported uptime is
// measured from startedAt.
func NewReporter(appName string, startedAt time.Time, checkers ...Checker) *Reporter {
	return &Reporter{appName: appName, startedAt: startedAt, checkers: checkers}
}

// Report runs every checker and aggregates the overall status: Up iff
// every checker reports Up, Down if any reports Down, Degraded
// otherwise.
func (r *Reporter) Report(ctx context.Context) Report {
	services := make(map[string]Status, len(r.checkers))
	overall := StatusUp

	for _, c := range r.checkers {
		s := c.Check(ctx)
		services[c.Name()] = s
		switch s {
		case StatusDown:
			overall = StatusDown
		case StatusDegraded:
			if overall != StatusDown {
				overall = StatusDegraded
			}
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return Report{
		App:      r.appName,
		Status:   overall,
		Services: services,
		Uptime:   time.Since(r.startedAt).String(),
		Memory: MemoryStats{
			AllocBytes:      mem.Alloc,
			TotalAllocBytes: mem.TotalAlloc,
			SysBytes:        mem.Sys,
			NumGoroutine:    runtime.NumGoroutine(),
		},
	}
}
