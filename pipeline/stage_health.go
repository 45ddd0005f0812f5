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

package pipeline

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/lmpessoa/goservices/health"
	"github.com/lmpessoa/goservices/herr"
)

// withHealth serves cfg.HealthReporter's report as JSON under
// cfg.HealthPath, ahead of routing, identity, and the async stage —
// a health check must never require a bearer token or wait on the
// async queue.
func withHealth(next Next, cfg Config) Next {
	if cfg.HealthPath == "" || cfg.HealthReporter == nil {
		return next
	}
	return func(ctx *Context) Result {
		if ctx.Request.Method != http.MethodGet || ctx.Request.URL.Path != cfg.HealthPath {
			return next(ctx)
		}

		report := cfg.HealthReporter.Report(ctx.Context)
		body, err := json.Marshal(report)
		if err != nil {
			return Result{Status: http.StatusInternalServerError, Header: http.Header{}, Body: bytes.NewReader([]byte(`{"error":"` + herr.Internal.Code() + `"}`))}
		}

		status := http.StatusOK
		if report.Status == health.StatusDown {
			status = http.StatusServiceUnavailable
		}

		h := http.Header{}
		h.Set("Content-Type", "application/json; charset=utf-8")
		return Result{Status: status, Header: h, Body: bytes.NewReader(body)}
	}
}
