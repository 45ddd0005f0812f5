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

package logging

import (
	"net/http"
	"time"
)

// LogRequest logs an HTTP request against l with standard fields
// (method, path, remote, user_agent, and query when present), plus any
// extra key/value pairs.
//
// Example:
//
//	logging.LogRequest(logger, r, "status", 200, "duration_ms", 45)
func LogRequest(l Logger, r *http.Request, extra ...any) {
	attrs := make([]any, 0, 8+len(extra))
	attrs = append(attrs,
		"method", r.Method,
		"path", r.URL.Path,
		"remote", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)
	if r.URL.RawQuery != "" {
		attrs = append(attrs, "query", r.URL.RawQuery)
	}
	attrs = append(attrs, extra...)
	l.Info("http request", attrs...)
}

// LogError logs err against l at Error level, with an "error" field
// plus any extra key/value pairs.
func LogError(l Logger, err error, msg string, extra ...any) {
	attrs := make([]any, 0, 2+len(extra))
	attrs = append(attrs, "error", err.Error())
	attrs = append(attrs, extra...)
	l.Error(msg, attrs...)
}

// LogDuration logs msg at Info level with "duration_ms" and "duration"
// fields computed from start, plus any extra key/value pairs.
func LogDuration(l Logger, msg string, start time.Time, extra ...any) {
	d := time.Since(start)
	attrs := make([]any, 0, 4+len(extra))
	attrs = append(attrs, "duration_ms", d.Milliseconds(), "duration", d.String())
	attrs = append(attrs, extra...)
	l.Info(msg, attrs...)
}
