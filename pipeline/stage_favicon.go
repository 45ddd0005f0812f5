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
	"net/http"
)

// withFavicon serves cfg.FaviconBytes for GET /favicon.ico, sparing an
// application that never registered that route from a noisy 404 on
// every browser tab.
func withFavicon(next Next, cfg Config) Next {
	if len(cfg.FaviconBytes) == 0 {
		return next
	}
	return func(ctx *Context) Result {
		if ctx.Request.Method != http.MethodGet || ctx.Request.URL.Path != "/favicon.ico" {
			return next(ctx)
		}
		h := http.Header{}
		h.Set("Content-Type", "image/x-icon")
		return Result{Status: http.StatusOK, Header: h, Body: bytes.NewReader(cfg.FaviconBytes)}
	}
}
