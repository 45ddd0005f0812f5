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
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// withStatic serves files under cfg.StaticDir for requests whose path
// begins with cfg.StaticPrefix. A missing file, a directory, or any
// read error falls through to the rest of the chain rather than
// failing the request outright.
func withStatic(next Next, cfg Config) Next {
	if cfg.StaticPrefix == "" || cfg.StaticDir == "" {
		return next
	}
	dir := http.Dir(cfg.StaticDir)

	return func(ctx *Context) Result {
		path := ctx.Request.URL.Path
		if ctx.Request.Method != http.MethodGet || !strings.HasPrefix(path, cfg.StaticPrefix) {
			return next(ctx)
		}

		rel := strings.TrimPrefix(path, cfg.StaticPrefix)
		f, err := dir.Open(rel)
		if err != nil {
			return next(ctx)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			return next(ctx)
		}

		data, err := io.ReadAll(f)
		if err != nil {
			return next(ctx)
		}

		contentType := mime.TypeByExtension(filepath.Ext(rel))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		h := http.Header{}
		h.Set("Content-Type", contentType)
		return Result{Status: http.StatusOK, Header: h, Body: bytes.NewReader(data)}
	}
}
