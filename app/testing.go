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

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"
)

// TestOption configures test execution behavior.
type TestOption func(*testConfig)

type testConfig struct {
	timeout time.Duration
	ctx     context.Context //nolint:containedctx // test configuration struct
}

// WithTimeout sets the test request timeout. Use -1 for no timeout.
func WithTimeout(d time.Duration) TestOption {
	return func(cfg *testConfig) { cfg.timeout = d }
}

// WithContext uses the provided context for the test request.
func WithContext(ctx context.Context) TestOption {
	return func(cfg *testConfig) { cfg.ctx = ctx }
}

// Test dispatches req through the application's pipeline without
// starting a server, for unit testing resources end to end.
//
// Example:
//
//	req := httptest.NewRequest("GET", "/users/123", nil)
//	resp, err := application.Test(req)
func (a *Application) Test(req *http.Request, opts ...TestOption) (*http.Response, error) {
	cfg := &testConfig{timeout: time.Second, ctx: context.Background()}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx := cfg.ctx
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	} else if cfg.timeout < 0 {
		ctx = context.Background()
	}

	req = req.WithContext(ctx)
	recorder := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.pipeline.ServeHTTP(recorder, req)
	}()

	select {
	case <-done:
		return recorder.Result(), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("request timeout: %w", ctx.Err())
	}
}

// TestJSON is a convenience method for testing JSON requests: it
// encodes body as JSON and sets the Content-Type header.
func (a *Application) TestJSON(method, path string, body any, opts ...TestOption) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode JSON body: %w", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	return a.Test(req, opts...)
}

// ExpectJSON asserts a response has the given status code and a JSON
// body, decoding it into out.
func ExpectJSON(t testingT, resp *http.Response, statusCode int, out any) {
	if resp.StatusCode != statusCode {
		t.Errorf("expected status %d, got %d", statusCode, resp.StatusCode)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Errorf("failed to read response body: %v", err)
		return
	}

	if unmarshalErr := json.Unmarshal(body, out); unmarshalErr != nil {
		t.Errorf("failed to decode JSON: %v\nBody: %s", unmarshalErr, string(body))
		return
	}
}

// testingT is a minimal interface for testing.T, usable with other
// test frameworks too.
type testingT interface {
	Errorf(format string, args ...any)
}
