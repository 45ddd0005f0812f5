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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(WithOutput(&buf), WithServiceName("orders-api"))
	logger.Info("started", "port", 8080)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "started", entry["msg"])
	assert.Equal(t, "orders-api", entry["service"])
	assert.InDelta(t, 8080, entry["port"], 0)
}

func TestNew_TextHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(WithHandlerType(TextHandler), WithOutput(&buf))
	logger.Warn("disk usage high", "percent", 91)

	assert.Contains(t, buf.String(), "msg=\"disk usage high\"")
	assert.Contains(t, buf.String(), "percent=91")
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(WithOutput(&buf), WithLevel(LevelWarn))
	logger.Info("ignored")
	logger.Error("kept")

	assert.NotContains(t, buf.String(), "ignored")
	assert.Contains(t, buf.String(), "kept")
}

func TestLogRequest(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(WithOutput(&buf))
	r := httptest.NewRequest(http.MethodGet, "/api/users?limit=10", nil)

	LogRequest(logger, r, "status", 200)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/users", entry["path"])
	assert.Equal(t, "limit=10", entry["query"])
	assert.InDelta(t, 200, entry["status"], 0)
}

func TestLogDuration(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(WithOutput(&buf))
	LogDuration(logger, "done", time.Now().Add(-5*time.Millisecond))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, "duration_ms")
	assert.Contains(t, entry, "duration")
}

func TestContextLogger_NoActiveSpan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(WithOutput(&buf))
	cl := NewContextLogger(context.Background(), logger)
	cl.Info("hello")

	assert.Empty(t, cl.TraceID())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, fieldTraceID)
}
