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

package pipeline_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/lmpessoa/goservices/codec"
	"github.com/lmpessoa/goservices/container"
	"github.com/lmpessoa/goservices/health"
	"github.com/lmpessoa/goservices/pipeline"
	"github.com/lmpessoa/goservices/route"
	"github.com/lmpessoa/goservices/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Message string `json:"message"`
}

type getGreetingParams struct {
	Name string `path:"name"`
}

type GreeterResource struct{}

func (r *GreeterResource) Get(ctx context.Context, p getGreetingParams) (greeting, error) {
	return greeting{Message: "hello, " + p.Name}, nil
}

func buildTestPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()

	table := route.NewTable(nil)
	_, errs := table.Register(reflect.TypeOf(GreeterResource{}), "")
	require.Empty(t, errs)

	services := container.New()
	require.NoError(t, services.Register(container.FromType(reflect.TypeOf(&GreeterResource{}), container.Call)))

	codecs := codec.NewRegistry()
	codecs.Register(codec.JSON)

	reporter := health.NewReporter("greeter", time.Now())

	return pipeline.Build(pipeline.Config{
		Codecs:         codecs,
		Validator:      validation.MustNew(),
		Container:      services,
		Table:          table,
		HealthPath:     "/health",
		HealthReporter: reporter,
	})
}

func TestServeHTTP_InvokesMatchedResource(t *testing.T) {
	p := buildTestPipeline(t)

	req := httptest.NewRequest(http.MethodGet, "/greeter/ada", nil)
	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body greeting
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "hello, ada", body.Message)
}

func TestServeHTTP_NotFound(t *testing.T) {
	p := buildTestPipeline(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeHTTP_HealthEndpoint(t *testing.T) {
	p := buildTestPipeline(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var report health.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, health.StatusUp, report.Status)
}
