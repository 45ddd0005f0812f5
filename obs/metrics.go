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

// Package obs wires the optional metrics and tracing hooks an
// application can turn on: a Prometheus request-count/duration
// recorder exposed at a metrics endpoint, and an OpenTelemetry
// span-per-request hook around the invoke stage. Both are
// [pipeline.Stage] implementations, installed the same way any other
// custom stage is.
package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lmpessoa/goservices/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records per-request counters and a duration histogram,
// labeled by method, route, and status class.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates a Metrics recorder with its own registry, so an
// embedding application's metrics never collide with the default
// global registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests handled, by method, route, and status.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	reg.MustRegister(requests, duration)

	return &Metrics{registry: reg, requests: requests, duration: duration}
}

// Handler serves the recorded metrics in the Prometheus exposition
// format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Stage returns a pipeline.Stage that times the remainder of the
// chain and records the outcome. Install it with a custom stage
// option; it measures everything nested inside it, which in the
// built-in chain is identity, async, and invoke.
func (m *Metrics) Stage() pipeline.Stage {
	return pipeline.StageFunc(func(ctx *pipeline.Context, next pipeline.Next) pipeline.Result {
		start := time.Now()
		result := next(ctx)
		elapsed := time.Since(start).Seconds()

		route := routeLabel(ctx)
		method := ctx.Request.Method

		m.requests.WithLabelValues(method, route, statusClass(result.Status)).Inc()
		m.duration.WithLabelValues(method, route).Observe(elapsed)

		return result
	})
}

func routeLabel(ctx *pipeline.Context) string {
	if ctx.Match.Entry != nil {
		return ctx.Match.Entry.Pattern.Template
	}
	return ctx.Request.URL.Path
}

func statusClass(status int) string {
	if status == 0 {
		status = http.StatusOK
	}
	return strconv.Itoa(status/100) + "xx"
}
