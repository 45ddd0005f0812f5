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

package obs

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lmpessoa/goservices/pipeline"
)

// Tracing starts one span per request around the remainder of the
// pipeline. It only uses the OpenTelemetry trace API: with no
// TracerProvider configured by the embedding application, spans are
// created against the no-op global provider and cost nothing.
type Tracing struct {
	tracer trace.Tracer
}

// NewTracing creates a Tracing hook. serviceName names the tracer,
// not the spans themselves. With no TracerProvider configured by the
// embedding application, otel.Tracer resolves against the no-op
// global provider.
func NewTracing(serviceName string) *Tracing {
	return &Tracing{tracer: otel.Tracer(serviceName)}
}

// Stage returns a pipeline.Stage that wraps the remainder of the
// chain in a span named after the matched route, or the request's
// raw path when nothing matched.
func (t *Tracing) Stage() pipeline.Stage {
	return pipeline.StageFunc(func(ctx *pipeline.Context, next pipeline.Next) pipeline.Result {
		name := ctx.Request.Method + " " + routeLabel(ctx)

		spanCtx, span := t.tracer.Start(ctx.Context, name, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		ctx.Context = spanCtx

		span.SetAttributes(
			attribute.String("http.method", ctx.Request.Method),
			attribute.String("http.route", routeLabel(ctx)),
		)

		result := next(ctx)

		span.SetAttributes(attribute.Int("http.status_code", result.Status))
		if ctx.Err != nil {
			span.RecordError(ctx.Err)
			span.SetStatus(codes.Error, ctx.Err.Error())
		}

		return result
	})
}
