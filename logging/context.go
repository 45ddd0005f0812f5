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
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Semantic convention field names for trace correlation.
const (
	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
)

// ContextLogger decorates a [Logger] with the trace and span IDs found
// in ctx, when a span with a valid span context is present. It implements
// [Logger] itself, so it can be threaded anywhere a plain Logger is
// accepted.
type ContextLogger struct {
	base    Logger
	traceID string
	spanID  string
}

// NewContextLogger wraps logger, attaching trace/span IDs extracted
// from ctx to every subsequent call. If ctx carries no valid span, the
// returned logger behaves exactly like logger.
func NewContextLogger(ctx context.Context, logger Logger) *ContextLogger {
	cl := &ContextLogger{base: logger}

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		cl.traceID = sc.TraceID().String()
		cl.spanID = sc.SpanID().String()
	}

	return cl
}

// TraceID returns the trace ID if one was found, else "".
func (cl *ContextLogger) TraceID() string { return cl.traceID }

// SpanID returns the span ID if one was found, else "".
func (cl *ContextLogger) SpanID() string { return cl.spanID }

func (cl *ContextLogger) withTrace(args []any) []any {
	if cl.traceID == "" {
		return args
	}
	return append(args, fieldTraceID, cl.traceID, fieldSpanID, cl.spanID)
}

func (cl *ContextLogger) Debug(msg string, args ...any) { cl.base.Debug(msg, cl.withTrace(args)...) }
func (cl *ContextLogger) Info(msg string, args ...any)  { cl.base.Info(msg, cl.withTrace(args)...) }
func (cl *ContextLogger) Warn(msg string, args ...any)  { cl.base.Warn(msg, cl.withTrace(args)...) }
func (cl *ContextLogger) Error(msg string, args ...any) { cl.base.Error(msg, cl.withTrace(args)...) }
