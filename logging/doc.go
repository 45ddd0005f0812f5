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

// Package logging defines the minimal logging port the engine calls
// through, plus a default [*slog.Logger]-backed adapter.
//
// The engine never dictates a log sink, format, or sampling policy — it
// only needs something satisfying [Logger]:
//
//	var _ Logger = (*SlogLogger)(nil)
//
// # Basic Usage
//
//	logger := logging.New(
//		logging.WithHandlerType(logging.TextHandler),
//		logging.WithServiceName("my-service"),
//		logging.WithDebugLevel(),
//	)
//	logger.Info("request processed",
//		"method", http.MethodGet,
//		"path", "/api/users",
//		"status", 200,
//	)
//
// # Convenience Helpers
//
//	logging.LogRequest(logger, r, "status", 200, "duration_ms", 45)
//	logging.LogError(logger, err, "operation failed", "user_id", userID)
//
//	start := time.Now()
//	logging.LogDuration(logger, "processing completed", start, "items", count)
//
// # Context-Aware Logging
//
// [NewContextLogger] decorates a [Logger] with the trace and span IDs
// of an active OpenTelemetry span found in a context.Context, so log
// lines from a request handler correlate with its trace without every
// call site threading the IDs through by hand.
//
//	cl := logging.NewContextLogger(ctx, logger)
//	cl.Info("processing request", "user_id", userID)
package logging
