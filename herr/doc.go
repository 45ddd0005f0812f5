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

// Package herr provides a fixed taxonomy of HTTP-facing errors plus
// framework-agnostic formatters to render them.
//
// [Kind] names the handful of outcomes a responder pipeline needs to
// distinguish (bad input, missing route, unsupported content, rate
// limiting, and so on); [New] builds an [Error] from a [Kind], an
// optional detail message, and an optional wrapped cause. The package
// also defines a [Formatter] interface and three concrete
// implementations for rendering any error (not just [*Error]) into an
// HTTP response body:
//   - RFC9457: RFC 9457 Problem Details (application/problem+json)
//   - JSONAPI: JSON:API error responses (application/vnd.api+json)
//   - Simple: Simple JSON error responses (application/json)
//
// # Quick Start
//
//	package main
//
//	import (
//		"encoding/json"
//		"net/http"
//
//		"github.com/lmpessoa/goservices/herr"
//	)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		err := herr.New(herr.NotFound, "user 42 not found", nil)
//		formatter := herr.NewRFC9457("https://api.example.com/problems")
//		response := formatter.Format(r, err)
//		w.Header().Set("Content-Type", response.ContentType)
//		w.WriteHeader(response.Status)
//		json.NewEncoder(w).Encode(response.Body)
//	}
//
// # Error Interfaces
//
// Any error, not just [*Error], can drive a [Formatter] by implementing
// one or more optional interfaces:
//
//   - ErrorType: Declare HTTP status code
//   - ErrorDetails: Provide structured details (e.g., field-level validation errors)
//   - ErrorCode: Provide machine-readable error codes
//
// [*Error] implements all three, deriving each from its [Kind].
//
// # Examples
//
// See the example_test.go file for complete working examples.
package herr
