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

// Package pipeline wires a [route.Table], a [container.Container], a
// [codec.Registry], a [validation.Validator], and the optional
// health/static/favicon/identity/async collaborators into a single
// http.Handler.
//
// The built chain always runs in this order, outermost first:
//
//	serializer -> health -> static -> favicon -> custom stages -> identity -> async -> invoke
//
// invoke is the terminal stage: it resolves the matched resource from
// the container, binds the method's params struct from the path,
// query, body, and any registered services, validates it, calls the
// method, and hands the raw result (or error) back up the chain for
// async/identity/serializer to shape.
//
//	cfg := pipeline.Config{
//		Codecs:    codecs,
//		Validator: validator,
//		Container: services,
//		Table:     table,
//	}
//	p := pipeline.Build(cfg)
//	http.ListenAndServe(":8080", p)
package pipeline
