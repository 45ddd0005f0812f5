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

// Package route compiles resource types into pattern-based endpoints
// and matches incoming requests against them.
//
// A resource is any concrete type whose exported methods begin with a
// recognized HTTP verb (Get, Post, Put, Patch, Delete, Options) and
// take a [context.Context] and, optionally, a params struct:
//
//	type UserResource struct{ Users UserService }
//
//	type getUserParams struct {
//		ID int64 `path:"id" min:"1"`
//	}
//
//	func (r *UserResource) Get(ctx context.Context, p getUserParams) (User, error) {
//		return r.Users.Find(ctx, p.ID)
//	}
//
// Params-struct fields are classified by tag: `path:"name"` binds a
// path variable (its Go type and any `min`/`max`/`enum`/`regexp` tags
// feed [pattern.ParamSpec]), `query:"name"` a query parameter,
// `body:""` the request body. An untagged field whose type the table
// was built to recognize as a service is resolved from the container
// instead. A blank-identifier `_` field with a `route:"..."` tag
// overrides the path template the table would otherwise derive from
// the resource's type name and path-tagged fields in declaration
// order.
//
//	table := route.NewTable(isRegisteredService)
//	entries, errs := table.Register(reflect.TypeOf(UserResource{}), "")
//	result := table.Match(&route.Request{Method: "GET", Path: "/user/42"})
package route
