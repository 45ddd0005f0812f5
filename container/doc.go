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

// Package container provides a lifetime-scoped dependency-injection
// container.
//
//	c := container.New()
//	c.Register(container.FromInstance(reflect.TypeOf((*Logger)(nil)).Elem(), logger))
//	c.Register(container.FromType(reflect.TypeOf(OrderService{}), container.Request))
//
//	ctx = container.WithRequestScope(ctx)
//	svc, err := c.Resolve(ctx, reflect.TypeOf(OrderService{}))
//
// Registration enforces lifetime safety: a [Process]-lifetime service
// cannot depend (directly or transitively) on a [Request]- or
// [Call]-lifetime one, since its single instance would otherwise
// outlive the dependency's scope. Violations and dependency cycles are
// rejected at Register time, not at first resolution.
package container
