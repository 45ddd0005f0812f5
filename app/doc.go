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

// Package app is the composition root that wires a resource-oriented
// service together: it builds a route table from plain Go types, a
// dependency container to construct them, a request pipeline to run
// them, and an HTTP server to serve it all, configured entirely
// through functional options.
//
// # Overview
//
// New takes a set of services (plain structs whose exported methods
// become route handlers), resolves them through the container,
// matches incoming requests against the route table, and runs each
// match through the pipeline: binding, validation, identity checks,
// the handler invocation, and response serialization.
//
//   - Service registration: resources and their lifetimes
//   - Route areas: grouping resources under a path prefix
//   - Async dispatch: long-running methods handled off the request goroutine
//   - Identity and policies: authenticating and authorizing requests
//   - Health reporting: aggregating checker results behind one path
//   - Lifecycle hooks: OnStart, OnReady, OnShutdown, OnStop
//   - Graceful shutdown: draining in-flight requests on SIGINT/SIGTERM
//
// # Constructor Pattern
//
//   - New returns (*Application, error) because wiring can fail:
//     invalid configuration, a route conflict, a service that cannot
//     be resolved.
//   - MustNew panics on error, for use in main() where a broken
//     configuration should abort startup immediately.
//   - Every option has the "With" or "Use" prefix: "With" sets a
//     scalar or sub-config, "Use" installs a component (a service, a
//     route area, async dispatch, health, identity).
//
// # Quick Start
//
//	application := app.MustNew(
//	    app.WithServiceName("orders-api"),
//	    app.UseService(reflect.TypeOf(OrdersResource{}), nil, container.Process),
//	)
//
//	log.Fatal(application.ListenAndServe(":8080"))
//
// A resource is a plain struct; each exported method becomes a route
// handler, matched by name and parameter shape against the incoming
// request. The container builds one instance per the lifetime given
// to [UseService] (Process, Request, or Call) and injects its
// dependencies into its fields or through a factory function.
//
// # Route Areas
//
// [UseRouteArea] groups resources matching a predicate under a common
// path prefix, claiming them in registration order; anything left
// unclaimed is registered at the root:
//
//	application := app.MustNew(
//	    app.UseRouteArea("/api/v1", isAPIResource, nil),
//	    app.UseService(reflect.TypeOf(OrdersResource{}), nil, container.Request),
//	    app.UseService(reflect.TypeOf(HealthResource{}), nil, container.Process),
//	)
//
// # Async Dispatch
//
// Methods tagged for deferred execution run on a worker pool instead
// of the request goroutine; the caller polls or receives feedback at
// a dedicated path:
//
//	application := app.MustNew(
//	    app.UseAsync("/jobs", async.SameContent, nil),
//	    app.WithAsyncPool(8, 256),
//	)
//
// # Identity and Health
//
//	application := app.MustNew(
//	    app.UseIdentity(jwtProvider, map[string]identity.Policy{
//	        "orders.write": identity.RequireRole("admin"),
//	    }),
//	    app.UseHealth("/health",
//	        app.NewChecker("database", db.Ping, 2*time.Second),
//	    ),
//	)
//
// # Lifecycle Hooks
//
//   - OnStart: run before the server starts, sequentially, stopping at
//     the first error.
//   - OnReady: run once the listener is accepting connections,
//     concurrently, best-effort.
//   - OnShutdown: run during graceful shutdown, in reverse registration
//     order (LIFO).
//   - OnStop: run after the server has stopped, best-effort.
//
// Hooks may only be registered before [Application.ListenAndServe] is
// called; registering one afterward panics.
//
//	application.OnStart(func(ctx context.Context) error {
//	    return db.Connect(ctx)
//	})
//	application.OnShutdown(func(ctx context.Context) {
//	    db.Close()
//	})
//
// # Server Configuration and Environment
//
//	application := app.MustNew(
//	    app.WithServerConfig(
//	        app.WithReadTimeout(15*time.Second),
//	        app.WithWriteTimeout(15*time.Second),
//	    ),
//	    app.WithEnv("ORDERS_"), // ORDERS_ADDR, ORDERS_WORKERS overrides
//	)
//
// Configuration is validated during New, so a bad timeout, an empty
// service name, or an identity policy with no provider all surface as
// a returned error (or a panic from MustNew) rather than a runtime
// failure.
//
// # Testing
//
// [Application.Test] and [Application.TestJSON] dispatch a request
// through the built pipeline without opening a socket, for exercising
// resources end to end in unit tests.
package app
