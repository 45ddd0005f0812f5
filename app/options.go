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

package app

import (
	"reflect"
	"time"

	"github.com/lmpessoa/goservices/async"
	"github.com/lmpessoa/goservices/container"
	"github.com/lmpessoa/goservices/health"
	"github.com/lmpessoa/goservices/identity"
	"github.com/lmpessoa/goservices/logging"
	"github.com/lmpessoa/goservices/pipeline"
)

// Option configures an Application during [New]/[MustNew].
type Option func(*config)

// WithServiceName sets the service name used in the logger's metadata
// and the startup banner.
func WithServiceName(name string) Option {
	return func(c *config) { c.serviceName = name }
}

// WithServiceVersion sets the service version used in the logger's
// metadata and the startup banner.
func WithServiceVersion(version string) Option {
	return func(c *config) { c.serviceVersion = version }
}

// WithEnvironment sets the environment ("development" or
// "production").
func WithEnvironment(env string) Option {
	return func(c *config) { c.environment = env }
}

// WithLogger overrides the default logger every pipeline stage and
// lifecycle hook logs through.
func WithLogger(logger *logging.SlogLogger) Option {
	return func(c *config) { c.logger = logger }
}

// UseService registers t as a resource or dependency the container
// resolves by type. provider is either nil (t is constructed by its
// zero value the first time it is needed), a factory function whose
// return type is t (or t's interface), or a concrete instance of t.
// When t's methods follow the Get/Post/Put/Patch/Delete/Options
// naming convention, New also derives route table entries from it,
// placed under whichever [UseRouteArea] claims t or at the root
// otherwise.
func UseService(t reflect.Type, provider any, lifetime container.Lifetime) Option {
	return func(c *config) {
		c.services = append(c.services, serviceReg{typ: t, provider: provider, lifetime: lifetime})
	}
}

// UseResponder installs an additional pipeline stage, run between the
// built-in health/static/favicon stages and the identity/async stages
// that precede the terminal invoke stage.
func UseResponder(stage pipeline.Stage) Option {
	return func(c *config) {
		c.responders = append(c.responders, stage)
	}
}

// UseRouteArea groups every UseService-registered resource type for
// which match returns true under path, so their route templates are
// all prefixed with it. defaultResource, if non-nil, is registered
// under path unconditionally, whether or not match would have claimed
// it — useful for an area's catch-all or index resource. Rules are
// applied in the order UseRouteArea is called; a type already claimed
// by an earlier rule is not reconsidered by a later one.
func UseRouteArea(path string, match func(reflect.Type) bool, defaultResource reflect.Type) Option {
	return func(c *config) {
		c.areas = append(c.areas, areaRule{path: path, match: match, defaultResource: defaultResource})
	}
}

// UseAsync enables the async stage: requests to a method marked
// deferred (and any direct poll/cancel of feedbackPath) are answered
// through it. rule picks the default deduplication strategy and
// matcher picks the queued job, if any, a fresh request should join
// instead of starting a new one.
func UseAsync(feedbackPath string, rule async.Rejection, matcher async.Matcher) Option {
	return func(c *config) {
		c.asyncFeedbackPath = feedbackPath
		c.asyncRule = rule
		c.asyncMatcher = matcher
	}
}

// WithAsyncPool overrides the async manager's worker count and queue
// depth; New defaults to DefaultAsyncWorkers/DefaultAsyncQueue.
func WithAsyncPool(workers, queue int) Option {
	return func(c *config) {
		c.asyncWorkers = workers
		c.asyncQueue = queue
	}
}

// UseStaticFiles serves the contents of dir under prefix.
func UseStaticFiles(prefix, dir string) Option {
	return func(c *config) {
		c.staticPrefix = prefix
		c.staticDir = dir
	}
}

// UseHealth enables the health stage at path, aggregating the given
// checkers' statuses into the report served there.
func UseHealth(path string, checkers ...health.Checker) Option {
	return func(c *config) {
		c.healthPath = path
		c.healthCheckers = append(c.healthCheckers, checkers...)
	}
}

// UseIdentity enables the identity stage: provider authenticates the
// bearer token on any request matching a route named in policies, and
// the matching policy decides whether the authenticated identity may
// proceed.
func UseIdentity(provider identity.Provider, policies map[string]identity.Policy) Option {
	return func(c *config) {
		c.identityProvider = provider
		c.identityPolicies = policies
	}
}

// WithXML registers the XML codec alongside the always-available
// JSON, form, and multipart codecs, so it takes part in content
// negotiation.
func WithXML(enabled bool) Option {
	return func(c *config) { c.withXML = enabled }
}

// UseMetrics installs hook's pipeline.Stage among the custom stages
// and mounts its handler at ListenAndServe time (see
// Application.ListenAndServe). hook is an *obs.Metrics; app does not
// import obs so that an application that never calls UseMetrics never
// pulls in Prometheus.
func UseMetrics(hook metricsHook) Option {
	return func(c *config) { c.metrics = hook }
}

// UseTracing installs hook's pipeline.Stage, wrapping every request in
// a span. hook is an *obs.Tracing; app does not import obs so that an
// application that never calls UseTracing never pulls in
// OpenTelemetry.
func UseTracing(hook tracingHook) Option {
	return func(c *config) { c.tracing = hook }
}

// ServerOption configures the underlying net/http.Server.
type ServerOption func(*serverConfig)

// WithReadTimeout sets the server's read timeout.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) { sc.readTimeout = d }
}

// WithWriteTimeout sets the server's write timeout.
func WithWriteTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) { sc.writeTimeout = d }
}

// WithIdleTimeout sets the server's keep-alive idle timeout.
func WithIdleTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) { sc.idleTimeout = d }
}

// WithReadHeaderTimeout sets the server's header-read timeout.
func WithReadHeaderTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) { sc.readHeaderTimeout = d }
}

// WithMaxHeaderBytes sets the server's maximum header size.
func WithMaxHeaderBytes(n int) ServerOption {
	return func(sc *serverConfig) { sc.maxHeaderBytes = n }
}

// WithShutdownTimeout bounds how long ListenAndServe waits for
// in-flight requests to finish during graceful shutdown.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(sc *serverConfig) { sc.shutdownTimeout = d }
}

// WithServerConfig applies one or more ServerOptions to the
// application's server configuration.
func WithServerConfig(opts ...ServerOption) Option {
	return func(c *config) {
		for _, opt := range opts {
			opt(c.server)
		}
	}
}
