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
	"net/http"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/lmpessoa/goservices/async"
	"github.com/lmpessoa/goservices/codec"
	"github.com/lmpessoa/goservices/container"
	"github.com/lmpessoa/goservices/health"
	"github.com/lmpessoa/goservices/identity"
	"github.com/lmpessoa/goservices/logging"
	"github.com/lmpessoa/goservices/pipeline"
	"github.com/lmpessoa/goservices/route"
	"github.com/lmpessoa/goservices/validation"
)

// Default configuration values.
const (
	DefaultServiceName       = "goservices-app"
	DefaultVersion           = "1.0.0"
	DefaultEnvironment       = "development"
	DefaultReadTimeout       = 10 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultMaxHeaderBytes    = 1 << 20 // 1MB
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultAsyncWorkers      = 4
	DefaultAsyncQueue        = 64

	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// metricsHook and tracingHook are the subset of *obs.Metrics and
// *obs.Tracing that app depends on. app does not import obs directly,
// so that an application that never calls UseMetrics/UseTracing never
// pulls in Prometheus or OpenTelemetry.
type metricsHook interface {
	Handler() http.Handler
	Stage() pipeline.Stage
}

type tracingHook interface {
	Stage() pipeline.Stage
}

// serviceReg is one UseService registration, kept around so New can
// build the container and resolve the route table's area placement
// from the same list.
type serviceReg struct {
	typ      reflect.Type
	provider any
	lifetime container.Lifetime
}

// areaRule is one UseRouteArea registration. A service type claimed by
// an earlier rule is not reconsidered by a later one.
type areaRule struct {
	path            string
	match           func(reflect.Type) bool
	defaultResource reflect.Type
}

// Application is the composition root built by New: it owns the
// container, the route table, and the pipeline assembled from them,
// and exposes the single entry point ListenAndServe.
type Application struct {
	cfg       *config
	container *container.Container
	table     *route.Table
	pipeline  *pipeline.Pipeline
	logger    logging.Logger
	hooks     *Hooks
	readiness *ReadinessManager
	async     *async.Manager
	metrics   metricsHook
	started   atomic.Bool
}

// config holds every setting gathered from functional options before
// New builds the container, route table, and pipeline from it.
type config struct {
	serviceName    string
	serviceVersion string
	environment    string

	server *serverConfig

	logger *logging.SlogLogger

	services []serviceReg
	areas    []areaRule

	responders []pipeline.Stage

	withXML bool

	staticPrefix string
	staticDir    string

	healthPath     string
	healthCheckers []health.Checker

	identityProvider identity.Provider
	identityPolicies map[string]identity.Policy

	asyncFeedbackPath string
	asyncRule         async.Rejection
	asyncMatcher      async.Matcher
	asyncWorkers      int
	asyncQueue        int

	metrics metricsHook
	tracing tracingHook

	listenAddr string // overrides ListenAndServe's addr argument, set by WithEnv
	envErrors  []error
}

// serverConfig holds the net/http.Server tuning knobs.
type serverConfig struct {
	readTimeout       time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	readHeaderTimeout time.Duration
	maxHeaderBytes    int
	shutdownTimeout   time.Duration
}

// Validate checks the server configuration for common misconfigurations.
func (sc *serverConfig) Validate() *ValidationError {
	var errs ValidationError

	if sc.readTimeout <= 0 {
		errs.Add(newTimeoutError("server.readTimeout", sc.readTimeout, "must be positive"))
	}
	if sc.writeTimeout <= 0 {
		errs.Add(newTimeoutError("server.writeTimeout", sc.writeTimeout, "must be positive"))
	}
	if sc.idleTimeout <= 0 {
		errs.Add(newTimeoutError("server.idleTimeout", sc.idleTimeout, "must be positive"))
	}
	if sc.shutdownTimeout < time.Second {
		errs.Add(newTimeoutError("server.shutdownTimeout", sc.shutdownTimeout, "must be at least 1 second"))
	}
	if sc.maxHeaderBytes < 1024 {
		errs.Add(newInvalidValueError("server.maxHeaderBytes", sc.maxHeaderBytes, "must be at least 1KB"))
	}
	if sc.readHeaderTimeout > 0 && sc.readTimeout > 0 && sc.readHeaderTimeout > sc.readTimeout {
		errs.Add(newComparisonError("server.readHeaderTimeout", "server.readTimeout",
			sc.readHeaderTimeout, sc.readTimeout, "must not exceed"))
	}

	if !errs.HasErrors() {
		return nil
	}
	return &errs
}

// validate checks the gathered configuration before New builds
// anything from it, collecting every problem instead of failing on
// the first one.
func (c *config) validate() error {
	var errs ValidationError

	if c.serviceName == "" {
		errs.Add(newEmptyFieldError("serviceName"))
	}
	if c.serviceVersion == "" {
		errs.Add(newEmptyFieldError("serviceVersion"))
	}
	if c.environment != EnvironmentDevelopment && c.environment != EnvironmentProduction {
		errs.Add(newInvalidEnumError("environment", c.environment,
			[]string{EnvironmentDevelopment, EnvironmentProduction}))
	}

	if c.server != nil {
		if serverErrs := c.server.Validate(); serverErrs != nil && serverErrs.HasErrors() {
			errs.Errors = append(errs.Errors, serverErrs.Errors...)
		}
	}

	if c.identityProvider == nil && len(c.identityPolicies) > 0 {
		errs.Add(newInvalidValueError("identity", nil, "policies configured without UseIdentity's provider"))
	}

	for _, err := range c.envErrors {
		errs.Add(newInvalidValueError("env", nil, err.Error()))
	}

	return errs.ToError()
}

// defaultConfig returns a configuration populated with default values.
func defaultConfig() *config {
	return &config{
		serviceName:    DefaultServiceName,
		serviceVersion: DefaultVersion,
		environment:    DefaultEnvironment,
		server: &serverConfig{
			readTimeout:       DefaultReadTimeout,
			writeTimeout:      DefaultWriteTimeout,
			idleTimeout:       DefaultIdleTimeout,
			readHeaderTimeout: DefaultReadHeaderTimeout,
			maxHeaderBytes:    DefaultMaxHeaderBytes,
			shutdownTimeout:   DefaultShutdownTimeout,
		},
		asyncRule:    async.Never,
		asyncWorkers: DefaultAsyncWorkers,
		asyncQueue:   DefaultAsyncQueue,
	}
}

// New builds an Application from opts: it validates the configuration,
// then wires a container from every UseService registration, a route
// table from every registered resource (placed under its claiming
// UseRouteArea, or at the root if none claims it), and finally the
// request pipeline built from those two plus whatever ambient stages
// (health, async, identity, responders, metrics, tracing) were
// configured.
func New(opts ...Option) (*Application, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var logger logging.Logger
	if cfg.logger != nil {
		logger = cfg.logger
	} else {
		logger = logging.New(
			logging.WithServiceName(cfg.serviceName),
			logging.WithServiceVersion(cfg.serviceVersion),
			logging.WithEnvironment(cfg.environment),
		)
	}

	isService := func(t reflect.Type) bool {
		for _, s := range cfg.services {
			if s.typ == t {
				return true
			}
		}
		return false
	}

	table := route.NewTable(isService)
	ctr := container.New()

	var regErrs []error
	for _, s := range cfg.services {
		var d container.Descriptor
		switch p := s.provider.(type) {
		case nil:
			d = container.FromType(s.typ, s.lifetime)
		case container.Descriptor:
			d = p
		default:
			if reflect.TypeOf(p).Kind() == reflect.Func {
				d = container.FromFactory(s.typ, p, s.lifetime)
			} else {
				d = container.FromInstance(s.typ, p)
			}
		}
		if err := ctr.Register(d); err != nil {
			regErrs = append(regErrs, err)
		}
	}
	if len(regErrs) > 0 {
		return nil, &ValidationError{Errors: toConfigErrors(regErrs)}
	}

	claimed := make(map[reflect.Type]bool, len(cfg.services))
	for _, area := range cfg.areas {
		for _, s := range cfg.services {
			if claimed[s.typ] || area.match == nil || !area.match(s.typ) {
				continue
			}
			if _, errs := table.Register(s.typ, area.path); len(errs) > 0 {
				regErrs = append(regErrs, errs...)
			}
			claimed[s.typ] = true
		}
		if area.defaultResource != nil && !claimed[area.defaultResource] {
			if _, errs := table.Register(area.defaultResource, area.path); len(errs) > 0 {
				regErrs = append(regErrs, errs...)
			}
			claimed[area.defaultResource] = true
		}
	}
	for _, s := range cfg.services {
		if claimed[s.typ] {
			continue
		}
		if _, errs := table.Register(s.typ, ""); len(errs) > 0 {
			regErrs = append(regErrs, errs...)
		}
	}
	if len(regErrs) > 0 {
		return nil, &ValidationError{Errors: toConfigErrors(regErrs)}
	}

	validator, err := validation.New()
	if err != nil {
		return nil, err
	}

	codecs := codec.NewRegistry(codec.WithDefaultMediaType(codec.JSON.MediaType()))
	codecs.Register(codec.JSON)
	codecs.Register(codec.Form)
	codecs.Register(codec.Multipart)
	if cfg.withXML {
		codecs.Register(codec.XML)
	}

	readiness := &ReadinessManager{}
	var reporter *health.Reporter
	if cfg.healthPath != "" {
		checkers := append(append([]health.Checker{}, cfg.healthCheckers...), readiness)
		reporter = health.NewReporter(cfg.serviceName, time.Now(), checkers...)
	}

	deferredMethods := collectDeferredMethods(table)

	var mgr *async.Manager
	if cfg.asyncFeedbackPath != "" || len(deferredMethods) > 0 {
		mgr = async.NewManager(cfg.asyncWorkers, cfg.asyncQueue, cfg.asyncFeedbackPath)
	}

	stages := append([]pipeline.Stage{}, cfg.responders...)
	if cfg.metrics != nil {
		stages = append(stages, cfg.metrics.Stage())
	}
	if cfg.tracing != nil {
		stages = append(stages, cfg.tracing.Stage())
	}

	pcfg := pipeline.Config{
		Codecs:    codecs,
		Validator: validator,
		Container: ctr,
		Table:     table,
		Logger:    logger,

		HealthPath:     cfg.healthPath,
		HealthReporter: reporter,

		StaticPrefix: cfg.staticPrefix,
		StaticDir:    cfg.staticDir,

		CustomStages: stages,

		IdentityProvider: cfg.identityProvider,
		IdentityPolicies: cfg.identityPolicies,

		AsyncManager:      mgr,
		AsyncFeedbackPath: cfg.asyncFeedbackPath,
		DefaultRejection:  cfg.asyncRule,
		AsyncMatcher:      cfg.asyncMatcher,
		IsDeferred:        func(methodName string) bool { return deferredMethods[methodName] },
	}

	a := &Application{
		cfg:       cfg,
		container: ctr,
		table:     table,
		pipeline:  pipeline.Build(pcfg),
		logger:    logger,
		hooks:     &Hooks{},
		readiness: readiness,
		async:     mgr,
		metrics:   cfg.metrics,
	}

	return a, nil
}

// MustNew is like New but panics if the configuration is invalid.
func MustNew(opts ...Option) *Application {
	a, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// collectDeferredMethods builds the set of resource method names
// marked deferred (via the `_` sentinel field's async:"true" tag), the
// predicate the async stage consults.
func collectDeferredMethods(table *route.Table) map[string]bool {
	out := make(map[string]bool)
	for _, e := range table.Entries() {
		if e.Deferred {
			out[e.MethodName] = true
		}
	}
	return out
}

func toConfigErrors(errs []error) []*ConfigError {
	out := make([]*ConfigError, 0, len(errs))
	for _, err := range errs {
		out = append(out, newInvalidValueError("routing", nil, err.Error()))
	}
	return out
}

// Readiness returns the application's readiness gate manager, for
// runtime registration of gates that a [health.Checker] passed to
// [UseHealth] cannot express (component-owned readiness state
// registered or unregistered while the application runs).
func (a *Application) Readiness() *ReadinessManager {
	return a.readiness
}

// Logger returns the logger the pipeline and lifecycle hooks log
// through.
func (a *Application) Logger() logging.Logger {
	return a.logger
}

// Routes returns the application's registered routes, in specificity
// order, for diagnostics such as the startup banner.
func (a *Application) Routes() []route.Entry {
	return a.table.Entries()
}
