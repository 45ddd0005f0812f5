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

// Package pipeline composes the fixed chain of stages every request
// runs through: serializer (outermost), health, static files, favicon,
// user-registered stages, identity, async, and the terminal invoke
// stage.
package pipeline

import (
	"io"
	"net/http"

	"github.com/lmpessoa/goservices/async"
	"github.com/lmpessoa/goservices/codec"
	"github.com/lmpessoa/goservices/container"
	"github.com/lmpessoa/goservices/health"
	"github.com/lmpessoa/goservices/identity"
	"github.com/lmpessoa/goservices/logging"
	"github.com/lmpessoa/goservices/response"
	"github.com/lmpessoa/goservices/route"
	"github.com/lmpessoa/goservices/validation"
)

// Result is what a stage produces: either the terminal invoke stage's
// raw typed value (wrapped by response.OK-style helpers further up the
// chain) or a fully shaped response.Response.
type Result = response.Response

// Next invokes the remainder of the pipeline.
type Next func(ctx *Context) Result

// Stage is one link of the pipeline. It may call next zero times (to
// short-circuit with its own Result) or exactly once.
type Stage interface {
	Invoke(ctx *Context, next Next) Result
}

// StageFunc adapts a plain function to Stage.
type StageFunc func(ctx *Context, next Next) Result

func (f StageFunc) Invoke(ctx *Context, next Next) Result { return f(ctx, next) }

// Config supplies every collaborator the built-in stages need. Fields
// left at their zero value disable the corresponding optional stage.
type Config struct {
	Codecs    *codec.Registry
	Validator *validation.Validator
	Container *container.Container
	Table     *route.Table
	Logger    logging.Logger

	HealthPath     string
	HealthReporter *health.Reporter

	StaticPrefix string
	StaticDir    string

	FaviconBytes []byte

	CustomStages []Stage

	IdentityProvider Provider
	IdentityPolicies map[string]identity.Policy

	AsyncManager      *async.Manager
	AsyncFeedbackPath string
	DefaultRejection  async.Rejection
	AsyncMatcher      async.Matcher
	IsDeferred        func(methodName string) bool
}

// Provider is the subset of identity.Provider the identity stage
// calls; declared here to avoid a hard dependency loop and to let
// Config be constructed without importing identity when identity is
// not configured.
type Provider = identity.Provider

// Pipeline is the built, ready-to-serve stage chain.
type Pipeline struct {
	chain Next
	cfg   Config
}

// Build composes the fixed stage order from cfg.
func Build(cfg Config) *Pipeline {
	terminal := Next(func(ctx *Context) Result {
		return invokeStage(ctx, cfg)
	})

	chain := withAsync(terminal, cfg)
	chain = withIdentity(chain, cfg)
	chain = withCustomStages(chain, cfg)
	chain = withFavicon(chain, cfg)
	chain = withStatic(chain, cfg)
	chain = withHealth(chain, cfg)
	chain = withSerializer(chain, cfg)

	return &Pipeline{chain: chain, cfg: cfg}
}

func withCustomStages(next Next, cfg Config) Next {
	for i := len(cfg.CustomStages) - 1; i >= 0; i-- {
		stage := cfg.CustomStages[i]
		n := next
		next = func(ctx *Context) Result { return stage.Invoke(ctx, n) }
	}
	return next
}

// ServeHTTP runs req through the built pipeline and writes the
// resulting Response to w.
func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := acquireContext()
	defer releaseContext(ctx)

	ctx.Context = container.WithRequestScope(r.Context())
	ctx.Request = r
	ctx.Response = w
	ctx.Logger = p.cfg.Logger

	if p.cfg.Table != nil {
		ctx.Match = p.cfg.Table.Match(&route.Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  map[string][]string(r.URL.Query()),
		})
	}

	result := p.chain(ctx)
	writeResult(w, result)
}

func writeResult(w http.ResponseWriter, result Result) {
	for k, vs := range result.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if result.Status == 0 {
		result.Status = http.StatusOK
	}
	w.WriteHeader(result.Status)
	if result.Body != nil {
		_, _ = io.Copy(w, result.Body)
	}
}
