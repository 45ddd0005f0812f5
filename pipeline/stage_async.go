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

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lmpessoa/goservices/async"
	"github.com/lmpessoa/goservices/herr"
	"github.com/lmpessoa/goservices/response"
)

// withAsync intercepts two kinds of request: a poll or cancellation
// against the feedback path, and a fresh request to a method the
// application declared deferred (cfg.IsDeferred). Everything else
// passes straight through to the terminal invoke stage.
func withAsync(next Next, cfg Config) Next {
	if cfg.AsyncManager == nil {
		return next
	}
	return func(ctx *Context) Result {
		if handled, result := serveFeedbackPath(ctx, cfg); handled {
			return result
		}

		entry := ctx.Match.Entry
		if entry == nil || cfg.IsDeferred == nil || !cfg.IsDeferred(entry.MethodName) {
			return next(ctx)
		}

		return submitDeferred(ctx, cfg)
	}
}

func submitDeferred(ctx *Context, cfg Config) Result {
	enc := negotiateEncoder(ctx, cfg)

	var content []byte
	if ctx.Request.Body != nil {
		content, _ = io.ReadAll(ctx.Request.Body)
		ctx.Request.Body = io.NopCloser(bytes.NewReader(content))
	}

	var identityKey string
	if ctx.Identity != nil {
		identityKey = ctx.Identity.Subject()
	}

	rule := cfg.DefaultRejection
	if cfg.AsyncMatcher != nil {
		rule = async.Custom
	}

	fp, err := async.Fingerprint(rule, ctx.Request.Method, ctx.Request.URL.Path, content, identityKey)
	if err != nil {
		return ctx.fail(herr.New(herr.Unauthorized, err.Error(), err), enc)
	}

	inner := *ctx

	job, _, err := cfg.AsyncManager.Submit(ctx.Context, ctx.Request.Method, ctx.Request.URL.Path, fp, rule, cfg.AsyncMatcher, func(jobCtx context.Context) (any, error) {
		jobRequest := inner
		jobRequest.Context = jobCtx
		result := invokeStage(&jobRequest, cfg)
		if v, ok := response.Value(result.Body); ok {
			return v, nil
		}
		return nil, mapInvokeError(herr.New(herr.Internal, "deferred method produced no value", nil))
	})
	if err != nil {
		if errors.Is(err, async.ErrQueueFull) {
			return ctx.fail(herr.New(herr.ServiceUnavailable, err.Error(), err), enc)
		}
		return ctx.fail(herr.New(herr.TooManyRequests, err.Error(), err), enc)
	}

	path := feedbackPath(cfg)
	h := http.Header{}
	h.Set("Location", path+job.ID.String())
	return Result{Status: http.StatusAccepted, Header: h}
}

func feedbackPath(cfg Config) string {
	if cfg.AsyncFeedbackPath != "" {
		return cfg.AsyncFeedbackPath
	}
	return cfg.AsyncManager.FeedbackPath()
}

// serveFeedbackPath answers GET (poll) and DELETE (cancel) requests
// under the async feedback path, and answers any other method on a
// job path with 405. It reports handled=false for a path outside the
// prefix, or one under the prefix whose suffix is not a valid job id.
func serveFeedbackPath(ctx *Context, cfg Config) (handled bool, result Result) {
	prefix := feedbackPath(cfg)
	path := ctx.Request.URL.Path
	if !strings.HasPrefix(path, prefix) {
		return false, Result{}
	}

	id, err := uuid.Parse(strings.TrimPrefix(path, prefix))
	if err != nil {
		return false, Result{}
	}

	enc := negotiateEncoder(ctx, cfg)

	switch ctx.Request.Method {
	case http.MethodGet:
		job, ok := cfg.AsyncManager.Get(id)
		if !ok {
			return true, ctx.fail(herr.New(herr.NotFound, "no such job", nil), enc)
		}
		if isTerminalState(job.State) {
			defer cfg.AsyncManager.Evict(id)
		}
		return true, jobStatusResult(ctx, cfg, job)

	case http.MethodDelete:
		if err := cfg.AsyncManager.Cancel(id); err != nil {
			return true, ctx.fail(herr.New(herr.BadRequest, err.Error(), err), enc)
		}
		return true, response.NoContent()

	default:
		return true, ctx.fail(herr.New(herr.MethodNotAllowed, "method not allowed", nil), enc)
	}
}

func jobStatusResult(ctx *Context, cfg Config, job *async.Job) Result {
	switch job.State {
	case async.Done:
		return response.OK(job.Result)
	case async.Failed:
		return ctx.fail(mapInvokeError(job.Err), negotiateEncoder(ctx, cfg))
	case async.Cancelled:
		return ctx.fail(herr.New(herr.NotFound, "job was cancelled", nil), negotiateEncoder(ctx, cfg))
	default: // Queued, Running
		h := http.Header{}
		h.Set("Location", ctx.Request.URL.Path)
		return Result{Status: http.StatusAccepted, Header: h}
	}
}

func isTerminalState(s async.State) bool {
	return s == async.Done || s == async.Cancelled || s == async.Failed
}
