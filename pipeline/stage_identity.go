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
	"net/http"
	"strings"

	"github.com/lmpessoa/goservices/herr"
	"github.com/lmpessoa/goservices/identity"
	"github.com/lmpessoa/goservices/response"
)

// withIdentity authenticates a bearer token, if present, and attaches
// the resulting identity.Identity to ctx. An endpoint is only required
// to carry a valid token when it has a named entry in
// cfg.IdentityPolicies; that policy is then evaluated against the
// authenticated identity.
func withIdentity(next Next, cfg Config) Next {
	if cfg.IdentityProvider == nil {
		return next
	}
	return func(ctx *Context) Result {
		token := bearerToken(ctx.Request)
		policy, hasPolicy := lookupPolicy(ctx, cfg)

		if token == "" {
			if hasPolicy {
				return ctx.fail(herr.New(herr.Unauthorized, "missing bearer token", nil), negotiateEncoder(ctx, cfg))
			}
			return next(ctx)
		}

		id, err := cfg.IdentityProvider.Authenticate(token)
		if err != nil {
			return ctx.fail(herr.New(herr.Unauthorized, "invalid credentials", err), negotiateEncoder(ctx, cfg))
		}
		ctx.Identity = id

		if hasPolicy && !policy(id, ctx.Request) {
			return ctx.fail(herr.New(herr.Forbidden, "not permitted", nil), negotiateEncoder(ctx, cfg))
		}

		return next(ctx)
	}
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, prefix) {
		return strings.TrimPrefix(h, prefix)
	}
	return ""
}

func lookupPolicy(ctx *Context, cfg Config) (identity.Policy, bool) {
	if ctx.Match.Entry == nil {
		return nil, false
	}
	policy, ok := cfg.IdentityPolicies[ctx.Match.Entry.Name]
	return policy, ok
}
