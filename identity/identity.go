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

// Package identity defines the bearer-token identity boundary the
// pipeline's identity stage validates against: a token manager
// collaborator supplied by the application, and the [Identity] the
// engine attaches to the request scope once a token checks out.
package identity

import "net/http"

// Identity is the authenticated principal attached to a request's
// scope by the identity stage.
type Identity interface {
	// Subject is the principal's unique identifier (user id, service
	// account name, etc).
	Subject() string
	// Roles lists the principal's assigned roles.
	Roles() []string
	// Claim returns the raw value of a token claim, if present.
	Claim(name string) (any, bool)
}

// Provider validates a bearer token extracted from an incoming
// request and produces the Identity it represents. Token issuance
// itself is out of scope — Provider only verifies tokens an external
// issuer already handed out.
type Provider interface {
	Authenticate(token string) (Identity, error)
}

// Policy decides whether an already-authenticated Identity may
// proceed to a matched endpoint. Policies are looked up by name from
// the map an application passes to its identity configuration; an
// endpoint without a named policy admits a request that carries no
// token, and rejects only a token that is present and invalid.
type Policy func(Identity, *http.Request) bool

// RequireRole returns a Policy satisfied by any Identity holding role.
func RequireRole(role string) Policy {
	return func(id Identity, _ *http.Request) bool {
		for _, r := range id.Roles() {
			if r == role {
				return true
			}
		}
		return false
	}
}
