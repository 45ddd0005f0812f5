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
	"context"
	"time"

	"github.com/lmpessoa/goservices/health"
)

// CheckFunc probes one dependency (a database ping, a downstream
// health call) and returns an error if it is unhealthy.
type CheckFunc func(ctx context.Context) error

// funcChecker adapts a CheckFunc to health.Checker, applying timeout
// as an upper bound so one slow dependency cannot stall the report.
type funcChecker struct {
	name    string
	fn      CheckFunc
	timeout time.Duration
}

// NewChecker builds a [health.Checker] from a plain function, for
// passing to [UseHealth] alongside any hand-written health.Checker
// implementation. If timeout is zero, it defaults to one second.
func NewChecker(name string, fn CheckFunc, timeout time.Duration) health.Checker {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &funcChecker{name: name, fn: fn, timeout: timeout}
}

func (c *funcChecker) Name() string { return c.name }

func (c *funcChecker) Check(ctx context.Context) health.Status {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.fn(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			return health.StatusDown
		}
		return health.StatusUp
	case <-ctx.Done():
		return health.StatusDown
	}
}
