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
	"fmt"
	"os"
	"strconv"
)

// Environment variable suffixes WithEnv reads, appended to the given
// prefix.
const (
	EnvAddr         = "ADDR"    // process-start listen address override, e.g. ":8080"
	EnvAsyncWorkers = "WORKERS" // async manager worker-pool size override
)

// WithEnv reads process-start overrides for the listen address and
// the async worker-pool size from <prefix>ADDR and <prefix>WORKERS.
// Both are optional; a variable that is unset or empty is ignored. A
// set but unparsable <prefix>WORKERS is recorded as a configuration
// error surfaced by New.
//
// Example:
//
//	export ORDERS_ADDR=:9090
//	export ORDERS_WORKERS=8
//
//	app.MustNew(app.WithEnv("ORDERS_"))
func WithEnv(prefix string) Option {
	return func(c *config) {
		if addr := os.Getenv(prefix + EnvAddr); addr != "" {
			c.listenAddr = addr
		}
		if workers := os.Getenv(prefix + EnvAsyncWorkers); workers != "" {
			n, err := strconv.Atoi(workers)
			if err != nil {
				c.envErrors = append(c.envErrors, fmt.Errorf("invalid environment variable %s%s: %w", prefix, EnvAsyncWorkers, err))
				return
			}
			c.asyncWorkers = n
		}
	}
}
