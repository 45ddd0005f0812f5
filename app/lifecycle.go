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
	"fmt"
	"sync"
)

// Hooks manages application lifecycle hooks.
type Hooks struct {
	onStart    []func(context.Context) error // sequential, stops on first error
	onReady    []func()                      // fire-and-forget
	onShutdown []func(context.Context)       // LIFO order
	onStop     []func()                      // best effort
	mu         sync.Mutex
}

// OnStart registers a hook that runs before the server starts
// listening. Hooks run sequentially; if any returns an error, startup
// is aborted.
func (a *Application) OnStart(fn func(context.Context) error) {
	if a.started.Load() {
		panic("cannot register hooks after the application has started")
	}
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStart = append(a.hooks.onStart, fn)
}

// OnReady registers a hook that runs after the server starts
// listening. Hooks run asynchronously; a panic is recovered and
// logged rather than crashing the process.
func (a *Application) OnReady(fn func()) {
	if a.started.Load() {
		panic("cannot register hooks after the application has started")
	}
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onReady = append(a.hooks.onReady, fn)
}

// OnShutdown registers a hook that runs during graceful shutdown, in
// reverse registration order, bound by the shutdown timeout.
func (a *Application) OnShutdown(fn func(context.Context)) {
	if a.started.Load() {
		panic("cannot register hooks after the application has started")
	}
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onShutdown = append(a.hooks.onShutdown, fn)
}

// OnStop registers a hook that runs after the server has stopped
// accepting connections, best-effort (a panic is recovered and
// logged).
func (a *Application) OnStop(fn func()) {
	if a.started.Load() {
		panic("cannot register hooks after the application has started")
	}
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStop = append(a.hooks.onStop, fn)
}

func (a *Application) executeStartHooks(ctx context.Context) error {
	a.hooks.mu.Lock()
	hooks := make([]func(context.Context) error, len(a.hooks.onStart))
	copy(hooks, a.hooks.onStart)
	a.hooks.mu.Unlock()

	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("OnStart hook %d failed: %w", i, err)
		}
	}
	return nil
}

func (a *Application) executeReadyHooks() {
	a.hooks.mu.Lock()
	hooks := make([]func(), len(a.hooks.onReady))
	copy(hooks, a.hooks.onReady)
	a.hooks.mu.Unlock()

	for _, hook := range hooks {
		go func(hook func()) {
			defer func() {
				if r := recover(); r != nil {
					a.logger.Error("OnReady hook panic", "error", r)
				}
			}()
			hook()
		}(hook)
	}
}

func (a *Application) executeShutdownHooks(ctx context.Context) {
	a.hooks.mu.Lock()
	hooks := make([]func(context.Context), len(a.hooks.onShutdown))
	copy(hooks, a.hooks.onShutdown)
	a.hooks.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i](ctx)
	}
}

func (a *Application) executeStopHooks() {
	a.hooks.mu.Lock()
	hooks := make([]func(), len(a.hooks.onStop))
	copy(hooks, a.hooks.onStop)
	a.hooks.mu.Unlock()

	for _, hook := range hooks {
		func(hook func()) {
			defer func() {
				if r := recover(); r != nil {
					a.logger.Warn("OnStop hook panic", "error", r)
				}
			}()
			hook()
		}(hook)
	}
}
