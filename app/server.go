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
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// ListenAndServe starts the HTTP server and blocks until it shuts
// down, either because of a server error or because the process
// receives SIGINT/SIGTERM. On signal, it drains in-flight requests
// within the configured shutdown timeout before returning.
func (a *Application) ListenAndServe(addr string) error {
	if a.cfg.listenAddr != "" {
		addr = a.cfg.listenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.executeStartHooks(ctx); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	a.started.Store(true)
	a.printStartupBanner(addr)

	mux := http.NewServeMux()
	mux.Handle("/", a.pipeline)
	if a.metrics != nil {
		mux.Handle("/metrics", a.metrics.Handler())
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       a.cfg.server.readTimeout,
		WriteTimeout:      a.cfg.server.writeTimeout,
		IdleTimeout:       a.cfg.server.idleTimeout,
		ReadHeaderTimeout: a.cfg.server.readHeaderTimeout,
		MaxHeaderBytes:    a.cfg.server.maxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	serverReady := make(chan struct{})
	go func() {
		close(serverReady)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	<-serverReady
	a.executeReadyHooks()
	a.logger.Info("server listening", "addr", addr, "environment", a.cfg.environment)

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		a.logger.Info("server shutting down", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.server.shutdownTimeout)
	defer cancel()

	a.executeShutdownHooks(shutdownCtx)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.executeStopHooks()
	a.logger.Info("server exited")

	return nil
}
