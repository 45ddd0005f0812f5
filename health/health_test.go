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

package health_test

import (
	"context"
	"testing"
	"time"

	"github.com/lmpessoa/goservices/health"
	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	name   string
	status health.Status
}

func (f fakeChecker) Name() string                         { return f.name }
func (f fakeChecker) Check(ctx context.Context) health.Status { return f.status }

func TestReporter_AllUp(t *testing.T) {
	r := health.NewReporter("orders-api", time.Now(), fakeChecker{"db", health.StatusUp})
	report := r.Report(context.Background())
	assert.Equal(t, health.StatusUp, report.Status)
	assert.Equal(t, health.StatusUp, report.Services["db"])
}

func TestReporter_AnyDownMakesOverallDown(t *testing.T) {
	r := health.NewReporter("orders-api", time.Now(),
		fakeChecker{"db", health.StatusUp},
		fakeChecker{"cache", health.StatusDown},
	)
	report := r.Report(context.Background())
	assert.Equal(t, health.StatusDown, report.Status)
}

func TestReporter_DegradedWithoutDown(t *testing.T) {
	r := health.NewReporter("orders-api", time.Now(),
		fakeChecker{"db", health.StatusUp},
		fakeChecker{"cache", health.StatusDegraded},
	)
	report := r.Report(context.Background())
	assert.Equal(t, health.StatusDegraded, report.Status)
}

func TestReporter_UptimeReported(t *testing.T) {
	r := health.NewReporter("orders-api", time.Now().Add(-time.Minute))
	report := r.Report(context.Background())
	assert.NotEmpty(t, report.Uptime)
}
