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

package async_test

import (
	"context"
	"testing"
	"time"

	"github.com/lmpessoa/goservices/async"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForTerminal(t *testing.T, mgr *async.Manager, id uuid.UUID) *async.Job {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		job, ok := mgr.Get(id)
		require.True(t, ok)
		if job.State == async.Done || job.State == async.Failed || job.State == async.Cancelled {
			return job
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("job did not reach a terminal state in time")
	return nil
}

func TestSubmit_RunsJobToCompletion(t *testing.T) {
	mgr := async.NewManager(2, 10, "")
	fp, err := async.Fingerprint(async.Never, "POST", "/reports", nil, "")
	require.NoError(t, err)

	job, isNew, err := mgr.Submit(context.Background(), "POST", "/reports", fp, async.Never, nil, func(ctx context.Context) (any, error) {
		return "done", nil
	})
	require.NoError(t, err)
	assert.True(t, isNew)

	final := waitForTerminal(t, mgr, job.ID)
	assert.Equal(t, async.Done, final.State)
	assert.Equal(t, "done", final.Result)
}

func TestSubmit_SamePathDeduplicates(t *testing.T) {
	mgr := async.NewManager(1, 10, "")
	started := make(chan struct{})
	release := make(chan struct{})

	fp, _ := async.Fingerprint(async.SamePath, "POST", "/reports", nil, "")

	job1, isNew1, err := mgr.Submit(context.Background(), "POST", "/reports", fp, async.SamePath, nil, func(ctx context.Context) (any, error) {
		close(started)
		<-release
		return "first", nil
	})
	require.NoError(t, err)
	assert.True(t, isNew1)
	<-started

	job2, isNew2, err := mgr.Submit(context.Background(), "POST", "/reports", fp, async.SamePath, nil, func(ctx context.Context) (any, error) {
		return "second", nil
	})
	require.NoError(t, err)
	assert.False(t, isNew2)
	assert.Equal(t, job1.ID, job2.ID)

	close(release)
	waitForTerminal(t, mgr, job1.ID)
}

func TestFingerprint_SameIdentityRequiresIdentity(t *testing.T) {
	_, err := async.Fingerprint(async.SameIdentity, "GET", "/x", nil, "")
	assert.ErrorIs(t, err, async.ErrUnauthorized)
}

func TestCancel_RunningJob(t *testing.T) {
	mgr := async.NewManager(1, 10, "")
	started := make(chan struct{})
	blocked := make(chan struct{})

	fp, _ := async.Fingerprint(async.Never, "POST", "/x", nil, "")
	job, _, err := mgr.Submit(context.Background(), "POST", "/x", fp, async.Never, nil, func(ctx context.Context) (any, error) {
		close(started)
		<-ctx.Done()
		close(blocked)
		return nil, ctx.Err()
	})
	require.NoError(t, err)
	<-started

	require.NoError(t, mgr.Cancel(job.ID))
	<-blocked

	final := waitForTerminal(t, mgr, job.ID)
	assert.Equal(t, async.Cancelled, final.State)
}

func TestCancel_TerminalJobFails(t *testing.T) {
	mgr := async.NewManager(1, 10, "")
	fp, _ := async.Fingerprint(async.Never, "GET", "/x", nil, "")
	job, _, err := mgr.Submit(context.Background(), "GET", "/x", fp, async.Never, nil, func(ctx context.Context) (any, error) {
		return nil, nil
	})
	require.NoError(t, err)
	waitForTerminal(t, mgr, job.ID)

	assert.Error(t, mgr.Cancel(job.ID))
}

func TestGet_UnknownJob(t *testing.T) {
	mgr := async.NewManager(1, 10, "")
	_, ok := mgr.Get(uuid.New())
	assert.False(t, ok)
}

func TestSubmit_ReturnsImmediatelyWhenWorkersAreSaturated(t *testing.T) {
	mgr := async.NewManager(1, 10, "")
	started := make(chan struct{})
	release := make(chan struct{})

	fp1, _ := async.Fingerprint(async.Never, "POST", "/a", nil, "")
	_, _, err := mgr.Submit(context.Background(), "POST", "/a", fp1, async.Never, nil, func(ctx context.Context) (any, error) {
		close(started)
		<-release
		return "first", nil
	})
	require.NoError(t, err)
	<-started

	fp2, _ := async.Fingerprint(async.Never, "POST", "/b", nil, "")
	done := make(chan struct{})
	go func() {
		_, _, err := mgr.Submit(context.Background(), "POST", "/b", fp2, async.Never, nil, func(ctx context.Context) (any, error) {
			return "second", nil
		})
		require.NoError(t, err)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked waiting for a worker slot instead of returning immediately")
	}

	close(release)
}

func TestSubmit_RejectsWhenQueueIsFull(t *testing.T) {
	mgr := async.NewManager(1, 1, "")
	started := make(chan struct{})
	release := make(chan struct{})

	fp1, _ := async.Fingerprint(async.Never, "POST", "/a", nil, "")
	job1, _, err := mgr.Submit(context.Background(), "POST", "/a", fp1, async.Never, nil, func(ctx context.Context) (any, error) {
		close(started)
		<-release
		return "first", nil
	})
	require.NoError(t, err)
	<-started

	fp2, _ := async.Fingerprint(async.Never, "POST", "/b", nil, "")
	_, _, err = mgr.Submit(context.Background(), "POST", "/b", fp2, async.Never, nil, func(ctx context.Context) (any, error) {
		return "second", nil
	})
	require.NoError(t, err)

	fp3, _ := async.Fingerprint(async.Never, "POST", "/c", nil, "")
	_, _, err = mgr.Submit(context.Background(), "POST", "/c", fp3, async.Never, nil, func(ctx context.Context) (any, error) {
		return "third", nil
	})
	assert.ErrorIs(t, err, async.ErrQueueFull)

	close(release)
	waitForTerminal(t, mgr, job1.ID)
}
