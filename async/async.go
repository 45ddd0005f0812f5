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

// Package async implements deferred request execution: a bounded
// worker pool, fingerprint-based deduplication of in-flight jobs, and
// status polling/cancellation under a feedback path.
package async

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Rejection selects how a new request is matched against already
// queued or running jobs.
type Rejection int

const (
	// Never always creates a new job; requests are never deduplicated.
	Never Rejection = iota
	// SamePath deduplicates on (verb, path).
	SamePath
	// SameContent deduplicates on (verb, path, content hash).
	SameContent
	// SameIdentity deduplicates on (verb, path, identity key); a
	// request without an identity is rejected with ErrUnauthorized.
	SameIdentity
	// SameRequest deduplicates on the union of SameContent and
	// SameIdentity.
	SameRequest
	// Custom defers the decision to a user-supplied Matcher.
	Custom
)

// ErrUnauthorized is returned by Submit when rule is SameIdentity or
// SameRequest and no identity key was supplied.
var ErrUnauthorized = errors.New("async: identity required for this rejection rule")

// ErrTooManyRequests is returned by Submit when a Custom matcher
// rejects the incoming request outright.
var ErrTooManyRequests = errors.New("async: rejected by custom matcher")

// ErrQueueFull is returned by Submit when the manager's bounded queue
// already holds as many pending jobs as its queue limit allows.
var ErrQueueFull = errors.New("async: queue is full")

// Matcher decides, for a Custom rejection rule, whether newFingerprint
// should be treated as a duplicate of one of queued (the fingerprints
// of jobs still queued or running). It returns the id of the job to
// reuse, uuid.Nil to force a new job, or ErrTooManyRequests to reject
// the request outright.
type Matcher func(newFingerprint string, queued []Job) (uuid.UUID, error)

// State is the lifecycle stage of a Job.
type State int

const (
	Queued State = iota
	Running
	Done
	Cancelled
	Failed
)

// Job is a deferred unit of work tracked by a Manager.
type Job struct {
	ID          uuid.UUID
	State       State
	CreatedAt   time.Time
	Verb        string
	Path        string
	Fingerprint string

	Result any
	Err    error

	cancel context.CancelFunc
}

// Manager runs deferred jobs on a bounded worker pool and deduplicates
// concurrent submissions according to each submission's Rejection
// rule.
type Manager struct {
	feedbackPath string
	sem          *semaphore.Weighted
	queueLimit   int

	mu   sync.Mutex
	jobs map[uuid.UUID]*Job
}

// NewManager creates a Manager with workers concurrent goroutines and
// a bounded queue of queue pending jobs. feedbackPath is the URL
// prefix jobs are addressable under (default "/feedback/" if empty).
func NewManager(workers, queue int, feedbackPath string) *Manager {
	if feedbackPath == "" {
		feedbackPath = "/feedback/"
	}
	return &Manager{
		feedbackPath: feedbackPath,
		sem:          semaphore.NewWeighted(int64(workers)),
		queueLimit:   queue,
		jobs:         make(map[uuid.UUID]*Job),
	}
}

// FeedbackPath returns the URL prefix under which jobs are addressable.
func (m *Manager) FeedbackPath() string { return m.feedbackPath }

// Fingerprint computes the dedup key for rule over (verb, path,
// content, identityKey), per spec: SamePath ignores content/identity,
// SameContent adds a content hash, SameIdentity adds the identity key
// and requires one, SameRequest combines both.
func Fingerprint(rule Rejection, verb, path string, content []byte, identityKey string) (string, error) {
	switch rule {
	case Never:
		return uuid.NewString(), nil
	case SamePath:
		return hashParts(verb, path), nil
	case SameContent:
		return hashParts(verb, path, contentHash(content)), nil
	case SameIdentity:
		if identityKey == "" {
			return "", ErrUnauthorized
		}
		return hashParts(verb, path, identityKey), nil
	case SameRequest:
		if identityKey == "" {
			return "", ErrUnauthorized
		}
		return hashParts(verb, path, contentHash(content), identityKey), nil
	default:
		return hashParts(verb, path), nil
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func hashParts(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Submit either reuses an in-flight job matching fingerprint/rule, or
// admits run as a new job, returning the job and whether it was newly
// created (false means an existing job was reused). Submit returns
// immediately: it never blocks waiting for a worker slot, so a
// saturated pool only delays the job, not the caller. If the manager
// was built with a positive queue limit and that many jobs are
// already waiting for a slot, Submit rejects the request with
// ErrQueueFull instead of admitting it.
func (m *Manager) Submit(ctx context.Context, verb, path, fingerprint string, rule Rejection, matcher Matcher, run func(context.Context) (any, error)) (*Job, bool, error) {
	m.mu.Lock()

	if rule != Never {
		var queued []Job
		for _, j := range m.jobs {
			if j.State == Queued || j.State == Running {
				queued = append(queued, *j)
			}
		}

		if rule == Custom {
			m.mu.Unlock()
			id, err := matcher(fingerprint, queued)
			if err != nil {
				return nil, false, err
			}
			m.mu.Lock()
			if id != uuid.Nil {
				if existing, ok := m.jobs[id]; ok {
					m.mu.Unlock()
					return existing, false, nil
				}
			}
		} else {
			for _, j := range queued {
				if j.Fingerprint == fingerprint {
					existing := m.jobs[j.ID]
					m.mu.Unlock()
					return existing, false, nil
				}
			}
		}
	}

	if m.queueLimit > 0 {
		pending := 0
		for _, j := range m.jobs {
			if j.State == Queued {
				pending++
			}
		}
		if pending >= m.queueLimit {
			m.mu.Unlock()
			return nil, false, ErrQueueFull
		}
	}

	job := &Job{
		ID:          uuid.New(),
		State:       Queued,
		CreatedAt:   time.Now(),
		Verb:        verb,
		Path:        path,
		Fingerprint: fingerprint,
	}
	m.jobs[job.ID] = job
	m.mu.Unlock()

	// The job must outlive the request that submitted it — Submit
	// returns before the job necessarily runs, and the caller's
	// context is canceled the moment its HTTP handler returns. Derive
	// from Background, not ctx, so a saturated pool delaying the
	// worker-semaphore acquire doesn't cancel the job out from under
	// the caller; cancellation still works explicitly via Cancel(id).
	jobCtx, cancel := context.WithCancel(context.Background())
	job.cancel = cancel

	go func() {
		if err := m.sem.Acquire(jobCtx, 1); err != nil {
			m.mu.Lock()
			job.State = Cancelled
			m.mu.Unlock()
			return
		}
		defer m.sem.Release(1)

		m.mu.Lock()
		job.State = Running
		m.mu.Unlock()

		result, err := run(jobCtx)

		m.mu.Lock()
		defer m.mu.Unlock()
		if jobCtx.Err() != nil {
			job.State = Cancelled
			return
		}
		if err != nil {
			job.State = Failed
			job.Err = err
			return
		}
		job.State = Done
		job.Result = result
	}()

	return job, true, nil
}

// Get returns the job with the given id, if tracked.
func (m *Manager) Get(id uuid.UUID) (*Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, false
	}
	cp := *j
	return &cp, true
}

// Cancel cancels the job with the given id if it is still queued or
// running. Terminal jobs (done/cancelled/failed) cannot be cancelled
// and Cancel reports an error.
func (m *Manager) Cancel(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("async: no such job %s", id)
	}
	if j.State != Queued && j.State != Running {
		return fmt.Errorf("async: job %s is already terminal", id)
	}
	if j.cancel != nil {
		j.cancel()
	}
	j.State = Cancelled
	return nil
}

// Evict removes a terminal job from tracking. The pipeline calls this
// after a final poll (GET on a terminal job) or an explicit DELETE.
func (m *Manager) Evict(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
}
