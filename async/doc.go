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

// Package async runs deferred request handlers on a bounded worker
// pool, deduplicating concurrent submissions that collide under a
// declared [Rejection] rule.
//
//	mgr := async.NewManager(8, 100, "/feedback/")
//	fp, err := async.Fingerprint(async.SamePath, "POST", "/reports", nil, "")
//	job, isNew, err := mgr.Submit(ctx, "POST", "/reports", fp, async.SamePath, nil, func(ctx context.Context) (any, error) {
//		return generateReport(ctx)
//	})
//
// A client polls GET {feedbackPath}{job.ID} until the job's State
// reaches Done, Cancelled, or Failed, and may DELETE it to cancel a
// still-queued or still-running job cooperatively via its context.
package async
