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

// Package route compiles resource types into pattern-based endpoints,
// matches incoming requests against them, and reverse-builds URLs for
// a (resource method, arguments) tuple.
package route

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lmpessoa/goservices/pattern"
)

// routeSnapshot is an immutable view of the table's registered
// entries, specificity-ordered. A new snapshot is built and swapped in
// whenever Register adds entries; readers always see a complete,
// consistent set.
type routeSnapshot struct {
	entries []Entry
}

// Table matches incoming requests to registered resource methods. It
// grows only during application startup: Register appends entries
// under a write lock and publishes a new snapshot; Match reads the
// current snapshot lock-free.
type Table struct {
	mu        sync.Mutex // serializes Register calls only
	snapshot  atomic.Pointer[routeSnapshot]
	isService func(reflect.Type) bool
}

// NewTable creates an empty Table. isService, if non-nil, reports
// whether a params-struct field's type should be resolved from the
// service container rather than bound from the path, query, or body;
// a nil predicate rejects every untagged field, requiring every
// parameter to carry an explicit `path`, `query`, or `body` tag.
func NewTable(isService func(reflect.Type) bool) *Table {
	t := &Table{isService: isService}
	t.snapshot.Store(&routeSnapshot{})
	return t
}

// addEntries publishes entries into a new snapshot, rejecting the
// whole batch if any (pattern, verb) pair collides with an existing
// entry.
func (t *Table) addEntries(entries []Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.snapshot.Load()
	merged := make([]Entry, 0, len(cur.entries)+len(entries))
	merged = append(merged, cur.entries...)

	for _, e := range entries {
		for _, existing := range merged {
			if existing.Method == e.Method && existing.Pattern.Template == e.Pattern.Template {
				return fmt.Errorf("route: duplicate registration for %s %s", e.Method, e.Pattern.Template)
			}
		}
		merged = append(merged, e)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Pattern.Less(merged[j].Pattern)
	})

	t.snapshot.Store(&routeSnapshot{entries: merged})
	return nil
}

// Entries returns the table's registered entries in specificity order,
// for diagnostics such as a startup route listing.
func (t *Table) Entries() []Entry {
	snap := t.snapshot.Load()
	out := make([]Entry, len(snap.entries))
	copy(out, snap.entries)
	return out
}

// Status is the outcome of a Match call.
type Status int

const (
	// StatusOK means a single entry matched both path and verb.
	StatusOK Status = iota
	// StatusNotFound means no registered pattern matched the path.
	StatusNotFound
	// StatusMethodNotAllowed means a pattern matched the path but no
	// entry for that pattern accepts the request's verb.
	StatusMethodNotAllowed
	// StatusBadRequest means the path matched but a captured path
	// variable failed a constraint the pattern's regex alone can't
	// express (e.g. an integer out of its declared bounds).
	StatusBadRequest
)

// Request is the subset of an incoming HTTP request route.Table needs
// to find a match: method, path, and any already-parsed query values.
type Request struct {
	Method string
	Path   string
	Query  map[string][]string
}

// MatchResult is the outcome of matching a Request against the table.
type MatchResult struct {
	Status Status
	Entry  *Entry
	Params map[string]string
	Err    error
}

// Match finds the most specific entry whose pattern matches req.Path
// and whose method equals req.Method. Patterns are tried in
// specificity order (more literal, longer literal, catch-all last);
// the first pattern that matches the path decides the outcome — if it
// lacks an entry for the request verb, matching continues to the next
// pattern so a path can be served by multiple verb-specific
// registrations, but once any pattern matches the path at all, a
// final failure to find the verb is reported as MethodNotAllowed
// rather than continuing to treat it as NotFound.
func (t *Table) Match(req *Request) MatchResult {
	snap := t.snapshot.Load()

	pathMatched := false
	for i := range snap.entries {
		e := &snap.entries[i]
		vars, ok := e.Pattern.Match(req.Path)
		if !ok {
			continue
		}
		pathMatched = true
		if e.Method != req.Method {
			continue
		}

		if err := validateCapturedBounds(e, vars); err != nil {
			return MatchResult{Status: StatusBadRequest, Entry: e, Params: vars, Err: err}
		}

		return MatchResult{Status: StatusOK, Entry: e, Params: vars}
	}

	if pathMatched {
		return MatchResult{Status: StatusMethodNotAllowed}
	}
	return MatchResult{Status: StatusNotFound}
}

func validateCapturedBounds(e *Entry, vars map[string]string) error {
	for _, spec := range e.Pattern.Vars() {
		raw, ok := vars[spec.Name]
		if !ok || spec.Min == nil && spec.Max == nil {
			continue
		}
		if spec.Kind != pattern.KindInt64 {
			continue
		}
		n, err := pattern.ParseInt64(raw)
		if err != nil {
			return fmt.Errorf("route: %q is not a valid integer", spec.Name)
		}
		if !pattern.ParseInt64Bounds(spec, n) {
			return fmt.Errorf("route: %q is out of range", spec.Name)
		}
	}
	return nil
}
