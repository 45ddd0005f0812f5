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

package pattern

import "errors"

// ErrInvalid is the sentinel wrapped by every [PatternError].
var ErrInvalid = errors.New("invalid route pattern")

// PatternError reports why a template could not be parsed: an
// adjacent-variable collision, a parameter count mismatch, an
// unconvertible type, a query-only parameter declared in the path, or
// a nilable parameter declared in the path.
type PatternError struct {
	Template string
	Reason   string
}

func newPatternError(template, reason string) *PatternError {
	return &PatternError{Template: template, Reason: reason}
}

func (e *PatternError) Error() string {
	return "pattern: " + e.Template + ": " + e.Reason
}

func (e *PatternError) Unwrap() error { return ErrInvalid }
