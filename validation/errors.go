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

package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is a sentinel error for validation failures.
// Use errors.Is(err, ErrValidation) to check if an error is a validation error.
var ErrValidation = errors.New("validation")

// Predefined validation errors.
var (
	ErrCannotValidateNilValue     = errors.New("cannot validate nil value")
	ErrCannotValidateInvalidValue = errors.New("cannot validate invalid value")
	ErrUnknownValidationStrategy  = errors.New("unknown validation strategy")
	ErrValidationFailed           = errors.New("validation failed")
	ErrInvalidType                = errors.New("invalid type")
	ErrCannotRegisterValidators   = errors.New("cannot register validators after the first validation")
)

// FieldError is one entry of an [ErrorSet]: a dotted path, the unresolved
// message template, the locale-interpolated message, and a string form of
// the value that failed the constraint.
//
// Example:
//
//	err := FieldError{
//	    Path:         "email",
//	    Code:         "tag.required",
//	    Template:     "{field} must not be null",
//	    Message:      "email must not be null",
//	    InvalidValue: "null",
//	}
type FieldError struct {
	Path         string         `json:"path"`                    // dotted path, e.g. "book.authorsByChapter[3].company"
	Code         string         `json:"code"`                    // stable code (e.g., "tag.required", "schema.type")
	Template     string         `json:"template,omitempty"`      // unresolved message template
	Message      string         `json:"message"`                 // locale-interpolated message
	InvalidValue string         `json:"invalidValue,omitempty"`  // string form of the offending value
	Meta         map[string]any `json:"meta,omitempty"`          // additional metadata (tag, param, value, etc.)
}

// Error returns "path: message", or just "message" when path is empty.
func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns [ErrValidation] for errors.Is/errors.As compatibility.
func (e FieldError) Unwrap() error {
	return ErrValidation
}

// HTTPStatus reports the status a lone [FieldError] maps to when surfaced
// directly as an error (400, per spec.md §7 — validation failures are
// BadRequest, not the generic 422 a standalone field-error library might pick).
func (e FieldError) HTTPStatus() int {
	return 400
}

// ErrorSet is the validator's report: an ordered collection of [FieldError].
// A nil or empty ErrorSet means validation succeeded — [ErrorSet.HasErrors]
// reports the authoritative answer. ErrorSet implements error so it can be
// returned and matched with errors.As.
//
// Example:
//
//	var errs *ErrorSet
//	if errors.As(err, &errs) {
//	    for _, fe := range errs.Fields {
//	        fmt.Printf("%s: %s\n", fe.Path, fe.Message)
//	    }
//	}
type ErrorSet struct {
	Fields    []FieldError `json:"errors"`
	Truncated bool         `json:"truncated,omitempty"`
}

// Error returns a formatted error message.
func (v ErrorSet) Error() string {
	if len(v.Fields) == 0 {
		return ""
	}
	if len(v.Fields) == 1 {
		return v.Fields[0].Error()
	}

	suffix := ""
	if v.Truncated {
		suffix = " (truncated)"
	}

	msgs := make([]string, 0, len(v.Fields))
	for _, fe := range v.Fields {
		msgs = append(msgs, fe.Error())
	}

	return fmt.Sprintf("validation failed: %s%s", strings.Join(msgs, "; "), suffix)
}

// Unwrap returns [ErrValidation] for errors.Is/errors.As compatibility.
func (v ErrorSet) Unwrap() error {
	return ErrValidation
}

// HTTPStatus maps an ErrorSet to BadRequest (400), per spec.md §7.
func (v ErrorSet) HTTPStatus() int {
	return 400
}

// Details returns the field list, suitable as an HTTP error body payload.
func (v ErrorSet) Details() any {
	return v.Fields
}

// Code is the stable machine-readable code for the whole set.
func (v ErrorSet) Code() string {
	return "validation_error"
}

// Add appends a new [FieldError] built from its parts.
func (v *ErrorSet) Add(path, code, template, message, invalidValue string, meta map[string]any) {
	v.Fields = append(v.Fields, FieldError{
		Path:         path,
		Code:         code,
		Template:     template,
		Message:      message,
		InvalidValue: invalidValue,
		Meta:         meta,
	})
}

// AddError folds another error into the set: a [FieldError], an [ErrorSet]
// (or *ErrorSet), or any other error is stored as a single opaque entry.
func (v *ErrorSet) AddError(err error) {
	if err == nil {
		return
	}

	switch e := err.(type) {
	case FieldError:
		v.Fields = append(v.Fields, e)
	case ErrorSet:
		v.Fields = append(v.Fields, e.Fields...)
		v.Truncated = v.Truncated || e.Truncated
	case *ErrorSet:
		v.Fields = append(v.Fields, e.Fields...)
		v.Truncated = v.Truncated || e.Truncated
	default:
		v.Fields = append(v.Fields, FieldError{
			Code:    "validation_error",
			Message: err.Error(),
		})
	}
}

// HasErrors reports whether the set carries any entries.
func (v ErrorSet) HasErrors() bool {
	return len(v.Fields) > 0
}

// HasCode reports whether any entry carries the given code.
func (v ErrorSet) HasCode(code string) bool {
	for _, e := range v.Fields {
		if e.Code == code {
			return true
		}
	}

	return false
}

// Has reports whether a specific field path has an error.
func (v ErrorSet) Has(path string) bool {
	for _, f := range v.Fields {
		if f.Path == path {
			return true
		}
	}

	return false
}

// GetField returns the first [FieldError] for a path, or nil if absent.
func (v ErrorSet) GetField(path string) *FieldError {
	for _, f := range v.Fields {
		if f.Path == path {
			return &f
		}
	}

	return nil
}

// Sort orders entries by path, then by code, for deterministic presentation.
func (v *ErrorSet) Sort() {
	sort.Slice(v.Fields, func(i, j int) bool {
		if v.Fields[i].Path != v.Fields[j].Path {
			return v.Fields[i].Path < v.Fields[j].Path
		}

		return v.Fields[i].Code < v.Fields[j].Code
	})
}
