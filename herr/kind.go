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

package herr

import "net/http"

// Kind enumerates the error outcomes a responder pipeline must be able
// to tell apart when turning a handler's return value into an HTTP
// response. It is deliberately closed: new members are added here, not
// invented ad hoc by callers reaching for [WithStatus].
type Kind int

const (
	// BadRequest means the request could not be parsed, bound, or
	// otherwise understood. 400.
	BadRequest Kind = iota

	// Unauthorized means the caller did not present valid credentials.
	// 401.
	Unauthorized

	// Forbidden means the caller is known but not allowed to perform
	// the operation. 403.
	Forbidden

	// NotFound means no route or resource matched the request. 404.
	NotFound

	// MethodNotAllowed means the path matched but the method did not.
	// 405.
	MethodNotAllowed

	// NotAcceptable means none of the request's Accept types can be
	// produced by any registered codec. 406.
	NotAcceptable

	// LengthRequired means the request body is required to carry a
	// Content-Length and did not. 411.
	LengthRequired

	// PayloadTooLarge means the request body exceeded a configured
	// size limit. 413.
	PayloadTooLarge

	// UnsupportedMediaType means the request's Content-Type has no
	// matching decoder. 415.
	UnsupportedMediaType

	// TooManyRequests means the caller exceeded a rate or concurrency
	// limit. 429.
	TooManyRequests

	// NotImplemented means the operation is recognized but not
	// available. 501.
	NotImplemented

	// Internal means something failed that the caller cannot act on;
	// the detail is logged but not echoed back. 500.
	Internal

	// ServiceUnavailable means the server cannot accept the request
	// right now, e.g. a bounded async queue is full. 503.
	ServiceUnavailable
)

// String returns the Kind's name, e.g. "NotFound".
func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "BadRequest"
	case Unauthorized:
		return "Unauthorized"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "NotFound"
	case MethodNotAllowed:
		return "MethodNotAllowed"
	case NotAcceptable:
		return "NotAcceptable"
	case LengthRequired:
		return "LengthRequired"
	case PayloadTooLarge:
		return "PayloadTooLarge"
	case UnsupportedMediaType:
		return "UnsupportedMediaType"
	case TooManyRequests:
		return "TooManyRequests"
	case NotImplemented:
		return "NotImplemented"
	case Internal:
		return "Internal"
	case ServiceUnavailable:
		return "ServiceUnavailable"
	default:
		return "Unknown"
	}
}

// HTTPStatus returns the status code this Kind maps to.
func (k Kind) HTTPStatus() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case NotAcceptable:
		return http.StatusNotAcceptable
	case LengthRequired:
		return http.StatusLengthRequired
	case PayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case UnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case TooManyRequests:
		return http.StatusTooManyRequests
	case NotImplemented:
		return http.StatusNotImplemented
	case Internal:
		return http.StatusInternalServerError
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code returns a machine-readable, snake_case identifier for the Kind,
// suitable for an [ErrorCode]-aware [Formatter] or a client's switch
// statement.
func (k Kind) Code() string {
	switch k {
	case BadRequest:
		return "bad_request"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case MethodNotAllowed:
		return "method_not_allowed"
	case NotAcceptable:
		return "not_acceptable"
	case LengthRequired:
		return "length_required"
	case PayloadTooLarge:
		return "payload_too_large"
	case UnsupportedMediaType:
		return "unsupported_media_type"
	case TooManyRequests:
		return "too_many_requests"
	case NotImplemented:
		return "not_implemented"
	case Internal:
		return "internal"
	case ServiceUnavailable:
		return "service_unavailable"
	default:
		return "internal"
	}
}

// Error is the engine's own error value: a [Kind] plus an optional
// human-readable detail, wrapped cause, and structured problem payload
// (e.g. a validation error set). It implements [ErrorType],
// [ErrorDetails], and [ErrorCode], so any [Formatter] in this package
// renders it without special-casing.
type Error struct {
	Kind    Kind
	Detail  string
	Cause   error
	Problem any
}

// New builds an [*Error] of the given kind. detail is a human-readable
// message; cause, if non-nil, is wrapped and reachable via
// [errors.Unwrap]. Either may be zero.
func New(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

// WithProblem attaches a structured payload (surfaced by [Error.Details])
// and returns e for chaining.
//
// Example:
//
//	return herr.New(herr.BadRequest, "validation failed", nil).WithProblem(errs)
func (e *Error) WithProblem(problem any) *Error {
	e.Problem = problem
	return e
}

// Error implements the error interface. It prefers Detail, falling
// back to the Kind's status text, and appends the cause when present.
func (e *Error) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = http.StatusText(e.Kind.HTTPStatus())
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus implements [ErrorType].
func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// Code implements [ErrorCode].
func (e *Error) Code() string {
	return e.Kind.Code()
}

// Details implements [ErrorDetails]. It returns nil when no problem
// payload was attached via [Error.WithProblem].
func (e *Error) Details() any {
	return e.Problem
}
