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

// Package response shapes a handler's typed result (or error) into an
// HTTP status, headers, and a body stream.
package response

import (
	"bytes"
	"io"
	"net/http"

	"github.com/lmpessoa/goservices/codec"
	"github.com/lmpessoa/goservices/herr"
)

// Response is the fully shaped result of handling a request.
type Response struct {
	Status int
	Header http.Header
	Body   io.Reader
}

// OK wraps v as a 200 response body, left unserialized; the pipeline's
// serializer stage encodes it with the negotiated codec.
func OK(v any) Response {
	return Response{Status: http.StatusOK, Header: http.Header{}, Body: valueBody(v)}
}

// Created wraps v as a 201 response, with Location set to location
// when non-empty.
func Created(v any, location string) Response {
	r := Response{Status: http.StatusCreated, Header: http.Header{}, Body: valueBody(v)}
	if location != "" {
		r.Header.Set("Location", location)
	}
	return r
}

// NoContent produces an empty 204 response.
func NoContent() Response {
	return Response{Status: http.StatusNoContent, Header: http.Header{}}
}

// Redirect produces a response with Location set to location and the
// given status, which must be one of the 3xx redirect codes.
func Redirect(status int, location string) Response {
	h := http.Header{}
	h.Set("Location", location)
	return Response{Status: status, Header: h}
}

// valueBody marks v for later serialization by wrapping it in a
// rawValue the serializer stage recognizes instead of treating Body as
// already-encoded bytes.
func valueBody(v any) io.Reader {
	return &rawValue{v: v}
}

// rawValue carries an unserialized Go value through Response.Body
// until the serializer stage encodes it.
type rawValue struct{ v any }

func (r *rawValue) Read([]byte) (int, error) { return 0, io.EOF }

// Value reports the unserialized value carried by body, if any.
func Value(body io.Reader) (any, bool) {
	rv, ok := body.(*rawValue)
	if !ok {
		return nil, false
	}
	return rv.v, true
}

// FromError shapes err into a Response using neg to pick the response
// codec. *herr.Error values map to their declared Kind's HTTP status
// and carry their Problem (if any) or a plain message as body; any
// other error maps to 500 Internal Server Error with no leaked detail.
func FromError(err error, neg codec.Encoder) Response {
	status := http.StatusInternalServerError
	var payload any = map[string]string{"error": "internal server error"}

	var herrErr *herr.Error
	if as, ok := err.(*herr.Error); ok {
		herrErr = as
	}
	if herrErr != nil {
		status = herrErr.HTTPStatus()
		if herrErr.Problem != nil {
			payload = herrErr.Problem
		} else {
			payload = map[string]string{"error": herrErr.Error()}
		}
	}

	body, mediaType, encErr := neg.Encode(payload)
	h := http.Header{}
	if encErr == nil {
		h.Set("Content-Type", mediaType)
		return Response{Status: status, Header: h, Body: bytes.NewReader(body)}
	}
	return Response{Status: http.StatusInternalServerError, Header: h, Body: bytes.NewReader([]byte(`{"error":"internal server error"}`))}
}
