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

package pipeline

import (
	"io"
	"reflect"

	"github.com/lmpessoa/goservices/codec"
	"github.com/lmpessoa/goservices/herr"
	"github.com/lmpessoa/goservices/response"
	"github.com/lmpessoa/goservices/route"
	"github.com/lmpessoa/goservices/validation"
)

// invokeStage is the innermost stage: it resolves the matched route's
// resource from the container, binds path/query/body/service
// parameters into the method's params struct, validates it, calls the
// method, and shapes the result.
func invokeStage(ctx *Context, cfg Config) Result {
	enc := negotiateEncoder(ctx, cfg)

	switch ctx.Match.Status {
	case route.StatusNotFound:
		return ctx.fail(herr.New(herr.NotFound, "no route matches this path", nil), enc)
	case route.StatusMethodNotAllowed:
		return ctx.fail(herr.New(herr.MethodNotAllowed, "method not allowed for this path", nil), enc)
	case route.StatusBadRequest:
		return ctx.fail(herr.New(herr.BadRequest, ctx.Match.Err.Error(), ctx.Match.Err), enc)
	}

	entry := ctx.Match.Entry

	resourceType := entry.ResourceType
	if resourceType.Kind() != reflect.Ptr {
		resourceType = reflect.PtrTo(resourceType)
	}
	resource, err := cfg.Container.Resolve(ctx.Context, resourceType)
	if err != nil {
		return ctx.fail(herr.New(herr.Internal, "", err), enc)
	}

	params, err := entry.BindParams(ctx.Match.Params, ctx.Request.URL.Query(), serviceResolver(ctx, cfg), bodyDecoder(ctx, cfg))
	if err != nil {
		return ctx.fail(herr.New(herr.BadRequest, err.Error(), err), enc)
	}

	var extra []any
	if params.IsValid() {
		if errs := validateParams(ctx, cfg, params.Interface()); errs.HasErrors() {
			return ctx.fail(herr.New(herr.BadRequest, "validation failed", nil).WithProblem(errs), enc)
		}
		extra = append(extra, params.Interface())
	}

	out, err := cfg.Container.Invoke(ctx.Context, resource, entry.MethodName, extra...)
	if err != nil {
		return ctx.fail(mapInvokeError(err), enc)
	}

	if out == nil {
		return response.NoContent()
	}
	return response.OK(out)
}

func mapInvokeError(err error) error {
	if herrErr, ok := err.(*herr.Error); ok {
		return herrErr
	}
	return herr.New(herr.Internal, "", err)
}

func validateParams(ctx *Context, cfg Config, params any) validation.ErrorSet {
	if cfg.Validator == nil {
		return validation.ErrorSet{}
	}
	return cfg.Validator.Validate(ctx.Context, params)
}

func serviceResolver(ctx *Context, cfg Config) route.ResolveService {
	if cfg.Container == nil {
		return nil
	}
	return func(fieldType reflect.Type) (any, error) {
		return cfg.Container.Resolve(ctx.Context, fieldType)
	}
}

func bodyDecoder(ctx *Context, cfg Config) route.DecodeBody {
	if cfg.Codecs == nil {
		return nil
	}
	return func(fieldType reflect.Type) (any, error) {
		contentType := ctx.Request.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/json"
		}
		mediaType, params, err := codec.ParseMediaType(contentType)
		if err != nil {
			mediaType, params = contentType, map[string]string{}
		}
		c, ok := cfg.Codecs.Lookup(mediaType)
		if !ok {
			return nil, herr.New(herr.UnsupportedMediaType, "no decoder for "+mediaType, nil)
		}
		return c.Decode(ctx.Request.Body, params, fieldType)
	}
}

// negotiateEncoder picks the codec used to encode the response body,
// from the request's Accept header, falling back to the registered
// application/json codec when negotiation fails so error responses are
// never silently dropped.
func negotiateEncoder(ctx *Context, cfg Config) codec.Encoder {
	if cfg.Codecs == nil {
		return noopEncoder{}
	}
	accept := codec.ParseAccept(ctx.Request.Header.Get("Accept"))
	c, err := cfg.Codecs.Negotiate(accept)
	if err != nil {
		if def, ok := cfg.Codecs.Lookup("application/json"); ok {
			c = def
		} else {
			return noopEncoder{}
		}
	}
	enc, ok := c.(codec.Encoder)
	if !ok {
		return noopEncoder{}
	}
	return enc
}

type noopEncoder struct{}

func (noopEncoder) MediaType() string { return "application/octet-stream" }
func (noopEncoder) Decode(io.Reader, map[string]string, reflect.Type) (any, error) {
	return nil, herr.New(herr.UnsupportedMediaType, "no codec registered", nil)
}
func (noopEncoder) Encode(v any) ([]byte, string, error) {
	return nil, "application/octet-stream", herr.New(herr.Internal, "no codec registered", nil)
}
