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
	"bytes"
	"net/http"

	"github.com/lmpessoa/goservices/herr"
	"github.com/lmpessoa/goservices/response"
)

// withSerializer is the outermost stage. Everything inside it either
// returns an already-encoded Response (health, static, favicon, or any
// error path via response.FromError) or an OK/Created/NoContent
// response still carrying its raw Go value; this stage negotiates the
// request's Accept header and encodes that value with the winning
// codec.
func withSerializer(next Next, cfg Config) Next {
	return func(ctx *Context) Result {
		result := next(ctx)
		logFailure(ctx, result)

		v, ok := response.Value(result.Body)
		if !ok {
			return result
		}

		enc := negotiateEncoder(ctx, cfg)
		body, mediaType, err := enc.Encode(v)
		if err != nil {
			return ctx.fail(herr.New(herr.Internal, "", err), enc)
		}

		if result.Header == nil {
			result.Header = http.Header{}
		}
		result.Header.Set("Content-Type", mediaType)
		result.Body = bytes.NewReader(body)
		return result
	}
}

// logFailure logs ctx.Err once, at Warn for a 4xx outcome and Error for
// a 5xx one, if the application configured a logger.
func logFailure(ctx *Context, result Result) {
	if ctx.Err == nil || ctx.Logger == nil {
		return
	}
	if result.Status >= 500 {
		ctx.Logger.Error(ctx.Err.Error(), "status", result.Status, "path", ctx.Request.URL.Path)
	} else {
		ctx.Logger.Warn(ctx.Err.Error(), "status", result.Status, "path", ctx.Request.URL.Path)
	}
}
