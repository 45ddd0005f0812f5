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
	"context"
	"net/http"
	"sync"

	"github.com/lmpessoa/goservices/codec"
	"github.com/lmpessoa/goservices/identity"
	"github.com/lmpessoa/goservices/logging"
	"github.com/lmpessoa/goservices/response"
	"github.com/lmpessoa/goservices/route"
)

// Context is the per-request state threaded through every stage. It
// is pooled: Build's ServeHTTP acquires one from the pool per incoming
// request and releases it back when the response is complete.
type Context struct {
	Context  context.Context
	Request  *http.Request
	Response http.ResponseWriter

	Match    route.MatchResult
	Identity identity.Identity
	Logger   logging.Logger

	Result any
	Err    error

	values map[string]any
}

// Set stores an arbitrary value on the context under key, for
// communication between stages beyond the fixed fields above.
func (c *Context) Set(key string, v any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = v
}

// Get retrieves a value previously stored with Set.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// fail records err on the context for the serializer stage to log and
// shapes it into a Result with enc.
func (c *Context) fail(err error, enc codec.Encoder) Result {
	c.Err = err
	return response.FromError(err, enc)
}

func (c *Context) reset() {
	c.Context = nil
	c.Request = nil
	c.Response = nil
	c.Match = route.MatchResult{}
	c.Identity = nil
	c.Logger = nil
	c.Result = nil
	c.Err = nil
	c.values = nil
}

var contextPool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquireContext() *Context {
	return contextPool.Get().(*Context)
}

func releaseContext(c *Context) {
	c.reset()
	contextPool.Put(c)
}
