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

package route

import (
	"reflect"

	"github.com/lmpessoa/goservices/pattern"
)

// paramBinding is where a resolved parameter struct field's value
// comes from.
type paramBinding int

const (
	bindPath paramBinding = iota
	bindQuery
	bindService
	bindBody
)

// fieldInfo caches one struct field of a resource method's parameter
// type: its binding source, its name for that source, and the typed
// metadata pattern.ParamSpec needs when the field is a path variable.
type fieldInfo struct {
	index   int
	name    string
	binding paramBinding
	field   reflect.StructField
	spec    pattern.ParamSpec
}

// Entry is one registered (pattern, verb) route, bound to a resource
// method.
type Entry struct {
	Name         string
	MethodName   string // the resource's Go method name, e.g. "GetList"
	Method       string
	Pattern      *pattern.Pattern
	ResourceType reflect.Type
	MethodIndex  int
	ParamsType   reflect.Type // nil if the method takes no params struct
	Deferred     bool         // true if the `_` field carries an `async:"true"` tag
	fields       []fieldInfo
	bodyField    int // index into fields of the body-bound field, -1 if none
}

// ContentBodyType reports the Go type bound from the request body, if
// any.
func (e Entry) ContentBodyType() (reflect.Type, bool) {
	if e.bodyField < 0 {
		return nil, false
	}
	return e.fields[e.bodyField].field.Type, true
}
