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
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lmpessoa/goservices/pattern"
)

// ResolveService resolves a service-bound field's value by its type.
type ResolveService func(fieldType reflect.Type) (any, error)

// DecodeBody decodes the request body into a new value of fieldType.
type DecodeBody func(fieldType reflect.Type) (any, error)

// BindParams builds the params struct value for e from captured path
// variables, parsed query values, and the service/body resolvers.
// Conversion failures are reported as *BindError, which the pipeline's
// invoke stage maps to BadRequest.
func (e Entry) BindParams(pathParams map[string]string, query map[string][]string, resolveService ResolveService, decodeBody DecodeBody) (reflect.Value, error) {
	if e.ParamsType == nil {
		return reflect.Value{}, nil
	}

	v := reflect.New(e.ParamsType).Elem()

	for _, f := range e.fields {
		dst := v.Field(f.index)

		switch f.binding {
		case bindPath:
			raw := pathParams[f.name]
			if err := setPathValue(dst, f.spec, raw); err != nil {
				return reflect.Value{}, &BindError{Field: f.name, Reason: err.Error()}
			}

		case bindQuery:
			vals := query[f.name]
			if len(vals) == 0 {
				continue
			}
			if dst.Kind() == reflect.Slice {
				out := reflect.MakeSlice(dst.Type(), len(vals), len(vals))
				for i, s := range vals {
					out.Index(i).SetString(s)
				}
				dst.Set(out)
			} else if dst.CanInt() {
				n, err := strconv.ParseInt(vals[0], 10, 64)
				if err != nil {
					return reflect.Value{}, &BindError{Field: f.name, Reason: fmt.Sprintf("%q is not a valid integer", vals[0])}
				}
				dst.SetInt(n)
			} else {
				dst.SetString(strings.Join(vals, ","))
			}

		case bindService:
			if resolveService == nil {
				return reflect.Value{}, &BindError{Field: f.name, Reason: "no service resolver configured"}
			}
			val, err := resolveService(f.field.Type)
			if err != nil {
				return reflect.Value{}, &BindError{Field: f.name, Reason: err.Error()}
			}
			dst.Set(reflect.ValueOf(val))

		case bindBody:
			if decodeBody == nil {
				return reflect.Value{}, &BindError{Field: f.name, Reason: "no body decoder configured"}
			}
			val, err := decodeBody(f.field.Type)
			if err != nil {
				return reflect.Value{}, &BindError{Field: f.name, Reason: err.Error()}
			}
			dst.Set(reflect.ValueOf(val))
		}
	}

	return v, nil
}

func setPathValue(dst reflect.Value, spec pattern.ParamSpec, raw string) error {
	switch spec.Kind {
	case pattern.KindInt64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not a valid integer", raw)
		}
		dst.SetInt(n)
		return nil

	case pattern.KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%q is not a valid UUID", raw)
		}
		dst.Set(reflect.ValueOf(id))
		return nil

	case pattern.KindEnum:
		for _, v := range spec.EnumValues {
			if v == raw {
				dst.SetString(raw)
				return nil
			}
		}
		return fmt.Errorf("%q is not one of %v", raw, spec.EnumValues)

	default: // KindString
		if spec.CatchAll {
			dst.Set(reflect.ValueOf(pattern.ParseCatchAll(raw)))
			return nil
		}
		dst.SetString(raw)
		return nil
	}
}

// BindError reports a parameter that could not be bound to its target
// Go type.
type BindError struct {
	Field  string
	Reason string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("route: cannot bind %q: %s", e.Field, e.Reason)
}
