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
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/lmpessoa/goservices/pattern"
)

// verbs are the recognized method-name prefixes, longest first so
// "Patch" is not shadowed by a hypothetical "Pa" prefix match.
var verbs = []string{"Options", "Delete", "Patch", "Post", "Get", "Put"}

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	uuidType    = reflect.TypeOf(uuid.UUID{})
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Register enumerates resourceType's exported methods whose name
// begins with a recognized HTTP verb and builds one Entry per method.
// area, if non-empty, is prepended to every derived path. Registration
// failures for individual methods are collected and returned alongside
// the entries that did succeed; they never abort registration of the
// resource's other methods.
func (t *Table) Register(resourceType reflect.Type, area string) ([]Entry, []error) {
	var entries []Entry
	var errs []error

	ptrType := resourceType
	if ptrType.Kind() != reflect.Ptr {
		ptrType = reflect.PtrTo(resourceType)
	}

	resourceName := deriveResourceName(resourceType)

	for i := 0; i < ptrType.NumMethod(); i++ {
		m := ptrType.Method(i)
		verb, ok := matchVerb(m.Name)
		if !ok {
			continue
		}

		entry, err := t.buildEntry(resourceType, m, i, verb, resourceName, area)
		if err != nil {
			errs = append(errs, fmt.Errorf("route: %s.%s: %w", resourceType.Name(), m.Name, err))
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) > 0 {
		if err := t.addEntries(entries); err != nil {
			errs = append(errs, err)
		}
	}

	return entries, errs
}

func matchVerb(methodName string) (string, bool) {
	for _, v := range verbs {
		if strings.HasPrefix(methodName, v) {
			return strings.ToUpper(v), true
		}
	}
	return "", false
}

// buildEntry inspects one method's signature:
//
//	func (r *Resource) Get(ctx context.Context) (Result, error)
//	func (r *Resource) Get(ctx context.Context, p ParamsStruct) (Result, error)
//
// ParamsStruct fields are classified by t.isService and struct tags:
// `path:"name"` binds a path variable, `query:"name"` a query
// parameter, `body:""` the request body (at most one field). A field
// with neither tag whose type is a registered service is resolved
// from the container at invocation time.
func (t *Table) buildEntry(resourceType reflect.Type, m reflect.Method, methodIndex int, verb, resourceName, area string) (Entry, error) {
	mt := m.Func.Type() // receiver, [ctx], [params]
	if mt.NumIn() < 2 || mt.In(1) != contextType {
		return Entry{}, fmt.Errorf("first parameter must be context.Context")
	}

	var paramsType reflect.Type
	switch mt.NumIn() {
	case 2:
		// no params struct
	case 3:
		paramsType = mt.In(2)
		if paramsType.Kind() != reflect.Struct {
			return Entry{}, fmt.Errorf("params argument must be a struct")
		}
	default:
		return Entry{}, fmt.Errorf("method takes too many parameters")
	}

	if mt.NumOut() == 0 || !mt.Out(mt.NumOut()-1).Implements(errorType) {
		return Entry{}, fmt.Errorf("method must return (result, error) or (error)")
	}

	var fields []fieldInfo
	bodyField := -1
	var specs []pattern.ParamSpec
	routeOverride := ""
	deferred := false

	if paramsType != nil {
		for i := 0; i < paramsType.NumField(); i++ {
			sf := paramsType.Field(i)
			if sf.Name == "_" {
				if tag, ok := sf.Tag.Lookup("route"); ok {
					routeOverride = tag
				}
				if tag, ok := sf.Tag.Lookup("async"); ok && tag == "true" {
					deferred = true
				}
				continue
			}
			if !sf.IsExported() {
				continue
			}

			fi, spec, isBody, err := classifyField(i, sf, t.isService)
			if err != nil {
				return Entry{}, err
			}
			if isBody {
				if bodyField >= 0 {
					return Entry{}, fmt.Errorf("at most one body-bound field is allowed")
				}
				bodyField = len(fields)
			}
			fields = append(fields, fi)
			if fi.binding == bindPath {
				specs = append(specs, spec)
			}
		}
	}

	template := routeOverride
	if template == "" {
		template = derivePath(resourceName, fields)
	}
	if area != "" {
		template = "/" + strings.Trim(area, "/") + template
	}

	pat, err := pattern.Parse(template, specs)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Name:         resourceName + "." + m.Name,
		MethodName:   m.Name,
		Method:       verb,
		Pattern:      pat,
		ResourceType: resourceType,
		MethodIndex:  methodIndex,
		ParamsType:   paramsType,
		Deferred:     deferred,
		fields:       fields,
		bodyField:    bodyField,
	}, nil
}

func classifyField(index int, sf reflect.StructField, isService func(reflect.Type) bool) (fieldInfo, pattern.ParamSpec, bool, error) {
	if pathName, ok := sf.Tag.Lookup("path"); ok {
		spec, err := specForField(sf, pathName)
		if err != nil {
			return fieldInfo{}, pattern.ParamSpec{}, false, err
		}
		return fieldInfo{index: index, name: pathName, binding: bindPath, field: sf, spec: spec}, spec, false, nil
	}
	if queryName, ok := sf.Tag.Lookup("query"); ok {
		name := strings.Split(queryName, ",")[0]
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		spec := pattern.ParamSpec{Name: name, Query: true}
		return fieldInfo{index: index, name: name, binding: bindQuery, field: sf}, spec, false, nil
	}
	if _, ok := sf.Tag.Lookup("body"); ok {
		return fieldInfo{index: index, name: sf.Name, binding: bindBody, field: sf}, pattern.ParamSpec{}, true, nil
	}
	if isService != nil && isService(sf.Type) {
		return fieldInfo{index: index, name: sf.Name, binding: bindService, field: sf}, pattern.ParamSpec{}, false, nil
	}
	return fieldInfo{}, pattern.ParamSpec{}, false, fmt.Errorf("field %q has no path/query/body tag and is not a registered service", sf.Name)
}

func specForField(sf reflect.StructField, name string) (pattern.ParamSpec, error) {
	spec := pattern.ParamSpec{Name: name}

	switch {
	case sf.Type == uuidType:
		spec.Kind = pattern.KindUUID

	case sf.Type.Kind() == reflect.Slice && sf.Type.Elem().Kind() == reflect.String:
		spec.Kind = pattern.KindString
		spec.CatchAll = true
		spec.Nilable = true
		if _, notEmpty := sf.Tag.Lookup("notempty"); notEmpty {
			spec.NotEmpty = true
		}

	case isIntegerKind(sf.Type.Kind()):
		spec.Kind = pattern.KindInt64
		if minTag, ok := sf.Tag.Lookup("min"); ok {
			if v, err := strconv.ParseInt(minTag, 10, 64); err == nil {
				spec.Min = &v
			}
		}
		if maxTag, ok := sf.Tag.Lookup("max"); ok {
			if v, err := strconv.ParseInt(maxTag, 10, 64); err == nil {
				spec.Max = &v
			}
		}

	case sf.Type.Kind() == reflect.String:
		if enumTag, ok := sf.Tag.Lookup("enum"); ok {
			spec.Kind = pattern.KindEnum
			spec.EnumValues = strings.Split(enumTag, ",")
		} else {
			spec.Kind = pattern.KindString
			if maxTag, ok := sf.Tag.Lookup("max"); ok {
				if v, err := strconv.ParseInt(maxTag, 10, 64); err == nil {
					spec.Max = &v
				}
			}
			if reTag, ok := sf.Tag.Lookup("regexp"); ok {
				spec.Regexp = reTag
			}
		}

	default:
		return spec, fmt.Errorf("field %q of type %s has no string-parse capability for a path variable", sf.Name, sf.Type)
	}

	return spec, nil
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// derivePath builds the default route template from the resource name
// and the params struct's path-bound fields, in declaration order:
// "/users/{id}/orders/{orderId}".
func derivePath(resourceName string, fields []fieldInfo) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(resourceName)
	for _, f := range fields {
		if f.binding != bindPath {
			continue
		}
		b.WriteString("/{")
		b.WriteString(f.name)
		b.WriteString("}")
	}
	return b.String()
}

// deriveResourceName converts a resource type's name to a lowercase,
// word-split path segment, stripping a trailing "Resource": "UserResource"
// becomes "user", "OrderLineResource" becomes "order-line".
func deriveResourceName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	name = strings.TrimSuffix(name, "Resource")

	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
