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
	"net/url"
	"reflect"
	"strings"
)

// ReverseLookup builds the path for the registered method named
// methodName on resourceType, substituting args for the method's path
// variables in declaration order and appending any remaining args as
// query parameters named after the method's query-tagged fields, also
// in declaration order. An empty methodName is rejected: a reverse
// lookup is keyed by (resourceType, methodName), and a blank name
// would make it ambiguous whenever a resource registers more than one
// method.
func (t *Table) ReverseLookup(resourceType reflect.Type, methodName string, args ...any) (string, error) {
	if methodName == "" {
		return "", fmt.Errorf("route: method name must not be empty")
	}

	snap := t.snapshot.Load()
	var match *Entry
	for i := range snap.entries {
		e := &snap.entries[i]
		if e.ResourceType == resourceType && strings.HasSuffix(e.Name, "."+methodName) {
			match = e
			break
		}
	}
	if match == nil {
		return "", fmt.Errorf("route: no registered method %q on %s", methodName, resourceType)
	}

	template := match.Pattern.Template
	argIdx := 0
	var query url.Values

	for _, f := range match.fields {
		switch f.binding {
		case bindPath:
			if argIdx >= len(args) {
				return "", fmt.Errorf("route: not enough arguments for path variable %q", f.name)
			}
			template = strings.Replace(template, "{"+f.name+"}", fmt.Sprint(args[argIdx]), 1)
			argIdx++
		case bindQuery:
			if argIdx >= len(args) {
				continue
			}
			if query == nil {
				query = url.Values{}
			}
			query.Set(f.name, fmt.Sprint(args[argIdx]))
			argIdx++
		}
	}

	if query != nil {
		return template + "?" + query.Encode(), nil
	}
	return template, nil
}
