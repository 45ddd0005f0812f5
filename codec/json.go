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

package codec

import (
	"encoding/json"
	"io"
	"reflect"
)

// JSON decodes and encodes application/json bodies. Unknown fields in
// the input are ignored (field-name based, tolerant decoding); the
// charset parameter defaults to UTF-8 when absent.
var JSON Codec = jsonCodec{}

type jsonCodec struct{}

func (jsonCodec) MediaType() string { return "application/json" }

func (jsonCodec) Decode(r io.Reader, params map[string]string, target reflect.Type) (any, error) {
	isPtr := target.Kind() == reflect.Ptr
	elem := target
	if isPtr {
		elem = target.Elem()
	}
	v := reflect.New(elem)
	dec := json.NewDecoder(r)
	if err := dec.Decode(v.Interface()); err != nil && err != io.EOF {
		return nil, err
	}
	if isPtr {
		return v.Interface(), nil
	}
	return v.Elem().Interface(), nil
}

func (jsonCodec) Encode(v any) ([]byte, string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	return body, "application/json; charset=utf-8", nil
}
