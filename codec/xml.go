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
	"encoding/xml"
	"io"
	"reflect"
)

// XML decodes and encodes elements-to-fields XML bodies. It is
// optional: an application only registers it when XML support is
// explicitly toggled on.
var XML Codec = xmlCodec{}

type xmlCodec struct{}

func (xmlCodec) MediaType() string { return "application/xml" }

func (xmlCodec) Decode(r io.Reader, params map[string]string, target reflect.Type) (any, error) {
	isPtr := target.Kind() == reflect.Ptr
	elem := target
	if isPtr {
		elem = target.Elem()
	}
	v := reflect.New(elem)
	if err := xml.NewDecoder(r).Decode(v.Interface()); err != nil && err != io.EOF {
		return nil, err
	}
	if isPtr {
		return v.Interface(), nil
	}
	return v.Elem().Interface(), nil
}

func (xmlCodec) Encode(v any) ([]byte, string, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	return body, "application/xml; charset=utf-8", nil
}
