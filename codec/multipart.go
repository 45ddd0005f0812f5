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
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
)

// FilePart is a single uploaded file section of a multipart body.
type FilePart struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Multipart decodes multipart/form-data bodies per RFC 7578. Each
// section's Content-Disposition yields a field name and optional
// filename; sections with a filename populate a [FilePart]-typed
// struct field, others populate scalar/slice fields the same way
// [Form] does. A nested multipart/mixed section is recursed and its
// file sections collected into a []FilePart.
var Multipart Codec = multipartCodec{}

type multipartCodec struct{}

func (multipartCodec) MediaType() string { return "multipart/form-data" }

func (multipartCodec) Decode(r io.Reader, params map[string]string, target reflect.Type) (any, error) {
	boundary, ok := params["boundary"]
	if !ok || boundary == "" {
		return nil, fmt.Errorf("codec: multipart/form-data requires a boundary parameter")
	}

	fields := make(map[string][]string)
	files := make(map[string][]FilePart)

	if err := readMultipartSections(multipart.NewReader(r, boundary), "", fields, files); err != nil {
		return nil, err
	}

	isPtr := target.Kind() == reflect.Ptr
	elem := target
	if isPtr {
		elem = target.Elem()
	}
	v := reflect.New(elem)
	if elem.Kind() == reflect.Struct {
		populateStruct(v.Elem(), fields)
		populateFiles(v.Elem(), files)
	}
	if isPtr {
		return v.Interface(), nil
	}
	return v.Elem().Interface(), nil
}

func readMultipartSections(mr *multipart.Reader, outer string, fields map[string][]string, files map[string][]FilePart) error {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		name := part.FormName()
		if name == "" {
			name = outer
		}
		if part.FileName() != "" {
			data, err := io.ReadAll(part)
			if err != nil {
				return err
			}
			files[name] = append(files[name], FilePart{
				Filename:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			})
			continue
		}

		if mixedBoundary := boundaryOf(part.Header.Get("Content-Type")); mixedBoundary != "" {
			data, err := io.ReadAll(part)
			if err != nil {
				return err
			}
			if err := readMultipartSections(multipart.NewReader(bytes.NewReader(data), mixedBoundary), name, fields, files); err != nil {
				return err
			}
			continue
		}

		data, err := io.ReadAll(part)
		if err != nil {
			return err
		}
		fields[name] = append(fields[name], string(data))
	}
}

func boundaryOf(contentType string) string {
	_, params, err := parseMediaTypeParams(contentType)
	if err != nil {
		return ""
	}
	return params["boundary"]
}

func populateFiles(v reflect.Value, files map[string][]FilePart) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		parts, ok := files[name]
		if !ok || len(parts) == 0 {
			continue
		}
		field := v.Field(i)
		switch {
		case field.Type() == reflect.TypeOf(FilePart{}):
			field.Set(reflect.ValueOf(parts[0]))
		case field.Type() == reflect.TypeOf([]FilePart{}):
			field.Set(reflect.ValueOf(parts))
		}
	}
}
