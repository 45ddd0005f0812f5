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
	"mime"
	"strconv"
	"strings"
)

// defaultCharset is assumed for any codec whose Content-Type carries
// no explicit charset parameter.
const defaultCharset = "utf-8"

// ParseMediaType splits a Content-Type header value into its media
// type and parameter map, defaulting a missing charset to UTF-8.
func ParseMediaType(contentType string) (string, map[string]string, error) {
	return parseMediaTypeParams(contentType)
}

func parseMediaTypeParams(contentType string) (string, map[string]string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", nil, err
	}
	if params == nil {
		params = map[string]string{}
	}
	if _, ok := params["charset"]; !ok {
		params["charset"] = defaultCharset
	}
	return mediaType, params, nil
}

// ParseAccept parses an HTTP Accept header into an ordered list of
// [AcceptEntry] values. An empty header yields an empty list (the
// registry then falls back to its default media type).
func ParseAccept(header string) []AcceptEntry {
	if header == "" {
		return nil
	}
	var entries []AcceptEntry
	for _, raw := range strings.Split(header, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ";")
		mediaType := strings.TrimSpace(parts[0])
		q := 1.0
		for _, param := range parts[1:] {
			param = strings.TrimSpace(param)
			if v, ok := strings.CutPrefix(param, "q="); ok {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					q = parsed
				}
			}
		}
		entries = append(entries, AcceptEntry{MediaType: mediaType, Q: q})
	}
	return entries
}
