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

// Package pattern turns a route template such as
// "/users/{id}/orders/{orderID}" into a [Pattern] that can match
// incoming paths and bind their variables to typed values.
//
// # Parsing
//
//	p, err := pattern.Parse("/users/{id}", []pattern.ParamSpec{
//		{Name: "id", Kind: pattern.KindInt64},
//	})
//	if err != nil {
//		var perr *pattern.PatternError
//		errors.As(err, &perr)
//	}
//
// # Matching
//
//	vars, ok := p.Match("/users/42")
//	// vars["id"] == "42"
//
// # Specificity
//
// Two patterns that could both match the same path are ordered with
// [Pattern.Less]: the one with more literal characters wins, then the
// one with more literal segments, then a pattern without a catch-all
// beats one with, and between two catch-alls the one whose catch-all
// sits last wins. A [route.Table] sorts its registered patterns with
// this order so the most specific match always wins.
package pattern
