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

// Package codec maps media types to [Codec] implementations and
// negotiates the best one for a request's Accept header.
//
//	reg := codec.NewRegistry()
//	reg.Register(codec.JSON)
//	reg.Register(codec.Form)
//	reg.Register(codec.Multipart)
//
//	c, err := reg.Negotiate(codec.ParseAccept(r.Header.Get("Accept")))
//	if err != nil {
//		// codec.ErrNoCodec: respond 406 Not Acceptable
//	}
//
// [JSON], [Form], and [Multipart] are always available; [XML] is
// registered only when an application explicitly enables it.
package codec
