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

// Package response defines the shaped, codec-agnostic result of
// handling a request: a status, headers, and a body. [OK], [Created],
// [NoContent], and [Redirect] build one from a handler's typed return
// value; [FromError] builds one from an error using the error
// taxonomy in [herr]. The pipeline's serializer stage is the only
// place a Response's body is actually encoded to bytes.
package response
