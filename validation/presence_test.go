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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceMap_HasAndHasPrefix(t *testing.T) {
	t.Parallel()

	pm := PresenceMap{"address.city": true, "name": true}

	assert.True(t, pm.Has("name"))
	assert.False(t, pm.Has("address"))
	assert.True(t, pm.HasPrefix("address"))
	assert.True(t, pm.HasPrefix("address.city"))
	assert.False(t, pm.HasPrefix("missing"))

	var nilMap PresenceMap
	assert.False(t, nilMap.Has("x"))
	assert.False(t, nilMap.HasPrefix("x"))
}

func TestPresenceMap_LeafPaths(t *testing.T) {
	t.Parallel()

	pm := PresenceMap{
		"address":      true,
		"address.city": true,
		"items.0":      true,
		"items.0.name": true,
		"standalone":   true,
	}

	leaves := pm.LeafPaths()
	assert.NotContains(t, leaves, "address")
	assert.Contains(t, leaves, "address.city")
	assert.NotContains(t, leaves, "items.0")
	assert.Contains(t, leaves, "items.0.name")
	assert.Contains(t, leaves, "standalone")

	var nilMap PresenceMap
	assert.Nil(t, nilMap.LeafPaths())
}

func TestComputePresence(t *testing.T) {
	t.Parallel()

	t.Run("nested object and array", func(t *testing.T) {
		t.Parallel()
		raw := []byte(`{"user":{"name":"Alice","tags":["a","b"]}}`)
		pm, err := ComputePresence(raw)
		require.NoError(t, err)
		assert.True(t, pm.Has("user"))
		assert.True(t, pm.Has("user.name"))
		assert.True(t, pm.Has("user.tags"))
		assert.True(t, pm.Has("user.tags.0"))
		assert.True(t, pm.Has("user.tags.1"))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		pm, err := ComputePresence(nil)
		require.NoError(t, err)
		assert.Nil(t, pm)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()
		_, err := ComputePresence([]byte(`{not json`))
		require.Error(t, err)
	})
}
