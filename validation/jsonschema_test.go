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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schemaProvidedUser struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (u schemaProvidedUser) JSONSchema() (id string, schema string) {
	return "schema-provided-user-v1", `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name"]
	}`
}

func TestValidateWithSchema_ProviderInterface(t *testing.T) {
	t.Parallel()

	t.Run("valid passes", func(t *testing.T) {
		t.Parallel()
		err := Validate(context.Background(), schemaProvidedUser{Name: "x", Age: 1}, WithStrategy(StrategyJSONSchema))
		assert.NoError(t, err)
	})

	t.Run("missing required fails", func(t *testing.T) {
		t.Parallel()
		err := Validate(context.Background(), schemaProvidedUser{Age: 1}, WithStrategy(StrategyJSONSchema))
		require.Error(t, err)
		var verr *ErrorSet
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.HasErrors())
	})
}

func TestValidateWithSchema_CustomSchemaOption(t *testing.T) {
	t.Parallel()

	type Plain struct {
		Email string `json:"email"`
	}

	schema := `{"type":"object","properties":{"email":{"type":"string","format":"email"}},"required":["email"]}`
	err := Validate(context.Background(), &Plain{Email: "not-an-email"}, WithStrategy(StrategyJSONSchema),
		WithCustomSchema("custom-email", schema))
	require.Error(t, err)
}

func TestValidateWithSchema_NoSchemaIsNoop(t *testing.T) {
	t.Parallel()

	type Plain struct{ X int }
	err := Validate(context.Background(), &Plain{}, WithStrategy(StrategyJSONSchema))
	assert.NoError(t, err)
}

func TestValidateWithSchema_CompileErrorSurfacesAsFieldError(t *testing.T) {
	t.Parallel()

	type Plain struct{ X int }
	err := Validate(context.Background(), &Plain{}, WithStrategy(StrategyJSONSchema),
		WithCustomSchema("broken-schema", `{not valid json`))
	require.Error(t, err)
	var verr *ErrorSet
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "schema_compile_error", verr.Fields[0].Code)
}

func TestValidateWithSchema_UsesRawJSONFromContext(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"name":"from-context"}`)
	ctx := InjectRawJSONCtx(context.Background(), raw)

	err := Validate(ctx, schemaProvidedUser{}, WithStrategy(StrategyJSONSchema), WithContext(ctx))
	assert.NoError(t, err)
}

func TestPruneByPresence_ObjectsAndArrays(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"name": "x",
		"age":  1,
		"tags": []any{"a", "b"},
	}
	pm := PresenceMap{"name": true, "tags": true, "tags.0": true}

	pruned := pruneByPresence(data, "", pm, 0)
	m, ok := pruned.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "name")
	assert.NotContains(t, m, "age")

	tags, ok := m["tags"].([]any)
	require.True(t, ok)
	require.Len(t, tags, 2)
	assert.Equal(t, "a", tags[0])
	assert.Nil(t, tags[1])
}

func TestGetOrCompileSchema_CachesById(t *testing.T) {
	t.Parallel()

	schemaJSON := `{"type":"object"}`
	s1, err := getOrCompileSchema("cache-key-test", schemaJSON)
	require.NoError(t, err)
	s2, err := getOrCompileSchema("cache-key-test", schemaJSON)
	require.NoError(t, err)
	assert.Same(t, s1, s2)
}
