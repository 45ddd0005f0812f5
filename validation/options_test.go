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

func TestDefaultConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	assert.Equal(t, StrategyAuto, cfg.strategy)
	assert.False(t, cfg.runAll)
	assert.False(t, cfg.requireAny)
	assert.False(t, cfg.partial)
	assert.Equal(t, 0, cfg.maxErrors)
	assert.Equal(t, 0, cfg.maxFields)
	assert.Equal(t, 0, cfg.maxCachedSchemas)
	assert.False(t, cfg.disallowUnknownFields)
	assert.NotNil(t, cfg.ctx)
	assert.False(t, cfg.ctxExplicit)
}

func TestOptions_ApplyToConfig(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), tenantCtxKey{}, "x")
	cfg := defaultConfig(
		WithStrategy(StrategyTags),
		WithRunAll(true),
		WithRequireAny(true),
		WithPartial(true),
		WithMaxErrors(5),
		WithMaxFields(100),
		WithMaxCachedSchemas(50),
		WithDisallowUnknownFields(true),
		WithContext(ctx),
		WithPresence(PresenceMap{"a": true}),
		WithCustomSchema("id", "{}"),
		WithFieldNameMapper(func(s string) string { return s }),
		WithRedactor(func(s string) bool { return false }),
		WithGroups("g1", "g2"),
	)

	assert.Equal(t, StrategyTags, cfg.strategy)
	assert.True(t, cfg.runAll)
	assert.True(t, cfg.requireAny)
	assert.True(t, cfg.partial)
	assert.Equal(t, 5, cfg.maxErrors)
	assert.Equal(t, 100, cfg.maxFields)
	assert.Equal(t, 50, cfg.maxCachedSchemas)
	assert.True(t, cfg.disallowUnknownFields)
	assert.True(t, cfg.ctxExplicit)
	assert.Equal(t, ctx, cfg.ctx)
	assert.True(t, cfg.presence["a"])
	assert.Equal(t, "id", cfg.customSchemaID)
	assert.Equal(t, "{}", cfg.customSchema)
	assert.NotNil(t, cfg.fieldNameMapper)
	assert.NotNil(t, cfg.redactor)
	assert.Equal(t, []string{"g1", "g2"}, cfg.groups)
}

func TestWithCustomValidator_StoresFunc(t *testing.T) {
	t.Parallel()

	called := false
	cfg := defaultConfig(WithCustomValidator(func(v any) error {
		called = true
		return nil
	}))

	require.NotNil(t, cfg.customValidator)
	_ = cfg.customValidator(nil)
	assert.True(t, called)
}
