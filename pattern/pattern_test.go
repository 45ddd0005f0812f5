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

package pattern_test

import (
	"errors"
	"testing"

	"github.com/lmpessoa/goservices/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Literal(t *testing.T) {
	p, err := pattern.Parse("/users/active", nil)
	require.NoError(t, err)

	vars, ok := p.Match("/users/active")
	assert.True(t, ok)
	assert.Empty(t, vars)

	_, ok = p.Match("/users/inactive")
	assert.False(t, ok)
}

func TestParse_IntVariable(t *testing.T) {
	p, err := pattern.Parse("/users/{id}", []pattern.ParamSpec{
		{Name: "id", Kind: pattern.KindInt64},
	})
	require.NoError(t, err)

	vars, ok := p.Match("/users/42")
	require.True(t, ok)
	assert.Equal(t, "42", vars["id"])

	_, ok = p.Match("/users/abc")
	assert.False(t, ok)
}

func TestParse_UUIDVariable(t *testing.T) {
	p, err := pattern.Parse("/orders/{orderID}", []pattern.ParamSpec{
		{Name: "orderID", Kind: pattern.KindUUID},
	})
	require.NoError(t, err)

	vars, ok := p.Match("/orders/550e8400-e29b-41d4-a716-446655440000")
	require.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", vars["orderID"])

	_, ok = p.Match("/orders/not-a-uuid")
	assert.False(t, ok)
}

func TestParse_StringWithMaxLength(t *testing.T) {
	maxV := int64(3)
	p, err := pattern.Parse("/tags/{tag}", []pattern.ParamSpec{
		{Name: "tag", Kind: pattern.KindString, Max: &maxV},
	})
	require.NoError(t, err)

	_, ok := p.Match("/tags/abc")
	assert.True(t, ok)

	_, ok = p.Match("/tags/abcd")
	assert.False(t, ok)
}

func TestParse_CatchAll(t *testing.T) {
	p, err := pattern.Parse("/files/{path}", []pattern.ParamSpec{
		{Name: "path", Kind: pattern.KindString, CatchAll: true, Nilable: true},
	})
	require.NoError(t, err)

	vars, ok := p.Match("/files/a/b/c.txt")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c.txt"}, pattern.ParseCatchAll(vars["path"]))

	vars, ok = p.Match("/files")
	require.True(t, ok)
	assert.Empty(t, pattern.ParseCatchAll(vars["path"]))
}

func TestParse_CatchAllNotEmpty(t *testing.T) {
	p, err := pattern.Parse("/files/{path}", []pattern.ParamSpec{
		{Name: "path", Kind: pattern.KindString, CatchAll: true, NotEmpty: true, Nilable: true},
	})
	require.NoError(t, err)

	_, ok := p.Match("/files")
	assert.False(t, ok)

	_, ok = p.Match("/files/a")
	assert.True(t, ok)
}

func TestParse_AdjacentVariablesRejected(t *testing.T) {
	_, err := pattern.Parse("/users/{id}{suffix}", []pattern.ParamSpec{
		{Name: "id", Kind: pattern.KindInt64},
		{Name: "suffix", Kind: pattern.KindString},
	})
	require.Error(t, err)
	var perr *pattern.PatternError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, pattern.ErrInvalid)
}

func TestParse_MissingParamSpec(t *testing.T) {
	_, err := pattern.Parse("/users/{id}", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, pattern.ErrInvalid)
}

func TestParse_QueryOnlyParamInPathRejected(t *testing.T) {
	_, err := pattern.Parse("/users/{id}", []pattern.ParamSpec{
		{Name: "id", Kind: pattern.KindInt64, Query: true},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, pattern.ErrInvalid)
}

func TestParse_NilableParamInPathRejected(t *testing.T) {
	_, err := pattern.Parse("/users/{id}", []pattern.ParamSpec{
		{Name: "id", Kind: pattern.KindString, Nilable: true},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, pattern.ErrInvalid)
}

func TestParse_EnumWithoutValuesRejected(t *testing.T) {
	_, err := pattern.Parse("/status/{state}", []pattern.ParamSpec{
		{Name: "state", Kind: pattern.KindEnum},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, pattern.ErrInvalid)
}

func TestPattern_Less_MoreLiteralWins(t *testing.T) {
	specific, err := pattern.Parse("/users/active", nil)
	require.NoError(t, err)
	variable, err := pattern.Parse("/users/{id}", []pattern.ParamSpec{
		{Name: "id", Kind: pattern.KindString},
	})
	require.NoError(t, err)

	assert.True(t, specific.Less(variable))
	assert.False(t, variable.Less(specific))
}

func TestPattern_Less_CatchAllSortsLast(t *testing.T) {
	exact, err := pattern.Parse("/files/{name}", []pattern.ParamSpec{
		{Name: "name", Kind: pattern.KindString},
	})
	require.NoError(t, err)
	catchAll, err := pattern.Parse("/files/{path}", []pattern.ParamSpec{
		{Name: "path", Kind: pattern.KindString, CatchAll: true, Nilable: true},
	})
	require.NoError(t, err)

	assert.True(t, exact.Less(catchAll))
	assert.False(t, catchAll.Less(exact))
}

func TestParseInt64Bounds(t *testing.T) {
	minV, maxV := int64(1), int64(100)
	ps := pattern.ParamSpec{Min: &minV, Max: &maxV}

	assert.True(t, pattern.ParseInt64Bounds(ps, 50))
	assert.False(t, pattern.ParseInt64Bounds(ps, 0))
	assert.False(t, pattern.ParseInt64Bounds(ps, 101))
}
