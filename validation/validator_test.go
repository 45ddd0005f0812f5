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

func TestNew_RejectsNegativeMaxErrors(t *testing.T) {
	t.Parallel()

	_, err := New(WithMaxErrors(-1))
	require.Error(t, err)
}

func TestMustNew_PanicsOnInvalidConfig(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNew(WithMaxErrors(-1))
	})
}

func TestValidator_ValidateUsesBaseOptions(t *testing.T) {
	t.Parallel()

	type User struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}

	v := MustNew(WithMaxErrors(1))
	errs := v.Validate(context.Background(), &User{})
	assert.True(t, errs.HasErrors())
	assert.Len(t, errs.Fields, 1)
	assert.True(t, errs.Truncated)
}

func TestValidator_ValidatePasses(t *testing.T) {
	t.Parallel()

	type User struct {
		Name string `json:"name" validate:"required"`
	}

	v := MustNew()
	errs := v.Validate(context.Background(), &User{Name: "x"})
	assert.False(t, errs.HasErrors())
}

func TestValidator_ValidateWithGroups(t *testing.T) {
	t.Parallel()

	v := MustNew()
	errs := v.Validate(context.Background(), &groupedUser{Name: "x"}, "create")
	assert.True(t, errs.Has("email"))
}

func TestValidator_ValidatePartial(t *testing.T) {
	t.Parallel()

	type User struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}

	v := MustNew()
	pm := PresenceMap{"name": true}
	errs := v.ValidatePartial(context.Background(), &User{Name: "x"}, pm)
	assert.False(t, errs.HasErrors())

	errs = v.ValidatePartial(context.Background(), &User{}, PresenceMap{"email": true})
	assert.True(t, errs.Has("email"))
}

func TestValidator_ValidatePartialWithGroups(t *testing.T) {
	t.Parallel()

	v := MustNew()
	pm := PresenceMap{"email": true}
	errs := v.ValidatePartial(context.Background(), &groupedUser{}, pm, "create")
	assert.True(t, errs.Has("email"))
}
