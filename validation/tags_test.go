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

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagUser struct {
	Username string `json:"username" validate:"required,username"`
	Slug     string `json:"slug" validate:"required,slug"`
	Password string `json:"password" validate:"required,strong_password"`
	Email    string `json:"email" validate:"required,email"`
}

func TestValidateWithTags_BuiltinValidators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		user    tagUser
		wantErr bool
		code    string
	}{
		{
			name: "all valid",
			user: tagUser{Username: "john_doe", Slug: "john-doe", Password: "supersecret", Email: "john@example.com"},
		},
		{
			name:    "bad username",
			user:    tagUser{Username: "j", Slug: "john-doe", Password: "supersecret", Email: "john@example.com"},
			wantErr: true,
			code:    "tag.username",
		},
		{
			name:    "bad slug",
			user:    tagUser{Username: "john_doe", Slug: "John Doe", Password: "supersecret", Email: "john@example.com"},
			wantErr: true,
			code:    "tag.slug",
		},
		{
			name:    "weak password",
			user:    tagUser{Username: "john_doe", Slug: "john-doe", Password: "short", Email: "john@example.com"},
			wantErr: true,
			code:    "tag.strong_password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(context.Background(), &tt.user, WithStrategy(StrategyTags))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ErrorSet
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.HasCode(tt.code))
		})
	}
}

type notnullUser struct {
	Tags []string `json:"tags" validate:"notnull"`
}

func TestValidateWithTags_Notnull(t *testing.T) {
	t.Parallel()

	t.Run("nil slice fails", func(t *testing.T) {
		t.Parallel()
		err := Validate(context.Background(), &notnullUser{}, WithStrategy(StrategyTags))
		require.Error(t, err)
	})

	t.Run("empty non-nil slice passes", func(t *testing.T) {
		t.Parallel()
		err := Validate(context.Background(), &notnullUser{Tags: []string{}}, WithStrategy(StrategyTags))
		assert.NoError(t, err)
	})
}

func TestValidateWithTags_FieldNameMapper(t *testing.T) {
	t.Parallel()

	type User struct {
		UserName string `json:"user_name" validate:"required"`
	}

	err := Validate(context.Background(), &User{}, WithStrategy(StrategyTags),
		WithFieldNameMapper(func(name string) string { return "mapped." + name }))
	require.Error(t, err)
	var verr *ErrorSet
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "mapped.user_name", verr.Fields[0].Path)
}

func TestValidateWithTags_Redactor(t *testing.T) {
	t.Parallel()

	type User struct {
		Password string `json:"password" validate:"required,strong_password"`
	}

	err := Validate(context.Background(), &User{Password: "short"}, WithStrategy(StrategyTags),
		WithRedactor(func(path string) bool { return path == "password" }))
	require.Error(t, err)
	var verr *ErrorSet
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "***REDACTED***", verr.Fields[0].InvalidValue)
}

type groupedUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email" groups:"create"`
}

func TestValidateWithTags_Groups(t *testing.T) {
	t.Parallel()

	t.Run("ungrouped field always validated", func(t *testing.T) {
		t.Parallel()
		err := Validate(context.Background(), &groupedUser{Email: "a@b.com"}, WithStrategy(StrategyTags), WithGroups("update"))
		require.Error(t, err)
		var verr *ErrorSet
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("name"))
		assert.False(t, verr.Has("email"))
	})

	t.Run("grouped field validated when group matches", func(t *testing.T) {
		t.Parallel()
		err := Validate(context.Background(), &groupedUser{Name: "x"}, WithStrategy(StrategyTags), WithGroups("create"))
		require.Error(t, err)
		var verr *ErrorSet
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("email"))
	})

	t.Run("no groups option validates everything", func(t *testing.T) {
		t.Parallel()
		err := Validate(context.Background(), &groupedUser{}, WithStrategy(StrategyTags))
		require.Error(t, err)
		var verr *ErrorSet
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("name"))
		assert.True(t, verr.Has("email"))
	})
}

func TestValidateWithTags_PartialLeafsOnly(t *testing.T) {
	t.Parallel()

	type Address struct {
		City string `json:"city" validate:"required"`
	}
	type User struct {
		Name    string  `json:"name" validate:"required"`
		Address Address `json:"address"`
	}

	pm := PresenceMap{"address.city": true}
	err := Validate(context.Background(), &User{Address: Address{City: ""}}, WithStrategy(StrategyTags), WithPartial(true), WithPresence(pm))
	require.Error(t, err)
	var verr *ErrorSet
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("address.city"))
	assert.False(t, verr.Has("name"))
}

func TestValidateWithTags_PartialNoPresentLeaves(t *testing.T) {
	t.Parallel()

	type User struct {
		Name string `json:"name" validate:"required"`
	}

	err := Validate(context.Background(), &User{}, WithStrategy(StrategyTags), WithPartial(true), WithPresence(PresenceMap{}))
	assert.NoError(t, err)
}

func TestValidateWithTags_MaxErrors(t *testing.T) {
	t.Parallel()

	type User struct {
		A string `json:"a" validate:"required"`
		B string `json:"b" validate:"required"`
		C string `json:"c" validate:"required"`
	}

	err := Validate(context.Background(), &User{}, WithStrategy(StrategyTags), WithMaxErrors(2))
	require.Error(t, err)
	var verr *ErrorSet
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.True(t, verr.Truncated)
}

func TestValidateWithTags_NonStructValuesPass(t *testing.T) {
	t.Parallel()

	var s string = "x"
	assert.NoError(t, validateWithTags(s, defaultConfig()))

	var nilPtr *tagUser
	assert.NoError(t, validateWithTags(nilPtr, defaultConfig()))
}

func TestRegisterTag_FrozenAfterFirstValidation(t *testing.T) {
	t.Parallel()

	// Run one tag validation, which freezes registration for the
	// remaining life of the process.
	type Trivial struct {
		X string `validate:"required"`
	}
	_ = Validate(context.Background(), &Trivial{X: "x"}, WithStrategy(StrategyTags))

	err := RegisterTag("some_new_tag", func(fl validator.FieldLevel) bool {
		return true
	})
	assert.ErrorIs(t, err, ErrCannotRegisterValidators)
}
