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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schemaUserImpl struct {
	Name string
}

func (s *schemaUserImpl) JSONSchema() (id string, schema string) {
	return "user", `{"type": "object"}`
}

func TestValidate_RunAll_MultipleStrategies(t *testing.T) {
	t.Parallel()
	type User struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}

	tests := []struct {
		name      string
		user      User
		wantError bool
	}{
		{
			name:      "missing email fails",
			user:      User{Name: "John"},
			wantError: true,
		},
		{
			name:      "missing both fields fails",
			user:      User{},
			wantError: true,
		},
		{
			name:      "valid user passes",
			user:      User{Name: "John", Email: "john@example.com"},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(context.Background(), &tt.user, WithRunAll(true))
			if tt.wantError {
				require.Error(t, err)
				var verr *ErrorSet
				require.ErrorAs(t, err, &verr)
				assert.Greater(t, len(verr.Fields), 0)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_RunAll_RequireAny(t *testing.T) {
	t.Parallel()
	type User struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}

	tests := []struct {
		name      string
		user      User
		wantError bool
	}{
		{
			name:      "valid user passes",
			user:      User{Name: "John", Email: "john@example.com"},
			wantError: false,
		},
		{
			name:      "all strategies fail",
			user:      User{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(context.Background(), &tt.user, WithRunAll(true), WithRequireAny(true))
			if tt.wantError {
				require.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NilAndInvalidValues(t *testing.T) {
	t.Parallel()

	t.Run("nil value", func(t *testing.T) {
		t.Parallel()
		err := Validate(context.Background(), nil)
		require.Error(t, err)
		var verr *ErrorSet
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "nil", verr.Fields[0].Code)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()
		type User struct {
			Name string `validate:"required"`
		}
		var u *User
		err := Validate(context.Background(), u)
		require.Error(t, err)
		var verr *ErrorSet
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "nil_pointer", verr.Fields[0].Code)
	})
}

func TestValidate_CustomValidatorRunsFirst(t *testing.T) {
	t.Parallel()
	type User struct {
		Age int
	}

	called := false
	err := Validate(context.Background(), &User{Age: 15}, WithCustomValidator(func(v any) error {
		called = true
		u := v.(User)
		if u.Age < 18 {
			return FieldError{Path: "age", Code: "tag.min_age", Message: "must be 18 or older"}
		}
		return nil
	}))

	assert.True(t, called)
	require.Error(t, err)
	var verr *ErrorSet
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age", verr.Fields[0].Path)
}

func TestValidate_StrategyAutoPrefersInterfaceOverTags(t *testing.T) {
	t.Parallel()

	v := &selfValidatingUser{Name: ""}
	err := Validate(context.Background(), v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custom failure")
}

type selfValidatingUser struct {
	Name string `validate:"required"`
}

func (s *selfValidatingUser) Validate() error {
	return errCustomFailure
}

var errCustomFailure = errors.New("custom failure")

func TestValidate_JSONSchemaStrategy(t *testing.T) {
	t.Parallel()
	u := &schemaUserImpl{Name: "x"}
	err := Validate(context.Background(), u, WithStrategy(StrategyJSONSchema))
	assert.NoError(t, err)
}

func TestValidate_UnknownStrategy(t *testing.T) {
	t.Parallel()
	type Plain struct{ X int }
	err := Validate(context.Background(), &Plain{}, WithStrategy(Strategy(99)))
	require.Error(t, err)
	var verr *ErrorSet
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unknown_strategy", verr.Fields[0].Code)
}

func TestValidatePartial_SkipsAbsentRequiredFields(t *testing.T) {
	t.Parallel()
	type Address struct {
		City string `json:"city" validate:"required"`
	}
	type User struct {
		Name    string  `json:"name" validate:"required"`
		Email   string  `json:"email" validate:"required,email"`
		Address Address `json:"address"`
	}

	pm := PresenceMap{"name": true}
	err := ValidatePartial(context.Background(), &User{Name: "John"}, pm)
	assert.NoError(t, err)
}

func TestValidatePartial_ValidatesPresentFields(t *testing.T) {
	t.Parallel()
	type User struct {
		Email string `json:"email" validate:"required,email"`
	}

	pm := PresenceMap{"email": true}
	err := ValidatePartial(context.Background(), &User{Email: "not-an-email"}, pm)
	require.Error(t, err)
	var verr *ErrorSet
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Fields[0].Path)
}
