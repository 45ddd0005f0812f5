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

package route_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/lmpessoa/goservices/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type User struct {
	ID int64
}

type getUserParams struct {
	ID int64 `path:"id" min:"1"`
}

type listUsersParams struct {
	Limit int `query:"limit"`
}

type createUserBody struct {
	Name string `json:"name"`
}

type createUserParams struct {
	Body createUserBody `body:""`
}

type UserResource struct{}

func (r *UserResource) Get(ctx context.Context, p getUserParams) (User, error) {
	return User{ID: p.ID}, nil
}

func (r *UserResource) GetList(ctx context.Context, p listUsersParams) ([]User, error) {
	return nil, nil
}

func (r *UserResource) Post(ctx context.Context, p createUserParams) (User, error) {
	return User{}, nil
}

func newTestTable(t *testing.T) (*route.Table, []error) {
	t.Helper()
	table := route.NewTable(nil)
	_, errs := table.Register(reflect.TypeOf(UserResource{}), "")
	return table, errs
}

func TestRegister_BuildsEntries(t *testing.T) {
	table, errs := newTestTable(t)
	require.Empty(t, errs)

	result := table.Match(&route.Request{Method: "GET", Path: "/user/42"})
	assert.Equal(t, route.StatusOK, result.Status)
	assert.Equal(t, "42", result.Params["id"])
}

func TestMatch_NotFound(t *testing.T) {
	table, _ := newTestTable(t)
	result := table.Match(&route.Request{Method: "GET", Path: "/nope"})
	assert.Equal(t, route.StatusNotFound, result.Status)
}

func TestMatch_MethodNotAllowed(t *testing.T) {
	table, _ := newTestTable(t)
	result := table.Match(&route.Request{Method: "DELETE", Path: "/user/42"})
	assert.Equal(t, route.StatusMethodNotAllowed, result.Status)
}

func TestMatch_BadRequestOnOutOfRangeBound(t *testing.T) {
	table, _ := newTestTable(t)
	result := table.Match(&route.Request{Method: "GET", Path: "/user/0"})
	assert.Equal(t, route.StatusBadRequest, result.Status)
}

func TestRegister_DuplicateRejected(t *testing.T) {
	table := route.NewTable(nil)
	_, errs := table.Register(reflect.TypeOf(UserResource{}), "")
	require.Empty(t, errs)

	_, errs = table.Register(reflect.TypeOf(UserResource{}), "")
	require.NotEmpty(t, errs)
}

func TestReverseLookup(t *testing.T) {
	table, _ := newTestTable(t)
	path, err := table.ReverseLookup(reflect.TypeOf(UserResource{}), "Get", 42)
	require.NoError(t, err)
	assert.Equal(t, "/user/42", path)
}

func TestReverseLookup_EmptyMethodRejected(t *testing.T) {
	table, _ := newTestTable(t)
	_, err := table.ReverseLookup(reflect.TypeOf(UserResource{}), "")
	assert.Error(t, err)
}
