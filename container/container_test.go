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

package container_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/lmpessoa/goservices/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Logger struct{ prefix string }

type OrderService struct {
	Logger Logger
}

func (s OrderService) Greeting() string { return s.Logger.prefix + "order-service" }

func TestContainer_ResolveProcessInstance(t *testing.T) {
	c := container.New()
	loggerType := reflect.TypeOf(Logger{})
	require.NoError(t, c.Register(container.FromInstance(loggerType, Logger{prefix: "x:"})))

	v, err := c.Resolve(context.Background(), loggerType)
	require.NoError(t, err)
	assert.Equal(t, Logger{prefix: "x:"}, v)
}

func TestContainer_ResolveConcreteTypeWithDependency(t *testing.T) {
	c := container.New()
	loggerType := reflect.TypeOf(Logger{})
	svcType := reflect.TypeOf(OrderService{})

	require.NoError(t, c.Register(container.FromInstance(loggerType, Logger{prefix: "log:"})))
	require.NoError(t, c.Register(container.FromType(svcType, container.Call)))

	v, err := c.Resolve(context.Background(), svcType)
	require.NoError(t, err)
	svc := v.(OrderService)
	assert.Equal(t, "log:order-service", svc.Greeting())
}

func TestContainer_RequestLifetimeCachesWithinScope(t *testing.T) {
	c := container.New()
	svcType := reflect.TypeOf(OrderService{})
	require.NoError(t, c.Register(container.FromType(svcType, container.Request)))

	ctx := container.WithRequestScope(context.Background())
	a, err := c.Resolve(ctx, svcType)
	require.NoError(t, err)
	b, err := c.Resolve(ctx, svcType)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestContainer_RequestLifetimeWithoutScopeFails(t *testing.T) {
	c := container.New()
	svcType := reflect.TypeOf(OrderService{})
	require.NoError(t, c.Register(container.FromType(svcType, container.Request)))

	_, err := c.Resolve(context.Background(), svcType)
	assert.Error(t, err)
}

type processHolder struct {
	Dep OrderService
}

func TestContainer_LifetimeSafetyViolationRejected(t *testing.T) {
	c := container.New()
	svcType := reflect.TypeOf(OrderService{})
	require.NoError(t, c.Register(container.FromType(svcType, container.Request)))

	holderType := reflect.TypeOf(processHolder{})
	err := c.Register(container.FromType(holderType, container.Process))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot depend on")
}

type factoryHolder struct {
	Dep OrderService
}

func newFactoryHolder(svc OrderService) factoryHolder {
	return factoryHolder{Dep: svc}
}

func TestContainer_LifetimeSafetyViolationRejectedForFactory(t *testing.T) {
	c := container.New()
	svcType := reflect.TypeOf(OrderService{})
	require.NoError(t, c.Register(container.FromType(svcType, container.Request)))

	holderType := reflect.TypeOf(factoryHolder{})
	err := c.Register(container.FromFactory(holderType, newFactoryHolder, container.Process))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot depend on")
}

func TestContainer_DuplicateRegistrationRejected(t *testing.T) {
	c := container.New()
	loggerType := reflect.TypeOf(Logger{})
	require.NoError(t, c.Register(container.FromInstance(loggerType, Logger{})))

	err := c.Register(container.FromInstance(loggerType, Logger{}))
	assert.Error(t, err)
}

func TestContainer_Invoke(t *testing.T) {
	c := container.New()
	loggerType := reflect.TypeOf(Logger{})
	require.NoError(t, c.Register(container.FromInstance(loggerType, Logger{prefix: "p:"})))

	svc := OrderService{Logger: Logger{prefix: "p:"}}
	out, err := c.Invoke(context.Background(), svc, "Greeting")
	require.NoError(t, err)
	assert.Equal(t, "p:order-service", out)
}

func TestContainer_InvokeUnknownMethod(t *testing.T) {
	c := container.New()
	_, err := c.Invoke(context.Background(), OrderService{}, "DoesNotExist")
	assert.Error(t, err)
}

func TestLifetime_String(t *testing.T) {
	assert.Equal(t, "call", container.Call.String())
	assert.Equal(t, "request", container.Request.String())
	assert.Equal(t, "process", container.Process.String())
}
