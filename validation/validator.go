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
	"fmt"
)

// Validator is a reusable, concurrency-safe validation engine configured
// once with a base set of [Option]s (strategy, max errors, redactor, ...).
// It is the component named "Validator" in the engine's design: constraint
// discovery on types/fields/methods/parameters/return values, producing an
// [ErrorSet].
//
// Use [New] or [MustNew] to build one, or call the package-level [Validate]
// for zero-configuration, one-off validation.
//
// Example:
//
//	v := validation.MustNew(validation.WithMaxErrors(20))
//	if errs := v.Validate(ctx, &req, "create"); errs.HasErrors() {
//	    // errs is an ErrorSet
//	}
type Validator struct {
	base []Option
}

// New creates a [Validator] with the given base options. The options are
// prepended to every call's own options, so a per-call option overrides
// the base.
func New(opts ...Option) (*Validator, error) {
	// Validate eagerly so misconfiguration surfaces at construction, not at
	// the first Validate call (mirrors binder.New / router.New's New/MustNew
	// idiom used throughout this codebase).
	cfg := defaultConfig(opts...)
	if cfg.maxErrors < 0 {
		return nil, fmt.Errorf("%w: maxErrors must be >= 0", ErrInvalidType)
	}

	return &Validator{base: opts}, nil
}

// MustNew creates a [Validator], panicking if configuration is invalid.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("validation.MustNew: %v", err))
	}

	return v
}

// Validate walks value per the resolved strategy (see [Strategy]) and
// returns the resulting [ErrorSet]. A zero-length ErrorSet (HasErrors
// false) means value passed. When groups are given, tag-strategy
// constraints are restricted to fields tagged with one of those groups
// (see [WithGroups]); fields without a `groups` tag are always evaluated.
func (v *Validator) Validate(ctx context.Context, value any, groups ...string) ErrorSet {
	opts := v.base
	if len(groups) > 0 {
		opts = append(append([]Option{}, v.base...), WithGroups(groups...))
	}

	err := Validate(ctx, value, opts...)
	if err == nil {
		return ErrorSet{}
	}

	if es, ok := err.(*ErrorSet); ok {
		return *es
	}

	var es ErrorSet
	es.AddError(err)

	return es
}

// ValidatePartial validates only the fields marked present in pm, skipping
// "required"-family constraints on absent fields (PATCH semantics).
func (v *Validator) ValidatePartial(ctx context.Context, value any, pm PresenceMap, groups ...string) ErrorSet {
	opts := append(append([]Option{}, v.base...), WithPresence(pm), WithPartial(true))
	if len(groups) > 0 {
		opts = append(opts, WithGroups(groups...))
	}

	err := Validate(ctx, value, opts...)
	if err == nil {
		return ErrorSet{}
	}

	if es, ok := err.(*ErrorSet); ok {
		return *es
	}

	var es ErrorSet
	es.AddError(err)

	return es
}
