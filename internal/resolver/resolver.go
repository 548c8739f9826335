// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package resolver

import (
	"github.com/specialistvlad/profilegrid/internal/layer"
	"github.com/specialistvlad/profilegrid/internal/merge"
	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/nodeid"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Resolver turns layered configuration into ResourceIntents.
type Resolver struct {
	table  *DefaultsTable
	strict bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrict makes unknown resource types an error.
func WithStrict(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

// WithTable replaces the shared state defaults table.
func WithTable(table *DefaultsTable) Option {
	return func(r *Resolver) {
		if table != nil {
			r.table = table
		}
	}
}

// New creates a Resolver using the shared state defaults table.
func New(opts ...Option) *Resolver {
	r := &Resolver{table: StateDefaults()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strict reports whether unknown resource types are rejected.
func (r *Resolver) Strict() bool { return r.strict }

// Table returns the state defaults table in use.
func (r *Resolver) Table() *DefaultsTable { return r.table }

// StateDefaults returns the state-derived defaults for resourceType.
func (r *Resolver) StateDefaults(resourceType, resourceName string, state model.ProfileState) (cty.Value, error) {
	defaults, known := r.table.Defaults(resourceType, state)
	if !known && r.strict {
		return cty.NilVal, &UnknownResourceTypeError{Type: resourceType, Name: resourceName}
	}
	return defaults, nil
}

// Resolve computes the intent for resourceName of resourceType. layers hold
// resource mappings keyed by type and then by name; typeDefaults and
// perInstanceDefaults may be null.
func (r *Resolver) Resolve(
	resourceType, resourceName string,
	state model.ProfileState,
	layers []*layer.Layer,
	typeDefaults, perInstanceDefaults cty.Value,
) (model.ResourceIntent, error) {
	stateDefaults, err := r.StateDefaults(resourceType, resourceName, state)
	if err != nil {
		return model.ResourceIntent{}, err
	}

	instance, err := InstanceParams(layers, resourceType, resourceName)
	if err != nil {
		return model.ResourceIntent{}, err
	}

	addr := nodeid.New(resourceType, resourceName)
	for _, v := range []cty.Value{typeDefaults, perInstanceDefaults} {
		if value.IsSet(v) && !value.IsMapping(v) {
			return model.ResourceIntent{}, &ShapeError{Address: addr, Layer: "defaults", Got: value.KindOf(v).String()}
		}
	}

	params := merge.All(typeDefaults, stateDefaults, instance, perInstanceDefaults)
	return model.ResourceIntent{Type: resourceType, Name: resourceName, Params: params}, nil
}

// InstanceParams deep merges the entries for one resource across layers.
// A resource no layer mentions yields an empty mapping. A layer whose type
// entry is not a mapping defines no instances of that type and is skipped;
// callers enumerating addresses report it once.
func InstanceParams(layers []*layer.Layer, resourceType, resourceName string) (cty.Value, error) {
	acc := value.EmptyMapping()
	for _, l := range merge.Sorted(layers) {
		byType, ok := l.Get(resourceType)
		if !ok || !value.IsSet(byType) || !value.IsMapping(byType) {
			continue
		}
		params, ok := value.Get(byType, resourceName)
		if !ok || !value.IsSet(params) {
			continue
		}
		if !value.IsMapping(params) {
			return cty.NilVal, &ShapeError{
				Address: nodeid.New(resourceType, resourceName),
				Layer:   l.Name(),
				Got:     value.KindOf(params).String(),
			}
		}
		acc = merge.Values(acc, params)
	}
	return acc, nil
}
