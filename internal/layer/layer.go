// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package layer defines ConfigLayer, one named and prioritised source of
// configuration values ("auto-conf defaults", "explicit resources", ...).
//
// A Layer is immutable once constructed. Its data is always a mapping; any
// other shape, or external data that is not tree-shaped, is rejected with an
// InvalidLayerError so that the rest of a resolution pass can go on without
// the offending layer.
package layer

import (
	"fmt"

	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// InvalidLayerError reports configuration data that cannot form a layer.
type InvalidLayerError struct {
	Layer string
	Err   error
}

func (e *InvalidLayerError) Error() string {
	return fmt.Sprintf("invalid configuration layer %q: %v", e.Layer, e.Err)
}

func (e *InvalidLayerError) Unwrap() error {
	return e.Err
}

// Layer is one source of configuration values.
type Layer struct {
	name     string
	priority int
	data     cty.Value
}

// New creates a layer from an already converted value. A null value yields
// an empty layer.
func New(name string, priority int, data cty.Value) (*Layer, error) {
	if data.IsNull() {
		data = value.EmptyMapping()
	}
	if !value.IsMapping(data) {
		return nil, &InvalidLayerError{
			Layer: name,
			Err:   fmt.Errorf("expected a mapping, got a %s", value.KindOf(data)),
		}
	}
	if !data.IsWhollyKnown() {
		return nil, &InvalidLayerError{Layer: name, Err: fmt.Errorf("data contains unknown values")}
	}
	return &Layer{name: name, priority: priority, data: data}, nil
}

// FromNative creates a layer from native Go data, typically decoded from an
// external source.
func FromNative(name string, priority int, data map[string]any) (*Layer, error) {
	v, err := value.FromNative(data)
	if err != nil {
		return nil, &InvalidLayerError{Layer: name, Err: err}
	}
	return New(name, priority, v)
}

// Empty returns a layer without any keys.
func Empty(name string, priority int) *Layer {
	return &Layer{name: name, priority: priority, data: value.EmptyMapping()}
}

// Name returns the layer's name.
func (l *Layer) Name() string { return l.name }

// Priority returns the layer's merge precedence; higher wins.
func (l *Layer) Priority() int { return l.priority }

// Data returns the whole mapping held by the layer.
func (l *Layer) Data() cty.Value { return l.data }

// Get returns the value stored under key. The second result is false when
// the layer does not define key.
func (l *Layer) Get(key string) (cty.Value, bool) {
	return value.Get(l.data, key)
}

// Keys returns the layer's top-level keys in sorted order.
func (l *Layer) Keys() []string {
	return value.Keys(l.data)
}

// Len returns the number of top-level keys.
func (l *Layer) Len() int {
	return len(value.Attributes(l.data))
}

func (l *Layer) String() string {
	return fmt.Sprintf("%s(priority=%d)", l.name, l.priority)
}
