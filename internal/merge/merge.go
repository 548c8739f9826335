// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package merge implements the deep merge rule used to combine configuration
// layers.
//
// Layers are folded in ascending priority order. When both the accumulated
// value and the next value are mappings they are merged key by key, recursing
// on every key both define. In every other case the next value replaces the
// accumulated one entirely, including when the types differ.
package merge

import (
	"sort"

	"github.com/specialistvlad/profilegrid/internal/layer"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Values merges high over low.
func Values(low, high cty.Value) cty.Value {
	if !value.IsMapping(low) || !value.IsMapping(high) {
		return high
	}

	attrs := value.Attributes(low)
	merged := make(map[string]cty.Value, len(attrs))
	for k, v := range attrs {
		merged[k] = v
	}
	for k, hv := range value.Attributes(high) {
		if lv, ok := merged[k]; ok {
			merged[k] = Values(lv, hv)
			continue
		}
		merged[k] = hv
	}
	return value.Mapping(merged)
}

// Overlay is the two-layer form of Merge: high is merged over low with the
// same recursive rule. Unset (null) sides are ignored.
func Overlay(high, low cty.Value) cty.Value {
	switch {
	case !value.IsSet(high):
		return low
	case !value.IsSet(low):
		return high
	}
	return Values(low, high)
}

// All folds values from lowest to highest precedence, skipping unset ones.
// The result is an empty mapping when nothing is set.
func All(values ...cty.Value) cty.Value {
	acc := value.EmptyMapping()
	for _, v := range values {
		if !value.IsSet(v) {
			continue
		}
		acc = Values(acc, v)
	}
	return acc
}

// Merge resolves key across layers. The second result is false when no
// layer defines key; callers must treat that as "no value" rather than as an
// empty mapping.
func Merge(layers []*layer.Layer, key string) (cty.Value, bool) {
	var (
		acc   cty.Value
		found bool
	)
	for _, l := range Sorted(layers) {
		v, ok := l.Get(key)
		if !ok {
			continue
		}
		if !found {
			acc, found = v, true
			continue
		}
		acc = Values(acc, v)
	}
	if !found {
		return cty.NilVal, false
	}
	return acc, true
}

// Flatten merges every key of layers into a single layer named name.
func Flatten(name string, priority int, layers []*layer.Layer) (*layer.Layer, error) {
	acc := value.EmptyMapping()
	for _, l := range Sorted(layers) {
		acc = Values(acc, l.Data())
	}
	return layer.New(name, priority, acc)
}

// Sorted returns layers ordered by ascending priority. Layers with equal
// priority keep their relative order, so the later one wins. Nil entries are
// dropped.
func Sorted(layers []*layer.Layer) []*layer.Layer {
	out := make([]*layer.Layer, 0, len(layers))
	for _, l := range layers {
		if l != nil {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() < out[j].Priority()
	})
	return out
}
