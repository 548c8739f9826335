// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package value

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Kind classifies a configuration node.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "scalar"
	}
}

// KindOf reports the shape of v. Null and unknown values are scalars.
func KindOf(v cty.Value) Kind {
	if v.IsNull() || !v.IsKnown() {
		return KindScalar
	}
	ty := v.Type()
	switch {
	case ty.IsObjectType() || ty.IsMapType():
		return KindMapping
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		return KindSequence
	default:
		return KindScalar
	}
}

// IsMapping reports whether v is a known, non-null object or map.
func IsMapping(v cty.Value) bool {
	return KindOf(v) == KindMapping
}

// IsSet reports whether v carries a value. Null values are treated as unset
// so an explicit null in a lower layer never masks a higher layer.
func IsSet(v cty.Value) bool {
	return !v.IsNull()
}

// EmptyMapping returns a mapping with no keys.
func EmptyMapping() cty.Value {
	return cty.EmptyObjectVal
}

// Mapping builds a mapping value from attrs. A nil or empty map yields an
// empty mapping.
func Mapping(attrs map[string]cty.Value) cty.Value {
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}

// Attributes returns the entries of a mapping. Non-mapping values yield nil.
func Attributes(v cty.Value) map[string]cty.Value {
	if !IsMapping(v) {
		return nil
	}
	return v.AsValueMap()
}

// Keys returns the sorted keys of a mapping.
func Keys(v cty.Value) []string {
	attrs := Attributes(v)
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the entry stored under key in the mapping v.
func Get(v cty.Value, key string) (cty.Value, bool) {
	attrs := Attributes(v)
	if attrs == nil {
		return cty.NilVal, false
	}
	got, ok := attrs[key]
	return got, ok
}

// Dig follows path through nested mappings. An empty path returns v itself.
func Dig(v cty.Value, path ...string) (cty.Value, bool) {
	cur := v
	for _, seg := range path {
		next, ok := Get(cur, seg)
		if !ok {
			return cty.NilVal, false
		}
		cur = next
	}
	return cur, true
}

// Marshal returns the canonical JSON encoding of v. Mapping keys are emitted
// in sorted order, so equal configuration trees always produce equal bytes.
func Marshal(v cty.Value) ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("cannot encode a value that is not wholly known")
	}
	return ctyjson.Marshal(v, v.Type())
}

// Equal reports whether a and b encode to the same canonical bytes. Unlike
// cty's RawEquals it treats a map and an object with the same entries as
// equal, which is what callers comparing resolved parameters need.
func Equal(a, b cty.Value) bool {
	ab, err := Marshal(a)
	if err != nil {
		return false
	}
	bb, err := Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// Describe renders v for log and error messages.
func Describe(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	b, err := Marshal(v)
	if err != nil {
		return v.GoString()
	}
	return string(b)
}

// SplitPath splits a lookup path on dots, the way nested keys are addressed
// in lookups ("profiles::nginx.ensure").
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
