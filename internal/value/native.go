// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file converts between native Go data (as produced by decoders such as
// mapstructure, yaml.v3 or encoding/json) and cty values.
//
// External input is not trusted to be tree-shaped: a map or slice can be
// aliased into one of its own descendants. Such input is rejected with a
// CycleError instead of recursing forever.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// CycleError reports a container that contains one of its ancestors.
type CycleError struct {
	Path string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("configuration node at %q refers back to one of its ancestors", e.Path)
}

// UnsupportedTypeError reports a Go value that has no configuration equivalent.
type UnsupportedTypeError struct {
	Path string
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported configuration value of Go type %s at %q", e.Type, e.Path)
}

// FromNative converts a native Go value into a cty value. Maps become
// objects, slices and arrays become tuples, and nil becomes a dynamic null.
func FromNative(v any) (cty.Value, error) {
	c := &nativeConverter{ancestors: make(map[uintptr]struct{})}
	return c.convert(reflect.ValueOf(v), "$")
}

type nativeConverter struct {
	ancestors map[uintptr]struct{}
}

func (c *nativeConverter) convert(rv reflect.Value, path string) (cty.Value, error) {
	if !rv.IsValid() {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}

	if rv.Type() == reflect.TypeOf(cty.Value{}) {
		return rv.Interface().(cty.Value), nil
	}
	if n, ok := rv.Interface().(json.Number); ok {
		num, err := cty.ParseNumberVal(n.String())
		if err != nil {
			return cty.NilVal, fmt.Errorf("at %q: %w", path, err)
		}
		return num, nil
	}

	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		return c.convert(rv.Elem(), path)

	case reflect.String:
		return cty.StringVal(rv.String()), nil

	case reflect.Bool:
		return cty.BoolVal(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cty.NumberIntVal(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cty.NumberUIntVal(rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cty.NilVal, &UnsupportedTypeError{Path: path, Type: "non-finite float"}
		}
		return cty.NumberFloatVal(f), nil

	case reflect.Map:
		if rv.IsNil() {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		leave, err := c.enter(rv.Pointer(), path)
		if err != nil {
			return cty.NilVal, err
		}
		defer leave()

		attrs := make(map[string]cty.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, ok := mapKey(iter.Key())
			if !ok {
				return cty.NilVal, &UnsupportedTypeError{Path: path, Type: "map key " + iter.Key().Type().String()}
			}
			elem, err := c.convert(iter.Value(), path+"."+key)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[key] = elem
		}
		return Mapping(attrs), nil

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice {
			if rv.IsNil() {
				return cty.NullVal(cty.DynamicPseudoType), nil
			}
			if rv.Len() > 0 {
				leave, err := c.enter(rv.Pointer(), path)
				if err != nil {
					return cty.NilVal, err
				}
				defer leave()
			}
		}
		if rv.Len() == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := c.convert(rv.Index(i), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, elem)
		}
		return cty.TupleVal(elems), nil

	case reflect.Struct:
		ty, err := gocty.ImpliedType(rv.Interface())
		if err != nil {
			return cty.NilVal, &UnsupportedTypeError{Path: path, Type: rv.Type().String()}
		}
		return gocty.ToCtyValue(rv.Interface(), ty)
	}

	return cty.NilVal, &UnsupportedTypeError{Path: path, Type: rv.Type().String()}
}

// enter marks a container as an ancestor of everything converted until the
// returned func is called.
func (c *nativeConverter) enter(ptr uintptr, path string) (func(), error) {
	if _, seen := c.ancestors[ptr]; seen {
		return nil, &CycleError{Path: path}
	}
	c.ancestors[ptr] = struct{}{}
	return func() { delete(c.ancestors, ptr) }, nil
}

func mapKey(k reflect.Value) (string, bool) {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprint(k.Int()), true
	case reflect.Bool:
		return fmt.Sprint(k.Bool()), true
	}
	return "", false
}

// ToNative converts a cty value into plain Go data. Integral numbers become
// int64 when they fit, other numbers float64.
func ToNative(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i
			}
		}
		f, _ := bf.Float64()
		return f

	case ty == cty.Bool:
		return v.True()

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			out = append(out, ToNative(elem))
		}
		return out

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for k, elem := range v.AsValueMap() {
			out[k] = ToNative(elem)
		}
		return out
	}

	return nil
}

// NativeMapping is ToNative for mappings. Non-mappings yield an empty map.
func NativeMapping(v cty.Value) map[string]any {
	if m, ok := ToNative(v).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
