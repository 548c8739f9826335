package value

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		in   cty.Value
		want Kind
	}{
		{name: "string", in: cty.StringVal("x"), want: KindScalar},
		{name: "null", in: cty.NullVal(cty.DynamicPseudoType), want: KindScalar},
		{name: "null object", in: cty.NullVal(cty.EmptyObject), want: KindScalar},
		{name: "unknown", in: cty.UnknownVal(cty.EmptyObject), want: KindScalar},
		{name: "object", in: cty.ObjectVal(map[string]cty.Value{"a": cty.True}), want: KindMapping},
		{name: "map", in: cty.MapVal(map[string]cty.Value{"a": cty.True}), want: KindMapping},
		{name: "tuple", in: cty.TupleVal([]cty.Value{cty.True}), want: KindSequence},
		{name: "list", in: cty.ListVal([]cty.Value{cty.True}), want: KindSequence},
		{name: "set", in: cty.SetVal([]cty.Value{cty.True}), want: KindSequence},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.in))
		})
	}
}

func TestIsSet(t *testing.T) {
	assert.False(t, IsSet(cty.NilVal))
	assert.False(t, IsSet(cty.NullVal(cty.String)))
	assert.True(t, IsSet(cty.StringVal("")))
	assert.True(t, IsSet(EmptyMapping()))
}

func TestDig(t *testing.T) {
	v := cty.ObjectVal(map[string]cty.Value{
		"profiles::nginx": cty.ObjectVal(map[string]cty.Value{
			"ensure": cty.StringVal("absent"),
		}),
	})

	got, ok := Dig(v, SplitPath("profiles::nginx.ensure")...)
	require.True(t, ok)
	assert.Equal(t, "absent", got.AsString())

	_, ok = Dig(v, "profiles::nginx", "manage")
	assert.False(t, ok)

	_, ok = Dig(v, "profiles::nginx", "ensure", "deeper")
	assert.False(t, ok, "scalars have no children")

	self, ok := Dig(v)
	require.True(t, ok)
	assert.True(t, self.RawEquals(v))
}

func TestKeys_Sorted(t *testing.T) {
	v := Mapping(map[string]cty.Value{"b": cty.True, "a": cty.True, "c": cty.True})
	assert.Equal(t, []string{"a", "b", "c"}, Keys(v))
	assert.Empty(t, Keys(cty.StringVal("x")))
}

func TestMarshal_Canonical(t *testing.T) {
	a := cty.ObjectVal(map[string]cty.Value{"z": cty.NumberIntVal(1), "a": cty.StringVal("x")})
	b := cty.MapVal(map[string]cty.Value{"a": cty.StringVal("x"), "z": cty.StringVal("1")})

	raw, err := Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","z":1}`, string(raw))
	assert.Equal(t, `{"a":"x","z":1}`, string(raw), "keys are emitted in sorted order")

	nullRaw, err := Marshal(cty.NullVal(cty.String))
	require.NoError(t, err)
	assert.Equal(t, "null", string(nullRaw))

	_, err = Marshal(cty.UnknownVal(cty.String))
	assert.Error(t, err)

	assert.False(t, Equal(a, b), "a number and a string are different values")
	assert.True(t, Equal(
		cty.ObjectVal(map[string]cty.Value{"a": cty.StringVal("x")}),
		cty.MapVal(map[string]cty.Value{"a": cty.StringVal("x")}),
	))
}

func TestFromNative(t *testing.T) {
	in := map[any]any{
		"ensure":  "present",
		"count":   3,
		"ratio":   0.5,
		"enabled": true,
		"tags":    []any{"a", "b"},
		"empty":   []string{},
		"none":    nil,
		"nested":  map[string]any{"port": json.Number("8080")},
		1:         "int key",
	}

	v, err := FromNative(map[any]any{"root": in})
	require.NoError(t, err)

	want := map[string]any{
		"root": map[string]any{
			"ensure":  "present",
			"count":   int64(3),
			"ratio":   0.5,
			"enabled": true,
			"tags":    []any{"a", "b"},
			"empty":   []any{},
			"none":    nil,
			"nested":  map[string]any{"port": int64(8080)},
			"1":       "int key",
		},
	}
	if diff := cmp.Diff(want, ToNative(v)); diff != "" {
		t.Errorf("FromNative/ToNative mismatch (-want +got):\n%s", diff)
	}
}

func TestFromNative_Cycle(t *testing.T) {
	loop := map[string]any{"name": "loop"}
	loop["self"] = loop

	_, err := FromNative(loop)

	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr), "got %v", err)
	assert.Equal(t, "$.self", cycleErr.Path)
}

func TestFromNative_SharedIsNotCycle(t *testing.T) {
	shared := map[string]any{"k": "v"}

	v, err := FromNative(map[string]any{"a": shared, "b": shared})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, Keys(v))
}

func TestFromNative_Unsupported(t *testing.T) {
	_, err := FromNative(map[string]any{"fn": func() {}})

	var typeErr *UnsupportedTypeError
	require.True(t, errors.As(err, &typeErr), "got %v", err)
	assert.Equal(t, "$.fn", typeErr.Path)
}

func TestNativeMapping_NonMapping(t *testing.T) {
	assert.Equal(t, map[string]any{}, NativeMapping(cty.StringVal("x")))
	assert.Equal(t, map[string]any{"a": "b"}, NativeMapping(cty.ObjectVal(map[string]cty.Value{"a": cty.StringVal("b")})))
}
