package merge

import (
	"testing"

	"github.com/specialistvlad/profilegrid/internal/layer"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"pgregory.net/rapid"
)

func obj(attrs map[string]cty.Value) cty.Value {
	return value.Mapping(attrs)
}

func str(s string) cty.Value { return cty.StringVal(s) }

func mustLayer(t *testing.T, name string, priority int, data cty.Value) *layer.Layer {
	t.Helper()
	l, err := layer.New(name, priority, data)
	require.NoError(t, err)
	return l
}

func TestValues(t *testing.T) {
	testCases := []struct {
		name      string
		low, high cty.Value
		want      cty.Value
	}{
		{
			name: "disjoint keys are unioned",
			low:  obj(map[string]cty.Value{"a": str("1")}),
			high: obj(map[string]cty.Value{"b": str("2")}),
			want: obj(map[string]cty.Value{"a": str("1"), "b": str("2")}),
		},
		{
			name: "nested mappings merge",
			low:  obj(map[string]cty.Value{"o": obj(map[string]cty.Value{"x": str("1"), "y": str("1")})}),
			high: obj(map[string]cty.Value{"o": obj(map[string]cty.Value{"y": str("2")})}),
			want: obj(map[string]cty.Value{"o": obj(map[string]cty.Value{"x": str("1"), "y": str("2")})}),
		},
		{
			name: "sequences are replaced, not concatenated",
			low:  obj(map[string]cty.Value{"l": cty.TupleVal([]cty.Value{str("a"), str("b")})}),
			high: obj(map[string]cty.Value{"l": cty.TupleVal([]cty.Value{str("c")})}),
			want: obj(map[string]cty.Value{"l": cty.TupleVal([]cty.Value{str("c")})}),
		},
		{
			name: "scalar replaces mapping",
			low:  obj(map[string]cty.Value{"o": obj(map[string]cty.Value{"x": str("1")})}),
			high: obj(map[string]cty.Value{"o": str("flat")}),
			want: obj(map[string]cty.Value{"o": str("flat")}),
		},
		{
			name: "mapping replaces scalar",
			low:  obj(map[string]cty.Value{"o": str("flat")}),
			high: obj(map[string]cty.Value{"o": obj(map[string]cty.Value{"x": str("1")})}),
			want: obj(map[string]cty.Value{"o": obj(map[string]cty.Value{"x": str("1")})}),
		},
		{
			name: "top-level scalar wins",
			low:  obj(map[string]cty.Value{"a": str("1")}),
			high: cty.NumberIntVal(3),
			want: cty.NumberIntVal(3),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Values(tc.low, tc.high)
			assert.True(t, value.Equal(tc.want, got), "want %s, got %s", value.Describe(tc.want), value.Describe(got))
		})
	}
}

func TestOverlay_UnsetSides(t *testing.T) {
	m := obj(map[string]cty.Value{"a": str("1")})
	null := cty.NullVal(cty.DynamicPseudoType)

	assert.True(t, Overlay(null, m).RawEquals(m))
	assert.True(t, Overlay(m, null).RawEquals(m))
	assert.True(t, Overlay(cty.NilVal, m).RawEquals(m))

	high := obj(map[string]cty.Value{"a": str("2"), "b": str("3")})
	assert.True(t, value.Equal(high, Overlay(high, m)))
}

func TestAll(t *testing.T) {
	assert.True(t, value.Equal(value.EmptyMapping(), All()))
	assert.True(t, value.Equal(value.EmptyMapping(), All(cty.NilVal, cty.NullVal(cty.String))))

	got := All(
		obj(map[string]cty.Value{"ensure": str("present"), "mode": str("0644")}),
		cty.NilVal,
		obj(map[string]cty.Value{"ensure": str("absent")}),
	)
	want := obj(map[string]cty.Value{"ensure": str("absent"), "mode": str("0644")})
	assert.True(t, value.Equal(want, got), value.Describe(got))
}

func TestMerge_Layers(t *testing.T) {
	low := mustLayer(t, "auto", 10, obj(map[string]cty.Value{
		"file": obj(map[string]cty.Value{"a": str("auto"), "b": str("auto")}),
	}))
	high := mustLayer(t, "explicit", 20, obj(map[string]cty.Value{
		"file": obj(map[string]cty.Value{"b": str("explicit")}),
	}))

	// Input order does not matter, priority does.
	got, ok := Merge([]*layer.Layer{high, nil, low}, "file")
	require.True(t, ok)
	want := obj(map[string]cty.Value{"a": str("auto"), "b": str("explicit")})
	assert.True(t, value.Equal(want, got), value.Describe(got))

	_, ok = Merge([]*layer.Layer{high, low}, "exec")
	assert.False(t, ok, "a key no layer defines is absent")
}

func TestSorted_StableForEqualPriority(t *testing.T) {
	a := layer.Empty("a", 5)
	b := layer.Empty("b", 5)
	c := layer.Empty("c", 1)

	got := Sorted([]*layer.Layer{a, b, nil, c})

	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].Name(), got[1].Name(), got[2].Name()})
}

func TestFlatten(t *testing.T) {
	low := mustLayer(t, "auto", 10, obj(map[string]cty.Value{"file": obj(map[string]cty.Value{"a": str("1")})}))
	high := mustLayer(t, "explicit", 20, obj(map[string]cty.Value{"exec": obj(map[string]cty.Value{"b": str("2")})}))

	flat, err := Flatten("all", 0, []*layer.Layer{high, low})

	require.NoError(t, err)
	assert.Equal(t, "all", flat.Name())
	assert.Equal(t, []string{"exec", "file"}, flat.Keys())
}

var keyPool = []string{"ensure", "path", "owner", "nested", "mode"}

func genScalar() *rapid.Generator[cty.Value] {
	return rapid.Custom(func(t *rapid.T) cty.Value {
		if rapid.Bool().Draw(t, "isString") {
			return str(rapid.SampledFrom([]string{"present", "absent", "a", "b"}).Draw(t, "string"))
		}
		return cty.NumberIntVal(rapid.Int64Range(-5, 5).Draw(t, "number"))
	})
}

func genValue(depth int) *rapid.Generator[cty.Value] {
	return rapid.Custom(func(t *rapid.T) cty.Value {
		kind := rapid.IntRange(0, 2).Draw(t, "kind")
		if depth == 0 && kind == 2 {
			kind = 0
		}
		switch kind {
		case 0:
			return genScalar().Draw(t, "scalar")
		case 1:
			elems := rapid.SliceOfN(genScalar(), 0, 3).Draw(t, "sequence")
			if len(elems) == 0 {
				return cty.EmptyTupleVal
			}
			return cty.TupleVal(elems)
		default:
			return genMapping(depth-1).Draw(t, "mapping")
		}
	})
}

func genMapping(depth int) *rapid.Generator[cty.Value] {
	return rapid.Custom(func(t *rapid.T) cty.Value {
		keys := rapid.SliceOfNDistinct(rapid.SampledFrom(keyPool), 0, len(keyPool), rapid.ID[string]).Draw(t, "keys")
		attrs := make(map[string]cty.Value, len(keys))
		for _, k := range keys {
			attrs[k] = genValue(depth).Draw(t, k)
		}
		return value.Mapping(attrs)
	})
}

func TestValues_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		low := genMapping(2).Draw(t, "low")
		high := genMapping(2).Draw(t, "high")
		merged := Values(low, high)

		assert.True(t, value.Equal(merged, Values(low, high)), "merging is deterministic")
		assert.True(t, value.Equal(high, Values(value.EmptyMapping(), high)), "empty low is an identity")
		assert.True(t, value.Equal(low, Values(low, value.EmptyMapping())), "empty high is an identity")
		assert.True(t, value.Equal(high, Values(high, high)), "merging is idempotent")

		for _, k := range value.Keys(high) {
			hv, _ := value.Get(high, k)
			got, ok := value.Get(merged, k)
			require.True(t, ok, "key %s of high is kept", k)
			if !value.IsMapping(hv) {
				assert.True(t, value.Equal(hv, got), "non-mapping %s of high wins", k)
			}
		}
		for _, k := range value.Keys(low) {
			if _, inHigh := value.Get(high, k); inHigh {
				continue
			}
			lv, _ := value.Get(low, k)
			got, ok := value.Get(merged, k)
			require.True(t, ok, "key %s only in low is kept", k)
			assert.True(t, value.Equal(lv, got), "key %s only in low is unchanged", k)
		}
	})
}

func TestAll_MatchesLeftFold(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genMapping(2).Draw(t, "a")
		b := genMapping(2).Draw(t, "b")
		c := genMapping(2).Draw(t, "c")

		assert.True(t, value.Equal(Values(Values(a, b), c), All(a, b, c)))
	})
}

func TestMerge_FlattenedPrefixIsEquivalent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, err := layer.New("a", 1, genMapping(2).Draw(t, "a"))
		require.NoError(t, err)
		b, err := layer.New("b", 2, genMapping(2).Draw(t, "b"))
		require.NoError(t, err)
		c, err := layer.New("c", 3, genMapping(2).Draw(t, "c"))
		require.NoError(t, err)

		ab, err := Flatten("ab", 2, []*layer.Layer{a, b})
		require.NoError(t, err)

		for _, key := range keyPool {
			want, wantOK := Merge([]*layer.Layer{a, b, c}, key)
			got, gotOK := Merge([]*layer.Layer{ab, c}, key)
			require.Equal(t, wantOK, gotOK, "presence of %s", key)
			if wantOK {
				assert.True(t, value.Equal(want, got), "key %s: want %s, got %s", key, value.Describe(want), value.Describe(got))
			}
		}
	})
}

func TestMerge_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(genMapping(2), 1, 4).Draw(t, "layers")
		layers := make([]*layer.Layer, 0, len(data))
		for i, d := range data {
			l, err := layer.New("l", i, d)
			require.NoError(t, err)
			layers = append(layers, l)
		}

		for _, key := range keyPool {
			first, _ := Merge(layers, key)
			second, _ := Merge(layers, key)
			a, errA := value.Marshal(first)
			b, errB := value.Marshal(second)
			require.NoError(t, errA)
			require.NoError(t, errB)
			assert.Equal(t, string(a), string(b))
		}
	})
}
