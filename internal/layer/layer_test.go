package layer

import (
	"errors"
	"testing"

	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew(t *testing.T) {
	l, err := New("explicit", 20, cty.ObjectVal(map[string]cty.Value{
		"file":     cty.EmptyObjectVal,
		"tp::conf": cty.EmptyObjectVal,
	}))
	require.NoError(t, err)

	assert.Equal(t, "explicit", l.Name())
	assert.Equal(t, 20, l.Priority())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"file", "tp::conf"}, l.Keys())
	assert.Equal(t, "explicit(priority=20)", l.String())

	_, ok := l.Get("exec")
	assert.False(t, ok, "a key the layer does not define is absent, not empty")
}

func TestNew_NullIsEmpty(t *testing.T) {
	l, err := New("auto", 10, cty.NullVal(cty.DynamicPseudoType))
	require.NoError(t, err)
	assert.Zero(t, l.Len())
	assert.True(t, value.IsMapping(l.Data()))
}

func TestNew_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data cty.Value
	}{
		{name: "scalar", data: cty.StringVal("nope")},
		{name: "sequence", data: cty.TupleVal([]cty.Value{cty.True})},
		{name: "unknown", data: cty.ObjectVal(map[string]cty.Value{"a": cty.UnknownVal(cty.String)})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("broken", 1, tc.data)

			var layerErr *InvalidLayerError
			require.True(t, errors.As(err, &layerErr), "got %v", err)
			assert.Equal(t, "broken", layerErr.Layer)
		})
	}
}

func TestFromNative(t *testing.T) {
	l, err := FromNative("explicit", 20, map[string]any{
		"file": map[string]any{"/etc/motd": map[string]any{"content": "hi"}},
	})
	require.NoError(t, err)

	got, ok := l.Get("file")
	require.True(t, ok)
	content, ok := value.Dig(got, "/etc/motd", "content")
	require.True(t, ok)
	assert.Equal(t, "hi", content.AsString())
}

func TestFromNative_Cycle(t *testing.T) {
	loop := map[string]any{}
	loop["again"] = loop

	_, err := FromNative("cyclic", 20, map[string]any{"file": loop})

	var layerErr *InvalidLayerError
	require.True(t, errors.As(err, &layerErr), "got %v", err)
	var cycleErr *value.CycleError
	assert.True(t, errors.As(err, &cycleErr), "the cause is kept")
}

func TestEmpty(t *testing.T) {
	l := Empty("none", 0)
	assert.Zero(t, l.Len())
	assert.Empty(t, l.Keys())
}
