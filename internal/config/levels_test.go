package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func level(t *testing.T, name string, data map[string]any) Level {
	t.Helper()
	v, err := value.FromNative(data)
	require.NoError(t, err)
	return Level{Name: name, Data: v}
}

func testLevels(t *testing.T) Levels {
	return Levels{
		level(t, "node", map[string]any{
			"profiles::nginx": map[string]any{
				"ensure":      "absent",
				"optionsHash": map[string]any{"worker_processes": 4},
			},
		}),
		level(t, "common", map[string]any{
			"profiles::nginx": map[string]any{
				"ensure":      "present",
				"autoConf":    true,
				"optionsHash": map[string]any{"worker_connections": 1024, "worker_processes": 1},
			},
			"motd": "hello",
		}),
	}
}

func TestParseMergeStrategy(t *testing.T) {
	s, err := ParseMergeStrategy("")
	require.NoError(t, err)
	assert.Equal(t, MergeDeep, s)

	s, err = ParseMergeStrategy("HASH")
	require.NoError(t, err)
	assert.Equal(t, MergeHash, s)

	_, err = ParseMergeStrategy("unique")
	assert.Error(t, err)
}

func TestLevels_Lookup(t *testing.T) {
	ls := testLevels(t)
	ctx := testCtx()

	testCases := []struct {
		name     string
		path     string
		strategy MergeStrategy
		want     map[string]any
	}{
		{
			name:     "first",
			path:     "profiles::nginx",
			strategy: MergeFirst,
			want: map[string]any{
				"ensure":      "absent",
				"optionsHash": map[string]any{"worker_processes": 4},
			},
		},
		{
			name:     "hash",
			path:     "profiles::nginx",
			strategy: MergeHash,
			want: map[string]any{
				"ensure":      "absent",
				"autoConf":    true,
				"optionsHash": map[string]any{"worker_processes": 4},
			},
		},
		{
			name:     "deep",
			path:     "profiles::nginx",
			strategy: MergeDeep,
			want: map[string]any{
				"ensure":      "absent",
				"autoConf":    true,
				"optionsHash": map[string]any{"worker_connections": 1024, "worker_processes": 4},
			},
		},
		{
			name:     "dotted path",
			path:     "profiles::nginx.optionsHash",
			strategy: MergeDeep,
			want:     map[string]any{"worker_connections": 1024, "worker_processes": 4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ls.Lookup(ctx, tc.path, ShapeMapping, tc.strategy, cty.NullVal(cty.DynamicPseudoType))
			require.NoError(t, err)
			want, err := value.FromNative(tc.want)
			require.NoError(t, err)
			assert.True(t, value.Equal(want, got), value.Describe(got))
		})
	}
}

func TestLevels_LookupMissingReturnsDefault(t *testing.T) {
	ls := testLevels(t)
	got, err := ls.Lookup(testCtx(), "profiles::mariadb", ShapeMapping, MergeDeep, cty.EmptyObjectVal)
	require.NoError(t, err)
	assert.True(t, got.RawEquals(cty.EmptyObjectVal))
}

func TestLevels_LookupShapeError(t *testing.T) {
	ls := testLevels(t)
	_, err := ls.Lookup(testCtx(), "motd", ShapeMapping, MergeDeep, cty.EmptyObjectVal)

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "motd", shapeErr.Path)
	assert.Equal(t, value.KindScalar, shapeErr.Got)

	got, err := ls.Lookup(testCtx(), "motd", ShapeAny, MergeDeep, cty.NullVal(cty.String))
	require.NoError(t, err)
	assert.Equal(t, "hello", got.AsString())
}
