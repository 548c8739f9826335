package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// MergeStrategy selects how values found on several levels are combined.
type MergeStrategy string

const (
	// MergeFirst returns the value of the most specific level.
	MergeFirst MergeStrategy = "first"
	// MergeHash merges top-level keys of mappings, more specific wins.
	MergeHash MergeStrategy = "hash"
	// MergeDeep merges mappings recursively, more specific wins.
	MergeDeep MergeStrategy = "deep"
)

// ParseMergeStrategy validates a strategy name. Empty means MergeDeep.
func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch MergeStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MergeDeep:
		return MergeDeep, nil
	case MergeHash:
		return MergeHash, nil
	case MergeFirst:
		return MergeFirst, nil
	}
	return "", fmt.Errorf("unknown merge strategy %q (expected first, hash or deep)", s)
}

// Shape is what a caller expects a lookup to return.
type Shape int

const (
	ShapeAny Shape = iota
	ShapeMapping
)

func (s Shape) String() string {
	if s == ShapeMapping {
		return "mapping"
	}
	return "any"
}

// ShapeError reports a found value of the wrong shape.
type ShapeError struct {
	Path string
	Want Shape
	Got  value.Kind
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("lookup of %q: expected a %s, got a %s", e.Path, e.Want, e.Got)
}

// Source is a hierarchical configuration source.
type Source interface {
	// Lookup returns the value stored under path, combining levels with
	// strategy. When no level defines path, def is returned.
	Lookup(ctx context.Context, path string, shape Shape, strategy MergeStrategy, def cty.Value) (cty.Value, error)
}
