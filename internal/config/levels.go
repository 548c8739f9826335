package config

import (
	"context"

	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/merge"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Level is one configuration level.
type Level struct {
	Name string
	Data cty.Value
}

// Levels is a Source over in-memory levels, most specific first.
type Levels []Level

// Lookup implements Source. The first path segment is the top-level key,
// further dot separated segments dig into nested mappings.
func (ls Levels) Lookup(ctx context.Context, path string, shape Shape, strategy MergeStrategy, def cty.Value) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	segs := value.SplitPath(path)

	var found []cty.Value
	for _, l := range ls {
		v, ok := value.Dig(l.Data, segs...)
		if !ok {
			continue
		}
		logger.Debug("Lookup key found on level.", "path", path, "level", l.Name)
		found = append(found, v)
		if strategy == MergeFirst {
			break
		}
	}

	if len(found) == 0 {
		logger.Debug("Lookup key not found, using default.", "path", path)
		return def, nil
	}

	result := combine(found, strategy)
	if shape == ShapeMapping && value.IsSet(result) && !value.IsMapping(result) {
		return cty.NilVal, &ShapeError{Path: path, Want: shape, Got: value.KindOf(result)}
	}
	return result, nil
}

// combine folds found values, given most specific first.
func combine(found []cty.Value, strategy MergeStrategy) cty.Value {
	acc := found[len(found)-1]
	for i := len(found) - 2; i >= 0; i-- {
		next := found[i]
		switch strategy {
		case MergeHash:
			acc = shallow(acc, next)
		case MergeDeep:
			acc = merge.Values(acc, next)
		default:
			acc = next
		}
	}
	return acc
}

func shallow(low, high cty.Value) cty.Value {
	if !value.IsMapping(low) || !value.IsMapping(high) {
		return high
	}
	attrs := make(map[string]cty.Value)
	for k, v := range value.Attributes(low) {
		attrs[k] = v
	}
	for k, v := range value.Attributes(high) {
		attrs[k] = v
	}
	return value.Mapping(attrs)
}
