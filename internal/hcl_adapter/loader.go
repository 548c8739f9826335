package hcl_adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Loader parses HCL data files into mappings.
type Loader struct {
	parser  *hclparse.Parser
	evalCtx *hcl.EvalContext
}

// NewLoader creates a loader whose expressions can see facts.
func NewLoader(facts map[string]string) *Loader {
	return &Loader{
		parser:  hclparse.NewParser(),
		evalCtx: newEvalContext(facts),
	}
}

// keyBlockType is the only block allowed at the top level of a data file.
const keyBlockType = "key"

// LoadFile parses path and returns its keys as a mapping. Top-level
// attributes become keys as they are; each `key "<name>" { ... }` block
// becomes a mapping under <name>.
func (l *Loader) LoadFile(ctx context.Context, path string) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx).With("file", path)

	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	body, ok := hclFile.Body.(*hclsyntax.Body)
	if !ok {
		return cty.NilVal, fmt.Errorf("failed to read HCL file %s: unexpected body type %T", path, hclFile.Body)
	}

	// The native body is read directly: JustAttributes on it would reject
	// the key blocks.
	top := make(hcl.Attributes, len(body.Attributes))
	for name, attr := range body.Attributes {
		top[name] = attr.AsHCLAttribute()
	}
	out, err := l.evalAttributes(top)
	if err != nil {
		return cty.NilVal, fmt.Errorf("in %s: %w", path, err)
	}

	for _, block := range body.Blocks {
		if block.Type != keyBlockType || len(block.Labels) != 1 {
			return cty.NilVal, fmt.Errorf("in %s, line %d: unexpected %q block; only %s \"<name>\" blocks are allowed",
				path, block.TypeRange.Start.Line, block.Type, keyBlockType)
		}
		name := block.Labels[0]
		if _, dup := out[name]; dup {
			return cty.NilVal, fmt.Errorf("in %s: key %q is defined more than once", path, name)
		}
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("in %s, key %q: %w", path, name, diags)
		}
		vals, err := l.evalAttributes(attrs)
		if err != nil {
			return cty.NilVal, fmt.Errorf("in %s, key %q: %w", path, name, err)
		}
		out[name] = value.Mapping(vals)
	}

	logger.Debug("Loaded HCL data level.", "keys", len(out))
	return value.Mapping(out), nil
}

// evalAttributes evaluates attrs. Attributes are visited in name order so
// that diagnostics are reported deterministically.
func (l *Loader) evalAttributes(attrs hcl.Attributes) (map[string]cty.Value, error) {
	out := make(map[string]cty.Value, len(attrs))

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val, diags := attrs[name].Expr.Value(l.evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, diags)
		}
		if !val.IsWhollyKnown() {
			return nil, fmt.Errorf("attribute %q: value is not known", name)
		}
		out[name] = val
	}
	return out, nil
}
