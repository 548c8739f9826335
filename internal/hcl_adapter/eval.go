package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext exposes facts as the "facts" object.
func newEvalContext(facts map[string]string) *hcl.EvalContext {
	factVals := make(map[string]cty.Value, len(facts))
	for k, v := range facts {
		factVals[k] = cty.StringVal(v)
	}
	factsObj := cty.EmptyObjectVal
	if len(factVals) > 0 {
		factsObj = cty.ObjectVal(factVals)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"facts": factsObj},
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
			"merge":  stdlib.MergeFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}
