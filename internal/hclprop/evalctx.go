package hclprop

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions is the small expression library available in definition files.
var functions = map[string]function.Function{
	"concat": stdlib.ConcatFunc,
	"format": stdlib.FormatFunc,
	"join":   stdlib.JoinFunc,
	"lower":  stdlib.LowerFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"upper":  stdlib.UpperFunc,
}

// NewEvalContext builds the evaluation context for a module's files. The
// module variable exposes the module's directory name and id.
func NewEvalContext(moduleName string, moduleID int) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"module": cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal(moduleName),
				"id":   cty.NumberIntVal(int64(moduleID)),
			}),
		},
		Functions: functions,
	}
}
