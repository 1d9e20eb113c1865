package hclprop

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// String reads the statement as a string attribute.
func (s Statement) String(ctx *hcl.EvalContext) (string, hcl.Diagnostics) {
	var v string
	return v, s.decode(ctx, &v)
}

// Int reads the statement as a whole-number attribute.
func (s Statement) Int(ctx *hcl.EvalContext) (int, hcl.Diagnostics) {
	var v int
	return v, s.decode(ctx, &v)
}

// Float reads the statement as a number attribute.
func (s Statement) Float(ctx *hcl.EvalContext) (float64, hcl.Diagnostics) {
	var v float64
	return v, s.decode(ctx, &v)
}

// Bool reads the statement as a bool attribute.
func (s Statement) Bool(ctx *hcl.EvalContext) (bool, hcl.Diagnostics) {
	var v bool
	return v, s.decode(ctx, &v)
}

// Strings reads the statement as either a single string or a list of strings.
func (s Statement) Strings(ctx *hcl.EvalContext) ([]string, hcl.Diagnostics) {
	if diags := s.requireAttr(); diags.HasErrors() {
		return nil, diags
	}

	val, diags := s.Attr.Expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, append(diags, s.valueError("A known, non-null value is required."))
	}
	if val.Type() == cty.String {
		return []string{val.AsString()}, diags
	}

	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, append(diags, s.valueError(fmt.Sprintf("Expected a string or a list of strings: %s.", err)))
	}

	var out []string
	if err := gocty.FromCtyValue(listVal, &out); err != nil {
		return nil, append(diags, s.valueError(err.Error()))
	}
	return out, diags
}

func (s Statement) decode(ctx *hcl.EvalContext, target any) hcl.Diagnostics {
	if diags := s.requireAttr(); diags.HasErrors() {
		return diags
	}
	return gohcl.DecodeExpression(s.Attr.Expr, ctx, target)
}

func (s Statement) requireAttr() hcl.Diagnostics {
	if s.Attr != nil {
		return nil
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unexpected block",
		Detail:   fmt.Sprintf("%q must be set as an attribute, e.g. %s = value.", s.Name, s.Name),
		Subject:  s.Range().Ptr(),
	}}
}

func (s Statement) valueError(detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid value for " + s.Name,
		Detail:   detail,
		Subject:  s.Attr.Expr.Range().Ptr(),
	}
}
