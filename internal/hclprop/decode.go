package hclprop

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// DecodePartial decodes the attributes named by the `hcl:"Name"` tags of the
// struct pointed to by target and returns the rest of the body untouched.
// Only direct fields are considered, so embedded parent structs are left for
// their own DecodePartial call. Absent attributes leave their fields as they
// were, which lets a preset copied from another keep the inherited values.
func DecodePartial(body hcl.Body, ctx *hcl.EvalContext, target any) (hcl.Body, hcl.Diagnostics) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("hclprop: DecodePartial target must be a pointer to a struct, got %T", target))
	}
	sv := rv.Elem()
	st := sv.Type()

	schema := &hcl.BodySchema{}
	fields := make(map[string]int)
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if field.Anonymous || !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("hcl"), ",")
		if name == "" || name == "-" {
			continue
		}
		schema.Attributes = append(schema.Attributes, hcl.AttributeSchema{Name: name})
		fields[name] = i
	}

	content, remain, diags := body.PartialContent(schema)
	if content == nil {
		return remain, diags
	}

	for _, attrSchema := range schema.Attributes {
		attr, ok := content.Attributes[attrSchema.Name]
		if !ok {
			continue
		}
		fieldV := sv.Field(fields[attrSchema.Name])
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, ctx, fieldV.Addr().Interface())...)
	}
	return remain, diags
}

// RejectRemaining reports every attribute or block left in body as unsupported.
func RejectRemaining(body hcl.Body) hcl.Diagnostics {
	if body == nil {
		return nil
	}
	_, diags := body.Content(&hcl.BodySchema{})
	return diags
}
