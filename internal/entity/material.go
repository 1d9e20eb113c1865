package entity

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/datamodule/internal/hclprop"
)

// MaterialClass is the class of terrain materials declared with AddMaterial.
var MaterialClass = NewClass("Material", EntityClass)

// Material is a terrain material. Index is the module-local palette slot.
type Material struct {
	Entity
	Index               int     `hcl:"Index,optional"`
	StructuralIntegrity float64 `hcl:"StructuralIntegrity,optional"`
	Density             float64 `hcl:"Density,optional"`
	Friction            float64 `hcl:"Friction,optional"`
	Color               string  `hcl:"Color,optional"`
}

func (m *Material) Class() *Class { return MaterialClass }

func (m *Material) Clone() Preset { return Copy(m) }

// Decode reads Material attributes, then the Entity ones.
func (m *Material) Decode(body hcl.Body, dc *DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), m)
	return append(diags, m.Entity.Decode(remain, dc)...)
}
