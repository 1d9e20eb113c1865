// Package devices contributes the attachable and hand-held device classes.
package devices

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/datamodule/internal/entity"
	"github.com/specialistvlad/datamodule/internal/hclprop"
)

var (
	AttachableClass  = entity.NewClass("Attachable", entity.MOSRotatingClass)
	HeldDeviceClass  = entity.NewClass("HeldDevice", AttachableClass)
	HDFirearmClass   = entity.NewClass("HDFirearm", HeldDeviceClass)
	TDExplosiveClass = entity.NewClass("TDExplosive", HeldDeviceClass)
)

// Module implements the entity.Module interface for this package.
type Module struct{}

// Register registers the device classes with the catalog.
func (m *Module) Register(c *entity.Catalog) {
	c.Register(AttachableClass, func() entity.Preset { return &Attachable{} })
	c.Register(HeldDeviceClass, func() entity.Preset { return &HeldDevice{} })
	c.Register(HDFirearmClass, func() entity.Preset { return &HDFirearm{} })
	c.Register(TDExplosiveClass, func() entity.Preset { return &TDExplosive{} })
}

// Attachable is an object that can be attached to another one.
type Attachable struct {
	entity.MOSRotating
	JointStrength   float64 `hcl:"JointStrength,optional"`
	DrawAfterParent bool    `hcl:"DrawAfterParent,optional"`
}

func (a *Attachable) Class() *entity.Class { return AttachableClass }

func (a *Attachable) Clone() entity.Preset { return entity.Copy(a) }

// Decode reads Attachable attributes, then the MOSRotating ones.
func (a *Attachable) Decode(body hcl.Body, dc *entity.DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), a)
	return append(diags, a.MOSRotating.Decode(remain, dc)...)
}

// HeldDevice is an attachable an actor can hold.
type HeldDevice struct {
	Attachable
	OneHanded bool `hcl:"OneHanded,optional"`
}

func (h *HeldDevice) Class() *entity.Class { return HeldDeviceClass }

func (h *HeldDevice) Clone() entity.Preset { return entity.Copy(h) }

// Decode reads HeldDevice attributes, then the Attachable ones.
func (h *HeldDevice) Decode(body hcl.Body, dc *entity.DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), h)
	return append(diags, h.Attachable.Decode(remain, dc)...)
}

// HDFirearm is a held device that fires rounds from a magazine.
type HDFirearm struct {
	HeldDevice
	RateOfFire float64 `hcl:"RateOfFire,optional"`
	ReloadTime float64 `hcl:"ReloadTime,optional"`
	Magazine   string  `hcl:"Magazine,optional"`
	FullAuto   bool    `hcl:"FullAuto,optional"`
}

func (f *HDFirearm) Class() *entity.Class { return HDFirearmClass }

func (f *HDFirearm) Clone() entity.Preset { return entity.Copy(f) }

// Decode reads HDFirearm attributes, then the HeldDevice ones.
func (f *HDFirearm) Decode(body hcl.Body, dc *entity.DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), f)
	return append(diags, f.HeldDevice.Decode(remain, dc)...)
}

// TDExplosive is a thrown device that detonates after a delay.
type TDExplosive struct {
	HeldDevice
	TriggerDelay          float64 `hcl:"TriggerDelay,optional"`
	ActivatesWhenReleased bool    `hcl:"ActivatesWhenReleased,optional"`
}

func (e *TDExplosive) Class() *entity.Class { return TDExplosiveClass }

func (e *TDExplosive) Clone() entity.Preset { return entity.Copy(e) }

// Decode reads TDExplosive attributes, then the HeldDevice ones.
func (e *TDExplosive) Decode(body hcl.Body, dc *entity.DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), e)
	return append(diags, e.HeldDevice.Decode(remain, dc)...)
}
