// Package actors contributes the controllable actor classes: Actor and its
// humanoid and crab-shaped variants.
package actors

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/datamodule/internal/entity"
	"github.com/specialistvlad/datamodule/internal/hclprop"
)

var (
	ActorClass  = entity.NewClass("Actor", entity.MOSRotatingClass)
	AHumanClass = entity.NewClass("AHuman", ActorClass)
	ACrabClass  = entity.NewClass("ACrab", ActorClass)
)

// Module implements the entity.Module interface for this package.
type Module struct{}

// Register registers the actor classes with the catalog.
func (m *Module) Register(c *entity.Catalog) {
	c.Register(ActorClass, func() entity.Preset { return &Actor{Health: 100, MaxHealth: 100} })
	c.Register(AHumanClass, func() entity.Preset { return &AHuman{Actor: Actor{Health: 100, MaxHealth: 100}} })
	c.Register(ACrabClass, func() entity.Preset { return &ACrab{Actor: Actor{Health: 100, MaxHealth: 100}, LegCount: 4} })
}

// Actor is anything that can be controlled by a player or the AI.
type Actor struct {
	entity.MOSRotating
	Health    float64 `hcl:"Health,optional"`
	MaxHealth float64 `hcl:"MaxHealth,optional"`
	Team      int     `hcl:"Team,optional"`
	AIMode    string  `hcl:"AIMode,optional"`
}

func (a *Actor) Class() *entity.Class { return ActorClass }

func (a *Actor) Clone() entity.Preset { return entity.Copy(a) }

// Decode reads Actor attributes, then the MOSRotating ones.
func (a *Actor) Decode(body hcl.Body, dc *entity.DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), a)
	return append(diags, a.MOSRotating.Decode(remain, dc)...)
}

// AHuman is a two-legged actor.
type AHuman struct {
	Actor
	HeadSpriteFile string  `hcl:"HeadSpriteFile,optional"`
	JumpPower      float64 `hcl:"JumpPower,optional"`
}

func (h *AHuman) Class() *entity.Class { return AHumanClass }

func (h *AHuman) Clone() entity.Preset { return entity.Copy(h) }

// Decode reads AHuman attributes, then the Actor ones.
func (h *AHuman) Decode(body hcl.Body, dc *entity.DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), h)
	return append(diags, h.Actor.Decode(remain, dc)...)
}

// ACrab is a many-legged actor, usually with a mounted turret.
type ACrab struct {
	Actor
	LegCount         int    `hcl:"LegCount,optional"`
	TurretSpriteFile string `hcl:"TurretSpriteFile,optional"`
}

func (c *ACrab) Class() *entity.Class { return ACrabClass }

func (c *ACrab) Clone() entity.Preset { return entity.Copy(c) }

// Decode reads ACrab attributes, then the Actor ones.
func (c *ACrab) Decode(body hcl.Body, dc *entity.DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), c)
	return append(diags, c.Actor.Decode(remain, dc)...)
}
