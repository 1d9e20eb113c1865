// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the core scene-object classes every content module builds
// on: SceneObject, MovableObject and MOSRotating.
package entity

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/datamodule/internal/hclprop"
)

var (
	SceneObjectClass   = NewClass("SceneObject", EntityClass)
	MovableObjectClass = NewClass("MovableObject", SceneObjectClass)
	MOSRotatingClass   = NewClass("MOSRotating", MovableObjectClass)
)

// SceneObject is anything that can be placed in a scene.
type SceneObject struct {
	Entity
	GoldValue float64 `hcl:"GoldValue,optional"`
	Buyable   bool    `hcl:"Buyable,optional"`
}

// Decode reads SceneObject attributes, then the Entity ones.
func (s *SceneObject) Decode(body hcl.Body, dc *DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), s)
	return append(diags, s.Entity.Decode(remain, dc)...)
}

// MovableObject is a scene object with mass and a material.
type MovableObject struct {
	SceneObject
	Mass       float64 `hcl:"Mass,optional"`
	ScriptPath string  `hcl:"ScriptPath,optional"`

	// MaterialID is the global material id; definition files give a
	// module-local id that is remapped while decoding.
	MaterialID int
}

// Decode reads MovableObject attributes, then the SceneObject ones.
func (m *MovableObject) Decode(body hcl.Body, dc *DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), m)

	material := struct {
		Local int `hcl:"Material,optional"`
	}{Local: -1}
	remain, matDiags := hclprop.DecodePartial(remain, dc.EvalContext(), &material)
	diags = append(diags, matDiags...)
	if material.Local >= 0 {
		m.MaterialID = dc.RemapMaterial(material.Local)
	}

	return append(diags, m.SceneObject.Decode(remain, dc)...)
}

// ScriptPaths returns the object's script, if it has one.
func (m *MovableObject) ScriptPaths() []string {
	if m.ScriptPath == "" {
		return nil
	}
	return []string{m.ScriptPath}
}

// MOSRotating is a rotating sprite object; the first concrete scene class.
type MOSRotating struct {
	MovableObject
	SpriteFile      string  `hcl:"SpriteFile,optional"`
	GibImpulseLimit float64 `hcl:"GibImpulseLimit,optional"`
}

func (m *MOSRotating) Class() *Class { return MOSRotatingClass }

func (m *MOSRotating) Clone() Preset { return Copy(m) }

// Decode reads MOSRotating attributes, then the MovableObject ones.
func (m *MOSRotating) Decode(body hcl.Body, dc *DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), m)
	return append(diags, m.MovableObject.Decode(remain, dc)...)
}
