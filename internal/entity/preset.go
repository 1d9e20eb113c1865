// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Preset interface and Entity, the state shared by
// every preset regardless of class.
package entity

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/datamodule/internal/hclprop"
)

// Preset is a named object template of some class.
//
// Implementations embed Entity (directly or through a parent class struct)
// and return a copy of themselves from Clone, usually via Copy.
type Preset interface {
	// Class returns the preset's own class.
	Class() *Class
	PresetName() string
	Groups() []string
	IsInGroup(group string) bool
	IsOriginalPreset() bool
	ModuleID() int

	// Clone returns an independent, non-original copy.
	Clone() Preset

	// Decode applies the attributes of a definition body. Each class level
	// decodes its own attributes and hands the rest to its parent.
	Decode(body hcl.Body, dc *DecodeContext) hcl.Diagnostics

	base() *Entity
}

// Scripted is implemented by presets that carry script files.
type Scripted interface {
	ScriptPaths() []string
}

// Entity is the root class state. It is embedded by every preset type.
type Entity struct {
	Description string `hcl:"Description,optional"`

	presetName string
	groups     []string
	original   bool
	moduleID   int
}

// PresetName returns the preset's name.
func (e *Entity) PresetName() string { return e.presetName }

// Groups returns the groups the preset belongs to, in the order they were added.
func (e *Entity) Groups() []string { return slices.Clone(e.groups) }

// IsInGroup reports whether the preset belongs to group.
func (e *Entity) IsInGroup(group string) bool { return slices.Contains(e.groups, group) }

// AddToGroup adds the preset to group unless it is already a member.
func (e *Entity) AddToGroup(group string) {
	if group == "" || e.IsInGroup(group) {
		return
	}
	e.groups = append(e.groups, group)
}

// IsOriginalPreset reports whether this is the module's canonical instance.
func (e *Entity) IsOriginalPreset() bool { return e.original }

// ModuleID returns the id of the module that owns the preset.
func (e *Entity) ModuleID() int { return e.moduleID }

func (e *Entity) base() *Entity { return e }

// Decode reads the root-level attributes and rejects anything left over.
func (e *Entity) Decode(body hcl.Body, dc *DecodeContext) hcl.Diagnostics {
	remain, diags := hclprop.DecodePartial(body, dc.EvalContext(), e)

	var groups struct {
		Groups []string `hcl:"Groups,optional"`
	}
	remain, groupDiags := hclprop.DecodePartial(remain, dc.EvalContext(), &groups)
	diags = append(diags, groupDiags...)
	for _, group := range groups.Groups {
		e.AddToGroup(group)
	}

	return append(diags, hclprop.RejectRemaining(remain)...)
}

// Copy returns a non-original copy of p with its own group list. Preset
// types with slice or map fields of their own must copy those themselves.
func Copy[T any, PT interface {
	*T
	Preset
}](p PT) PT {
	c := PT(new(T))
	*c = *p
	b := c.base()
	b.groups = slices.Clone(b.groups)
	b.original = false
	return c
}

// Overwrite replaces the state of dst with the state of src while keeping dst
// at the same address. src must not be shared afterwards; pass a fresh Clone.
func Overwrite(dst, src Preset) {
	dv, sv := reflect.ValueOf(dst), reflect.ValueOf(src)
	if dv.Type() != sv.Type() {
		panic(fmt.Sprintf("entity: cannot overwrite %s preset %q with a %T", dst.Class().Name(), dst.PresetName(), src))
	}
	dv.Elem().Set(sv.Elem())
}

// MarkOriginal sets or clears the original-preset flag.
func MarkOriginal(p Preset, original bool) { p.base().original = original }

// SetModuleID records the owning module.
func SetModuleID(p Preset, id int) { p.base().moduleID = id }

// SetPresetName renames p.
func SetPresetName(p Preset, name string) { p.base().presetName = name }
