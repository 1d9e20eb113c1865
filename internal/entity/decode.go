package entity

import "github.com/hashicorp/hcl/v2"

// MaterialMapper translates a module-local material id to a global one.
type MaterialMapper interface {
	Remap(local int) int
}

// PresetFinder resolves presets named by CopyOf.
type PresetFinder interface {
	FindPreset(className, presetName string) (Preset, bool)
}

// DecodeContext carries what a preset needs from its module while decoding.
// A nil *DecodeContext is valid and provides nothing.
type DecodeContext struct {
	Eval      *hcl.EvalContext
	Materials MaterialMapper
	Finder    PresetFinder
}

// EvalContext returns the expression context, or nil.
func (dc *DecodeContext) EvalContext() *hcl.EvalContext {
	if dc == nil {
		return nil
	}
	return dc.Eval
}

// RemapMaterial maps a local material id through the module's table.
func (dc *DecodeContext) RemapMaterial(local int) int {
	if dc == nil || dc.Materials == nil {
		return local
	}
	return dc.Materials.Remap(local)
}

func (dc *DecodeContext) findPreset(className, presetName string) (Preset, bool) {
	if dc == nil || dc.Finder == nil {
		return nil, false
	}
	return dc.Finder.FindPreset(className, presetName)
}
