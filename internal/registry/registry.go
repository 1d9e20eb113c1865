package registry

import (
	"github.com/specialistvlad/datamodule/internal/entity"
)

// SameFile is the source-file value meaning "the file of the previous entry".
const SameFile = "Same"

// Ref identifies a store slot.
type Ref int

// PresetEntry pairs an owned preset with the file it was read from.
type PresetEntry struct {
	preset       entity.Preset
	fileReadFrom string
}

// Preset returns the owned preset.
func (e PresetEntry) Preset() entity.Preset { return e.preset }

// SourceFile returns the module-relative file the preset was defined in.
func (e PresetEntry) SourceFile() string { return e.fileReadFrom }

// Registry holds all the presets defined by one data module.
type Registry struct {
	moduleName    string
	moduleID      int
	entries       []PresetEntry
	index         *TypeIndex
	groupRegister []string
}

// New creates an empty registry for the named module.
func New(moduleName string, moduleID int) *Registry {
	return &Registry{
		moduleName: moduleName,
		moduleID:   moduleID,
		index:      newTypeIndex(),
	}
}

// ModuleID returns the id stamped on every preset the registry owns.
func (r *Registry) ModuleID() int { return r.moduleID }

// Len returns the number of distinct presets.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the store's entries in definition order.
func (r *Registry) Entries() []PresetEntry {
	out := make([]PresetEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Destroy drops every owned preset and the indexes that refer to them.
func (r *Registry) Destroy() {
	r.entries = nil
	r.index = newTypeIndex()
	r.groupRegister = nil
}
