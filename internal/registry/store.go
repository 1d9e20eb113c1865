package registry

import (
	"fmt"

	"github.com/specialistvlad/datamodule/internal/entity"
)

// AddEntityPreset stores a copy of candidate, or, when a preset of the exact
// same class and name already exists and overwrite is true, copies candidate
// over it in place. It returns false without changing anything when the name
// is empty or "None", candidate is not an original preset, or the preset
// exists and overwrite is false.
//
// sourceFile is the module-relative file the definition came from; SameFile
// reuses the file of the latest entry, which requires at least one entry.
func (r *Registry) AddEntityPreset(candidate entity.Preset, overwrite bool, sourceFile string) bool {
	if candidate == nil || !validName(candidate.PresetName()) || !candidate.IsOriginalPreset() {
		return false
	}

	className := candidate.Class().Name()
	if ref, found := r.findRef(className, candidate.PresetName()); found {
		if !overwrite {
			return false
		}
		existing := r.entries[ref].preset
		clone := candidate.Clone()
		entity.SetModuleID(clone, r.moduleID)
		entity.Overwrite(existing, clone)
		entity.MarkOriginal(existing, true)
		if sourceFile != SameFile {
			r.entries[ref].fileReadFrom = sourceFile
		}
		r.registerGroups(existing)
		return true
	}

	if sourceFile == SameFile {
		if len(r.entries) == 0 {
			panic(fmt.Sprintf("registry: tried to add the first preset %q to data module %s without specifying a data file", candidate.PresetName(), r.moduleName))
		}
		sourceFile = r.entries[len(r.entries)-1].fileReadFrom
	}

	clone := candidate.Clone()
	entity.MarkOriginal(clone, true)
	entity.SetModuleID(clone, r.moduleID)

	ref := Ref(len(r.entries))
	r.entries = append(r.entries, PresetEntry{preset: clone, fileReadFrom: sourceFile})
	r.index.Insert(clone.PresetName(), clone.Class(), ref)
	r.registerGroups(clone)
	return true
}

// GetEntityPreset returns the preset with exactly this class and name.
// Presets of derived classes never match.
func (r *Registry) GetEntityPreset(exactType, exactName string) (entity.Preset, bool) {
	ref, found := r.findRef(exactType, exactName)
	if !found {
		return nil, false
	}
	return r.entries[ref].preset, true
}

// GetEntityIfExactType is GetEntityPreset under the name callers that intend
// to modify the preset use.
func (r *Registry) GetEntityIfExactType(exactType, exactName string) (entity.Preset, bool) {
	return r.GetEntityPreset(exactType, exactName)
}

// GetEntityDataLocation returns the file the preset was read from.
func (r *Registry) GetEntityDataLocation(exactType, exactName string) (string, bool) {
	preset, found := r.GetEntityPreset(exactType, exactName)
	if !found {
		return "", false
	}
	for _, entry := range r.entries {
		if entry.preset == preset {
			return entry.fileReadFrom, true
		}
	}
	panic(fmt.Sprintf("registry: tried to find allegedly existing preset entry %q in data module %s, but couldn't", exactName, r.moduleName))
}

// findRef scans the exact class bucket for name.
func (r *Registry) findRef(exactType, exactName string) (Ref, bool) {
	if exactType == "" || !validName(exactName) {
		return 0, false
	}
	for _, e := range r.index.bucket(exactType) {
		if e.name != exactName {
			continue
		}
		if r.resolve(e).Class().Name() == exactType {
			return e.ref, true
		}
	}
	return 0, false
}

// resolve returns the preset an index entry points at. An entry whose slot is
// gone means the index and store disagree, which is unrecoverable.
func (r *Registry) resolve(e indexEntry) entity.Preset {
	if int(e.ref) < 0 || int(e.ref) >= len(r.entries) {
		panic(fmt.Sprintf("registry: index entry %q points at missing store slot %d in data module %s", e.name, e.ref, r.moduleName))
	}
	return r.entries[e.ref].preset
}

func validName(name string) bool {
	return name != "" && name != entity.NoneName
}
