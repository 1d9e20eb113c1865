// Package material holds the per-module material remap table and the
// process-wide palette that assigns global material ids.
package material

import "fmt"

// PaletteSize is the number of material slots, including the reserved slot 0.
const PaletteSize = 256

// RemapTable maps a module-local material id to a global one. A zero entry
// means the local id is unmapped.
type RemapTable struct {
	mappings [PaletteSize]int
}

// AddMapping maps fromID to toID and reports whether fromID was unmapped
// before. The write always happens. Both ids must be in [1, PaletteSize);
// anything else is a content or programming error and panics.
func (t *RemapTable) AddMapping(fromID, toID int) bool {
	if fromID <= 0 || fromID >= PaletteSize || toID <= 0 || toID >= PaletteSize {
		panic(fmt.Sprintf("material: out-of-bounds mapping %d -> %d (valid ids are 1-%d)", fromID, toID, PaletteSize-1))
	}
	wasClear := t.mappings[fromID] == 0
	t.mappings[fromID] = toID
	return wasClear
}

// Mapping returns the global id for fromID, or 0 when unmapped or out of range.
func (t *RemapTable) Mapping(fromID int) int {
	if fromID <= 0 || fromID >= PaletteSize {
		return 0
	}
	return t.mappings[fromID]
}

// Remap returns the global id for local, or local itself when unmapped.
func (t *RemapTable) Remap(local int) int {
	if mapped := t.Mapping(local); mapped != 0 {
		return mapped
	}
	return local
}

// Len returns the number of mapped slots.
func (t *RemapTable) Len() int {
	n := 0
	for _, id := range t.mappings {
		if id != 0 {
			n++
		}
	}
	return n
}
