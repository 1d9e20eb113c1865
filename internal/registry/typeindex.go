package registry

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/datamodule/internal/entity"
)

type indexEntry struct {
	name string
	ref  Ref
}

// TypeIndex maps a class name to every preset of that class or a descendant.
type TypeIndex struct {
	buckets map[string][]indexEntry
}

func newTypeIndex() *TypeIndex {
	return &TypeIndex{buckets: make(map[string][]indexEntry)}
}

// Insert lists ref under class and each of its ancestors. Name collisions are
// not checked here; AddEntityPreset resolves them first.
func (ix *TypeIndex) Insert(name string, class *entity.Class, ref Ref) {
	for _, className := range class.Chain() {
		ix.buckets[className] = append(ix.buckets[className], indexEntry{name: name, ref: ref})
	}
}

func (ix *TypeIndex) bucket(className string) []indexEntry {
	return ix.buckets[className]
}

// Classes returns every populated class name in sorted order.
func (ix *TypeIndex) Classes() []string {
	names := make([]string, 0, len(ix.buckets))
	for name := range ix.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classes returns every class name with at least one preset, ancestors included.
func (r *Registry) Classes() []string {
	return r.index.Classes()
}

// GetAllOfType returns every preset of type or of a class derived from it,
// in insertion order. It reports false when type was never populated.
func (r *Registry) GetAllOfType(typeName string) ([]entity.Preset, bool) {
	if typeName == "" {
		return nil, false
	}
	bucket, ok := r.index.buckets[typeName]
	if !ok {
		return nil, false
	}
	return r.resolveBucket(typeName, bucket), true
}

func (r *Registry) resolveBucket(typeName string, bucket []indexEntry) []entity.Preset {
	if len(bucket) == 0 {
		panic(fmt.Sprintf("registry: data module %s has class entry %q without presets", r.moduleName, typeName))
	}
	presets := make([]entity.Preset, 0, len(bucket))
	for _, e := range bucket {
		presets = append(presets, r.resolve(e))
	}
	return presets
}
