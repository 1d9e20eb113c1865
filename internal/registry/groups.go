package registry

import (
	"slices"
	"sort"

	"github.com/specialistvlad/datamodule/internal/entity"
)

// bucketFor maps the "All" alias and the empty type onto the root class.
func bucketFor(typeName string) string {
	if typeName == "" || typeName == entity.AllClasses {
		return entity.RootClassName
	}
	return typeName
}

// GetAllOfGroup returns the presets of type (or any type, for "" and "All")
// that belong to group.
func (r *Registry) GetAllOfGroup(group, typeName string) ([]entity.Preset, bool) {
	if group == "" {
		return nil, false
	}

	className := bucketFor(typeName)
	bucket, ok := r.index.buckets[className]
	if !ok {
		return nil, false
	}

	var found []entity.Preset
	for _, preset := range r.resolveBucket(className, bucket) {
		if preset.IsInGroup(group) {
			found = append(found, preset)
		}
	}
	return found, len(found) > 0
}

// GetGroupsWithType returns the sorted, de-duplicated names of every group a
// preset of type belongs to. "" and "All" query the root class, so they cover
// every preset in the module.
func (r *Registry) GetGroupsWithType(typeName string) ([]string, bool) {
	className := bucketFor(typeName)
	bucket, ok := r.index.buckets[className]
	if !ok {
		return nil, false
	}

	var groups []string
	for _, preset := range r.resolveBucket(className, bucket) {
		groups = append(groups, preset.Groups()...)
	}
	sort.Strings(groups)
	groups = slices.Compact(groups)
	return groups, len(groups) > 0
}

// GroupRegister returns every group any preset of the module has been in,
// including groups that an overwrite later removed, in first-seen order.
func (r *Registry) GroupRegister() []string {
	return slices.Clone(r.groupRegister)
}

func (r *Registry) registerGroups(p entity.Preset) {
	for _, group := range p.Groups() {
		if !slices.Contains(r.groupRegister, group) {
			r.groupRegister = append(r.groupRegister, group)
		}
	}
}
