package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/datamodule/internal/entity"
	"github.com/stretchr/testify/require"
)

var soldierClass = entity.NewClass("Actor", entity.MOSRotatingClass)

type soldier struct {
	entity.MOSRotating
	Health float64
}

func (s *soldier) Class() *entity.Class { return soldierClass }

func (s *soldier) Clone() entity.Preset { return entity.Copy(s) }

func newActor(name string, health float64, groups ...string) *soldier {
	s := &soldier{Health: health}
	entity.SetPresetName(s, name)
	entity.MarkOriginal(s, true)
	for _, g := range groups {
		s.AddToGroup(g)
	}
	return s
}

func newRotating(name string, groups ...string) *entity.MOSRotating {
	m := &entity.MOSRotating{}
	entity.SetPresetName(m, name)
	entity.MarkOriginal(m, true)
	for _, g := range groups {
		m.AddToGroup(g)
	}
	return m
}

func names(presets []entity.Preset) []string {
	out := make([]string, 0, len(presets))
	for _, p := range presets {
		out = append(out, p.PresetName())
	}
	return out
}

func TestAddEntityPreset_Rejects(t *testing.T) {
	t.Parallel()

	clone := newActor("Ghost", 1).Clone()
	cases := []struct {
		name   string
		preset entity.Preset
	}{
		{name: "nil", preset: nil},
		{name: "empty name", preset: newActor("", 1)},
		{name: "sentinel name", preset: newActor("None", 1)},
		{name: "not original", preset: clone},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := New("Test.rte", 0)
			require.False(t, r.AddEntityPreset(tc.preset, true, "Test.rte/Index.hcl"))
			require.Zero(t, r.Len())
		})
	}
}

func TestAddEntityPreset_StoresCopy(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New("Base.rte", 3)
	candidate := newActor("Soldier", 100, "Infantry")

	// --- Act ---
	added := r.AddEntityPreset(candidate, false, "Base.rte/Actors.hcl")

	// --- Assert ---
	require.True(t, added)
	stored, found := r.GetEntityPreset("Actor", "Soldier")
	require.True(t, found)
	require.NotSame(t, candidate, stored, "the registry owns its own copy")
	require.True(t, stored.IsOriginalPreset())
	require.Equal(t, 3, stored.ModuleID())
	require.Equal(t, 100.0, stored.(*soldier).Health)

	file, found := r.GetEntityDataLocation("Actor", "Soldier")
	require.True(t, found)
	require.Equal(t, "Base.rte/Actors.hcl", file)
}

func TestAddEntityPreset_DuplicateWithoutOverwriteLeavesRegistryUnchanged(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New("Base.rte", 0)
	require.True(t, r.AddEntityPreset(newActor("Soldier", 100, "Infantry"), false, "Base.rte/A.hcl"))
	before := r.Entries()

	// --- Act ---
	added := r.AddEntityPreset(newActor("Soldier", 5, "Heavy"), false, "Base.rte/B.hcl")

	// --- Assert ---
	require.False(t, added)
	require.Equal(t, 1, r.Len())
	after := r.Entries()
	require.Same(t, before[0].Preset(), after[0].Preset())
	require.Equal(t, 100.0, after[0].Preset().(*soldier).Health)
	require.Equal(t, "Base.rte/A.hcl", after[0].SourceFile())
	require.Equal(t, []string{"Infantry"}, r.GroupRegister())
}

func TestAddEntityPreset_OverwritePreservesIdentity(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New("Base.rte", 2)
	require.True(t, r.AddEntityPreset(newActor("Soldier", 100, "Infantry"), false, "Base.rte/A.hcl"))
	held, _ := r.GetEntityPreset("Actor", "Soldier")

	// --- Act ---
	overwritten := r.AddEntityPreset(newActor("Soldier", 250, "Heavy"), true, "Base.rte/B.hcl")

	// --- Assert ---
	require.True(t, overwritten)
	require.Equal(t, 1, r.Len())

	now, found := r.GetEntityPreset("Actor", "Soldier")
	require.True(t, found)
	require.Same(t, held, now)
	require.Equal(t, 250.0, held.(*soldier).Health)
	require.True(t, held.IsOriginalPreset())
	require.Equal(t, 2, held.ModuleID())
	require.Equal(t, []string{"Heavy"}, held.Groups())

	file, _ := r.GetEntityDataLocation("Actor", "Soldier")
	require.Equal(t, "Base.rte/B.hcl", file)
	require.Equal(t, []string{"Infantry", "Heavy"}, r.GroupRegister())

	all, ok := r.GetAllOfType("Entity")
	require.True(t, ok)
	require.Len(t, all, 1, "an overwrite must not add index entries")
}

func TestAddEntityPreset_SameFile(t *testing.T) {
	t.Parallel()

	r := New("Base.rte", 0)
	require.Panics(t, func() {
		r.AddEntityPreset(newActor("Soldier", 1), false, SameFile)
	}, "the first entry needs a real file")

	require.True(t, r.AddEntityPreset(newActor("Soldier", 1), false, "Base.rte/A.hcl"))
	require.True(t, r.AddEntityPreset(newRotating("Crate"), false, SameFile))
	file, _ := r.GetEntityDataLocation("MOSRotating", "Crate")
	require.Equal(t, "Base.rte/A.hcl", file)

	require.True(t, r.AddEntityPreset(newActor("Soldier", 2), true, SameFile))
	file, _ = r.GetEntityDataLocation("Actor", "Soldier")
	require.Equal(t, "Base.rte/A.hcl", file, "an overwrite with SameFile keeps the recorded file")
}

func TestGetEntityPreset_ExactClassOnly(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New("Base.rte", 0)
	require.True(t, r.AddEntityPreset(newActor("Soldier", 1), false, "Base.rte/A.hcl"))
	require.True(t, r.AddEntityPreset(newRotating("Soldier"), false, "Base.rte/A.hcl"), "same name, other class")

	cases := []struct {
		name      string
		typeName  string
		preset    string
		wantFound bool
	}{
		{name: "exact actor", typeName: "Actor", preset: "Soldier", wantFound: true},
		{name: "exact rotating", typeName: "MOSRotating", preset: "Soldier", wantFound: true},
		{name: "ancestor class", typeName: "MovableObject", preset: "Soldier"},
		{name: "root class", typeName: "Entity", preset: "Soldier"},
		{name: "empty type", typeName: "", preset: "Soldier"},
		{name: "empty name", typeName: "Actor", preset: ""},
		{name: "sentinel", typeName: "Actor", preset: "None"},
		{name: "unknown", typeName: "Actor", preset: "Medic"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			p, found := r.GetEntityPreset(tc.typeName, tc.preset)
			q, foundExact := r.GetEntityIfExactType(tc.typeName, tc.preset)

			// --- Assert ---
			require.Equal(t, tc.wantFound, found)
			require.Equal(t, found, foundExact)
			require.Equal(t, p, q)
			if found {
				require.Equal(t, tc.typeName, p.Class().Name())
			}
		})
	}
}

func TestGetEntityDataLocation_DesyncPanics(t *testing.T) {
	t.Parallel()

	r := New("Base.rte", 0)
	require.True(t, r.AddEntityPreset(newActor("Soldier", 1), false, "Base.rte/A.hcl"))
	r.entries = r.entries[:0]

	require.Panics(t, func() { r.GetEntityDataLocation("Actor", "Soldier") })
}

func TestGetAllOfType_ChainInclusion(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New("Base.rte", 0)
	require.True(t, r.AddEntityPreset(newRotating("Crate"), false, "Base.rte/A.hcl"))
	require.True(t, r.AddEntityPreset(newActor("Soldier", 1), false, "Base.rte/A.hcl"))
	require.True(t, r.AddEntityPreset(newActor("Medic", 1), false, "Base.rte/A.hcl"))

	// --- Act & Assert ---
	actors, ok := r.GetAllOfType("Actor")
	require.True(t, ok)
	require.Equal(t, []string{"Soldier", "Medic"}, names(actors))

	for _, className := range r.Classes() {
		bucket, ok := r.GetAllOfType(className)
		require.True(t, ok)
		for _, p := range bucket {
			for _, ancestor := range p.Class().Chain() {
				ancestors, ok := r.GetAllOfType(ancestor)
				require.True(t, ok, "ancestor %s of %s must be populated", ancestor, className)
				require.Contains(t, ancestors, p)
			}
		}
	}

	rotating, _ := r.GetAllOfType("MOSRotating")
	require.Equal(t, []string{"Crate", "Soldier", "Medic"}, names(rotating))

	want := []string{"Actor", "Entity", "MOSRotating", "MovableObject", "SceneObject"}
	if diff := cmp.Diff(want, r.Classes()); diff != "" {
		t.Errorf("Classes() mismatch (-want +got):\n%s", diff)
	}

	_, ok = r.GetAllOfType("")
	require.False(t, ok)
	_, ok = r.GetAllOfType("Material")
	require.False(t, ok)
}

func TestGetAllOfType_EmptyBucketPanics(t *testing.T) {
	t.Parallel()

	r := New("Base.rte", 0)
	r.index.buckets["Actor"] = nil
	require.Panics(t, func() { r.GetAllOfType("Actor") })
}

func TestGroupQueries(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New("Base.rte", 0)
	require.True(t, r.AddEntityPreset(newActor("Soldier", 1, "Infantry", "Humans"), false, "Base.rte/A.hcl"))
	require.True(t, r.AddEntityPreset(newActor("Medic", 1, "Humans", "Support"), false, "Base.rte/A.hcl"))
	require.True(t, r.AddEntityPreset(newRotating("Crate", "Props", "Humans"), false, "Base.rte/A.hcl"))

	t.Run("all of group", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			group, typeName string
			want            []string
		}{
			{group: "Humans", typeName: "Actor", want: []string{"Soldier", "Medic"}},
			{group: "Humans", typeName: "All", want: []string{"Soldier", "Medic", "Crate"}},
			{group: "Humans", typeName: "", want: []string{"Soldier", "Medic", "Crate"}},
			{group: "Props", typeName: "Actor"},
			{group: "", typeName: "Actor"},
			{group: "Humans", typeName: "Material"},
		}
		for _, tc := range cases {
			got, ok := r.GetAllOfGroup(tc.group, tc.typeName)
			require.Equal(t, len(tc.want) > 0, ok, "%s/%s", tc.group, tc.typeName)
			if ok {
				require.Equal(t, tc.want, names(got))
			}
		}
	})

	t.Run("groups with type", func(t *testing.T) {
		t.Parallel()

		groups, ok := r.GetGroupsWithType("Actor")
		require.True(t, ok)
		require.Equal(t, []string{"Humans", "Infantry", "Support"}, groups, "sorted, each group once")

		all, ok := r.GetGroupsWithType("All")
		require.True(t, ok)
		root, _ := r.GetGroupsWithType("Entity")
		empty, _ := r.GetGroupsWithType("")
		require.Equal(t, root, all)
		require.Equal(t, root, empty)
		require.Equal(t, []string{"Humans", "Infantry", "Props", "Support"}, all)

		_, ok = r.GetGroupsWithType("Material")
		require.False(t, ok)
	})

	t.Run("register", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []string{"Infantry", "Humans", "Support", "Props"}, r.GroupRegister())
	})
}

func TestDestroy(t *testing.T) {
	t.Parallel()

	r := New("Base.rte", 0)
	require.True(t, r.AddEntityPreset(newActor("Soldier", 1, "Infantry"), false, "Base.rte/A.hcl"))

	r.Destroy()

	require.Zero(t, r.Len())
	_, found := r.GetEntityPreset("Actor", "Soldier")
	require.False(t, found)
	_, ok := r.GetAllOfType("Entity")
	require.False(t, ok)
	require.Empty(t, r.GroupRegister())
	require.True(t, r.AddEntityPreset(newActor("Soldier", 1), false, "Base.rte/A.hcl"), "a destroyed registry can be refilled")
}
