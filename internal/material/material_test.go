package material

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemapTable_LastWriteWins(t *testing.T) {
	t.Parallel()

	var table RemapTable

	require.True(t, table.AddMapping(7, 12), "first mapping of a slot reports it was clear")
	require.False(t, table.AddMapping(7, 40), "second mapping of a slot reports a collision")
	require.Equal(t, 40, table.Mapping(7))
	require.Equal(t, 40, table.Remap(7))
	require.Equal(t, 9, table.Remap(9), "unmapped ids pass through")
	require.Equal(t, 0, table.Mapping(9))
	require.Equal(t, 1, table.Len())
}

func TestRemapTable_OutOfRangePanics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		from, to int
	}{
		{"zero from", 0, 5},
		{"zero to", 5, 0},
		{"negative from", -1, 5},
		{"from past end", PaletteSize, 5},
		{"to past end", 5, PaletteSize},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var table RemapTable
			require.Panics(t, func() { table.AddMapping(tc.from, tc.to) })
		})
	}

	var table RemapTable
	require.NotPanics(t, func() { table.AddMapping(1, PaletteSize-1) })
	require.Equal(t, 0, table.Mapping(PaletteSize), "lookups out of range are misses, not panics")
}

func TestPalette_Assign(t *testing.T) {
	t.Parallel()

	p := NewPalette()

	id, err := p.Assign("Dirt", 5)
	require.NoError(t, err)
	require.Equal(t, 5, id)

	id, err = p.Assign("Sand", 5)
	require.NoError(t, err)
	require.Equal(t, 1, id, "a taken slot falls back to the lowest free one")

	id, err = p.Assign("Dirt", 9)
	require.NoError(t, err)
	require.Equal(t, 5, id, "known materials keep their id")

	require.Equal(t, "Sand", p.Name(1))
	got, ok := p.ID("Dirt")
	require.True(t, ok)
	require.Equal(t, 5, got)

	_, err = p.Assign("Rock", 0)
	require.Error(t, err)
	_, err = p.Assign("", 3)
	require.Error(t, err)
}

func TestPalette_Full(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	for i := 1; i < PaletteSize; i++ {
		_, err := p.Assign(string(rune('A'+i%26))+string(rune('a'+i/26)), i)
		require.NoError(t, err)
	}
	_, err := p.Assign("Overflow", 3)
	require.ErrorIs(t, err, ErrPaletteFull)
}
