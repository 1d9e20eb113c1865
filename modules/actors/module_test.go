package actors

import (
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/datamodule/internal/entity"
	"github.com/specialistvlad/datamodule/internal/hclprop"
	"github.com/stretchr/testify/require"
)

func TestDecodeChain(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := entity.NewCatalog(&Module{})
	file, diags := hclprop.ParseBytes(hclparse.NewParser(), []byte(`
AHuman "Soldier" {
  JumpPower   = 10
  Team        = 1
  SpriteFile  = "Base.rte/Soldier.png"
  Mass        = 80
  GoldValue   = 40
  Description = "Standard infantry."
  Groups      = ["Infantry"]
}

ACrab "Dreadnought" {
  Health = 500
}
`), "Index.hcl")
	require.False(t, diags.HasErrors(), diags.Error())

	// --- Act ---
	soldier, diags := c.Build(file.Statements[0], nil)
	require.False(t, diags.HasErrors(), diags.Error())
	crab, diags := c.Build(file.Statements[1], nil)
	require.False(t, diags.HasErrors(), diags.Error())

	// --- Assert ---
	h := soldier.(*AHuman)
	require.Equal(t, 10.0, h.JumpPower)
	require.Equal(t, 1, h.Team)
	require.Equal(t, 100.0, h.Health, "factory default")
	require.Equal(t, "Base.rte/Soldier.png", h.SpriteFile)
	require.Equal(t, 80.0, h.Mass)
	require.Equal(t, 40.0, h.GoldValue)
	require.Equal(t, "Standard infantry.", h.Description)
	require.True(t, h.IsInGroup("Infantry"))
	require.Equal(t, []string{"AHuman", "Actor", "MOSRotating", "MovableObject", "SceneObject", "Entity"}, h.Class().Chain())

	d := crab.(*ACrab)
	require.Equal(t, 500.0, d.Health)
	require.Equal(t, 4, d.LegCount)
}

func TestDecodeRejectsOtherClassAttributes(t *testing.T) {
	t.Parallel()

	c := entity.NewCatalog(&Module{})
	file, diags := hclprop.ParseBytes(hclparse.NewParser(), []byte(`Actor "Soldier" { JumpPower = 3 }`), "Index.hcl")
	require.False(t, diags.HasErrors(), diags.Error())

	_, diags = c.Build(file.Statements[0], nil)
	require.True(t, diags.HasErrors(), "JumpPower belongs to AHuman, not Actor")
}
