package hclprop

import (
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *File {
	t.Helper()
	file, diags := ParseBytes(hclparse.NewParser(), []byte(src), "Index.hcl")
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Error())
	return file
}

func TestStatements_SourceOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := `
ModuleName = "Base"
Actor "Soldier" {
  Health = 100
}
Author = "Data Realms"
AddMaterial "Dirt" {
  Index = 5
}
Version = 2
`
	// --- Act ---
	file := parse(t, src)

	// --- Assert ---
	var names []string
	for _, stmt := range file.Statements {
		names = append(names, stmt.Name)
	}
	require.Equal(t, []string{"ModuleName", "Actor", "Author", "AddMaterial", "Version"}, names)
	require.True(t, file.Statements[1].IsBlock())
	require.Equal(t, "Soldier", file.Statements[1].Label())
	require.Equal(t, "", file.Statements[0].Label())
	require.Nil(t, file.Statements[0].Body())
}

func TestStatement_TypedValues(t *testing.T) {
	t.Parallel()

	file := parse(t, `
Name    = "Base"
Version = 3
Ratio   = 0.25
Scan    = true
One     = "Base.rte"
Many    = ["Base.rte", "Coalition.rte"]
Loud    = upper(module.name)
`)
	ctx := NewEvalContext("quiet.rte", 4)
	byName := make(map[string]Statement)
	for _, stmt := range file.Statements {
		byName[stmt.Name] = stmt
	}

	name, diags := byName["Name"].String(ctx)
	require.False(t, diags.HasErrors())
	require.Equal(t, "Base", name)

	version, diags := byName["Version"].Int(ctx)
	require.False(t, diags.HasErrors())
	require.Equal(t, 3, version)

	ratio, diags := byName["Ratio"].Float(ctx)
	require.False(t, diags.HasErrors())
	require.InDelta(t, 0.25, ratio, 1e-9)

	scan, diags := byName["Scan"].Bool(ctx)
	require.False(t, diags.HasErrors())
	require.True(t, scan)

	one, diags := byName["One"].Strings(ctx)
	require.False(t, diags.HasErrors())
	require.Equal(t, []string{"Base.rte"}, one)

	many, diags := byName["Many"].Strings(ctx)
	require.False(t, diags.HasErrors())
	require.Equal(t, []string{"Base.rte", "Coalition.rte"}, many)

	loud, diags := byName["Loud"].String(ctx)
	require.False(t, diags.HasErrors())
	require.Equal(t, "QUIET.RTE", loud)
}

func TestStatement_BlockIsNotAValue(t *testing.T) {
	t.Parallel()

	file := parse(t, `Version "x" {}`)
	_, diags := file.Statements[0].Int(nil)
	require.True(t, diags.HasErrors())
	require.Contains(t, diags.Error(), "Unexpected block")
}

func TestStatement_StringsRejectsNumbersList(t *testing.T) {
	t.Parallel()

	file := parse(t, `Require = [{ a = 1 }]`)
	_, diags := file.Statements[0].Strings(nil)
	require.True(t, diags.HasErrors())
	require.Contains(t, diags.Error(), "Invalid value for Require")
}

type parentProps struct {
	Mass float64 `hcl:"Mass,optional"`
}

type childProps struct {
	parentProps
	Health float64 `hcl:"Health,optional"`
	Team   int     `hcl:"Team,optional"`
	Note   string
}

func TestDecodePartial_LeavesUnknownAndAbsent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	file := parse(t, `
Actor "Soldier" {
  Health = 80
  Mass   = 70
}
`)
	target := &childProps{Team: 2, Note: "kept"}

	// --- Act ---
	remain, diags := DecodePartial(file.Statements[0].Body(), nil, target)

	// --- Assert ---
	require.False(t, diags.HasErrors(), diags.Error())
	require.Equal(t, 80.0, target.Health)
	require.Equal(t, 2, target.Team, "absent attribute must keep its previous value")
	require.Equal(t, 0.0, target.Mass, "embedded struct fields belong to the parent's decode")

	remain, diags = DecodePartial(remain, nil, &target.parentProps)
	require.False(t, diags.HasErrors(), diags.Error())
	require.Equal(t, 70.0, target.Mass)
	require.False(t, RejectRemaining(remain).HasErrors())
}

func TestRejectRemaining_ReportsLeftovers(t *testing.T) {
	t.Parallel()

	file := parse(t, `
Actor "Soldier" {
  Wings = 2
}
`)
	diags := RejectRemaining(file.Statements[0].Body())
	require.True(t, diags.HasErrors())
	require.Contains(t, diags.Error(), "Unsupported argument")
}

func TestDecodePartial_PanicsOnNonStruct(t *testing.T) {
	t.Parallel()

	file := parse(t, `A "b" {}`)
	var n int
	require.Panics(t, func() { _, _ = DecodePartial(file.Statements[0].Body(), nil, &n) })
}
