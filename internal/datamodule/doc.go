// Package datamodule loads one data module directory (e.g. "Base.rte") into
// a Module: its properties, its presets and its material remap table.
//
// A module directory holds an index file, Index.hcl, or the pre-merged
// MergedIndex.hcl which takes precedence when present. Index statements are
// read in source order. Module properties (ModuleName, Author, Require,
// AddMaterial, IncludeFile, ...) are handled by the loader; every other
// statement names a preset class and defines a preset of it:
//
//	ModuleName = "Base"
//	Require    = ["Core.rte"]
//
//	AddMaterial "Dirt" {
//	  Index = 5
//	}
//
//	AHuman "Soldier" {
//	  Mass     = 80
//	  Material = 5
//	}
//
// With ScanFolderContents set, every other .hcl file next to the index is
// read as well, after the index, without the right to overwrite presets the
// index defined. Problems in content are reported as diagnostics on the
// module and loading carries on; only a missing or unreadable index fails
// the load.
package datamodule
