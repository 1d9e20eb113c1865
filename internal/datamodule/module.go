package datamodule

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/datamodule/internal/ctxlog"
	"github.com/specialistvlad/datamodule/internal/entity"
	"github.com/specialistvlad/datamodule/internal/material"
	"github.com/specialistvlad/datamodule/internal/registry"
	"github.com/specialistvlad/datamodule/internal/script"
	"github.com/zclconf/go-cty/cty"
)

const (
	// IndexFile is the file every module directory must contain.
	IndexFile = "Index.hcl"

	// MergedIndexFile replaces IndexFile when present.
	MergedIndexFile = "MergedIndex.hcl"

	// Extension marks definition files and DirSuffix marks module directories.
	Extension = ".hcl"
	DirSuffix = ".rte"
)

// Properties are the module-level settings read from the index.
type Properties struct {
	FriendlyName string
	Author       string
	Description  string
	// Version starts at 1 when the index does not set it.
	Version               int
	ScanFolderContents    bool
	IgnoreMissingItems    bool
	CrabToHumanSpawnRatio float64
	ScriptPath            string
	IconFile              string
	Requires              []string
}

// Module is a loaded data module. It embeds the preset registry, so preset
// queries are made on the module directly.
type Module struct {
	*registry.Registry

	name      string
	id        int
	dir       string
	props     Properties
	materials material.RemapTable
	diags     hcl.Diagnostics
	state     State
	unread    []string
}

func newModule(name string, id int, dir string) *Module {
	return &Module{
		Registry: registry.New(name, id),
		name:     name,
		id:       id,
		dir:      dir,
		props:    Properties{Version: 1},
	}
}

// Name returns the module's directory name, e.g. "Base.rte".
func (m *Module) Name() string { return m.name }

// ID returns the module id assigned when loading started.
func (m *Module) ID() int { return m.id }

// Dir returns the module's directory on disk.
func (m *Module) Dir() string { return m.dir }

// Properties returns the module-level settings.
func (m *Module) Properties() Properties {
	props := m.props
	props.Requires = append([]string(nil), m.props.Requires...)
	return props
}

// FriendlyName returns ModuleName, falling back to the directory name.
func (m *Module) FriendlyName() string {
	if m.props.FriendlyName != "" {
		return m.props.FriendlyName
	}
	return m.name
}

// State returns where loading got to.
func (m *Module) State() State { return m.state }

// Diagnostics returns every problem reported while loading, in order.
func (m *Module) Diagnostics() hcl.Diagnostics {
	return append(hcl.Diagnostics(nil), m.diags...)
}

// UnreadFiles returns the module-relative definition files the load did not
// read, e.g. files in subdirectories nothing includes.
func (m *Module) UnreadFiles() []string {
	return append([]string(nil), m.unread...)
}

// Materials returns the module's local-to-global material table.
func (m *Module) Materials() *material.RemapTable { return &m.materials }

// Remap implements entity.MaterialMapper.
func (m *Module) Remap(local int) int { return m.materials.Remap(local) }

// FindPreset implements entity.PresetFinder over this module only.
func (m *Module) FindPreset(className, presetName string) (entity.Preset, bool) {
	return m.GetEntityPreset(className, presetName)
}

// ReloadAllScripts runs the scripts of every scripted preset, then the
// module script. All scripts are attempted; the failures are joined.
func (m *Module) ReloadAllScripts(ctx context.Context, runner script.Runner) error {
	logger := ctxlog.FromContext(ctx)

	var errs []error
	for _, entry := range m.Entries() {
		scripted, ok := entry.Preset().(entity.Scripted)
		if !ok {
			continue
		}
		for _, path := range scripted.ScriptPaths() {
			if err := runner.RunScriptFile(ctx, path); err != nil {
				errs = append(errs, fmt.Errorf("preset %q: %w", entry.Preset().PresetName(), err))
			}
		}
	}
	if m.props.ScriptPath != "" {
		if err := runner.RunScriptFile(ctx, m.props.ScriptPath); err != nil {
			errs = append(errs, fmt.Errorf("module script: %w", err))
		}
	}

	logger.Debug("Module scripts reloaded.", "module", m.name, "failures", len(errs))
	return errors.Join(errs...)
}

// Save writes the module's descriptive properties as an index fragment.
func (m *Module) Save(w io.Writer) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	setString := func(name, value string) {
		if value != "" {
			body.SetAttributeValue(name, cty.StringVal(value))
		}
	}
	setString("ModuleName", m.props.FriendlyName)
	setString("Author", m.props.Author)
	setString("Description", m.props.Description)
	body.SetAttributeValue("Version", cty.NumberIntVal(int64(m.props.Version)))
	setString("IconFile", m.props.IconFile)

	_, err := w.Write(f.Bytes())
	return err
}

// Destroy releases every preset and clears the material table.
func (m *Module) Destroy() {
	m.Registry.Destroy()
	m.materials = material.RemapTable{}
}

func (m *Module) setState(ctx context.Context, s State) {
	ctxlog.FromContext(ctx).Debug("Module loading state changed.", "from", m.state, "to", s)
	m.state = s
}

func (m *Module) report(ctx context.Context, diags hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	for _, d := range diags {
		m.diags = append(m.diags, d)
		logger.Warn("Problem reported while loading module.", "error", d.Error())
	}
}
