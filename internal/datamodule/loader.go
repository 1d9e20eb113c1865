package datamodule

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/datamodule/internal/ctxlog"
	"github.com/specialistvlad/datamodule/internal/entity"
	"github.com/specialistvlad/datamodule/internal/fsutil"
	"github.com/specialistvlad/datamodule/internal/hclprop"
	"github.com/specialistvlad/datamodule/internal/material"
	"github.com/specialistvlad/datamodule/internal/script"
)

// Dependencies answers whether a required module is already loaded.
type Dependencies interface {
	ModuleID(name string) (int, bool)
}

// Loader turns module directories into Modules. The zero value is not
// usable; Catalog and Palette are required.
type Loader struct {
	Catalog *entity.Catalog
	Palette *material.Palette

	// Deps resolves Require statements. Nil, or CheckDependencies false,
	// skips the check.
	Deps              Dependencies
	CheckDependencies bool

	// Finder resolves CopyOf sources not defined by the module itself,
	// typically the modules loaded before it.
	Finder entity.PresetFinder

	// Scripts runs the module script after the index and folder scan.
	Scripts script.Runner
}

// Load reads the module directory dataPath/name. It fails only when the
// index is missing or unparsable; content problems end up in
// Module.Diagnostics and the returned module is Complete.
func (l *Loader) Load(ctx context.Context, dataPath, name string, id int) (*Module, error) {
	return l.load(ctx, dataPath, name, id, false)
}

// ReadProperties reads only the module-level properties of Index.hcl, even
// when a MergedIndex.hcl is present. No presets, materials, includes,
// dependency checks or scripts are processed.
func (l *Loader) ReadProperties(ctx context.Context, dataPath, name string) (*Module, error) {
	return l.load(ctx, dataPath, name, -1, true)
}

func (l *Loader) load(ctx context.Context, dataPath, name string, id int, propsOnly bool) (*Module, error) {
	if l.Catalog == nil || l.Palette == nil {
		panic("datamodule: loader needs a catalog and a palette")
	}

	mod := newModule(name, id, filepath.Join(dataPath, name))
	ctx = ctxlog.With(ctx, "module", name)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading data module...", "dir", mod.dir, "properties_only", propsOnly)

	r := &reader{
		loader:    l,
		mod:       mod,
		parser:    hclparse.NewParser(),
		propsOnly: propsOnly,
		visited:   make(map[string]bool),
	}
	r.dc = &entity.DecodeContext{
		Eval:      hclprop.NewEvalContext(name, id),
		Materials: mod,
		Finder:    moduleFinder{mod: mod, fallback: l.Finder},
	}

	mod.setState(ctx, ReadingIndex)
	if err := r.readIndex(ctx); err != nil {
		mod.setState(ctx, Failed)
		logger.Error("Failed to read data module index.", "error", err)
		return mod, err
	}
	if propsOnly {
		mod.setState(ctx, Complete)
		return mod, nil
	}
	r.checkIcon(ctx)

	if mod.props.ScanFolderContents {
		mod.setState(ctx, ScanningFolder)
		r.scanFolder(ctx)
	}

	r.findUnreadFiles(ctx)

	mod.setState(ctx, ScriptLoading)
	r.runModuleScript(ctx)

	mod.setState(ctx, Complete)
	logger.Info("Data module loaded.",
		"presets", mod.Len(),
		"materials", mod.materials.Len(),
		"problems", len(mod.diags),
	)
	return mod, nil
}

// reader carries the state of one Load call.
type reader struct {
	loader    *Loader
	mod       *Module
	parser    *hclparse.Parser
	dc        *entity.DecodeContext
	propsOnly bool
	visited   map[string]bool
}

func (r *reader) readIndex(ctx context.Context) error {
	indexName := MergedIndexFile
	if r.propsOnly || !fsutil.Exists(filepath.Join(r.mod.dir, indexName)) {
		indexName = IndexFile
	}
	if !fsutil.Exists(filepath.Join(r.mod.dir, indexName)) {
		return fmt.Errorf("data module %s has no %s", r.mod.name, IndexFile)
	}

	file, diags := r.parse(indexName)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse %s: %w", r.sourceFile(indexName), diags)
	}
	r.mod.report(ctx, diags)
	r.readStatements(ctx, file, indexName, true)
	return nil
}

func (r *reader) scanFolder(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	names, err := fsutil.FindSiblingFiles(r.mod.dir, Extension, IndexFile, MergedIndexFile)
	if err != nil {
		r.mod.report(ctx, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Failed to scan module folder",
			Detail:   err.Error(),
		}})
		return
	}

	for _, rel := range names {
		if r.visited[rel] {
			logger.Debug("Skipping file already read through the index.", "file", rel)
			continue
		}
		file, diags := r.parse(rel)
		r.mod.report(ctx, diags)
		if diags.HasErrors() {
			logger.Warn("Skipping malformed definition file. Continue loading other files.", "file", rel)
			continue
		}
		r.readStatements(ctx, file, rel, false)
	}
}

// findUnreadFiles records the definition files anywhere in the module tree
// that neither the index, its includes nor the folder scan read.
func (r *reader) findUnreadFiles(ctx context.Context) {
	paths, err := fsutil.FindFilesByExtension(r.mod.dir, Extension)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to list module files.", "error", err)
		return
	}
	for _, p := range paths {
		rel, err := filepath.Rel(r.mod.dir, p)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if !r.visited[rel] {
			r.mod.unread = append(r.mod.unread, rel)
		}
	}
	if len(r.mod.unread) > 0 {
		ctxlog.FromContext(ctx).Debug("Definition files not read.", "files", r.mod.unread)
	}
}

func (r *reader) parse(rel string) (*hclprop.File, hcl.Diagnostics) {
	r.visited[rel] = true
	return hclprop.ParseFile(r.parser, filepath.Join(r.mod.dir, filepath.FromSlash(rel)))
}

// sourceFile turns a module-relative path into the form recorded with each
// preset, e.g. "Base.rte/Actors.hcl".
func (r *reader) sourceFile(rel string) string {
	return path.Join(r.mod.name, filepath.ToSlash(rel))
}

// moduleRelative accepts a path relative to the module directory or to the
// data directory ("Base.rte/Actors.hcl") and returns it relative to the
// module. Files of another module come back as "../Other.rte/File.hcl";
// any other path leaving the module directory is an error.
func (r *reader) moduleRelative(p string) (string, error) {
	p = path.Clean(filepath.ToSlash(p))
	if path.IsAbs(p) || filepath.IsAbs(p) {
		return "", fmt.Errorf("path %q must be relative to the data directory", p)
	}

	first, rest, nested := strings.Cut(p, "/")
	switch {
	case first == "..":
		return "", fmt.Errorf("path %q leaves the module directory", p)
	case first == r.mod.name && nested:
		return rest, nil
	case strings.HasSuffix(first, DirSuffix) && nested:
		return path.Join("..", p), nil
	}
	return p, nil
}

func (r *reader) readStatements(ctx context.Context, file *hclprop.File, rel string, overwrite bool) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reading definition file.", "file", rel, "statements", len(file.Statements), "overwrite", overwrite)

	for _, stmt := range file.Statements {
		if handled := r.readProperty(ctx, stmt); handled {
			continue
		}
		if r.propsOnly {
			continue
		}
		switch stmt.Name {
		case "Require":
			r.readRequire(ctx, stmt)
		case "IncludeFile":
			r.readInclude(ctx, stmt, overwrite)
		case "AddMaterial":
			r.addMaterial(ctx, stmt, rel, overwrite)
		default:
			r.addPreset(ctx, stmt, rel, overwrite)
		}
	}
}

// readProperty handles the module-level properties that ReadProperties also
// reads. It reports false for any other statement.
func (r *reader) readProperty(ctx context.Context, stmt hclprop.Statement) bool {
	eval := r.dc.Eval
	props := &r.mod.props

	var diags hcl.Diagnostics
	switch stmt.Name {
	case "ModuleName":
		props.FriendlyName, diags = stmt.String(eval)
	case "Author":
		props.Author, diags = stmt.String(eval)
	case "Description":
		props.Description, diags = stmt.String(eval)
	case "Version":
		props.Version, diags = stmt.Int(eval)
	case "ScanFolderContents":
		props.ScanFolderContents, diags = stmt.Bool(eval)
	case "IgnoreMissingItems":
		props.IgnoreMissingItems, diags = stmt.Bool(eval)
	case "CrabToHumanSpawnRatio":
		props.CrabToHumanSpawnRatio, diags = stmt.Float(eval)
	case "ScriptPath":
		props.ScriptPath, diags = stmt.String(eval)
	case "IconFile":
		props.IconFile, diags = stmt.String(eval)
	case "Require":
		if !r.propsOnly {
			return false
		}
		var names []string
		names, diags = stmt.Strings(eval)
		props.Requires = append(props.Requires, names...)
	default:
		return false
	}
	r.mod.report(ctx, diags)
	return true
}

func (r *reader) readRequire(ctx context.Context, stmt hclprop.Statement) {
	names, diags := stmt.Strings(r.dc.Eval)
	r.mod.report(ctx, diags)
	r.mod.props.Requires = append(r.mod.props.Requires, names...)

	deps := r.loader.Deps
	if !r.loader.CheckDependencies || deps == nil {
		return
	}
	for _, name := range names {
		if _, loaded := deps.ModuleID(name); loaded {
			continue
		}
		r.mod.report(ctx, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing required module",
			Detail:   fmt.Sprintf("Module %s requires %q, which has not been loaded. Load it first.", r.mod.name, name),
			Subject:  stmt.Range().Ptr(),
		}})
	}
}

func (r *reader) readInclude(ctx context.Context, stmt hclprop.Statement, overwrite bool) {
	targets, diags := stmt.Strings(r.dc.Eval)
	r.mod.report(ctx, diags)

	for _, target := range targets {
		rel, err := r.moduleRelative(target)
		if err != nil {
			r.mod.report(ctx, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid include path",
				Detail:   err.Error(),
				Subject:  stmt.Range().Ptr(),
			}})
			continue
		}
		if r.visited[rel] {
			r.mod.report(ctx, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "File included twice",
				Detail:   fmt.Sprintf("%s has already been read; includes may not repeat or form a cycle.", r.sourceFile(rel)),
				Subject:  stmt.Range().Ptr(),
			}})
			continue
		}

		file, diags := r.parse(rel)
		r.mod.report(ctx, diags)
		if diags.HasErrors() {
			continue
		}
		r.readStatements(ctx, file, rel, overwrite)
	}
}

func (r *reader) addMaterial(ctx context.Context, stmt hclprop.Statement, rel string, overwrite bool) {
	logger := ctxlog.FromContext(ctx)

	asPreset := hclprop.Statement{Name: entity.MaterialClass.Name(), Attr: stmt.Attr, Block: stmt.Block}
	preset, diags := r.loader.Catalog.Build(asPreset, r.dc)
	r.mod.report(ctx, diags)
	if preset == nil {
		return
	}
	mat := preset.(*entity.Material)

	if _, exists := r.mod.GetEntityPreset(entity.MaterialClass.Name(), mat.PresetName()); exists && !overwrite {
		logger.Debug("Material not added; keeping the existing definition.", "material", mat.PresetName(), "file", rel)
		return
	}
	if mat.Index <= 0 || mat.Index >= material.PaletteSize {
		r.mod.report(ctx, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Material index out of range",
			Detail:   fmt.Sprintf("Material %q has Index %d; it must be between 1 and %d.", mat.PresetName(), mat.Index, material.PaletteSize-1),
			Subject:  stmt.Range().Ptr(),
		}})
		return
	}

	globalID, err := r.loader.Palette.Assign(mat.PresetName(), mat.Index)
	if err != nil {
		r.mod.report(ctx, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Could not register material",
			Detail:   err.Error(),
			Subject:  stmt.Range().Ptr(),
		}})
		return
	}
	if wasClear := r.mod.materials.AddMapping(mat.Index, globalID); !wasClear {
		logger.Warn("Material index mapped twice; the later mapping wins.", "material", mat.PresetName(), "index", mat.Index, "global_id", globalID)
	}

	r.mod.AddEntityPreset(mat, overwrite, r.sourceFile(rel))
}

func (r *reader) addPreset(ctx context.Context, stmt hclprop.Statement, rel string, overwrite bool) {
	logger := ctxlog.FromContext(ctx)

	preset, diags := r.loader.Catalog.Build(stmt, r.dc)
	if r.mod.props.IgnoreMissingItems {
		diags = r.dropMissingItems(ctx, diags)
	}
	r.mod.report(ctx, diags)
	if preset == nil {
		return
	}

	if !r.mod.AddEntityPreset(preset, overwrite, r.sourceFile(rel)) {
		logger.Debug("Preset not added; keeping the existing definition.", "class", stmt.Name, "preset", preset.PresetName(), "file", rel)
	}
}

func (r *reader) dropMissingItems(ctx context.Context, diags hcl.Diagnostics) hcl.Diagnostics {
	var kept hcl.Diagnostics
	for _, d := range diags {
		if d.Summary == entity.UnknownCopySummary {
			ctxlog.FromContext(ctx).Debug("Ignoring missing item.", "detail", d.Detail)
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

func (r *reader) checkIcon(ctx context.Context) {
	icon := r.mod.props.IconFile
	if icon == "" {
		return
	}
	if rel, err := r.moduleRelative(icon); err == nil && fsutil.Exists(filepath.Join(r.mod.dir, filepath.FromSlash(rel))) {
		return
	}
	r.mod.report(ctx, hcl.Diagnostics{{
		Severity: hcl.DiagWarning,
		Summary:  "Missing module icon",
		Detail:   fmt.Sprintf("IconFile %q does not exist.", icon),
	}})
}

func (r *reader) runModuleScript(ctx context.Context) {
	scriptPath := r.mod.props.ScriptPath
	if scriptPath == "" || r.loader.Scripts == nil {
		return
	}
	if err := r.loader.Scripts.RunScriptFile(ctx, scriptPath); err != nil {
		r.mod.report(ctx, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Module script failed",
			Detail:   fmt.Sprintf("%s: %s", scriptPath, err),
		}})
	}
}

// moduleFinder looks for CopyOf sources in the module being loaded first.
type moduleFinder struct {
	mod      *Module
	fallback entity.PresetFinder
}

func (f moduleFinder) FindPreset(className, presetName string) (entity.Preset, bool) {
	if p, ok := f.mod.GetEntityPreset(className, presetName); ok {
		return p, true
	}
	if f.fallback == nil {
		return nil, false
	}
	return f.fallback.FindPreset(className, presetName)
}
