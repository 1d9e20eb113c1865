// Package presetman keeps track of every loaded data module and answers
// preset queries across all of them.
package presetman

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/specialistvlad/datamodule/internal/ctxlog"
	"github.com/specialistvlad/datamodule/internal/datamodule"
	"github.com/specialistvlad/datamodule/internal/entity"
	"github.com/specialistvlad/datamodule/internal/fsutil"
	"github.com/specialistvlad/datamodule/internal/material"
	"github.com/specialistvlad/datamodule/internal/script"
)

// Manager owns the loaded modules. Module ids are assigned in load order and
// are never reused while the manager lives. Preset data is not locked: load
// modules first, then query.
type Manager struct {
	catalog *entity.Catalog
	palette *material.Palette
	scripts script.Runner

	// CheckDependencies makes unresolved Require statements reported errors.
	CheckDependencies bool

	loadMu  sync.Mutex
	mu      sync.RWMutex
	modules []*datamodule.Module
	ids     map[string]int
}

// New creates a manager that builds presets with catalog and runs module
// scripts with scripts, which may be nil.
func New(catalog *entity.Catalog, scripts script.Runner) *Manager {
	return &Manager{
		catalog:           catalog,
		palette:           material.NewPalette(),
		scripts:           scripts,
		CheckDependencies: true,
		ids:               make(map[string]int),
	}
}

// Palette returns the process-wide material palette.
func (m *Manager) Palette() *material.Palette { return m.palette }

// LoadModule loads dataPath/name and registers it under the next id. A module
// whose index cannot be read is not registered.
func (m *Manager) LoadModule(ctx context.Context, dataPath, name string) (*datamodule.Module, error) {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	if _, loaded := m.ModuleID(name); loaded {
		return nil, fmt.Errorf("data module %s is already loaded", name)
	}

	m.mu.RLock()
	id := len(m.modules)
	m.mu.RUnlock()

	loader := &datamodule.Loader{
		Catalog:           m.catalog,
		Palette:           m.palette,
		Deps:              m,
		CheckDependencies: m.CheckDependencies,
		Finder:            m,
		Scripts:           m.scripts,
	}
	mod, err := loader.Load(ctx, dataPath, name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load data module %s: %w", name, err)
	}

	m.mu.Lock()
	m.modules = append(m.modules, mod)
	m.ids[name] = id
	m.mu.Unlock()
	return mod, nil
}

// LoadAllModules loads the core modules in the given order, then every other
// *.rte directory under dataPath alphabetically. A failing core module aborts
// the load; any other failing module is logged and skipped.
func (m *Manager) LoadAllModules(ctx context.Context, dataPath string, core []string) error {
	logger := ctxlog.FromContext(ctx)

	for _, name := range core {
		if _, err := m.LoadModule(ctx, dataPath, name); err != nil {
			return fmt.Errorf("core module: %w", err)
		}
	}

	names, err := fsutil.FindDirsBySuffix(dataPath, datamodule.DirSuffix)
	if err != nil {
		return fmt.Errorf("failed to list data modules in %s: %w", dataPath, err)
	}

	skipped := 0
	for _, name := range names {
		if slices.Contains(core, name) {
			continue
		}
		if _, err := m.LoadModule(ctx, dataPath, name); err != nil {
			logger.Error("Failed to load data module. Continue loading other modules.", "module", name, "error", err)
			skipped++
		}
	}

	logger.Info("All data modules loaded.", "modules", len(m.Modules()), "skipped", skipped)
	return nil
}

// ModuleID returns the id of a loaded module. It implements
// datamodule.Dependencies.
func (m *Manager) ModuleID(name string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.ids[name]
	return id, ok
}

// Module returns the module with the given id.
func (m *Manager) Module(id int) (*datamodule.Module, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id < 0 || id >= len(m.modules) || m.modules[id] == nil {
		return nil, false
	}
	return m.modules[id], true
}

// Modules returns the loaded modules in id order.
func (m *Manager) Modules() []*datamodule.Module {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*datamodule.Module, 0, len(m.modules))
	for _, mod := range m.modules {
		if mod != nil {
			out = append(out, mod)
		}
	}
	return out
}

// GetEntityPreset looks the preset up in one module, or, with a negative
// moduleID, in every module from the newest to the oldest.
func (m *Manager) GetEntityPreset(exactType, exactName string, moduleID int) (entity.Preset, bool) {
	if moduleID >= 0 {
		mod, ok := m.Module(moduleID)
		if !ok {
			return nil, false
		}
		return mod.GetEntityPreset(exactType, exactName)
	}

	modules := m.Modules()
	for i := len(modules) - 1; i >= 0; i-- {
		if p, ok := modules[i].GetEntityPreset(exactType, exactName); ok {
			return p, true
		}
	}
	return nil, false
}

// FindPreset implements entity.PresetFinder across every loaded module.
func (m *Manager) FindPreset(className, presetName string) (entity.Preset, bool) {
	return m.GetEntityPreset(className, presetName, -1)
}

// GetAllOfType collects the presets of type from one module, or from all of
// them in id order when moduleID is negative.
func (m *Manager) GetAllOfType(typeName string, moduleID int) ([]entity.Preset, bool) {
	var found []entity.Preset
	for _, mod := range m.selectModules(moduleID) {
		if presets, ok := mod.GetAllOfType(typeName); ok {
			found = append(found, presets...)
		}
	}
	return found, len(found) > 0
}

// GetAllOfGroup collects the presets of type in group, like GetAllOfType.
func (m *Manager) GetAllOfGroup(group, typeName string, moduleID int) ([]entity.Preset, bool) {
	var found []entity.Preset
	for _, mod := range m.selectModules(moduleID) {
		if presets, ok := mod.GetAllOfGroup(group, typeName); ok {
			found = append(found, presets...)
		}
	}
	return found, len(found) > 0
}

// GetGroupsWithType returns the sorted, de-duplicated groups of type across
// the selected modules.
func (m *Manager) GetGroupsWithType(typeName string, moduleID int) ([]string, bool) {
	var groups []string
	for _, mod := range m.selectModules(moduleID) {
		if g, ok := mod.GetGroupsWithType(typeName); ok {
			groups = append(groups, g...)
		}
	}
	sort.Strings(groups)
	groups = slices.Compact(groups)
	return groups, len(groups) > 0
}

func (m *Manager) selectModules(moduleID int) []*datamodule.Module {
	if moduleID < 0 {
		return m.Modules()
	}
	if mod, ok := m.Module(moduleID); ok {
		return []*datamodule.Module{mod}
	}
	return nil
}

// ReloadAllScripts reloads the scripts of every module in id order.
func (m *Manager) ReloadAllScripts(ctx context.Context) error {
	if m.scripts == nil {
		return nil
	}
	var errs []error
	for _, mod := range m.Modules() {
		if err := mod.ReloadAllScripts(ctx, m.scripts); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", mod.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// UnloadModule destroys a module and frees its name. Its id stays retired.
func (m *Manager) UnloadModule(ctx context.Context, name string) bool {
	m.mu.Lock()
	id, ok := m.ids[name]
	if !ok {
		m.mu.Unlock()
		return false
	}
	mod := m.modules[id]
	m.modules[id] = nil
	delete(m.ids, name)
	m.mu.Unlock()

	mod.Destroy()
	ctxlog.FromContext(ctx).Info("Data module unloaded.", "module", name, "id", id)
	return true
}

// Destroy unloads every module. Ids stay retired.
func (m *Manager) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, mod := range m.modules {
		if mod != nil {
			mod.Destroy()
			m.modules[i] = nil
		}
	}
	m.ids = make(map[string]int)
}
