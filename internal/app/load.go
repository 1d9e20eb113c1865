package app

import (
	"fmt"

	"github.com/specialistvlad/datamodule/internal/ctxlog"
)

// LoadModules loads the configured modules, or every module under the data
// path when none are listed.
func (a *App) LoadModules() error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Loading data modules...", "data_path", a.config.DataPath, "modules", a.config.Modules)

	if len(a.config.Modules) == 0 {
		core := a.config.CoreModules
		if core == nil {
			core = DefaultCoreModules
		}
		return a.manager.LoadAllModules(a.ctx, a.config.DataPath, core)
	}

	for _, name := range a.config.Modules {
		if _, err := a.manager.LoadModule(a.ctx, a.config.DataPath, name); err != nil {
			return fmt.Errorf("failed to load modules: %w", err)
		}
	}
	logger.Info("Data modules loaded successfully.", "count", len(a.config.Modules))
	return nil
}
