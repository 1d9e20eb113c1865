package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/datamodule/internal/ctxlog"
)

// Run loads the data modules and writes a report of what was loaded.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.LoadModules(); err != nil {
		return err
	}

	for _, mod := range a.manager.Modules() {
		props := mod.Properties()
		fmt.Fprintf(a.outW, "%s (%s) id=%d version=%d presets=%d materials=%d problems=%d\n",
			mod.Name(), mod.FriendlyName(), mod.ID(), props.Version, mod.Len(), mod.Materials().Len(), len(mod.Diagnostics()))

		if groups, ok := mod.GetGroupsWithType("All"); ok {
			fmt.Fprintf(a.outW, "  groups: %v\n", groups)
		}
		for _, d := range mod.Diagnostics() {
			fmt.Fprintf(a.outW, "  problem: %s\n", d.Error())
		}

		if a.config.Dump {
			fmt.Fprintf(a.outW, "# %s\n", mod.Name())
			if err := mod.Save(a.outW); err != nil {
				return fmt.Errorf("failed to write properties of %s: %w", mod.Name(), err)
			}
		}
	}

	ctxlog.FromContext(ctx).Debug("App.Run method finished.")
	return nil
}
