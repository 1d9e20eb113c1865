package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/datamodule/internal/ctxlog"
	"github.com/specialistvlad/datamodule/internal/entity"
	"github.com/specialistvlad/datamodule/internal/presetman"
	"github.com/specialistvlad/datamodule/internal/script"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	ctx     context.Context
	logger  *slog.Logger
	config  *Config
	catalog *entity.Catalog
	manager *presetman.Manager
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own logger, class catalog and preset
// manager. Without modules, the compiled-in class packages are registered.
func NewApp(ctx context.Context, outW io.Writer, cfg *Config, modules ...entity.Module) *App {
	logger := newLogger(cfg, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	catalog := entity.NewCatalog(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "classes", catalog.Classes())

	manager := presetman.New(catalog, script.FileRunner{DataPath: cfg.DataPath})
	manager.CheckDependencies = !cfg.SkipDependencyCheck

	return &App{
		outW:    outW,
		ctx:     ctx,
		logger:  logger,
		config:  cfg,
		catalog: catalog,
		manager: manager,
	}
}

// Manager returns the application's preset manager.
func (a *App) Manager() *presetman.Manager {
	return a.manager
}

// Catalog returns the registered preset classes.
func (a *App) Catalog() *entity.Catalog {
	return a.catalog
}

// Close unloads every module.
func (a *App) Close() {
	a.manager.Destroy()
	a.logger.Debug("All data modules unloaded.")
}
