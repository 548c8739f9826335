package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. outW receives the
// rendered catalog when no output file is configured; logW receives logs.
// When no modules are given the core modules are registered.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.Load(modules...)
	logger.Debug("All profile modules registered.", "count", len(modules))

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A broken descriptor is a programmer error, not a runtime condition.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
