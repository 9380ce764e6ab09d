package di

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/application/proxy"
	"github.com/m-sergey/archi-scripting-plugin/application/workspace"
	"github.com/m-sergey/archi-scripting-plugin/domain/ui"
	"github.com/m-sergey/archi-scripting-plugin/infrastructure/config"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
	"github.com/m-sergey/archi-scripting-plugin/pkg/observability"
	"github.com/m-sergey/archi-scripting-plugin/pkg/utils"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zcfg.Level = level

	return zcfg.Build()
}

// ProvidePreferences seeds the live editor settings from the loaded config
func ProvidePreferences(cfg *config.Config) *config.Preferences {
	return config.NewPreferences(cfg.Editor)
}

// ProvideCapabilities returns the built-in capability table, with the
// overrides file applied when one is configured.
func ProvideCapabilities(cfg *config.Config) (*ui.Table, error) {
	path := cfg.Editor.CapabilitiesPath
	if path == "" {
		return ui.DefaultTable(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capability table: %w", err)
	}
	defer f.Close()
	return ui.LoadTable(f)
}

// ProvideMetrics creates the prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("modelscript")
}

// ProvideTracerProvider creates the tracer used for command spans
func ProvideTracerProvider(cfg *config.Config) (*observability.TracerProvider, error) {
	return observability.InitTracing(observability.TracingConfig{
		Enabled:     cfg.EnableTracing,
		ServiceName: "modelscript",
		Environment: cfg.Environment,
		SampleRate:  0.1,
	})
}

// ProvideCommandStack builds the undo stack and its middleware pipeline
func ProvideCommandStack(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Collector,
	tracing *observability.TracerProvider,
) *bus.CommandStack {
	middlewares := []bus.Middleware{bus.LoggingMiddleware(logger)}
	if cfg.EnableTracing {
		middlewares = append(middlewares, bus.TracingMiddleware(tracing.Tracer()))
	}
	if cfg.EnableMetrics {
		middlewares = append(middlewares, bus.MetricsMiddleware(metrics))
	}
	middlewares = append(middlewares, bus.ValidationMiddleware())

	return bus.NewCommandStack(logger,
		bus.WithMiddleware(middlewares...),
		bus.WithLimit(cfg.Editor.UndoLimit),
	)
}

// ProvideRegistry creates the proxy registry on top of the command stack
func ProvideRegistry(
	stack *bus.CommandStack,
	caps *ui.Table,
	prefs *config.Preferences,
	logger *zap.Logger,
) *proxy.Registry {
	return proxy.NewRegistry(stack,
		proxy.WithCapabilities(caps),
		proxy.WithPreferences(prefs),
		proxy.WithColorValidator(utils.NewColorValidator()),
		proxy.WithLogger(logger.Named("proxy")),
	)
}

// ProvideWorkspace creates the workspace of open models
func ProvideWorkspace(reg *proxy.Registry, stack *bus.CommandStack, logger *zap.Logger) *workspace.Workspace {
	return workspace.New(reg, stack, logger.Named("workspace"))
}

// ProvideWatcher watches the config file when there is one. Without a
// file it returns nil and nothing is watched.
func ProvideWatcher(cfg *config.Config, prefs *config.Preferences, logger *zap.Logger) (*config.Watcher, error) {
	if cfg.File == "" {
		return nil, nil
	}
	w, err := config.NewWatcher(cfg.File, logger.Named("config"))
	if err != nil {
		return nil, err
	}
	w.OnChange(prefs.Store)
	return w, nil
}

// ProvideErrorHandler creates the HTTP error renderer
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}
