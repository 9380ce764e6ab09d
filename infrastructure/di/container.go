package di

import (
	"context"

	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/application/proxy"
	"github.com/m-sergey/archi-scripting-plugin/application/workspace"
	"github.com/m-sergey/archi-scripting-plugin/domain/ui"
	"github.com/m-sergey/archi-scripting-plugin/infrastructure/config"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
	"github.com/m-sergey/archi-scripting-plugin/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Preferences  *config.Preferences
	Capabilities *ui.Table
	Metrics      *observability.Collector
	Tracing      *observability.TracerProvider
	CommandStack *bus.CommandStack
	Registry     *proxy.Registry
	Workspace    *workspace.Workspace
	Watcher      *config.Watcher
	ErrorHandler *pkgerrors.ErrorHandler
}

// Shutdown flushes traces and logs
func (c *Container) Shutdown(ctx context.Context) error {
	err := c.Tracing.Shutdown(ctx)
	// sync on a console fd reports EINVAL on linux
	_ = c.Logger.Sync()
	return err
}
