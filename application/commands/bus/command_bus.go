package bus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Command is an atomic, reversible change to the model graph.
// Redo is Execute called again after Undo.
type Command interface {
	Label() string
	Validate() error
	Execute() error
	Undo() error
}

// Executor accepts commands. Proxies only ever talk to this interface.
type Executor interface {
	Execute(ctx context.Context, cmd Command) error
}

// ExecutorFunc is an adapter to allow functions to be used as executors
type ExecutorFunc func(ctx context.Context, cmd Command) error

// Execute implements Executor
func (f ExecutorFunc) Execute(ctx context.Context, cmd Command) error {
	return f(ctx, cmd)
}

// CommandHandler handles a command on its way through the pipeline
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) error
}

// CommandHandlerFunc is an adapter to allow functions to be used as handlers
type CommandHandlerFunc func(ctx context.Context, cmd Command) error

// Handle implements CommandHandler
func (f CommandHandlerFunc) Handle(ctx context.Context, cmd Command) error {
	return f(ctx, cmd)
}

// Middleware defines command middleware
type Middleware func(next CommandHandler) CommandHandler

// Pipeline chains multiple middleware together
type Pipeline struct {
	middlewares []Middleware
}

// NewPipeline creates a new middleware pipeline
func NewPipeline(middlewares ...Middleware) *Pipeline {
	return &Pipeline{
		middlewares: middlewares,
	}
}

// Execute wraps handler so that the first middleware runs outermost
func (p *Pipeline) Execute(handler CommandHandler) CommandHandler {
	for i := len(p.middlewares) - 1; i >= 0; i-- {
		handler = p.middlewares[i](handler)
	}
	return handler
}

// LoggingMiddleware logs command execution
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
			logger.Debug("Executing command", zap.String("command", cmd.Label()))

			err := next.Handle(ctx, cmd)
			if err != nil {
				logger.Error("Command failed", zap.String("command", cmd.Label()), zap.Error(err))
			}
			return err
		})
	}
}

// ValidationMiddleware rejects commands whose Validate fails
func ValidationMiddleware() Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
			if err := cmd.Validate(); err != nil {
				return fmt.Errorf("%w: %w", ErrValidationFailed, err)
			}
			return next.Handle(ctx, cmd)
		})
	}
}

// MetricsRecorder receives one observation per executed command
type MetricsRecorder interface {
	RecordCommand(label, status string, duration time.Duration)
}

// MetricsMiddleware reports command outcomes and latency
func MetricsMiddleware(recorder MetricsRecorder) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
			start := time.Now()
			err := next.Handle(ctx, cmd)

			status := "success"
			if err != nil {
				status = "error"
			}
			recorder.RecordCommand(cmd.Label(), status, time.Since(start))
			return err
		})
	}
}

// TracingMiddleware opens a span per command
func TracingMiddleware(tracer trace.Tracer) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
			ctx, span := tracer.Start(ctx, "command.execute",
				trace.WithAttributes(attribute.String("command.label", cmd.Label())))
			defer span.End()

			err := next.Handle(ctx, cmd)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return err
		})
	}
}

// Errors
var (
	ErrValidationFailed = errors.New("command validation failed")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
	ErrNilCommand       = errors.New("command cannot be nil")
)
