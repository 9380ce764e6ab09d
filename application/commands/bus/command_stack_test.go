package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

// counterCommand adds delta to a shared counter
type counterCommand struct {
	label      string
	value      *int
	delta      int
	invalid    error
	failExec   error
	executions int
}

func (c *counterCommand) Label() string   { return c.label }
func (c *counterCommand) Validate() error { return c.invalid }

func (c *counterCommand) Execute() error {
	if c.failExec != nil {
		return c.failExec
	}
	c.executions++
	*c.value += c.delta
	return nil
}

func (c *counterCommand) Undo() error {
	*c.value -= c.delta
	return nil
}

func add(value *int, delta int) *counterCommand {
	return &counterCommand{label: "add", value: value, delta: delta}
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordCommand(label, status string, duration time.Duration) {
	m.Called(label, status, duration)
}

func TestCommandStack_ExecuteUndoRedo(t *testing.T) {
	// Arrange
	ctx := context.Background()
	stack := NewCommandStack(zap.NewNop())
	value := 0

	// Act
	require.NoError(t, stack.Execute(ctx, add(&value, 1)))
	require.NoError(t, stack.Execute(ctx, add(&value, 10)))

	// Assert
	assert.Equal(t, 11, value)
	assert.Equal(t, 2, stack.Size())
	assert.True(t, stack.CanUndo())
	assert.False(t, stack.CanRedo())

	require.NoError(t, stack.Undo(ctx))
	assert.Equal(t, 1, value)
	assert.Equal(t, "add", stack.RedoLabel())

	require.NoError(t, stack.Redo(ctx))
	assert.Equal(t, 11, value)

	require.NoError(t, stack.Undo(ctx))
	require.NoError(t, stack.Undo(ctx))
	assert.Equal(t, 0, value)
	assert.ErrorIs(t, stack.Undo(ctx), ErrNothingToUndo)

	// a new command clears the redo history
	require.NoError(t, stack.Execute(ctx, add(&value, 5)))
	assert.ErrorIs(t, stack.Redo(ctx), ErrNothingToRedo)
	assert.Equal(t, "", stack.RedoLabel())
	assert.Equal(t, "add", stack.UndoLabel())
}

func TestCommandStack_FailedCommandIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	stack := NewCommandStack(zap.NewNop())
	value := 0
	boom := errors.New("boom")

	err := stack.Execute(ctx, &counterCommand{label: "bad", value: &value, failExec: boom})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, stack.Size())
	assert.ErrorIs(t, stack.Execute(ctx, nil), ErrNilCommand)
}

func TestCommandStack_Validation(t *testing.T) {
	ctx := context.Background()
	stack := NewCommandStack(zap.NewNop(), WithMiddleware(ValidationMiddleware()))
	value := 0
	invalid := errors.New("bad input")

	err := stack.Execute(ctx, &counterCommand{label: "v", value: &value, delta: 1, invalid: invalid})

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, invalid)
	assert.Equal(t, 0, value)
}

func TestCommandStack_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stack := NewCommandStack(zap.NewNop())
	value := 0

	err := stack.Execute(ctx, add(&value, 1))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, value)
}

func TestCommandStack_Limit(t *testing.T) {
	ctx := context.Background()
	stack := NewCommandStack(zap.NewNop(), WithLimit(2))
	value := 0

	for i := 0; i < 5; i++ {
		require.NoError(t, stack.Execute(ctx, add(&value, 1)))
	}

	assert.Equal(t, 2, stack.Size())
	stack.Clear()
	assert.False(t, stack.CanUndo())
}

func TestCommandStack_Group(t *testing.T) {
	ctx := context.Background()
	stack := NewCommandStack(zap.NewNop())
	value := 0

	err := stack.Group(ctx, "script", func(ctx context.Context) error {
		if err := stack.Execute(ctx, add(&value, 1)); err != nil {
			return err
		}
		// nested groups fold into the outer one
		return stack.Group(ctx, "inner", func(ctx context.Context) error {
			return stack.Execute(ctx, add(&value, 2))
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 3, value)
	assert.Equal(t, 1, stack.Size())
	assert.Equal(t, "script", stack.UndoLabel())

	require.NoError(t, stack.Undo(ctx))
	assert.Equal(t, 0, value)
}

func TestCommandStack_GroupRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	stack := NewCommandStack(zap.NewNop())
	value := 0
	boom := errors.New("script aborted")

	err := stack.Group(ctx, "script", func(ctx context.Context) error {
		_ = stack.Execute(ctx, add(&value, 1))
		_ = stack.Execute(ctx, add(&value, 2))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, value)
	assert.Equal(t, 0, stack.Size())
}

func TestCompoundCommand_RollsBackPartialExecution(t *testing.T) {
	value := 0
	boom := errors.New("boom")
	first := add(&value, 1)
	second := add(&value, 2)
	failing := &counterCommand{label: "fail", value: &value, failExec: boom}

	compound := NewCompoundCommand("batch", first, second, nil, failing)

	assert.Equal(t, 3, compound.Len())
	assert.ErrorIs(t, compound.Execute(), boom)
	assert.Equal(t, 0, value)
}

func TestMetricsMiddleware(t *testing.T) {
	ctx := context.Background()
	recorder := new(mockRecorder)
	recorder.On("RecordCommand", "add", "success", mock.AnythingOfType("time.Duration")).Return()
	recorder.On("RecordCommand", "bad", "error", mock.AnythingOfType("time.Duration")).Return()

	stack := NewCommandStack(zap.NewNop(), WithMiddleware(MetricsMiddleware(recorder)))
	value := 0

	require.NoError(t, stack.Execute(ctx, add(&value, 1)))
	require.Error(t, stack.Execute(ctx, &counterCommand{label: "bad", value: &value, failExec: errors.New("x")}))

	recorder.AssertExpectations(t)
}

func TestTracingMiddleware(t *testing.T) {
	ctx := context.Background()
	spans := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	defer func() { _ = provider.Shutdown(ctx) }()

	stack := NewCommandStack(zap.NewNop(),
		WithMiddleware(TracingMiddleware(provider.Tracer("test")), LoggingMiddleware(zap.NewNop())))
	value := 0

	require.NoError(t, stack.Execute(ctx, add(&value, 1)))
	require.Error(t, stack.Execute(ctx, &counterCommand{label: "bad", value: &value, failExec: errors.New("x")}))

	ended := spans.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "command.execute", ended[0].Name())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, codes.Error, ended[1].Status().Code)
}

func TestPipeline_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}
	handler := NewPipeline(mark("outer"), mark("inner")).Execute(CommandHandlerFunc(
		func(context.Context, Command) error {
			order = append(order, "handler")
			return nil
		}))

	value := 0
	require.NoError(t, handler.Handle(context.Background(), add(&value, 1)))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestExecutorFunc(t *testing.T) {
	var got Command
	var exec Executor = ExecutorFunc(func(_ context.Context, cmd Command) error {
		got = cmd
		return nil
	})
	value := 0
	cmd := add(&value, 1)

	require.NoError(t, exec.Execute(context.Background(), cmd))
	assert.Same(t, cmd, got)
}
