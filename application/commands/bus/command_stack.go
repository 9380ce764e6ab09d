package bus

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// CommandStack executes commands through a middleware pipeline and keeps
// them for undo and redo.
type CommandStack struct {
	mu      sync.Mutex
	handler CommandHandler
	undo    []Command
	redo    []Command
	group   *CompoundCommand
	limit   int
	logger  *zap.Logger
}

// StackOption configures a CommandStack
type StackOption func(*CommandStack)

// WithLimit bounds the undo history; 0 means unbounded
func WithLimit(limit int) StackOption {
	return func(s *CommandStack) {
		s.limit = limit
	}
}

// WithMiddleware installs pipeline middleware, outermost first
func WithMiddleware(middlewares ...Middleware) StackOption {
	return func(s *CommandStack) {
		s.handler = NewPipeline(middlewares...).Execute(s.handler)
	}
}

// NewCommandStack creates an empty stack
func NewCommandStack(logger *zap.Logger, opts ...StackOption) *CommandStack {
	s := &CommandStack{
		handler: CommandHandlerFunc(func(_ context.Context, cmd Command) error {
			return cmd.Execute()
		}),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs cmd and records it. Inside Group the command joins the
// open group instead of becoming its own history entry.
func (s *CommandStack) Execute(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.handler.Handle(ctx, cmd); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.group != nil {
		s.group.Add(cmd)
		return nil
	}
	s.push(cmd)
	return nil
}

func (s *CommandStack) push(cmd Command) {
	s.undo = append(s.undo, cmd)
	s.redo = nil
	if s.limit > 0 && len(s.undo) > s.limit {
		s.undo = s.undo[len(s.undo)-s.limit:]
	}
}

// Group runs fn with every command it executes collected into one history
// entry labelled label. If fn fails, the collected commands are undone.
func (s *CommandStack) Group(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.group != nil {
		s.mu.Unlock()
		// nested groups join the outer one
		return fn(ctx)
	}
	group := NewCompoundCommand(label)
	s.group = group
	s.mu.Unlock()

	err := fn(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.group = nil

	if err != nil {
		if rbErr := group.Undo(); rbErr != nil {
			s.logger.Error("Failed to roll back command group",
				zap.String("group", label), zap.Error(rbErr))
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if group.Len() > 0 {
		s.push(group)
	}
	return nil
}

// Undo reverts the most recent entry
func (s *CommandStack) Undo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	cmd := s.undo[len(s.undo)-1]
	if err := cmd.Undo(); err != nil {
		s.logger.Error("Undo failed", zap.String("command", cmd.Label()), zap.Error(err))
		return fmt.Errorf("undo %s: %w", cmd.Label(), err)
	}
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, cmd)
	s.logger.Debug("Undone", zap.String("command", cmd.Label()))
	return nil
}

// Redo re-applies the most recently undone entry
func (s *CommandStack) Redo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.redo) == 0 {
		return ErrNothingToRedo
	}
	cmd := s.redo[len(s.redo)-1]
	if err := cmd.Execute(); err != nil {
		s.logger.Error("Redo failed", zap.String("command", cmd.Label()), zap.Error(err))
		return fmt.Errorf("redo %s: %w", cmd.Label(), err)
	}
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, cmd)
	s.logger.Debug("Redone", zap.String("command", cmd.Label()))
	return nil
}

func (s *CommandStack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

func (s *CommandStack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// UndoLabel is the label of the entry Undo would revert, or ""
func (s *CommandStack) UndoLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].Label()
}

// RedoLabel is the label of the entry Redo would re-apply, or ""
func (s *CommandStack) RedoLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].Label()
}

// Size returns the number of undoable entries
func (s *CommandStack) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}

// Clear drops all history
func (s *CommandStack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo, s.redo = nil, nil
}
