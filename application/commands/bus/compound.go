package bus

import (
	"errors"
	"fmt"
)

// CompoundCommand runs several commands as one undoable unit.
// A failing step rolls back the steps already executed.
type CompoundCommand struct {
	label    string
	commands []Command
}

// NewCompoundCommand creates a compound from steps, skipping nil entries
func NewCompoundCommand(label string, steps ...Command) *CompoundCommand {
	c := &CompoundCommand{label: label}
	for _, s := range steps {
		c.Add(s)
	}
	return c
}

// Add appends a step
func (c *CompoundCommand) Add(cmd Command) {
	if cmd != nil {
		c.commands = append(c.commands, cmd)
	}
}

// Steps returns the contained commands in execution order
func (c *CompoundCommand) Steps() []Command {
	out := make([]Command, len(c.commands))
	copy(out, c.commands)
	return out
}

func (c *CompoundCommand) Len() int      { return len(c.commands) }
func (c *CompoundCommand) Label() string { return c.label }

func (c *CompoundCommand) Validate() error {
	for _, cmd := range c.commands {
		if err := cmd.Validate(); err != nil {
			return fmt.Errorf("%s: %w", cmd.Label(), err)
		}
	}
	return nil
}

func (c *CompoundCommand) Execute() error {
	for i, cmd := range c.commands {
		if err := cmd.Execute(); err != nil {
			if rbErr := undoAll(c.commands[:i]); rbErr != nil {
				return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			}
			return err
		}
	}
	return nil
}

func (c *CompoundCommand) Undo() error {
	return undoAll(c.commands)
}

func undoAll(cmds []Command) error {
	for i := len(cmds) - 1; i >= 0; i-- {
		if err := cmds[i].Undo(); err != nil {
			return fmt.Errorf("%s: %w", cmds[i].Label(), err)
		}
	}
	return nil
}
