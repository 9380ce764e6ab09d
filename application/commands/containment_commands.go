package commands

import (
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// AttachCommand adds a detached node to a container
type AttachCommand struct {
	parent *entities.Node
	child  *entities.Node
	index  int
}

// NewAttachCommand attaches child at index; -1 appends
func NewAttachCommand(parent, child *entities.Node, index int) *AttachCommand {
	return &AttachCommand{parent: parent, child: child, index: index}
}

func (c *AttachCommand) Label() string { return "Add " + c.child.Class() }

func (c *AttachCommand) Validate() error {
	if c.parent == nil || c.child == nil {
		return pkgerrors.NewInvalidArgumentError("parent and child are required")
	}
	return nil
}

func (c *AttachCommand) Execute() error {
	return c.parent.AttachChild(c.child, c.index)
}

func (c *AttachCommand) Undo() error {
	_, err := c.parent.DetachChild(c.child)
	return err
}

func (c *AttachCommand) Child() *entities.Node { return c.child }

// DetachCommand removes a node, with its subtree, from its container
type DetachCommand struct {
	node   *entities.Node
	parent *entities.Node
	index  int
}

func NewDetachCommand(node *entities.Node) *DetachCommand {
	return &DetachCommand{node: node, index: -1}
}

func (c *DetachCommand) Label() string { return "Delete " + c.node.Class() }

func (c *DetachCommand) Validate() error {
	if c.node == nil {
		return pkgerrors.NewInvalidArgumentError("node cannot be nil")
	}
	if !c.node.IsAttached() && c.parent == nil {
		return pkgerrors.NewNotFoundError("container of " + c.node.ID().String())
	}
	return nil
}

func (c *DetachCommand) Execute() error {
	parent := c.node.Parent()
	if parent == nil {
		return pkgerrors.NewNotFoundError("container of " + c.node.ID().String())
	}
	index, err := parent.DetachChild(c.node)
	if err != nil {
		return err
	}
	c.parent, c.index = parent, index
	return nil
}

func (c *DetachCommand) Undo() error {
	return c.parent.AttachChild(c.node, c.index)
}

// Node is the node being removed
func (c *DetachCommand) Node() *entities.Node { return c.node }
