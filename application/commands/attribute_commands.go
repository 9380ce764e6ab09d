package commands

import (
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// SetAttributeCommand writes one attribute of a node
type SetAttributeCommand struct {
	node  *entities.Node
	attr  entities.Attribute
	value any
	old   any
}

// NewSetAttributeCommand creates the command; a nil value resets the default
func NewSetAttributeCommand(node *entities.Node, attr entities.Attribute, value any) *SetAttributeCommand {
	return &SetAttributeCommand{node: node, attr: attr, value: value}
}

func (c *SetAttributeCommand) Label() string { return "Set " + c.attr.String() }

func (c *SetAttributeCommand) Validate() error {
	if c.node == nil {
		return pkgerrors.NewInvalidArgumentError("node cannot be nil")
	}
	return nil
}

func (c *SetAttributeCommand) Execute() error {
	c.old = c.node.SetAttr(c.attr, c.value)
	return nil
}

func (c *SetAttributeCommand) Undo() error {
	c.node.SetAttr(c.attr, c.old)
	return nil
}

func (c *SetAttributeCommand) Node() *entities.Node          { return c.node }
func (c *SetAttributeCommand) Attribute() entities.Attribute { return c.attr }
func (c *SetAttributeCommand) Value() any                    { return c.value }

// AddImageCommand stores image bytes in a model archive
type AddImageCommand struct {
	model   *entities.Model
	path    string
	data    []byte
	old     []byte
	existed bool
}

func NewAddImageCommand(model *entities.Model, path string, data []byte) *AddImageCommand {
	return &AddImageCommand{model: model, path: path, data: data}
}

func (c *AddImageCommand) Label() string { return "Add image" }

func (c *AddImageCommand) Validate() error {
	if c.model == nil {
		return pkgerrors.NewInvalidArgumentError("model cannot be nil")
	}
	if c.path == "" {
		return pkgerrors.NewInvalidArgumentError("image path cannot be empty")
	}
	if len(c.data) == 0 {
		return pkgerrors.NewInvalidArgumentError("image data cannot be empty")
	}
	return nil
}

func (c *AddImageCommand) Execute() error {
	c.old, c.existed = c.model.AddImage(c.path, c.data)
	return nil
}

func (c *AddImageCommand) Undo() error {
	if c.existed {
		c.model.AddImage(c.path, c.old)
		return nil
	}
	c.model.RemoveImage(c.path)
	return nil
}
