package commands

import (
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// AddPropertyCommand appends a new key/value entry to a node
type AddPropertyCommand struct {
	node     *entities.Node
	property *entities.Property
}

func NewAddPropertyCommand(node *entities.Node, key, value string) *AddPropertyCommand {
	return &AddPropertyCommand{node: node, property: entities.NewProperty(key, value)}
}

func (c *AddPropertyCommand) Label() string { return "Add property" }

func (c *AddPropertyCommand) Validate() error {
	if c.node == nil {
		return pkgerrors.NewInvalidArgumentError("node cannot be nil")
	}
	if !c.node.SupportsProperties() {
		return pkgerrors.NewUnsupportedOperationError("properties", c.node.Class())
	}
	return nil
}

func (c *AddPropertyCommand) Execute() error {
	c.node.InsertProperty(-1, c.property)
	return nil
}

func (c *AddPropertyCommand) Undo() error {
	c.node.RemoveProperty(c.property)
	return nil
}

// SetPropertyValueCommand replaces the value of an existing entry
type SetPropertyValueCommand struct {
	property *entities.Property
	value    string
	old      string
}

func NewSetPropertyValueCommand(property *entities.Property, value string) *SetPropertyValueCommand {
	return &SetPropertyValueCommand{property: property, value: value}
}

func (c *SetPropertyValueCommand) Label() string { return "Set property value" }

func (c *SetPropertyValueCommand) Validate() error {
	if c.property == nil {
		return pkgerrors.NewInvalidArgumentError("property cannot be nil")
	}
	return nil
}

func (c *SetPropertyValueCommand) Execute() error {
	c.old = c.property.SetValue(c.value)
	return nil
}

func (c *SetPropertyValueCommand) Undo() error {
	c.property.SetValue(c.old)
	return nil
}

// RemovePropertiesCommand removes a set of entries, restoring their
// positions on undo.
type RemovePropertiesCommand struct {
	node       *entities.Node
	properties []*entities.Property
	indices    []int
}

func NewRemovePropertiesCommand(node *entities.Node, properties []*entities.Property) *RemovePropertiesCommand {
	return &RemovePropertiesCommand{node: node, properties: properties}
}

func (c *RemovePropertiesCommand) Label() string { return "Remove properties" }

func (c *RemovePropertiesCommand) Validate() error {
	if c.node == nil {
		return pkgerrors.NewInvalidArgumentError("node cannot be nil")
	}
	return nil
}

func (c *RemovePropertiesCommand) Execute() error {
	c.indices = c.indices[:0]
	for _, p := range c.properties {
		c.indices = append(c.indices, c.node.RemoveProperty(p))
	}
	return nil
}

func (c *RemovePropertiesCommand) Undo() error {
	for i := len(c.properties) - 1; i >= 0; i-- {
		if c.indices[i] >= 0 {
			c.node.InsertProperty(c.indices[i], c.properties[i])
		}
	}
	return nil
}
