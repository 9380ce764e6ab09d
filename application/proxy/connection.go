package proxy

import (
	"context"

	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
)

// ConnectionProxy wraps a line between two figures
type ConnectionProxy struct {
	*object
}

// Source is the figure or connection the line starts at
func (c *ConnectionProxy) Source() Proxy { return c.reg.Resolve(c.n.Source()) }

// Target is the figure or connection the line ends at
func (c *ConnectionProxy) Target() Proxy { return c.reg.Resolve(c.n.Target()) }

// Concept is the relationship shown, or nil for a plain connection
func (c *ConnectionProxy) Concept() Proxy {
	return c.reg.Resolve(c.n.Concept())
}

// View is the view the connection is drawn on
func (c *ConnectionProxy) View() *DiagramModelProxy {
	p, _ := c.reg.Resolve(c.n.Diagram()).(*DiagramModelProxy)
	return p
}

// Delete removes connections attached to this one, then this one
func (c *ConnectionProxy) Delete(ctx context.Context) error {
	attached := c.reg.resolveAll(entities.Connections(c.n, false)).
		Union(c.reg.resolveAll(entities.Connections(c.n, true)))
	if err := deleteAll(ctx, attached); err != nil {
		return err
	}
	return c.detach(ctx)
}
