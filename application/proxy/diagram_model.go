package proxy

import (
	"context"

	"github.com/m-sergey/archi-scripting-plugin/application/commands"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// DiagramModelProxy wraps a view
type DiagramModelProxy struct {
	*object
}

// Children are the top-level figures of the view
func (v *DiagramModelProxy) Children() *Collection {
	return v.reg.resolveKind(v.n.Children(), entities.KindDiagramObject)
}

// Add places a figure for element on the view. A width or height of -1
// uses the default figure size.
func (v *DiagramModelProxy) Add(ctx context.Context, element *ElementProxy, x, y, width, height int) (*DiagramObjectProxy, error) {
	return addElement(ctx, v.object, element, x, y, width, height)
}

// CreateObject places a note or group on the view
func (v *DiagramModelProxy) CreateObject(ctx context.Context, kind, name string, x, y, width, height int) (*DiagramObjectProxy, error) {
	return createShape(ctx, v.object, kind, name, x, y, width, height)
}

// CreateViewReference places a figure linking to another view
func (v *DiagramModelProxy) CreateViewReference(ctx context.Context, view *DiagramModelProxy, x, y, width, height int) (*DiagramObjectProxy, error) {
	return addReference(ctx, v.object, view, x, y, width, height)
}

// Connect draws a connection between two figures of this view. With a
// relationship, its ends must be the concepts the figures show.
func (v *DiagramModelProxy) Connect(ctx context.Context, source, target Proxy, relationship *RelationshipProxy) (*ConnectionProxy, error) {
	if !present(source) || !present(target) {
		return nil, pkgerrors.NewInvalidArgumentError("connection source and target are required")
	}
	src, tgt := source.node(), target.node()
	if src.Diagram() != v.n || tgt.Diagram() != v.n {
		return nil, pkgerrors.NewInvalidArgumentError("connection ends must be on this view")
	}

	var rel *entities.Node
	if relationship != nil {
		rel = relationship.n
		if rel.Source() != src.Concept() || rel.Target() != tgt.Concept() {
			return nil, pkgerrors.NewInvalidArgumentError("relationship ends do not match the connected figures")
		}
	}
	n, err := entities.NewDiagramConnection(src, tgt, rel)
	if err != nil {
		return nil, err
	}
	if err := v.exec(ctx, commands.NewAttachCommand(src, n, -1)); err != nil {
		return nil, err
	}
	p, _ := v.reg.Resolve(n).(*ConnectionProxy)
	return p, nil
}

// References are the view-reference figures pointing at this view
func (v *DiagramModelProxy) References() *Collection {
	m := v.n.Model()
	if m == nil {
		return NewCollection()
	}
	return v.reg.resolveAll(m.References(v.n))
}

// Delete removes figures referencing this view, then the view
func (v *DiagramModelProxy) Delete(ctx context.Context) error {
	if err := deleteAll(ctx, v.References()); err != nil {
		return err
	}
	return v.detach(ctx)
}
