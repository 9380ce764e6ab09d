package proxy

import (
	"context"
	"fmt"

	"github.com/m-sergey/archi-scripting-plugin/application/commands"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// ConceptProxy is the part shared by elements and relationships
type ConceptProxy struct {
	*object
}

// ElementProxy wraps an ArchiMate element
type ElementProxy struct {
	ConceptProxy
}

// RelationshipProxy wraps an ArchiMate relationship
type RelationshipProxy struct {
	ConceptProxy
}

// Specialization returns the applied specialization name, or ""
func (c *ConceptProxy) Specialization() string {
	return specializationOf(c.n)
}

// SetSpecialization applies a specialization declared in the model for
// this concept's class.
func (c *ConceptProxy) SetSpecialization(ctx context.Context, name string) (Proxy, error) {
	return c.self, c.setSpecialization(ctx, name)
}

// ClearSpecialization removes any applied specialization
func (c *ConceptProxy) ClearSpecialization(ctx context.Context) (Proxy, error) {
	return c.self, c.clearSpecialization(ctx)
}

// InRelationships are the relationships targeting this concept
func (c *ConceptProxy) InRelationships() *Collection {
	return c.relationships(false)
}

// OutRelationships are the relationships starting at this concept
func (c *ConceptProxy) OutRelationships() *Collection {
	return c.relationships(true)
}

func (c *ConceptProxy) relationships(outgoing bool) *Collection {
	m := c.n.Model()
	if m == nil {
		return NewCollection()
	}
	return c.reg.resolveAll(m.Relationships(c.n, outgoing))
}

// References are the diagram components showing this concept
func (c *ConceptProxy) References() *Collection {
	m := c.n.Model()
	if m == nil {
		return NewCollection()
	}
	return c.reg.resolveAll(m.References(c.n))
}

// Views are the diagrams this concept appears in
func (c *ConceptProxy) Views() *Collection {
	out := NewCollection()
	for _, ref := range c.References().Slice() {
		if view := ref.node().Diagram(); view != nil {
			out.add(c.reg.Resolve(view))
		}
	}
	return out
}

// Delete removes the concept, its diagram references and every
// relationship attached to it.
func (c *ConceptProxy) Delete(ctx context.Context) error {
	if err := deleteAll(ctx, c.References()); err != nil {
		return err
	}
	if err := deleteAll(ctx, c.InRelationships().Union(c.OutRelationships())); err != nil {
		return err
	}
	return c.detach(ctx)
}

// Source is the concept the relationship starts at
func (r *RelationshipProxy) Source() Proxy {
	return r.reg.Resolve(r.n.Source())
}

// Target is the concept the relationship ends at
func (r *RelationshipProxy) Target() Proxy {
	return r.reg.Resolve(r.n.Target())
}

func specializationOf(n *entities.Node) string {
	if !n.Kind().IsConcept() {
		return ""
	}
	m := n.Model()
	if m == nil {
		return ""
	}
	if p := m.ProfileByID(n.StringAttr(entities.AttrProfile)); p != nil {
		return p.Name()
	}
	return ""
}

func (o *object) setSpecialization(ctx context.Context, name string) error {
	h := o.holder()
	if !h.Kind().IsConcept() {
		return nil
	}
	if name == "" {
		return pkgerrors.NewInvalidArgumentError("specialization name cannot be empty")
	}
	m := h.Model()
	if m == nil {
		return pkgerrors.NewNotFoundError("model of " + h.ID().String())
	}
	profile := m.FindProfile(name, h.Class())
	if profile == nil {
		if m.FindProfile(name, "") != nil {
			return pkgerrors.NewTypeMismatchError(fmt.Sprintf("specialization %q is not declared for %s", name, h.Class()))
		}
		return pkgerrors.NewNotFoundError(fmt.Sprintf("specialization %q", name))
	}
	return o.exec(ctx, commands.NewSetAttributeCommand(h, entities.AttrProfile, profile.ID().String()))
}

func (o *object) clearSpecialization(ctx context.Context) error {
	h := o.holder()
	if !h.Kind().IsConcept() {
		return nil
	}
	return o.exec(ctx, commands.NewSetAttributeCommand(h, entities.AttrProfile, nil))
}
