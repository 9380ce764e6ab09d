// Package proxy exposes model graph nodes to scripts.
//
// Every supported node kind is wrapped by one proxy type. Proxies hold no
// state besides the wrapped node: reads go to the live node and writes are
// submitted as commands to the registry's executor, so each logical change
// is a single undoable unit.
package proxy

import (
	"context"
	"strings"

	"github.com/m-sergey/archi-scripting-plugin/application/commands"
	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// Proxy is the uniform script-facing contract of every wrapped node.
// The interface is closed: only this package can implement it.
type Proxy interface {
	ID() string
	Name() string
	SetName(ctx context.Context, name string) (Proxy, error)
	Documentation() string
	SetDocumentation(ctx context.Context, documentation string) (Proxy, error)
	// Type is the concrete class name of the referenced concept
	Type() string
	Model() *ModelProxy

	GetAttribute(key string) any
	SetAttribute(ctx context.Context, key string, value any) (Proxy, error)

	PropertyKeys() []string
	Property(key string) (string, bool)
	PropertyValues(key string) []string
	SetProperty(ctx context.Context, key, value string, allowDuplicates bool) (Proxy, error)
	RemoveProperty(ctx context.Context, key string) (Proxy, error)
	RemovePropertyValue(ctx context.Context, key, value string) (Proxy, error)

	Children() *Collection
	Parent() Proxy
	Ancestors() *Collection
	Find(selector string) *Collection
	Delete(ctx context.Context) error

	Equal(other Proxy) bool
	Compare(other Proxy) int
	String() string

	node() *entities.Node
	holder() *entities.Node
	isNil() bool
}

// present reports whether p wraps a node. A typed nil, such as the
// *ModelProxy of a detached object, is not present.
func present(p Proxy) bool {
	return p != nil && !p.isNil()
}

// isNil is declared on every concrete proxy; the promoted method would
// dereference a nil outer pointer before reaching the embedded object.
func (o *object) isNil() bool             { return o == nil || o.n == nil }
func (m *ModelProxy) isNil() bool         { return m == nil || m.object.isNil() }
func (f *FolderProxy) isNil() bool        { return f == nil || f.object.isNil() }
func (c *ConceptProxy) isNil() bool       { return c == nil || c.object.isNil() }
func (e *ElementProxy) isNil() bool       { return e == nil || e.object.isNil() }
func (r *RelationshipProxy) isNil() bool  { return r == nil || r.object.isNil() }
func (v *DiagramModelProxy) isNil() bool  { return v == nil || v.object.isNil() }
func (d *DiagramObjectProxy) isNil() bool { return d == nil || d.object.isNil() }
func (c *ConnectionProxy) isNil() bool    { return c == nil || c.object.isNil() }

// object implements the shared part of every proxy. Concrete proxies embed
// it and shadow the methods whose behavior differs per kind.
type object struct {
	n     *entities.Node
	reg   *Registry
	self  Proxy
	attrs attrTable
}

func (o *object) node() *entities.Node { return o.n }

// holder is the node documentation, properties and type are read from.
// Diagram components showing a concept redirect to that concept.
func (o *object) holder() *entities.Node {
	if o.n.Kind().IsDiagramComponent() {
		if c := o.n.Concept(); c != nil && c.Kind().IsConcept() {
			return c
		}
	}
	return o.n
}

func (o *object) exec(ctx context.Context, cmd bus.Command) error {
	return o.reg.exec.Execute(ctx, cmd)
}

func (o *object) ID() string {
	s, _ := o.GetAttribute(AttrID.String()).(string)
	return s
}

func (o *object) Name() string {
	s, _ := o.GetAttribute(AttrName.String()).(string)
	return s
}

func (o *object) SetName(ctx context.Context, name string) (Proxy, error) {
	return o.SetAttribute(ctx, AttrName.String(), name)
}

func (o *object) Documentation() string {
	s, _ := o.GetAttribute(AttrDocumentation.String()).(string)
	return s
}

func (o *object) SetDocumentation(ctx context.Context, documentation string) (Proxy, error) {
	return o.SetAttribute(ctx, AttrDocumentation.String(), documentation)
}

func (o *object) Type() string {
	s, _ := o.GetAttribute(AttrType.String()).(string)
	return s
}

// Model returns the containing model, or nil once the node is detached
func (o *object) Model() *ModelProxy {
	m := o.n.Model()
	if m == nil {
		return nil
	}
	return o.reg.ResolveModel(m)
}

// GetAttribute reads an attribute by script name. Unknown keys read as nil.
func (o *object) GetAttribute(key string) any {
	k, ok := ParseAttrKey(key)
	if !ok {
		return nil
	}
	acc, ok := o.attrs[k]
	if !ok || acc.get == nil {
		return nil
	}
	return acc.get(o)
}

// SetAttribute writes an attribute by script name and returns the proxy.
// Unknown keys, read-only keys and values of the wrong shape are ignored.
func (o *object) SetAttribute(ctx context.Context, key string, value any) (Proxy, error) {
	k, ok := ParseAttrKey(key)
	if !ok {
		return o.self, nil
	}
	acc, ok := o.attrs[k]
	if !ok || acc.set == nil {
		return o.self, nil
	}
	if err := acc.set(ctx, o, value); err != nil {
		return o.self, err
	}
	return o.self, nil
}

// Children is empty unless the proxy kind contains other proxies
func (o *object) Children() *Collection {
	return NewCollection()
}

// Parent is the proxy of the immediate container, or nil
func (o *object) Parent() Proxy {
	return o.reg.Resolve(o.n.Parent())
}

// Ancestors walks parents up to, but excluding, the model. It returns nil,
// not an empty collection, when there is no such ancestor.
func (o *object) Ancestors() *Collection {
	parent := o.self.Parent()
	if parent == nil || parent.node().Kind() == entities.KindModel {
		return nil
	}
	out := NewCollection(parent)
	if up := parent.Ancestors(); up != nil {
		out = out.Union(up)
	}
	return out
}

// Find returns every resolvable descendant, filtered by selector when one
// is given.
func (o *object) Find(selector string) *Collection {
	return o.descendants().Filter(selector)
}

func (o *object) descendants() *Collection {
	out := NewCollection()
	o.n.Walk(func(n *entities.Node) bool {
		out.add(o.reg.Resolve(n))
		return true
	})
	return out
}

// Delete is not supported unless the proxy kind overrides it
func (o *object) Delete(context.Context) error {
	return pkgerrors.NewUnsupportedOperationError("delete", o.self.String())
}

// detach removes the node itself if it still has a container
func (o *object) detach(ctx context.Context) error {
	if !o.n.IsAttached() {
		return nil
	}
	return o.exec(ctx, commands.NewDetachCommand(o.n))
}

// Equal compares wrapped nodes, never wrappers
func (o *object) Equal(other Proxy) bool {
	if !present(other) || o.n == nil {
		return false
	}
	return o.n == other.node()
}

// Compare orders by name. Unnamed proxies compare equal to everything.
func (o *object) Compare(other Proxy) int {
	if !present(other) {
		return 0
	}
	a, b := o.Name(), other.Name()
	if a == "" || b == "" {
		return 0
	}
	return strings.Compare(a, b)
}

func (o *object) String() string {
	return o.Type() + ": " + o.Name()
}

func deleteAll(ctx context.Context, c *Collection) error {
	for _, p := range c.Slice() {
		if err := p.Delete(ctx); err != nil {
			return err
		}
	}
	return nil
}
