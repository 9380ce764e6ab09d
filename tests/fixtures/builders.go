// Package fixtures builds small models for tests that drive the scripting
// surface end to end.
package fixtures

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/application/proxy"
	"github.com/m-sergey/archi-scripting-plugin/application/workspace"
	"github.com/m-sergey/archi-scripting-plugin/domain/ui"
	"github.com/m-sergey/archi-scripting-plugin/infrastructure/config"
)

// NewWorkspace returns a workspace with default preferences and capabilities
func NewWorkspace() *workspace.Workspace {
	stack := bus.NewCommandStack(zap.NewNop(), bus.WithMiddleware(bus.ValidationMiddleware()))
	reg := proxy.NewRegistry(stack,
		proxy.WithCapabilities(ui.DefaultTable()),
		proxy.WithPreferences(config.NewPreferences(config.DefaultEditorConfig())),
	)
	return workspace.New(reg, stack, zap.NewNop())
}

// ModelBuilder creates concepts by name so tests can wire them up without
// keeping every proxy around. The first error sticks and is returned by
// Build.
type ModelBuilder struct {
	ctx      context.Context
	ws       *workspace.Workspace
	model    *proxy.ModelProxy
	elements map[string]*proxy.ElementProxy
	rels     map[string]*proxy.RelationshipProxy
	views    map[string]*proxy.DiagramModelProxy
	err      error
}

// NewModelBuilder opens a fresh model in ws
func NewModelBuilder(ws *workspace.Workspace, name string) *ModelBuilder {
	return &ModelBuilder{
		ctx:      context.Background(),
		ws:       ws,
		model:    ws.Create(name),
		elements: make(map[string]*proxy.ElementProxy),
		rels:     make(map[string]*proxy.RelationshipProxy),
		views:    make(map[string]*proxy.DiagramModelProxy),
	}
}

// Element adds an element of kebab type
func (b *ModelBuilder) Element(kebabType, name string) *ModelBuilder {
	if b.err != nil {
		return b
	}
	el, err := b.model.CreateElement(b.ctx, kebabType, name, nil)
	if err != nil {
		b.err = fmt.Errorf("element %s: %w", name, err)
		return b
	}
	b.elements[name] = el
	return b
}

// Relationship links two previously added elements
func (b *ModelBuilder) Relationship(kebabType, name, source, target string) *ModelBuilder {
	if b.err != nil {
		return b
	}
	src, ok := b.elements[source]
	if !ok {
		b.err = fmt.Errorf("relationship %s: unknown source %s", name, source)
		return b
	}
	tgt, ok := b.elements[target]
	if !ok {
		b.err = fmt.Errorf("relationship %s: unknown target %s", name, target)
		return b
	}
	rel, err := b.model.CreateRelationship(b.ctx, kebabType, name, src, tgt)
	if err != nil {
		b.err = fmt.Errorf("relationship %s: %w", name, err)
		return b
	}
	b.rels[name] = rel
	return b
}

// View adds a view and draws the named elements on it in a row, then
// connects every relationship whose ends are both drawn.
func (b *ModelBuilder) View(name string, elements ...string) *ModelBuilder {
	if b.err != nil {
		return b
	}
	view, err := b.model.CreateView(b.ctx, name, nil)
	if err != nil {
		b.err = fmt.Errorf("view %s: %w", name, err)
		return b
	}
	b.views[name] = view

	figures := make(map[string]*proxy.DiagramObjectProxy)
	for i, el := range elements {
		concept, ok := b.elements[el]
		if !ok {
			b.err = fmt.Errorf("view %s: unknown element %s", name, el)
			return b
		}
		fig, err := view.Add(b.ctx, concept, 20+i*160, 20, -1, -1)
		if err != nil {
			b.err = fmt.Errorf("view %s: add %s: %w", name, el, err)
			return b
		}
		figures[concept.ID()] = fig
	}
	for relName, rel := range b.rels {
		src, ok1 := figures[rel.Source().ID()]
		tgt, ok2 := figures[rel.Target().ID()]
		if !ok1 || !ok2 {
			continue
		}
		if _, err := view.Connect(b.ctx, src, tgt, rel); err != nil {
			b.err = fmt.Errorf("view %s: connect %s: %w", name, relName, err)
			return b
		}
	}
	return b
}

// Build returns the model and the first error met while building
func (b *ModelBuilder) Build() (*Built, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Built{Workspace: b.ws, Model: b.model, Elements: b.elements, Relationships: b.rels, Views: b.views}, nil
}

// Built is a finished fixture model
type Built struct {
	Workspace     *workspace.Workspace
	Model         *proxy.ModelProxy
	Elements      map[string]*proxy.ElementProxy
	Relationships map[string]*proxy.RelationshipProxy
	Views         map[string]*proxy.DiagramModelProxy
}

// Entry is one row of a model snapshot
type Entry struct {
	Type   string
	Name   string
	Parent string
}

// Snapshot lists every object under the model as type, name and parent
// name, in model order.
func Snapshot(m *proxy.ModelProxy) []Entry {
	var out []Entry
	m.Find("*").Each(func(_ int, p proxy.Proxy) {
		e := Entry{Type: p.Type(), Name: p.Name()}
		if parent := p.Parent(); parent != nil {
			e.Parent = parent.Name()
		}
		out = append(out, e)
	})
	return out
}
