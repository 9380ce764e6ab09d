package proxy

import (
	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	"github.com/m-sergey/archi-scripting-plugin/domain/ui"
	"github.com/m-sergey/archi-scripting-plugin/pkg/utils"
)

// Preferences supplies editor defaults the proxies need
type Preferences interface {
	// DefaultFigureSize is used when a width or height of -1 is given
	DefaultFigureSize() (width, height int)
}

// FigureSize is a fixed Preferences
type FigureSize struct {
	Width  int
	Height int
}

func (f FigureSize) DefaultFigureSize() (int, int) { return f.Width, f.Height }

// ColorValidator checks "#rrggbb" strings
type ColorValidator interface {
	ValidateColor(color string) error
}

// Registry maps graph nodes to proxies and carries what proxies share:
// the command executor and the editor settings.
type Registry struct {
	exec   bus.Executor
	caps   ui.Capabilities
	prefs  Preferences
	colors ColorValidator
	logger *zap.Logger
}

// Option configures a Registry
type Option func(*Registry)

func WithCapabilities(caps ui.Capabilities) Option {
	return func(r *Registry) { r.caps = caps }
}

func WithPreferences(prefs Preferences) Option {
	return func(r *Registry) { r.prefs = prefs }
}

func WithColorValidator(v ColorValidator) Option {
	return func(r *Registry) { r.colors = v }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry creates a registry submitting every write to exec
func NewRegistry(exec bus.Executor, opts ...Option) *Registry {
	r := &Registry{
		exec:   exec,
		caps:   ui.DefaultTable(),
		prefs:  FigureSize{Width: 120, Height: 55},
		colors: utils.NewColorValidator(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Executor is where proxies submit commands
func (r *Registry) Executor() bus.Executor { return r.exec }

// Resolve wraps n in the proxy for its kind. Nodes of kinds scripts cannot
// address resolve to nil.
func (r *Registry) Resolve(n *entities.Node) Proxy {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case entities.KindModel:
		return r.newModelProxy(n)
	case entities.KindElement:
		p := &ElementProxy{}
		p.object = r.wrap(n, p, conceptAttrs)
		return p
	case entities.KindRelationship:
		p := &RelationshipProxy{}
		p.object = r.wrap(n, p, relationshipAttrs)
		return p
	case entities.KindDiagramModel:
		p := &DiagramModelProxy{}
		p.object = r.wrap(n, p, baseAttrs)
		return p
	case entities.KindDiagramObject:
		p := &DiagramObjectProxy{}
		p.object = r.wrap(n, p, diagramObjectAttrs)
		return p
	case entities.KindDiagramConnection:
		p := &ConnectionProxy{}
		p.object = r.wrap(n, p, connectionAttrs)
		return p
	case entities.KindFolder:
		p := &FolderProxy{}
		p.object = r.wrap(n, p, baseAttrs)
		return p
	}
	r.logger.Debug("No proxy for node", zap.Stringer("kind", n.Kind()), zap.String("id", n.ID().String()))
	return nil
}

// ResolveModel wraps the root of m
func (r *Registry) ResolveModel(m *entities.Model) *ModelProxy {
	if m == nil {
		return nil
	}
	return r.newModelProxy(m.Root())
}

func (r *Registry) newModelProxy(root *entities.Node) *ModelProxy {
	p := &ModelProxy{model: root.Model()}
	p.object = r.wrap(root, p, baseAttrs)
	return p
}

func (r *Registry) wrap(n *entities.Node, self Proxy, attrs attrTable) *object {
	return &object{n: n, reg: r, self: self, attrs: attrs}
}

// resolveAll wraps nodes in order, skipping unsupported kinds
func (r *Registry) resolveAll(nodes []*entities.Node) *Collection {
	out := NewCollection()
	for _, n := range nodes {
		out.add(r.Resolve(n))
	}
	return out
}

// resolveKind wraps the nodes of one kind
func (r *Registry) resolveKind(nodes []*entities.Node, kind entities.Kind) *Collection {
	out := NewCollection()
	for _, n := range nodes {
		if n.Kind() == kind {
			out.add(r.Resolve(n))
		}
	}
	return out
}
