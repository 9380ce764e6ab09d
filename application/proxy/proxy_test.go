package proxy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/commands"
	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// recordingExecutor remembers every command it forwards
type recordingExecutor struct {
	next     bus.Executor
	executed []bus.Command
}

func (r *recordingExecutor) Execute(ctx context.Context, cmd bus.Command) error {
	r.executed = append(r.executed, cmd)
	return r.next.Execute(ctx, cmd)
}

// detached lists the nodes removed by detach commands, in order
func (r *recordingExecutor) detached() []*entities.Node {
	var out []*entities.Node
	for _, cmd := range r.executed {
		if d, ok := cmd.(*commands.DetachCommand); ok {
			out = append(out, d.Node())
		}
	}
	return out
}

type testEnv struct {
	ctx   context.Context
	stack *bus.CommandStack
	rec   *recordingExecutor
	reg   *Registry
	model *ModelProxy
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	stack := bus.NewCommandStack(zap.NewNop(), bus.WithMiddleware(bus.ValidationMiddleware()))
	rec := &recordingExecutor{next: stack}
	reg := NewRegistry(rec, opts...)
	return &testEnv{
		ctx:   context.Background(),
		stack: stack,
		rec:   rec,
		reg:   reg,
		model: reg.ResolveModel(entities.NewModel("Test Model")),
	}
}

func (e *testEnv) element(t *testing.T, kebab, name string) *ElementProxy {
	t.Helper()
	el, err := e.model.CreateElement(e.ctx, kebab, name, nil)
	require.NoError(t, err)
	require.NotNil(t, el)
	return el
}

func (e *testEnv) relationship(t *testing.T, kebab string, source, target Proxy) *RelationshipProxy {
	t.Helper()
	rel, err := e.model.CreateRelationship(e.ctx, kebab, "", source, target)
	require.NoError(t, err)
	return rel
}

func (e *testEnv) view(t *testing.T, name string) *DiagramModelProxy {
	t.Helper()
	v, err := e.model.CreateView(e.ctx, name, nil)
	require.NoError(t, err)
	return v
}

func TestResolve_IsDeterministic(t *testing.T) {
	env := newTestEnv(t)
	actor := env.element(t, "business-actor", "Actor")
	view := env.view(t, "View")
	obj, err := view.Add(env.ctx, actor, 0, 0, -1, -1)
	require.NoError(t, err)

	nodes := []*entities.Node{env.model.node(), actor.node(), view.node(), obj.node(), actor.node().Parent()}
	for _, n := range nodes {
		first, second := env.reg.Resolve(n), env.reg.Resolve(n)
		require.NotNil(t, first)
		assert.True(t, first.Equal(second), "resolving %s twice", n)
		assert.NotSame(t, first, second)
	}
}

func TestResolve_KindMapping(t *testing.T) {
	env := newTestEnv(t)
	a := env.element(t, "business-actor", "A")
	b := env.element(t, "business-role", "B")
	rel := env.relationship(t, "assignment-relationship", a, b)
	view := env.view(t, "V")
	oa, _ := view.Add(env.ctx, a, 0, 0, -1, -1)
	ob, _ := view.Add(env.ctx, b, 200, 0, -1, -1)
	conn, err := view.Connect(env.ctx, oa, ob, rel)
	require.NoError(t, err)
	require.NoError(t, env.model.CreateSpecialization(env.ctx, "Special", "business-actor", ""))

	assert.IsType(t, &ModelProxy{}, env.reg.Resolve(env.model.node()))
	assert.IsType(t, &ElementProxy{}, env.reg.Resolve(a.node()))
	assert.IsType(t, &RelationshipProxy{}, env.reg.Resolve(rel.node()))
	assert.IsType(t, &DiagramModelProxy{}, env.reg.Resolve(view.node()))
	assert.IsType(t, &DiagramObjectProxy{}, env.reg.Resolve(oa.node()))
	assert.IsType(t, &ConnectionProxy{}, env.reg.Resolve(conn.node()))
	assert.IsType(t, &FolderProxy{}, env.reg.Resolve(a.node().Parent()))

	profile := env.model.model.FindProfile("Special", "BusinessActor")
	require.NotNil(t, profile)
	assert.Nil(t, env.reg.Resolve(profile), "specialization declarations have no proxy")
	assert.Nil(t, env.reg.Resolve(nil))
}

func TestBaseAttributes(t *testing.T) {
	env := newTestEnv(t)
	actor := env.element(t, "business-actor", "Actor")

	assert.Equal(t, "BusinessActor", actor.Type())
	assert.Equal(t, actor.node().ID().String(), actor.ID())
	assert.Equal(t, "BusinessActor: Actor", actor.String())

	p, err := actor.SetName(env.ctx, "Renamed")
	require.NoError(t, err)
	assert.Same(t, actor, p, "setters return the proxy for chaining")
	assert.Equal(t, "Renamed", actor.Name())

	_, err = actor.SetDocumentation(env.ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, "docs", actor.GetAttribute("documentation"))

	require.NoError(t, env.stack.Undo(env.ctx))
	assert.Equal(t, "", actor.Documentation())
}

func TestSetAttribute_ShapeMismatchIsNoop(t *testing.T) {
	env := newTestEnv(t)
	actor := env.element(t, "business-actor", "Actor")
	before := len(env.rec.executed)

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"name with number", "name", 42},
		{"documentation with slice", "documentation", []string{"x"}},
		{"read-only id", "id", "other"},
		{"read-only type", "type", "goal"},
		{"unknown key", "colour", "#ff0000"},
		{"diagram key on element", "opacity", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := actor.SetAttribute(env.ctx, tt.key, tt.value)
			require.NoError(t, err)
			assert.Same(t, actor, p)
		})
	}
	assert.Len(t, env.rec.executed, before, "no command issued")
	assert.Equal(t, "Actor", actor.Name())
	assert.Nil(t, actor.GetAttribute("colour"))
}

func TestModel(t *testing.T) {
	env := newTestEnv(t)

	assert.Nil(t, env.model.Parent())
	assert.Nil(t, env.model.Ancestors())
	assert.Equal(t, 9, env.model.Children().Len())

	err := env.model.Delete(env.ctx)
	assert.True(t, pkgerrors.IsUnsupported(err))

	_, err = env.model.CreateElement(env.ctx, "no-such-type", "x", nil)
	assert.True(t, pkgerrors.IsInvalidArgument(err))

	actor := env.element(t, "business-actor", "A")
	assert.True(t, actor.Model().Equal(env.model))
	assert.Equal(t, "Business", actor.Parent().Name())
}

func TestAncestors(t *testing.T) {
	env := newTestEnv(t)
	actor := env.element(t, "business-actor", "A")

	business := actor.Parent()
	assert.Nil(t, business.Ancestors(), "a top-level folder has no ancestor below the model")

	ancestors := actor.Ancestors()
	require.NotNil(t, ancestors)
	assert.True(t, ancestors.Equal(NewCollection(business)))

	sub, err := business.(*FolderProxy).CreateFolder(env.ctx, "Sub")
	require.NoError(t, err)
	goal, err := env.model.CreateElement(env.ctx, "business-role", "R", sub)
	require.NoError(t, err)

	chain := goal.Ancestors()
	assert.Equal(t, []string{"Sub", "Business"}, []string{chain.At(0).Name(), chain.At(1).Name()})
}

func TestDetachedNodeReadsGracefully(t *testing.T) {
	env := newTestEnv(t)
	actor := env.element(t, "business-actor", "A")
	require.NoError(t, actor.Delete(env.ctx))

	assert.Nil(t, actor.Model())
	assert.Nil(t, actor.Parent())
	assert.Nil(t, actor.Ancestors())
	assert.Equal(t, "A", actor.Name())
	assert.Equal(t, "", actor.Specialization())
	assert.Equal(t, 0, actor.InRelationships().Len())
}

func TestEqualAndCompare(t *testing.T) {
	env := newTestEnv(t)
	a := env.element(t, "goal", "Alpha")
	b := env.element(t, "goal", "Beta")
	unnamed := env.element(t, "goal", "")

	assert.True(t, a.Equal(env.reg.Resolve(a.node())))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))

	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(unnamed))
	assert.Zero(t, a.Compare(nil))
}

func TestDetachedReferencesAreAbsent(t *testing.T) {
	env := newTestEnv(t)
	a := env.element(t, "goal", "Alpha")
	b := env.element(t, "goal", "Beta")
	require.NoError(t, b.Delete(env.ctx))

	gone := b.Model()
	require.Nil(t, gone)
	assert.False(t, a.Model().Equal(gone))
	assert.Zero(t, a.Compare(gone))

	view, fig := newFigure(t, env, "business-actor")
	require.NoError(t, fig.Delete(env.ctx))
	assert.Zero(t, NewCollection(fig.View()).Len())
	assert.False(t, NewCollection(view).Contains(fig.View()))

	var missing *DiagramObjectProxy
	_, err := view.Connect(env.ctx, missing, missing, nil)
	assert.True(t, pkgerrors.IsInvalidArgument(err))
}
