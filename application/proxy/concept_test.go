package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

func TestSpecialization_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	actor := env.element(t, "business-actor", "Actor")
	require.NoError(t, env.model.CreateSpecialization(env.ctx, "Special", entities.KebabCase(actor.Type()), ""))

	_, err := actor.SetSpecialization(env.ctx, "Special")
	require.NoError(t, err)
	assert.Equal(t, "Special", actor.Specialization())
	assert.Equal(t, "Special", actor.GetAttribute("specialization"))

	_, err = actor.SetAttribute(env.ctx, "specialization", nil)
	require.NoError(t, err)
	assert.Equal(t, "", actor.Specialization())
	assert.Nil(t, actor.GetAttribute("specialization"))

	require.NoError(t, env.stack.Undo(env.ctx))
	assert.Equal(t, "Special", actor.Specialization())
}

func TestSpecialization_Errors(t *testing.T) {
	env := newTestEnv(t)
	actor := env.element(t, "business-actor", "Actor")
	require.NoError(t, env.model.CreateSpecialization(env.ctx, "Special", "business-actor", ""))
	require.NoError(t, env.model.CreateSpecialization(env.ctx, "Server", "node", ""))

	tests := []struct {
		name  string
		value string
		check func(error) bool
	}{
		{"declared for another type", "Server", pkgerrors.IsTypeMismatch},
		{"not declared", "Nope", pkgerrors.IsNotFound},
		{"empty name", "", pkgerrors.IsInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := actor.SetSpecialization(env.ctx, tt.value)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %v", err)
			assert.Equal(t, "", actor.Specialization())
		})
	}

	t.Run("through the attribute path", func(t *testing.T) {
		_, err := actor.SetAttribute(env.ctx, "specialization", "Server")
		assert.True(t, pkgerrors.IsTypeMismatch(err))
	})
}

func TestCreateSpecialization(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.model.CreateSpecialization(env.ctx, "Special", "goal", ""))
	err := env.model.CreateSpecialization(env.ctx, "Special", "goal", "")
	assert.True(t, pkgerrors.IsConflict(err))

	err = env.model.CreateSpecialization(env.ctx, "Icon", "goal", "images/missing.png")
	assert.True(t, pkgerrors.IsNotFound(err))

	err = env.model.CreateSpecialization(env.ctx, "Bad", "diagram-model-note", "")
	assert.True(t, pkgerrors.IsInvalidArgument(err))

	require.NoError(t, env.model.AddImage(env.ctx, "images/icon.png", []byte{0x89}))
	require.NoError(t, env.model.CreateSpecialization(env.ctx, "Icon", "goal", "images/icon.png"))

	assert.Equal(t, []Specialization{
		{Name: "Special", Type: "goal"},
		{Name: "Icon", Type: "goal", ImagePath: "images/icon.png"},
	}, env.model.Specializations())
}

func TestDeleteSpecialization_ClearsUsers(t *testing.T) {
	env := newTestEnv(t)
	goal := env.element(t, "goal", "G")
	require.NoError(t, env.model.CreateSpecialization(env.ctx, "Special", "goal", ""))
	_, err := goal.SetSpecialization(env.ctx, "Special")
	require.NoError(t, err)

	require.NoError(t, env.model.DeleteSpecialization(env.ctx, "Special", "goal"))
	assert.Empty(t, env.model.Specializations())
	assert.Equal(t, "", goal.Specialization())

	require.NoError(t, env.stack.Undo(env.ctx))
	assert.Equal(t, "Special", goal.Specialization())
}

func TestRelationships(t *testing.T) {
	env := newTestEnv(t)
	a := env.element(t, "application-component", "A")
	b := env.element(t, "application-component", "B")
	rel := env.relationship(t, "flow-relationship", a, b)

	assert.True(t, rel.Source().Equal(a))
	assert.True(t, rel.Target().Equal(b))
	assert.True(t, rel.GetAttribute("source").(Proxy).Equal(a))
	assert.Equal(t, "Relations", rel.Parent().Name())

	assert.True(t, a.OutRelationships().Equal(NewCollection(rel)))
	assert.True(t, b.InRelationships().Equal(NewCollection(rel)))
	assert.True(t, a.InRelationships().IsEmpty())

	_, err := env.model.CreateRelationship(env.ctx, "flow-relationship", "", a, nil)
	assert.True(t, pkgerrors.IsInvalidArgument(err))
}

func TestConceptDelete_Cascades(t *testing.T) {
	env := newTestEnv(t)
	a := env.element(t, "business-actor", "A")
	b := env.element(t, "business-role", "B")
	rel := env.relationship(t, "assignment-relationship", a, b)
	view := env.view(t, "V")
	oa, _ := view.Add(env.ctx, a, 0, 0, -1, -1)
	ob, _ := view.Add(env.ctx, b, 200, 0, -1, -1)
	conn, err := view.Connect(env.ctx, oa, ob, rel)
	require.NoError(t, err)

	assert.True(t, a.Views().Equal(NewCollection(view)))

	require.NoError(t, a.Delete(env.ctx))

	for _, n := range []*entities.Node{a.node(), rel.node(), oa.node(), conn.node()} {
		assert.False(t, n.IsAttached(), "%s should be removed", n)
	}
	assert.True(t, b.node().IsAttached())
	assert.True(t, ob.node().IsAttached())

	removed := env.rec.detached()
	assert.Equal(t, a.node(), removed[len(removed)-1], "the concept goes last")
}
