package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetProperty_UpdatesExisting(t *testing.T) {
	env := newTestEnv(t)
	goal := env.element(t, "goal", "G")

	_, err := goal.SetProperty(env.ctx, "k", "v1", false)
	require.NoError(t, err)
	_, err = goal.SetProperty(env.ctx, "k", "v2", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"v2"}, goal.PropertyValues("k"))
	v, ok := goal.Property("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestSetProperty_AllowDuplicates(t *testing.T) {
	env := newTestEnv(t)
	goal := env.element(t, "goal", "G")

	_, err := goal.SetProperty(env.ctx, "k", "v1", true)
	require.NoError(t, err)
	_, err = goal.SetProperty(env.ctx, "k", "v2", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"v1", "v2"}, goal.PropertyValues("k"))
	assert.Equal(t, []string{"k"}, goal.PropertyKeys())

	v, _ := goal.Property("k")
	assert.Equal(t, "v1", v, "single lookup returns the first match")
}

func TestSetProperty_UpdateAllIsOneUndoStep(t *testing.T) {
	env := newTestEnv(t)
	goal := env.element(t, "goal", "G")
	for _, v := range []string{"a", "b", "c"} {
		_, err := goal.SetProperty(env.ctx, "k", v, true)
		require.NoError(t, err)
	}

	_, err := goal.SetProperty(env.ctx, "k", "z", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "z", "z"}, goal.PropertyValues("k"))

	require.NoError(t, env.stack.Undo(env.ctx))
	assert.Equal(t, []string{"a", "b", "c"}, goal.PropertyValues("k"))
}

func TestPropertyKeys_FirstSeenOrder(t *testing.T) {
	env := newTestEnv(t)
	goal := env.element(t, "goal", "G")
	for _, kv := range [][2]string{{"b", "1"}, {"a", "2"}, {"b", "3"}, {"c", "4"}} {
		_, err := goal.SetProperty(env.ctx, kv[0], kv[1], true)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"b", "a", "c"}, goal.PropertyKeys())
	_, ok := goal.Property("missing")
	assert.False(t, ok)
	assert.Empty(t, goal.PropertyValues("missing"))
}

func TestRemoveProperty(t *testing.T) {
	env := newTestEnv(t)
	goal := env.element(t, "goal", "G")
	for _, kv := range [][2]string{{"k", "1"}, {"other", "x"}, {"k", "2"}, {"k", "1"}} {
		_, err := goal.SetProperty(env.ctx, kv[0], kv[1], true)
		require.NoError(t, err)
	}

	_, err := goal.RemovePropertyValue(env.ctx, "k", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, goal.PropertyValues("k"))

	_, err = goal.RemoveProperty(env.ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, goal.PropertyKeys())

	before := len(env.rec.executed)
	_, err = goal.RemoveProperty(env.ctx, "nothing")
	require.NoError(t, err)
	assert.Len(t, env.rec.executed, before, "no match means no command")

	require.NoError(t, env.stack.Undo(env.ctx))
	require.NoError(t, env.stack.Undo(env.ctx))
	assert.Equal(t, []string{"1", "2", "1"}, goal.PropertyValues("k"))
}

func TestSetProperty_Noops(t *testing.T) {
	env := newTestEnv(t)
	goal := env.element(t, "goal", "G")
	before := len(env.rec.executed)

	_, err := goal.SetProperty(env.ctx, "", "v", false)
	require.NoError(t, err)
	_, err = goal.SetProperty(env.ctx, "k", "v", false)
	require.NoError(t, err)
	_, err = goal.SetProperty(env.ctx, "k", "v", false)
	require.NoError(t, err)

	assert.Len(t, env.rec.executed, before+1, "empty key and unchanged value issue nothing")
}
