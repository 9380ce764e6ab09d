package proxy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	"github.com/m-sergey/archi-scripting-plugin/domain/ui"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

func newFigure(t *testing.T, env *testEnv, kebab string) (*DiagramModelProxy, *DiagramObjectProxy) {
	t.Helper()
	view := env.view(t, "View")
	obj, err := view.Add(env.ctx, env.element(t, kebab, kebab), 10, 10, -1, -1)
	require.NoError(t, err)
	return view, obj
}

func TestDiagramObject_Bounds(t *testing.T) {
	env := newTestEnv(t, WithPreferences(FigureSize{Width: 120, Height: 55}))
	_, obj := newFigure(t, env, "business-actor")

	assert.Equal(t, map[string]int{"x": 10, "y": 10, "width": 120, "height": 55}, obj.Bounds())

	_, err := obj.SetAttribute(env.ctx, "bounds", map[string]any{"x": 10, "y": 20, "width": 30, "height": 40})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 10, "y": 20, "width": 30, "height": 40}, obj.GetAttribute("bounds"))

	_, err = obj.SetAttribute(env.ctx, "bounds", map[string]any{"width": -1})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 10, "y": 20, "width": 120, "height": 40}, obj.Bounds())

	y := 99.0
	_, err = obj.SetAttribute(env.ctx, "bounds", map[string]any{"y": y, "height": "tall"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 10, "y": 99, "width": 120, "height": 40}, obj.Bounds())
}

func TestDiagramObject_Opacity(t *testing.T) {
	env := newTestEnv(t)
	_, obj := newFigure(t, env, "business-actor")

	tests := []struct {
		name  string
		key   string
		value any
		want  int
	}{
		{"below range", "opacity", -5, 0},
		{"above range", "opacity", 999, 255},
		{"in range", "opacity", 128, 128},
		{"script float", "opacity", float64(64), 64},
		{"outline below range", "outlineOpacity", -1, 0},
		{"outline above range", "outlineOpacity", 300, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := obj.SetAttribute(env.ctx, tt.key, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, obj.GetAttribute(tt.key))
		})
	}

	t.Run("fractional float is ignored", func(t *testing.T) {
		before := obj.Opacity()
		_, err := obj.SetAttribute(env.ctx, "opacity", 1.5)
		require.NoError(t, err)
		assert.Equal(t, before, obj.Opacity())
	})
}

func TestDiagramObject_TextAlignment(t *testing.T) {
	env := newTestEnv(t)
	_, obj := newFigure(t, env, "business-actor")

	_, err := obj.SetTextAlignment(env.ctx, entities.TextAlignmentRight)
	require.NoError(t, err)
	assert.Equal(t, entities.TextAlignmentRight, obj.TextAlignment())

	_, err = obj.SetTextAlignment(env.ctx, 3)
	assert.True(t, pkgerrors.IsInvalidArgument(err))
	assert.Equal(t, entities.TextAlignmentRight, obj.TextAlignment(), "rejected value leaves alignment unchanged")

	_, err = obj.SetAttribute(env.ctx, "textAlignment", 0)
	assert.True(t, pkgerrors.IsInvalidArgument(err))
}

func TestDiagramObject_FillColor(t *testing.T) {
	env := newTestEnv(t)
	_, obj := newFigure(t, env, "business-actor")

	assert.Nil(t, obj.GetAttribute("fillColor"))

	_, err := obj.SetFillColor(env.ctx, "#ff8800")
	require.NoError(t, err)
	assert.Equal(t, "#ff8800", obj.GetAttribute("fillColor"))

	_, err = obj.SetFillColor(env.ctx, "orange")
	assert.True(t, pkgerrors.IsInvalidArgument(err))
	assert.Equal(t, "#ff8800", obj.FillColor())

	_, err = obj.SetAttribute(env.ctx, "fillColor", 7)
	require.NoError(t, err, "non-string values are ignored")

	_, err = obj.SetAttribute(env.ctx, "fillColor", nil)
	require.NoError(t, err)
	assert.Equal(t, "", obj.FillColor())
}

func TestDiagramObject_CoercedEnums(t *testing.T) {
	env := newTestEnv(t)
	_, obj := newFigure(t, env, "business-actor")

	tests := []struct {
		key   string
		value int
		want  int
	}{
		{"gradient", 2, 2},
		{"gradient", 7, -1},
		{"gradient", -3, -1},
		{"textPosition", 2, 2},
		{"textPosition", 5, 0},
		{"showIcon", 1, 1},
		{"showIcon", 9, 0},
		{"imageSource", 1, 1},
		{"imageSource", 4, 0},
		{"imagePosition", 9, 9},
		{"imagePosition", 10, 0},
		{"figureType", 5, 1},
		{"figureType", -2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := obj.SetAttribute(env.ctx, tt.key, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, obj.GetAttribute(tt.key))
		})
	}
}

func TestDiagramObject_FeatureGating(t *testing.T) {
	env := newTestEnv(t)
	view, junction := newFigure(t, env, "junction")
	note, err := view.CreateObject(env.ctx, "note", "a note", 0, 0, -1, -1)
	require.NoError(t, err)
	before := len(env.rec.executed)

	_, err = junction.SetGradient(env.ctx, 1)
	require.NoError(t, err)
	_, err = junction.SetFigureType(env.ctx, 1)
	require.NoError(t, err)
	_, err = junction.SetShowIcon(env.ctx, 2)
	require.NoError(t, err)
	_, err = junction.SetTextPosition(env.ctx, 1)
	require.NoError(t, err)
	_, err = note.SetImageSource(env.ctx, 1)
	require.NoError(t, err)
	_, err = note.SetFigureType(env.ctx, 1)
	require.NoError(t, err)

	assert.Len(t, env.rec.executed, before, "gated setters issue no command")
	assert.Equal(t, -1, junction.Gradient())
	assert.Equal(t, 0, note.FigureType())
	assert.Equal(t, -1, note.ImageSource())
	assert.Equal(t, -1, junction.ImagePosition())
	assert.Nil(t, junction.GetAttribute("textPosition"))
}

func TestDiagramObject_CustomCapabilities(t *testing.T) {
	table, err := ui.LoadTable(strings.NewReader("BusinessActor:\n  icon: true\n  hidden: [gradient]\n"))
	require.NoError(t, err)
	env := newTestEnv(t, WithCapabilities(table))
	_, obj := newFigure(t, env, "business-actor")

	_, err = obj.SetGradient(env.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, -1, obj.Gradient())

	_, err = obj.SetFigureType(env.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, obj.FigureType(), "override drops the alternate figure")
}

func TestDiagramObject_Image(t *testing.T) {
	env := newTestEnv(t)
	_, obj := newFigure(t, env, "business-actor")

	_, err := obj.SetAttribute(env.ctx, "image", map[string]any{"path": "images/missing.png"})
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Nil(t, obj.GetAttribute("image"))

	require.NoError(t, env.model.AddImage(env.ctx, "images/logo.png", []byte{1, 2, 3}))
	_, err = obj.SetImage(env.ctx, "images/logo.png")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"path": "images/logo.png"}, obj.GetAttribute("image"))

	_, err = obj.SetAttribute(env.ctx, "image", nil)
	require.NoError(t, err)
	assert.Equal(t, "", obj.ImagePath())
}

func TestDiagramObject_RedirectsToConcept(t *testing.T) {
	env := newTestEnv(t)
	_, obj := newFigure(t, env, "business-actor")
	concept := obj.Concept()

	assert.Equal(t, "BusinessActor", obj.Type())

	_, err := obj.SetName(env.ctx, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", concept.Name())

	_, err = obj.SetProperty(env.ctx, "owner", "ops", false)
	require.NoError(t, err)
	v, ok := concept.Property("owner")
	assert.True(t, ok)
	assert.Equal(t, "ops", v)
	assert.Empty(t, obj.node().Properties(), "the figure itself holds nothing")
}

func TestDiagramObject_ChildrenAndFind(t *testing.T) {
	env := newTestEnv(t)
	view := env.view(t, "View")
	group, err := view.CreateObject(env.ctx, "group", "Group", 0, 0, 400, 300)
	require.NoError(t, err)
	a, err := group.AddElement(env.ctx, env.element(t, "business-actor", "A"), 10, 10, -1, -1)
	require.NoError(t, err)
	b, err := group.AddElement(env.ctx, env.element(t, "business-role", "B"), 200, 10, -1, -1)
	require.NoError(t, err)
	_, err = view.Connect(env.ctx, a, b, nil)
	require.NoError(t, err)
	inner, err := group.CreateObject(env.ctx, "note", "Remark", 10, 200, -1, -1)
	require.NoError(t, err)

	assert.True(t, group.Children().Equal(NewCollection(a, b, inner)))
	assert.True(t, group.Find("").Equal(NewCollection(a, b)), "only element figures are found")
	assert.True(t, group.Find("*").Equal(NewCollection(a, b)))
	assert.True(t, group.Find("business-role").Equal(NewCollection(b)))
	assert.Equal(t, 1, view.Find("connection").Len())

	assert.True(t, a.View().Equal(view))
	assert.True(t, a.Children().IsEmpty(), "element figures without nested figures")

	_, err = note(t, env, view).AddElement(env.ctx, env.element(t, "goal", "G"), 0, 0, -1, -1)
	assert.True(t, pkgerrors.IsUnsupported(err), "notes cannot contain figures")
}

func note(t *testing.T, env *testEnv, view *DiagramModelProxy) *DiagramObjectProxy {
	t.Helper()
	n, err := view.CreateObject(env.ctx, "note", "note", 0, 0, -1, -1)
	require.NoError(t, err)
	return n
}

func TestDiagramObject_CascadingDelete(t *testing.T) {
	env := newTestEnv(t)
	view := env.view(t, "View")
	target, err := view.Add(env.ctx, env.element(t, "application-component", "Target"), 300, 0, 200, 200)
	require.NoError(t, err)
	child, err := target.AddElement(env.ctx, env.element(t, "application-interface", "Child"), 10, 10, -1, -1)
	require.NoError(t, err)

	var in []*ConnectionProxy
	for i := 0; i < 2; i++ {
		src, err := view.Add(env.ctx, env.element(t, "application-component", "Src"), 0, i*100, -1, -1)
		require.NoError(t, err)
		conn, err := view.Connect(env.ctx, src, target, nil)
		require.NoError(t, err)
		in = append(in, conn)
	}
	sink, err := view.Add(env.ctx, env.element(t, "application-component", "Sink"), 600, 0, -1, -1)
	require.NoError(t, err)
	out, err := view.Connect(env.ctx, target, sink, nil)
	require.NoError(t, err)

	require.True(t, target.InConnections().Equal(NewCollection(in[0], in[1])))
	require.True(t, target.OutConnections().Equal(NewCollection(out)))

	env.rec.executed = nil
	require.NoError(t, target.Delete(env.ctx))

	removed := env.rec.detached()
	require.Equal(t, []*entities.Node{in[0].node(), in[1].node(), out.node(), child.node(), target.node()}, removed)
	for _, n := range removed {
		assert.False(t, n.IsAttached())
	}
	assert.True(t, sink.node().IsAttached())

	env.rec.executed = nil
	require.NoError(t, target.Delete(env.ctx), "second delete is a no-op")
	assert.Empty(t, env.rec.executed)
}

func TestDiagramObject_ViewReference(t *testing.T) {
	env := newTestEnv(t)
	main := env.view(t, "Main")
	detail := env.view(t, "Detail")

	ref, err := main.CreateViewReference(env.ctx, detail, 0, 0, -1, -1)
	require.NoError(t, err)
	assert.True(t, ref.Concept().Equal(detail))
	assert.Equal(t, entities.ClassDiagramReference, ref.Type())
	assert.Equal(t, -1, ref.ImagePosition())

	require.NoError(t, detail.Delete(env.ctx))
	assert.False(t, ref.node().IsAttached(), "references to a deleted view go with it")
}
