package entities

import (
	"testing"

	"github.com/m-sergey/archi-scripting-plugin/domain/core/valueobjects"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElement(t *testing.T) {
	n, err := NewElement("BusinessActor", "Customer")
	require.NoError(t, err)

	assert.Equal(t, KindElement, n.Kind())
	assert.Equal(t, "BusinessActor", n.Class())
	assert.Equal(t, "Customer", n.Name())
	assert.False(t, n.IsAttached())
	assert.Nil(t, n.Model())

	_, err = NewElement("NoSuchThing", "x")
	assert.True(t, pkgerrors.IsInvalidArgument(err))
}

func TestNewRelationship(t *testing.T) {
	a, _ := NewElement("BusinessActor", "a")
	b, _ := NewElement("BusinessRole", "b")

	rel, err := NewRelationship("AssignmentRelationship", a, b, "")
	require.NoError(t, err)
	assert.Same(t, a, rel.Source())
	assert.Same(t, b, rel.Target())

	_, err = NewRelationship("AssignmentRelationship", a, nil, "")
	assert.True(t, pkgerrors.IsInvalidArgument(err))

	folder := NewFolder("f")
	_, err = NewRelationship("AssignmentRelationship", a, folder, "")
	assert.True(t, pkgerrors.IsInvalidArgument(err))
}

func TestNode_SetAttrDefaults(t *testing.T) {
	n := NewDiagramModel("v")
	obj, err := NewDiagramShape(ClassDiagramGroup, "g", valueobjects.DefaultBounds())
	require.NoError(t, err)
	require.NoError(t, n.AttachChild(obj, -1))

	assert.Equal(t, AlphaMax, obj.IntAttr(AttrAlpha))
	assert.False(t, obj.IsSet(AttrAlpha))

	old := obj.SetAttr(AttrAlpha, 10)
	assert.Equal(t, AlphaMax, old)
	assert.True(t, obj.IsSet(AttrAlpha))
	assert.Equal(t, 10, obj.IntAttr(AttrAlpha))

	obj.SetAttr(AttrAlpha, AlphaMax)
	assert.False(t, obj.IsSet(AttrAlpha), "writing the default clears the slot")

	obj.SetAttr(AttrFillColor, "#ff0000")
	obj.SetAttr(AttrFillColor, nil)
	assert.Equal(t, "", obj.StringAttr(AttrFillColor))
}

func TestNode_Containment(t *testing.T) {
	parent := NewFolder("parent")
	a := NewFolder("a")
	b := NewFolder("b")
	c := NewFolder("c")

	require.NoError(t, parent.AttachChild(a, -1))
	require.NoError(t, parent.AttachChild(c, -1))
	require.NoError(t, parent.AttachChild(b, 1))

	assert.Equal(t, []*Node{a, b, c}, parent.Children())
	assert.Same(t, parent, b.Parent())

	err := parent.AttachChild(b, -1)
	assert.True(t, pkgerrors.IsConflict(err), "already contained")

	err = a.AttachChild(parent, -1)
	assert.Error(t, err)

	index, err := parent.DetachChild(b)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.False(t, b.IsAttached())
	assert.Equal(t, []*Node{a, c}, parent.Children())

	_, err = parent.DetachChild(b)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestNode_Properties(t *testing.T) {
	n, _ := NewElement("Goal", "g")
	p1 := NewProperty("k", "1")
	p2 := NewProperty("k", "2")
	p3 := NewProperty("other", "3")

	n.InsertProperty(-1, p1)
	n.InsertProperty(-1, p3)
	n.InsertProperty(1, p2)

	assert.Equal(t, []*Property{p1, p2, p3}, n.Properties())
	assert.Equal(t, 1, n.RemoveProperty(p2))
	assert.Equal(t, -1, n.RemoveProperty(p2))
	assert.Equal(t, "1", p1.SetValue("one"))
	assert.Equal(t, "one", n.Properties()[0].Value())
}

func TestNode_Walk(t *testing.T) {
	root := NewFolder("root")
	a := NewFolder("a")
	a1 := NewFolder("a1")
	b := NewFolder("b")
	require.NoError(t, root.AttachChild(a, -1))
	require.NoError(t, a.AttachChild(a1, -1))
	require.NoError(t, root.AttachChild(b, -1))

	var visited []string
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Name())
		return true
	})
	assert.Equal(t, []string{"a", "a1", "b"}, visited)

	visited = nil
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Name())
		return n.Name() != "a"
	})
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestKebabCase(t *testing.T) {
	tests := map[string]string{
		"BusinessActor":           "business-actor",
		"Node":                    "node",
		"AssociationRelationship": "association-relationship",
		"ArchimateDiagramModel":   "archimate-diagram-model",
	}
	for class, kebab := range tests {
		assert.Equal(t, kebab, KebabCase(class))
		back, ok := ClassFromKebab(kebab)
		assert.True(t, ok, kebab)
		assert.Equal(t, class, back)
	}

	_, ok := ClassFromKebab("not-a-type")
	assert.False(t, ok)
}

func TestKind(t *testing.T) {
	assert.True(t, KindElement.IsConcept())
	assert.True(t, KindRelationship.IsConcept())
	assert.False(t, KindDiagramObject.IsConcept())
	assert.True(t, KindDiagramConnection.IsDiagramComponent())
	assert.Equal(t, "diagram-object", KindDiagramObject.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
