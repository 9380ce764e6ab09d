package entities

import (
	"fmt"

	"github.com/m-sergey/archi-scripting-plugin/domain/core/valueobjects"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// Node is a single object of the model graph.
// Containment is a tree (parent/children); source, target and concept are
// cross references that do not imply ownership.
type Node struct {
	id    valueobjects.ObjectID
	kind  Kind
	class string

	parent   *Node
	children []*Node

	attrs      map[Attribute]any
	properties []*Property

	source  *Node
	target  *Node
	concept *Node

	// set on the model root only
	model *Model
}

func newNode(kind Kind, class string) *Node {
	return &Node{
		id:    valueobjects.NewObjectID(),
		kind:  kind,
		class: class,
		attrs: make(map[Attribute]any),
	}
}

// NewElement creates a detached element of the given class
func NewElement(class, name string) (*Node, error) {
	if !IsElementClass(class) {
		return nil, pkgerrors.NewInvalidArgumentError(fmt.Sprintf("unknown element type %q", class))
	}
	n := newNode(KindElement, class)
	n.SetAttr(AttrName, name)
	return n, nil
}

// NewRelationship creates a detached relationship between two concepts
func NewRelationship(class string, source, target *Node, name string) (*Node, error) {
	if !IsRelationshipClass(class) {
		return nil, pkgerrors.NewInvalidArgumentError(fmt.Sprintf("unknown relationship type %q", class))
	}
	if source == nil || target == nil || !source.kind.IsConcept() || !target.kind.IsConcept() {
		return nil, pkgerrors.NewInvalidArgumentError("relationship ends must be concepts")
	}
	n := newNode(KindRelationship, class)
	n.source, n.target = source, target
	n.SetAttr(AttrName, name)
	return n, nil
}

// NewFolder creates a detached user folder
func NewFolder(name string) *Node {
	n := newNode(KindFolder, ClassFolder)
	n.SetAttr(AttrName, name)
	return n
}

// NewDiagramModel creates a detached view
func NewDiagramModel(name string) *Node {
	n := newNode(KindDiagramModel, ClassDiagramModel)
	n.SetAttr(AttrName, name)
	return n
}

// NewDiagramObject creates a diagram object showing an element
func NewDiagramObject(element *Node, bounds valueobjects.Bounds) (*Node, error) {
	if element == nil || element.kind != KindElement {
		return nil, pkgerrors.NewInvalidArgumentError("diagram object must reference an element")
	}
	n := newNode(KindDiagramObject, ClassDiagramArchimateObject)
	n.concept = element
	n.SetAttr(AttrBounds, bounds)
	return n, nil
}

// NewDiagramShape creates a note or group
func NewDiagramShape(class, name string, bounds valueobjects.Bounds) (*Node, error) {
	if class != ClassDiagramNote && class != ClassDiagramGroup {
		return nil, pkgerrors.NewInvalidArgumentError(fmt.Sprintf("unsupported diagram object type %q", class))
	}
	n := newNode(KindDiagramObject, class)
	n.SetAttr(AttrName, name)
	n.SetAttr(AttrBounds, bounds)
	if class == ClassDiagramNote {
		n.SetAttr(AttrTextAlignment, TextAlignmentLeft)
	}
	return n, nil
}

// NewDiagramReference creates a diagram object pointing at another view
func NewDiagramReference(view *Node, bounds valueobjects.Bounds) (*Node, error) {
	if view == nil || view.kind != KindDiagramModel {
		return nil, pkgerrors.NewInvalidArgumentError("diagram reference must point to a view")
	}
	n := newNode(KindDiagramObject, ClassDiagramReference)
	n.concept = view
	n.SetAttr(AttrBounds, bounds)
	return n, nil
}

// NewDiagramConnection connects two diagram components. With a non-nil
// relationship the connection shows that relationship.
func NewDiagramConnection(source, target, relationship *Node) (*Node, error) {
	if source == nil || target == nil || !source.kind.IsDiagramComponent() || !target.kind.IsDiagramComponent() {
		return nil, pkgerrors.NewInvalidArgumentError("connection ends must be diagram components")
	}
	class := ClassDiagramConnection
	if relationship != nil {
		if relationship.kind != KindRelationship {
			return nil, pkgerrors.NewInvalidArgumentError("connection concept must be a relationship")
		}
		class = ClassDiagramArchimateConnection
	}
	n := newNode(KindDiagramConnection, class)
	n.source, n.target, n.concept = source, target, relationship
	return n, nil
}

// NewProfile creates a specialization declaration for a concept class
func NewProfile(name, conceptClass, imagePath string) (*Node, error) {
	if name == "" {
		return nil, pkgerrors.NewInvalidArgumentError("specialization name cannot be empty")
	}
	if !IsElementClass(conceptClass) && !IsRelationshipClass(conceptClass) {
		return nil, pkgerrors.NewInvalidArgumentError(fmt.Sprintf("unknown concept type %q", conceptClass))
	}
	n := newNode(KindProfile, ClassProfile)
	n.SetAttr(AttrName, name)
	n.SetAttr(AttrConceptType, conceptClass)
	n.SetAttr(AttrImagePath, imagePath)
	return n, nil
}

func (n *Node) ID() valueobjects.ObjectID { return n.id }
func (n *Node) Kind() Kind                { return n.kind }
func (n *Node) Class() string             { return n.class }
func (n *Node) Parent() *Node             { return n.parent }
func (n *Node) Source() *Node             { return n.source }
func (n *Node) Target() *Node             { return n.target }

// Concept is the element, relationship or view a diagram component shows
func (n *Node) Concept() *Node { return n.concept }

// Children returns a copy of the contained nodes in order
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// IsAttached reports whether the node has a container
func (n *Node) IsAttached() bool {
	return n.parent != nil
}

// Root walks containment up to the topmost node
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Model returns the model containing this node, or nil when detached from any
func (n *Node) Model() *Model {
	return n.Root().model
}

// Diagram returns the view containing this node, or nil
func (n *Node) Diagram() *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.kind == KindDiagramModel {
			return cur
		}
	}
	return nil
}

// Contains reports whether other is this node or one of its descendants
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Walk visits all descendants in pre-order. Returning false from fn prunes
// the subtree below the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	for _, c := range n.children {
		if fn(c) {
			c.Walk(fn)
		}
	}
}

// Attr returns the stored value or the attribute default
func (n *Node) Attr(a Attribute) any {
	if v, ok := n.attrs[a]; ok {
		return v
	}
	return a.Default()
}

// IsSet reports whether the attribute holds a non-default value
func (n *Node) IsSet(a Attribute) bool {
	_, ok := n.attrs[a]
	return ok
}

// SetAttr stores value and returns the previous value. Storing nil or the
// default removes the slot.
func (n *Node) SetAttr(a Attribute, value any) any {
	old := n.Attr(a)
	if value == nil || value == a.Default() {
		delete(n.attrs, a)
		return old
	}
	n.attrs[a] = value
	return old
}

func (n *Node) StringAttr(a Attribute) string {
	s, _ := n.Attr(a).(string)
	return s
}

func (n *Node) IntAttr(a Attribute) int {
	i, _ := n.Attr(a).(int)
	return i
}

func (n *Node) Name() string          { return n.StringAttr(AttrName) }
func (n *Node) Documentation() string { return n.StringAttr(AttrDocumentation) }

func (n *Node) Bounds() valueobjects.Bounds {
	b, _ := n.Attr(AttrBounds).(valueobjects.Bounds)
	return b
}

// FolderType is FolderUser for every folder except the model's defaults
func (n *Node) FolderType() FolderType {
	f, _ := n.Attr(AttrFolderType).(FolderType)
	return f
}

// SupportsProperties reports whether the node can hold a property list
func (n *Node) SupportsProperties() bool {
	return n.kind != KindProfile && n.kind != KindUnknown
}

// SupportsDocumentation reports whether the node carries documentation
func (n *Node) SupportsDocumentation() bool {
	switch n.kind {
	case KindModel, KindFolder, KindElement, KindRelationship, KindDiagramModel, KindDiagramConnection:
		return true
	case KindDiagramObject:
		return n.class == ClassDiagramGroup
	}
	return false
}

// IsContainer reports whether diagram objects can be nested inside this node
func (n *Node) IsContainer() bool {
	switch n.kind {
	case KindDiagramModel:
		return true
	case KindDiagramObject:
		return n.class == ClassDiagramArchimateObject || n.class == ClassDiagramGroup
	}
	return false
}

// Properties returns the property list in insertion order
func (n *Node) Properties() []*Property {
	out := make([]*Property, len(n.properties))
	copy(out, n.properties)
	return out
}

// InsertProperty inserts p at index; an out of range index appends
func (n *Node) InsertProperty(index int, p *Property) {
	if index < 0 || index >= len(n.properties) {
		n.properties = append(n.properties, p)
		return
	}
	n.properties = append(n.properties, nil)
	copy(n.properties[index+1:], n.properties[index:])
	n.properties[index] = p
}

// RemoveProperty removes p and returns its former index, or -1
func (n *Node) RemoveProperty(p *Property) int {
	for i, cur := range n.properties {
		if cur == p {
			n.properties = append(n.properties[:i], n.properties[i+1:]...)
			return i
		}
	}
	return -1
}

// AttachChild inserts child at index; an out of range index appends
func (n *Node) AttachChild(child *Node, index int) error {
	if child == nil {
		return pkgerrors.NewInvalidArgumentError("child cannot be nil")
	}
	if child.parent != nil {
		return pkgerrors.NewConflictError(fmt.Sprintf("%s is already contained", child.id))
	}
	if child.Contains(n) {
		return pkgerrors.NewConflictError("containment cycle")
	}
	if index < 0 || index >= len(n.children) {
		n.children = append(n.children, child)
	} else {
		n.children = append(n.children, nil)
		copy(n.children[index+1:], n.children[index:])
		n.children[index] = child
	}
	child.parent = n
	return nil
}

// DetachChild removes child and returns its former index
func (n *Node) DetachChild(child *Node) (int, error) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return i, nil
		}
	}
	return -1, pkgerrors.NewNotFoundError(fmt.Sprintf("child %s", child.id))
}

func (n *Node) String() string {
	return fmt.Sprintf("%s: %s", n.class, n.Name())
}
