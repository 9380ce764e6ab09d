package specifications

import (
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
)

// NodeSpecification is a specification for graph nodes
type NodeSpecification = Specification[*entities.Node]

// NodeKindSpec matches nodes of any of the given kinds
type NodeKindSpec struct {
	BaseSpecification[*entities.Node]
	kinds []entities.Kind
}

// NewNodeKindSpec creates a specification for node kinds
func NewNodeKindSpec(kinds ...entities.Kind) *NodeKindSpec {
	spec := &NodeKindSpec{kinds: kinds}
	spec.BaseSpecification = BaseSpecification[*entities.Node]{evaluator: spec.evaluate}
	return spec
}

func (s *NodeKindSpec) evaluate(node *entities.Node) bool {
	if node == nil {
		return false
	}
	for _, k := range s.kinds {
		if node.Kind() == k {
			return true
		}
	}
	return false
}

// NodeClassSpec matches nodes whose concrete class equals class
type NodeClassSpec struct {
	BaseSpecification[*entities.Node]
	class string
}

// NewNodeClassSpec creates a specification for a concrete class
func NewNodeClassSpec(class string) *NodeClassSpec {
	spec := &NodeClassSpec{class: class}
	spec.BaseSpecification = BaseSpecification[*entities.Node]{evaluator: spec.evaluate}
	return spec
}

func (s *NodeClassSpec) evaluate(node *entities.Node) bool {
	return node != nil && node.Class() == s.class
}

// NodeIDSpec matches one node by id
type NodeIDSpec struct {
	BaseSpecification[*entities.Node]
	id string
}

func NewNodeIDSpec(id string) *NodeIDSpec {
	spec := &NodeIDSpec{id: id}
	spec.BaseSpecification = BaseSpecification[*entities.Node]{evaluator: spec.evaluate}
	return spec
}

func (s *NodeIDSpec) evaluate(node *entities.Node) bool {
	return node != nil && node.ID().String() == s.id
}

// NodeNameSpec matches nodes by exact name
type NodeNameSpec struct {
	BaseSpecification[*entities.Node]
	name string
}

func NewNodeNameSpec(name string) *NodeNameSpec {
	spec := &NodeNameSpec{name: name}
	spec.BaseSpecification = BaseSpecification[*entities.Node]{evaluator: spec.evaluate}
	return spec
}

func (s *NodeNameSpec) evaluate(node *entities.Node) bool {
	return node != nil && node.Name() == s.name
}

// NodeAttachedSpec matches nodes that still have a container
func NodeAttachedSpec() Specification[*entities.Node] {
	return NewBaseSpecification(func(node *entities.Node) bool {
		return node != nil && node.IsAttached()
	})
}
