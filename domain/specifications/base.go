package specifications

// Specification encapsulates a selection rule over candidates of type T
type Specification[T any] interface {
	// IsSatisfiedBy checks if the specification is satisfied by the given object
	IsSatisfiedBy(candidate T) bool

	// And creates a composite specification with AND logic
	And(other Specification[T]) Specification[T]

	// Or creates a composite specification with OR logic
	Or(other Specification[T]) Specification[T]

	// Not creates a specification with NOT logic
	Not() Specification[T]
}

// BaseSpecification adapts a predicate into a Specification
type BaseSpecification[T any] struct {
	evaluator func(T) bool
}

// NewBaseSpecification creates a new base specification with a custom evaluator
func NewBaseSpecification[T any](evaluator func(T) bool) *BaseSpecification[T] {
	return &BaseSpecification[T]{
		evaluator: evaluator,
	}
}

// IsSatisfiedBy checks if the specification is satisfied
func (s *BaseSpecification[T]) IsSatisfiedBy(candidate T) bool {
	return s.evaluator(candidate)
}

func (s *BaseSpecification[T]) And(other Specification[T]) Specification[T] {
	return &AndSpecification[T]{left: s, right: other}
}

func (s *BaseSpecification[T]) Or(other Specification[T]) Specification[T] {
	return &OrSpecification[T]{left: s, right: other}
}

func (s *BaseSpecification[T]) Not() Specification[T] {
	return &NotSpecification[T]{spec: s}
}

// AndSpecification is satisfied when both operands are
type AndSpecification[T any] struct {
	left  Specification[T]
	right Specification[T]
}

func (s *AndSpecification[T]) IsSatisfiedBy(candidate T) bool {
	return s.left.IsSatisfiedBy(candidate) && s.right.IsSatisfiedBy(candidate)
}

func (s *AndSpecification[T]) And(other Specification[T]) Specification[T] {
	return &AndSpecification[T]{left: s, right: other}
}

func (s *AndSpecification[T]) Or(other Specification[T]) Specification[T] {
	return &OrSpecification[T]{left: s, right: other}
}

func (s *AndSpecification[T]) Not() Specification[T] {
	return &NotSpecification[T]{spec: s}
}

// OrSpecification is satisfied when at least one operand is
type OrSpecification[T any] struct {
	left  Specification[T]
	right Specification[T]
}

func (s *OrSpecification[T]) IsSatisfiedBy(candidate T) bool {
	return s.left.IsSatisfiedBy(candidate) || s.right.IsSatisfiedBy(candidate)
}

func (s *OrSpecification[T]) And(other Specification[T]) Specification[T] {
	return &AndSpecification[T]{left: s, right: other}
}

func (s *OrSpecification[T]) Or(other Specification[T]) Specification[T] {
	return &OrSpecification[T]{left: s, right: other}
}

func (s *OrSpecification[T]) Not() Specification[T] {
	return &NotSpecification[T]{spec: s}
}

// NotSpecification negates its operand
type NotSpecification[T any] struct {
	spec Specification[T]
}

func (s *NotSpecification[T]) IsSatisfiedBy(candidate T) bool {
	return !s.spec.IsSatisfiedBy(candidate)
}

func (s *NotSpecification[T]) And(other Specification[T]) Specification[T] {
	return &AndSpecification[T]{left: s, right: other}
}

func (s *NotSpecification[T]) Or(other Specification[T]) Specification[T] {
	return &OrSpecification[T]{left: s, right: other}
}

// Not of a negation yields the original specification
func (s *NotSpecification[T]) Not() Specification[T] {
	return s.spec
}

// Any is satisfied when any of specs is; with no specs it is never satisfied
func Any[T any](specs ...Specification[T]) Specification[T] {
	if len(specs) == 0 {
		return NewBaseSpecification(func(T) bool { return false })
	}
	out := specs[0]
	for _, s := range specs[1:] {
		out = out.Or(s)
	}
	return out
}

// All is satisfied when every spec is; with no specs it is always satisfied
func All[T any](specs ...Specification[T]) Specification[T] {
	if len(specs) == 0 {
		return NewBaseSpecification(func(T) bool { return true })
	}
	out := specs[0]
	for _, s := range specs[1:] {
		out = out.And(s)
	}
	return out
}

// Map adapts a specification over U into one over T
func Map[T, U any](spec Specification[U], project func(T) U) Specification[T] {
	return NewBaseSpecification(func(candidate T) bool {
		return spec.IsSatisfiedBy(project(candidate))
	})
}
