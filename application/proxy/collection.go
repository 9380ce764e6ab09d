package proxy

import (
	"context"
	"sort"
	"strings"

	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
)

// Collection is an ordered set of proxies. Two proxies wrapping the same
// node count once. Queries return new collections; a nil *Collection
// behaves as an empty one.
type Collection struct {
	items []Proxy
	seen  map[*entities.Node]bool
}

// NewCollection builds a collection, dropping nil and duplicate proxies
func NewCollection(items ...Proxy) *Collection {
	c := &Collection{seen: make(map[*entities.Node]bool)}
	for _, p := range items {
		c.add(p)
	}
	return c
}

func (c *Collection) add(p Proxy) {
	if !present(p) || c.seen[p.node()] {
		return
	}
	c.seen[p.node()] = true
	c.items = append(c.items, p)
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

func (c *Collection) IsEmpty() bool { return c.Len() == 0 }

// At returns the proxy at index i, or nil when out of range
func (c *Collection) At(i int) Proxy {
	if i < 0 || i >= c.Len() {
		return nil
	}
	return c.items[i]
}

func (c *Collection) First() Proxy { return c.At(0) }

// Slice returns a copy of the items
func (c *Collection) Slice() []Proxy {
	if c == nil {
		return nil
	}
	out := make([]Proxy, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) Each(fn func(i int, p Proxy)) {
	for i, p := range c.Slice() {
		fn(i, p)
	}
}

func (c *Collection) Contains(p Proxy) bool {
	if c == nil || !present(p) {
		return false
	}
	return c.seen[p.node()]
}

// Filter keeps the items matching selector; "" keeps everything
func (c *Collection) Filter(selector string) *Collection {
	if strings.TrimSpace(selector) == "" {
		return NewCollection(c.Slice()...)
	}
	spec := CompileSelector(selector)
	return c.FilterFunc(spec.IsSatisfiedBy)
}

func (c *Collection) FilterFunc(keep func(Proxy) bool) *Collection {
	out := NewCollection()
	for _, p := range c.Slice() {
		if keep(p) {
			out.add(p)
		}
	}
	return out
}

// Not keeps the items not matching selector
func (c *Collection) Not(selector string) *Collection {
	spec := CompileSelector(selector)
	return c.FilterFunc(func(p Proxy) bool { return !spec.IsSatisfiedBy(p) })
}

// Union appends the items of other not already present
func (c *Collection) Union(other *Collection) *Collection {
	out := NewCollection(c.Slice()...)
	for _, p := range other.Slice() {
		out.add(p)
	}
	return out
}

// Intersect keeps the items also present in other
func (c *Collection) Intersect(other *Collection) *Collection {
	return c.FilterFunc(other.Contains)
}

// Children joins the children of every item
func (c *Collection) Children() *Collection {
	out := NewCollection()
	for _, p := range c.Slice() {
		out = out.Union(p.Children())
	}
	return out
}

// Parent collects the parent of every item
func (c *Collection) Parent() *Collection {
	out := NewCollection()
	for _, p := range c.Slice() {
		out.add(p.Parent())
	}
	return out
}

// Ancestors joins the ancestors of every item. Unlike the single proxy
// form it returns an empty collection, never nil.
func (c *Collection) Ancestors() *Collection {
	out := NewCollection()
	for _, p := range c.Slice() {
		out = out.Union(p.Ancestors())
	}
	return out
}

// Find joins the matching descendants of every item
func (c *Collection) Find(selector string) *Collection {
	out := NewCollection()
	for _, p := range c.Slice() {
		out = out.Union(p.Find(selector))
	}
	return out
}

// GetAttribute reads key from the first item
func (c *Collection) GetAttribute(key string) any {
	p := c.First()
	if p == nil {
		return nil
	}
	return p.GetAttribute(key)
}

// SetAttribute writes key on every item, stopping at the first error
func (c *Collection) SetAttribute(ctx context.Context, key string, value any) (*Collection, error) {
	for _, p := range c.Slice() {
		if _, err := p.SetAttribute(ctx, key, value); err != nil {
			return c, err
		}
	}
	return c, nil
}

// Delete deletes every item, stopping at the first error
func (c *Collection) Delete(ctx context.Context) error {
	return deleteAll(ctx, c)
}

// Sorted orders the items by name; unnamed items keep their place
// relative to each other.
func (c *Collection) Sorted() *Collection {
	items := c.Slice()
	sort.SliceStable(items, func(i, j int) bool { return items[i].Compare(items[j]) < 0 })
	return NewCollection(items...)
}

// Equal reports whether both collections hold the same nodes, in any order
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	for _, p := range c.Slice() {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}

func (c *Collection) String() string {
	parts := make([]string, 0, c.Len())
	for _, p := range c.Slice() {
		parts = append(parts, p.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
