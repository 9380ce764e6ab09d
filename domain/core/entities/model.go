package entities

import (
	"sort"
)

// Model is the aggregate root of one document: the containment tree below
// its root node, the declared specializations and the image archive.
type Model struct {
	root   *Node
	images map[string][]byte
}

// NewModel creates an empty model with the default top-level folders
func NewModel(name string) *Model {
	m := &Model{
		root:   newNode(KindModel, ClassModel),
		images: make(map[string][]byte),
	}
	m.root.model = m
	m.root.SetAttr(AttrName, name)

	for _, ft := range topLevelFolders {
		f := NewFolder(ft.DefaultName())
		f.SetAttr(AttrFolderType, ft)
		// cannot fail: fresh nodes
		_ = m.root.AttachChild(f, -1)
	}
	return m
}

func (m *Model) Root() *Node  { return m.root }
func (m *Model) Name() string { return m.root.Name() }

// DefaultFolder returns the top-level folder of the given type
func (m *Model) DefaultFolder(ft FolderType) *Node {
	for _, c := range m.root.children {
		if c.kind == KindFolder && c.FolderType() == ft {
			return c
		}
	}
	return nil
}

// FolderFor returns the top-level folder new concepts of class go into
func (m *Model) FolderFor(class string) *Node {
	return m.DefaultFolder(FolderTypeFor(class))
}

// Profiles returns the declared specializations in declaration order
func (m *Model) Profiles() []*Node {
	var out []*Node
	for _, c := range m.root.children {
		if c.kind == KindProfile {
			out = append(out, c)
		}
	}
	return out
}

// FindProfile looks up a specialization by name and concept class.
// An empty class matches any.
func (m *Model) FindProfile(name, conceptClass string) *Node {
	for _, p := range m.Profiles() {
		if p.Name() != name {
			continue
		}
		if conceptClass == "" || p.StringAttr(AttrConceptType) == conceptClass {
			return p
		}
	}
	return nil
}

// ProfileByID returns the specialization with the given id
func (m *Model) ProfileByID(id string) *Node {
	if id == "" {
		return nil
	}
	for _, p := range m.Profiles() {
		if p.id.String() == id {
			return p
		}
	}
	return nil
}

// FindByID searches the whole containment tree, root included
func (m *Model) FindByID(id string) *Node {
	if m.root.id.String() == id {
		return m.root
	}
	var found *Node
	m.root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.id.String() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// HasImage reports whether the archive holds an image at path
func (m *Model) HasImage(path string) bool {
	_, ok := m.images[path]
	return ok
}

// AddImage stores image bytes at path and returns the previous bytes
func (m *Model) AddImage(path string, data []byte) ([]byte, bool) {
	old, existed := m.images[path]
	m.images[path] = data
	return old, existed
}

// RemoveImage deletes the image at path
func (m *Model) RemoveImage(path string) {
	delete(m.images, path)
}

// ImagePaths lists archive paths in sorted order
func (m *Model) ImagePaths() []string {
	out := make([]string, 0, len(m.images))
	for p := range m.images {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Relationships returns relationships with n as source (outgoing) or target
func (m *Model) Relationships(n *Node, outgoing bool) []*Node {
	var out []*Node
	m.root.Walk(func(c *Node) bool {
		if c.kind == KindRelationship {
			end := c.target
			if outgoing {
				end = c.source
			}
			if end == n {
				out = append(out, c)
			}
		}
		return c.kind == KindFolder
	})
	return out
}

// References returns every diagram component showing concept
func (m *Model) References(concept *Node) []*Node {
	var out []*Node
	m.root.Walk(func(c *Node) bool {
		if c.kind.IsDiagramComponent() && c.concept == concept {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Connections returns the diagram connections ending (incoming) or
// starting at n, searched within n's view.
func Connections(n *Node, outgoing bool) []*Node {
	view := n.Diagram()
	if view == nil {
		return nil
	}
	var out []*Node
	view.Walk(func(c *Node) bool {
		if c.kind == KindDiagramConnection {
			end := c.target
			if outgoing {
				end = c.source
			}
			if end == n {
				out = append(out, c)
			}
		}
		return true
	})
	return out
}
