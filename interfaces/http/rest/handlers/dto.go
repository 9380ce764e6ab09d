package handlers

import (
	"github.com/m-sergey/archi-scripting-plugin/application/proxy"
	"github.com/m-sergey/archi-scripting-plugin/application/workspace"
)

// ObjectRef identifies an object without its details
type ObjectRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// PropertyDTO is one key/value pair
type PropertyDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ObjectDTO is the full view of one proxy
type ObjectDTO struct {
	ObjectRef
	Documentation  string         `json:"documentation,omitempty"`
	Specialization string         `json:"specialization,omitempty"`
	ParentID       string         `json:"parentId,omitempty"`
	Source         *ObjectRef     `json:"source,omitempty"`
	Target         *ObjectRef     `json:"target,omitempty"`
	Concept        *ObjectRef     `json:"concept,omitempty"`
	Bounds         map[string]int `json:"bounds,omitempty"`
	Properties     []PropertyDTO  `json:"properties,omitempty"`
}

// ModelDTO describes an open model
type ModelDTO struct {
	ObjectRef
	Folders         []ObjectRef             `json:"folders"`
	Specializations []proxy.Specialization `json:"specializations"`
}

// HistoryDTO is the undo/redo state after a history operation
type HistoryDTO struct {
	Label string `json:"label,omitempty"`
	workspace.History
}

func toRef(p proxy.Proxy) *ObjectRef {
	if p == nil {
		return nil
	}
	return &ObjectRef{ID: p.ID(), Type: p.Type(), Name: p.Name()}
}

func toRefs(c *proxy.Collection) []ObjectRef {
	out := make([]ObjectRef, 0, c.Len())
	c.Each(func(_ int, p proxy.Proxy) {
		out = append(out, *toRef(p))
	})
	return out
}

func toProperties(p proxy.Proxy) []PropertyDTO {
	var out []PropertyDTO
	for _, key := range p.PropertyKeys() {
		for _, v := range p.PropertyValues(key) {
			out = append(out, PropertyDTO{Key: key, Value: v})
		}
	}
	return out
}

func toObject(p proxy.Proxy) ObjectDTO {
	dto := ObjectDTO{
		ObjectRef:     *toRef(p),
		Documentation: p.Documentation(),
		Properties:    toProperties(p),
	}
	if parent := p.Parent(); parent != nil {
		dto.ParentID = parent.ID()
	}
	if s, ok := p.GetAttribute("specialization").(string); ok {
		dto.Specialization = s
	}

	switch t := p.(type) {
	case *proxy.RelationshipProxy:
		dto.Source, dto.Target = toRef(t.Source()), toRef(t.Target())
	case *proxy.DiagramObjectProxy:
		dto.Bounds = t.Bounds()
		dto.Concept = toRef(t.Concept())
	case *proxy.ConnectionProxy:
		dto.Source, dto.Target = toRef(t.Source()), toRef(t.Target())
		dto.Concept = toRef(t.Concept())
	}
	return dto
}

func toModel(m *proxy.ModelProxy) ModelDTO {
	specs := m.Specializations()
	if specs == nil {
		specs = []proxy.Specialization{}
	}
	return ModelDTO{
		ObjectRef:       *toRef(m),
		Folders:         toRefs(m.Children()),
		Specializations: specs,
	}
}

// attributeValue makes an attribute value safe to encode. Proxies become
// references.
func attributeValue(v any) any {
	if p, ok := v.(proxy.Proxy); ok {
		return toRef(p)
	}
	return v
}
