package proxy

import (
	"strings"

	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	"github.com/m-sergey/archi-scripting-plugin/domain/specifications"
)

// categories name groups of node kinds usable as selectors
var categories = map[string][]entities.Kind{
	"concept":        {entities.KindElement, entities.KindRelationship},
	"element":        {entities.KindElement},
	"relationship":   {entities.KindRelationship},
	"view":           {entities.KindDiagramModel},
	"folder":         {entities.KindFolder},
	"diagram-object": {entities.KindDiagramObject},
	"connection":     {entities.KindDiagramConnection},
}

// CompileSelector turns a selector into a specification over proxies.
//
// A selector is a comma separated list of alternatives. Each alternative
// is "*", a category ("element", "view", ...), "#id", ".name", a
// kebab-case type ("business-actor") or "type.name". Types and names are
// matched against the referenced concept, so "business-actor" also
// matches figures showing a business actor. Alternatives that do not
// parse match nothing.
func CompileSelector(selector string) specifications.Specification[Proxy] {
	var alternatives []specifications.Specification[Proxy]
	for _, part := range strings.Split(selector, ",") {
		if part = strings.TrimSpace(part); part != "" {
			alternatives = append(alternatives, compileAlternative(part))
		}
	}
	return specifications.Any(alternatives...)
}

func compileAlternative(s string) specifications.Specification[Proxy] {
	switch {
	case s == "*":
		return matchAll()
	case strings.HasPrefix(s, "#"):
		return onNode(specifications.NewNodeIDSpec(s[1:]))
	case strings.HasPrefix(s, "."):
		return onHolder(specifications.NewNodeNameSpec(s[1:]))
	}

	typ, name, hasName := strings.Cut(s, ".")
	spec := compileType(typ)
	if hasName {
		spec = spec.And(onHolder(specifications.NewNodeNameSpec(name)))
	}
	return spec
}

func compileType(typ string) specifications.Specification[Proxy] {
	if kinds, ok := categories[typ]; ok {
		return onNode(specifications.NewNodeKindSpec(kinds...))
	}
	if class, ok := entities.ClassFromKebab(typ); ok {
		return onHolder(specifications.NewNodeClassSpec(class))
	}
	return matchNone()
}

func onNode(spec specifications.NodeSpecification) specifications.Specification[Proxy] {
	return specifications.Map(spec, func(p Proxy) *entities.Node { return p.node() })
}

func onHolder(spec specifications.NodeSpecification) specifications.Specification[Proxy] {
	return specifications.Map(spec, func(p Proxy) *entities.Node { return p.holder() })
}

func matchAll() specifications.Specification[Proxy] {
	return specifications.NewBaseSpecification(func(Proxy) bool { return true })
}

func matchNone() specifications.Specification[Proxy] {
	return specifications.NewBaseSpecification(func(Proxy) bool { return false })
}
