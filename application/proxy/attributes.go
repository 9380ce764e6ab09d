package proxy

import (
	"context"
	"encoding/json"

	"fortio.org/safecast"

	"github.com/m-sergey/archi-scripting-plugin/application/commands"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/valueobjects"
)

// AttrKey is the closed set of attribute names scripts can address
type AttrKey int

const (
	AttrType AttrKey = iota + 1
	AttrID
	AttrName
	AttrDocumentation
	AttrSpecialization
	AttrBounds
	AttrFillColor
	AttrOpacity
	AttrOutlineOpacity
	AttrGradient
	AttrFigureType
	AttrTextAlignment
	AttrTextPosition
	AttrShowIcon
	AttrImageSource
	AttrImagePosition
	AttrImage
	AttrSource
	AttrTarget
	AttrConcept
)

var attrKeyNames = map[AttrKey]string{
	AttrType:           "type",
	AttrID:             "id",
	AttrName:           "name",
	AttrDocumentation:  "documentation",
	AttrSpecialization: "specialization",
	AttrBounds:         "bounds",
	AttrFillColor:      "fillColor",
	AttrOpacity:        "opacity",
	AttrOutlineOpacity: "outlineOpacity",
	AttrGradient:       "gradient",
	AttrFigureType:     "figureType",
	AttrTextAlignment:  "textAlignment",
	AttrTextPosition:   "textPosition",
	AttrShowIcon:       "showIcon",
	AttrImageSource:    "imageSource",
	AttrImagePosition:  "imagePosition",
	AttrImage:          "image",
	AttrSource:         "source",
	AttrTarget:         "target",
	AttrConcept:        "concept",
}

var attrKeysByName = func() map[string]AttrKey {
	out := make(map[string]AttrKey, len(attrKeyNames))
	for k, name := range attrKeyNames {
		out[name] = k
	}
	return out
}()

// ParseAttrKey maps a script attribute name to its key
func ParseAttrKey(name string) (AttrKey, bool) {
	k, ok := attrKeysByName[name]
	return k, ok
}

func (k AttrKey) String() string {
	return attrKeyNames[k]
}

// accessor reads and writes one attribute. A nil set makes the attribute
// read-only. Setters ignore values of the wrong shape.
type accessor struct {
	get func(o *object) any
	set func(ctx context.Context, o *object, value any) error
}

type attrTable map[AttrKey]accessor

// extend returns a copy of t with overrides layered on top
func (t attrTable) extend(overrides attrTable) attrTable {
	out := make(attrTable, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Tables are assigned in init so that accessors may reach the registry
// without forming an initialization cycle.
var (
	baseAttrs          attrTable
	conceptAttrs       attrTable
	relationshipAttrs  attrTable
	diagramObjectAttrs attrTable
	connectionAttrs    attrTable
)

func init() {
	baseAttrs = attrTable{
		AttrType: {get: func(o *object) any { return o.holder().Class() }},
		AttrID:   {get: func(o *object) any { return o.n.ID().String() }},
		AttrName: {
			get: func(o *object) any { return o.holder().Name() },
			set: func(ctx context.Context, o *object, v any) error {
				s, ok := toStringOrEmpty(v)
				if !ok {
					return nil
				}
				return o.exec(ctx, commands.NewSetAttributeCommand(o.holder(), entities.AttrName, s))
			},
		},
		AttrDocumentation: {
			get: func(o *object) any {
				h := o.holder()
				if !h.SupportsDocumentation() {
					return nil
				}
				return h.Documentation()
			},
			set: func(ctx context.Context, o *object, v any) error {
				h := o.holder()
				s, ok := toStringOrEmpty(v)
				if !ok || !h.SupportsDocumentation() {
					return nil
				}
				return o.exec(ctx, commands.NewSetAttributeCommand(h, entities.AttrDocumentation, s))
			},
		},
	}

	baseAttrs[AttrSpecialization] = accessor{
		get: func(o *object) any {
			if name := specializationOf(o.holder()); name != "" {
				return name
			}
			return nil
		},
		set: func(ctx context.Context, o *object, v any) error {
			if v == nil {
				return o.clearSpecialization(ctx)
			}
			s, ok := v.(string)
			if !ok {
				return nil
			}
			return o.setSpecialization(ctx, s)
		},
	}

	conceptAttrs = baseAttrs

	relationshipAttrs = conceptAttrs.extend(attrTable{
		AttrSource: {get: func(o *object) any { return o.reg.Resolve(o.n.Source()) }},
		AttrTarget: {get: func(o *object) any { return o.reg.Resolve(o.n.Target()) }},
	})

	diagramObjectAttrs = baseAttrs.extend(attrTable{
		AttrBounds: {
			get: func(o *object) any { return diagramObject(o).Bounds() },
			set: func(ctx context.Context, o *object, v any) error {
				u, ok := toBoundsUpdate(v)
				if !ok {
					return nil
				}
				_, err := diagramObject(o).SetBounds(ctx, u)
				return err
			},
		},
		AttrFillColor: {
			get: func(o *object) any {
				if c := diagramObject(o).FillColor(); c != "" {
					return c
				}
				return nil
			},
			set: func(ctx context.Context, o *object, v any) error {
				s, ok := toStringOrEmpty(v)
				if !ok {
					return nil
				}
				_, err := diagramObject(o).SetFillColor(ctx, s)
				return err
			},
		},
		AttrOpacity:        intAccessor(func(d *DiagramObjectProxy) int { return d.Opacity() }, (*DiagramObjectProxy).SetOpacity),
		AttrOutlineOpacity: intAccessor(func(d *DiagramObjectProxy) int { return d.OutlineOpacity() }, (*DiagramObjectProxy).SetOutlineOpacity),
		AttrGradient:       intAccessor(func(d *DiagramObjectProxy) int { return d.Gradient() }, (*DiagramObjectProxy).SetGradient),
		AttrFigureType:     intAccessor(func(d *DiagramObjectProxy) int { return d.FigureType() }, (*DiagramObjectProxy).SetFigureType),
		AttrTextAlignment:  intAccessor(func(d *DiagramObjectProxy) int { return d.TextAlignment() }, (*DiagramObjectProxy).SetTextAlignment),
		AttrTextPosition: {
			get: func(o *object) any {
				d := diagramObject(o)
				if !d.supports(featureTextPosition) {
					return nil
				}
				return d.TextPosition()
			},
			set: intSetter((*DiagramObjectProxy).SetTextPosition),
		},
		AttrShowIcon:      intAccessor(func(d *DiagramObjectProxy) int { return d.ShowIcon() }, (*DiagramObjectProxy).SetShowIcon),
		AttrImageSource:   intAccessor(func(d *DiagramObjectProxy) int { return d.ImageSource() }, (*DiagramObjectProxy).SetImageSource),
		AttrImagePosition: intAccessor(func(d *DiagramObjectProxy) int { return d.ImagePosition() }, (*DiagramObjectProxy).SetImagePosition),
		AttrImage: {
			get: func(o *object) any {
				d := diagramObject(o)
				p := d.ImagePath()
				if p == "" || !d.supports(featureImagePath) {
					return nil
				}
				return map[string]any{"path": p}
			},
			set: func(ctx context.Context, o *object, v any) error {
				path, ok := toImagePath(v)
				if !ok {
					return nil
				}
				_, err := diagramObject(o).SetImage(ctx, path)
				return err
			},
		},
		AttrConcept: {get: func(o *object) any { return o.reg.Resolve(o.n.Concept()) }},
	})

	connectionAttrs = baseAttrs.extend(attrTable{
		AttrSource:  {get: func(o *object) any { return o.reg.Resolve(o.n.Source()) }},
		AttrTarget:  {get: func(o *object) any { return o.reg.Resolve(o.n.Target()) }},
		AttrConcept: {get: func(o *object) any { return o.reg.Resolve(o.n.Concept()) }},
	})
}

func diagramObject(o *object) *DiagramObjectProxy {
	return &DiagramObjectProxy{object: o}
}

func intSetter(set func(*DiagramObjectProxy, context.Context, int) (Proxy, error)) func(context.Context, *object, any) error {
	return func(ctx context.Context, o *object, v any) error {
		i, ok := toInt(v)
		if !ok {
			return nil
		}
		_, err := set(diagramObject(o), ctx, i)
		return err
	}
}

func intAccessor(get func(*DiagramObjectProxy) int, set func(*DiagramObjectProxy, context.Context, int) (Proxy, error)) accessor {
	return accessor{
		get: func(o *object) any { return get(diagramObject(o)) },
		set: intSetter(set),
	}
}

// toInt accepts any integral number. Fractional floats are rejected.
func toInt(v any) (int, bool) {
	var (
		out int
		err error
	)
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		out, err = safecast.Conv[int](n)
	case int16:
		out, err = safecast.Conv[int](n)
	case int32:
		out, err = safecast.Conv[int](n)
	case int64:
		out, err = safecast.Conv[int](n)
	case uint:
		out, err = safecast.Conv[int](n)
	case uint8:
		out, err = safecast.Conv[int](n)
	case uint16:
		out, err = safecast.Conv[int](n)
	case uint32:
		out, err = safecast.Conv[int](n)
	case uint64:
		out, err = safecast.Conv[int](n)
	case float32:
		out, err = safecast.Convert[int](n)
	case float64:
		out, err = safecast.Convert[int](n)
	case json.Number:
		i, perr := n.Int64()
		if perr != nil {
			return 0, false
		}
		out, err = safecast.Conv[int](i)
	default:
		return 0, false
	}
	return out, err == nil
}

// toStringOrEmpty accepts a string, or nil meaning the empty string
func toStringOrEmpty(v any) (string, bool) {
	if v == nil {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}

// toImagePath accepts nil, a path string or a map with a "path" entry
func toImagePath(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case map[string]any:
		p, ok := t["path"]
		if !ok {
			return "", false
		}
		return toStringOrEmpty(p)
	case map[string]string:
		p, ok := t["path"]
		return p, ok
	}
	return "", false
}

// toBoundsUpdate accepts a bounds value or a map of x, y, width and height.
// Absent or non-numeric entries keep their current value.
func toBoundsUpdate(v any) (BoundsUpdate, bool) {
	var u BoundsUpdate
	switch t := v.(type) {
	case valueobjects.Bounds:
		x, y, w, h := t.X(), t.Y(), t.Width(), t.Height()
		return BoundsUpdate{X: &x, Y: &y, Width: &w, Height: &h}, true
	case BoundsUpdate:
		return t, true
	case map[string]int:
		for key, val := range t {
			val := val
			u.assign(key, &val)
		}
		return u, true
	case map[string]any:
		for key, raw := range t {
			if val, ok := toInt(raw); ok {
				u.assign(key, &val)
			}
		}
		return u, true
	}
	return u, false
}

func (u *BoundsUpdate) assign(key string, val *int) {
	switch key {
	case "x":
		u.X = val
	case "y":
		u.Y = val
	case "width":
		u.Width = val
	case "height":
		u.Height = val
	}
}
