package proxy

import (
	"context"
	"fmt"

	"github.com/m-sergey/archi-scripting-plugin/application/commands"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/valueobjects"
	"github.com/m-sergey/archi-scripting-plugin/domain/ui"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// DiagramObjectProxy wraps a figure on a view: an element figure, a note,
// a group or a view reference.
type DiagramObjectProxy struct {
	*object
}

// BoundsUpdate carries the bounds fields to change. Nil fields keep their
// current value; a width or height of -1 means the default figure size.
type BoundsUpdate struct {
	X      *int
	Y      *int
	Width  *int
	Height *int
}

type feature int

const (
	featureGradient feature = iota
	featureFigure
	featureTextPosition
	featureIcon
	featureImageSource
	featureImagePath
)

// isArchimate reports whether the figure shows an element
func (d *DiagramObjectProxy) isArchimate() bool {
	return d.n.Class() == entities.ClassDiagramArchimateObject && d.n.Concept() != nil
}

// capabilityClass is the class the capability table is keyed by
func (d *DiagramObjectProxy) capabilityClass() string {
	if d.isArchimate() {
		return d.n.Concept().Class()
	}
	return d.n.Class()
}

func (d *DiagramObjectProxy) supports(f feature) bool {
	caps, class := d.reg.caps, d.capabilityClass()
	switch f {
	case featureGradient:
		return caps.ShouldExposeFeature(class, ui.FeatureGradient)
	case featureFigure:
		return d.isArchimate() && caps.HasAlternateFigure(class)
	case featureTextPosition:
		return caps.ShouldExposeFeature(class, ui.FeatureTextPosition)
	case featureIcon:
		return caps.HasIcon(class)
	case featureImageSource:
		return d.isArchimate() && caps.ShouldExposeFeature(class, ui.FeatureImageSource)
	case featureImagePath:
		return caps.ShouldExposeFeature(class, ui.FeatureImagePath)
	}
	return false
}

func (d *DiagramObjectProxy) set(ctx context.Context, attr entities.Attribute, value any) (Proxy, error) {
	return d.self, d.exec(ctx, commands.NewSetAttributeCommand(d.n, attr, value))
}

// Bounds returns x, y, width and height
func (d *DiagramObjectProxy) Bounds() map[string]int {
	return d.n.Bounds().ToMap()
}

func (d *DiagramObjectProxy) SetBounds(ctx context.Context, u BoundsUpdate) (Proxy, error) {
	cur := d.n.Bounds()
	x, y, w, h := cur.X(), cur.Y(), cur.Width(), cur.Height()
	if u.X != nil {
		x = *u.X
	}
	if u.Y != nil {
		y = *u.Y
	}
	if u.Width != nil {
		w = *u.Width
	}
	if u.Height != nil {
		h = *u.Height
	}
	return d.set(ctx, entities.AttrBounds, d.reg.bounds(x, y, w, h))
}

// FillColor is "#rrggbb", or "" for the default color
func (d *DiagramObjectProxy) FillColor() string {
	return d.n.StringAttr(entities.AttrFillColor)
}

// SetFillColor sets a "#rrggbb" color; "" restores the default
func (d *DiagramObjectProxy) SetFillColor(ctx context.Context, color string) (Proxy, error) {
	if color == "" {
		return d.set(ctx, entities.AttrFillColor, nil)
	}
	if err := d.reg.colors.ValidateColor(color); err != nil {
		return d.self, err
	}
	return d.set(ctx, entities.AttrFillColor, color)
}

// Opacity is the fill alpha, 0..255
func (d *DiagramObjectProxy) Opacity() int {
	return d.n.IntAttr(entities.AttrAlpha)
}

// SetOpacity clamps to 0..255
func (d *DiagramObjectProxy) SetOpacity(ctx context.Context, value int) (Proxy, error) {
	return d.set(ctx, entities.AttrAlpha, clamp(value, entities.AlphaMin, entities.AlphaMax))
}

// OutlineOpacity is the line alpha, 0..255
func (d *DiagramObjectProxy) OutlineOpacity() int {
	return d.n.IntAttr(entities.AttrLineAlpha)
}

// SetOutlineOpacity clamps to 0..255
func (d *DiagramObjectProxy) SetOutlineOpacity(ctx context.Context, value int) (Proxy, error) {
	return d.set(ctx, entities.AttrLineAlpha, clamp(value, entities.AlphaMin, entities.AlphaMax))
}

// Gradient is -1 for none, otherwise the gradient direction
func (d *DiagramObjectProxy) Gradient() int {
	return d.n.IntAttr(entities.AttrGradient)
}

// SetGradient accepts -1..3; anything else becomes -1
func (d *DiagramObjectProxy) SetGradient(ctx context.Context, value int) (Proxy, error) {
	value = within(value, entities.GradientNone, entities.GradientBottom, entities.GradientNone)
	if !d.supports(featureGradient) {
		return d.self, nil
	}
	return d.set(ctx, entities.AttrGradient, value)
}

// FigureType is 0 unless the figure shows an element
func (d *DiagramObjectProxy) FigureType() int {
	if !d.isArchimate() {
		return 0
	}
	return d.n.IntAttr(entities.AttrFigureType)
}

// SetFigureType clamps to 0..1. Only element figures with an alternate
// figure are changed.
func (d *DiagramObjectProxy) SetFigureType(ctx context.Context, value int) (Proxy, error) {
	if !d.supports(featureFigure) {
		return d.self, nil
	}
	return d.set(ctx, entities.AttrFigureType, clamp(value, 0, 1))
}

// TextAlignment is left (1), center (2) or right (4)
func (d *DiagramObjectProxy) TextAlignment() int {
	return d.n.IntAttr(entities.AttrTextAlignment)
}

// SetTextAlignment accepts left (1), center (2) or right (4)
func (d *DiagramObjectProxy) SetTextAlignment(ctx context.Context, value int) (Proxy, error) {
	switch value {
	case entities.TextAlignmentLeft, entities.TextAlignmentCenter, entities.TextAlignmentRight:
		return d.set(ctx, entities.AttrTextAlignment, value)
	}
	return d.self, pkgerrors.NewInvalidArgumentError(fmt.Sprintf("invalid text alignment %d", value))
}

// TextPosition is top (0), centre (1) or bottom (2)
func (d *DiagramObjectProxy) TextPosition() int {
	return d.n.IntAttr(entities.AttrTextPosition)
}

// SetTextPosition accepts top (0), centre (1) or bottom (2); anything else
// becomes top.
func (d *DiagramObjectProxy) SetTextPosition(ctx context.Context, value int) (Proxy, error) {
	if !d.supports(featureTextPosition) {
		return d.self, nil
	}
	value = within(value, entities.TextPositionTop, entities.TextPositionBottom, entities.TextPositionTop)
	return d.set(ctx, entities.AttrTextPosition, value)
}

// ShowIcon says when the figure draws its icon
func (d *DiagramObjectProxy) ShowIcon() int {
	return d.n.IntAttr(entities.AttrIconVisible)
}

// SetShowIcon only applies to figures drawing an icon
func (d *DiagramObjectProxy) SetShowIcon(ctx context.Context, value int) (Proxy, error) {
	if !d.supports(featureIcon) {
		return d.self, nil
	}
	value = within(value, entities.IconVisibleIfNoImage, entities.IconVisibleNever, entities.IconVisibleIfNoImage)
	return d.set(ctx, entities.AttrIconVisible, value)
}

// ImageSource is -1 when the figure has no image source
func (d *DiagramObjectProxy) ImageSource() int {
	if !d.supports(featureImageSource) {
		return -1
	}
	return d.n.IntAttr(entities.AttrImageSource)
}

func (d *DiagramObjectProxy) SetImageSource(ctx context.Context, value int) (Proxy, error) {
	if !d.supports(featureImageSource) {
		return d.self, nil
	}
	value = within(value, entities.ImageSourceProfile, entities.ImageSourceCustom, entities.ImageSourceProfile)
	return d.set(ctx, entities.AttrImageSource, value)
}

// ImagePosition is -1 when the figure cannot show an image
func (d *DiagramObjectProxy) ImagePosition() int {
	if !d.supports(featureImagePath) {
		return -1
	}
	return d.n.IntAttr(entities.AttrImagePosition)
}

func (d *DiagramObjectProxy) SetImagePosition(ctx context.Context, value int) (Proxy, error) {
	if !d.supports(featureImagePath) {
		return d.self, nil
	}
	value = within(value, entities.ImagePositionTopLeft, entities.ImagePositionFill, entities.ImagePositionTopLeft)
	return d.set(ctx, entities.AttrImagePosition, value)
}

// ImagePath is the archive path of the figure image, or ""
func (d *DiagramObjectProxy) ImagePath() string {
	return d.n.StringAttr(entities.AttrImagePath)
}

// SetImage points the figure at an archive image; "" removes it
func (d *DiagramObjectProxy) SetImage(ctx context.Context, path string) (Proxy, error) {
	if !d.supports(featureImagePath) {
		return d.self, nil
	}
	if path == "" {
		return d.set(ctx, entities.AttrImagePath, nil)
	}
	if m := d.n.Model(); m == nil || !m.HasImage(path) {
		return d.self, pkgerrors.NewNotFoundError(fmt.Sprintf("image %q", path))
	}
	return d.set(ctx, entities.AttrImagePath, path)
}

// Concept is the element or view the figure shows, or nil
func (d *DiagramObjectProxy) Concept() Proxy {
	return d.reg.Resolve(d.n.Concept())
}

// View is the diagram holding the figure
func (d *DiagramObjectProxy) View() *DiagramModelProxy {
	p, _ := d.reg.Resolve(d.n.Diagram()).(*DiagramModelProxy)
	return p
}

// Children are the nested figures
func (d *DiagramObjectProxy) Children() *Collection {
	if !d.n.IsContainer() {
		return NewCollection()
	}
	return d.reg.resolveKind(d.n.Children(), entities.KindDiagramObject)
}

// Find keeps only nested figures that show an element. Connections,
// notes, groups and view references are dropped.
func (d *DiagramObjectProxy) Find(selector string) *Collection {
	return d.descendants().FilterFunc(func(p Proxy) bool {
		fig, ok := p.(*DiagramObjectProxy)
		return ok && fig.isArchimate()
	}).Filter(selector)
}

// InConnections are the connections ending at this figure
func (d *DiagramObjectProxy) InConnections() *Collection {
	return d.reg.resolveAll(entities.Connections(d.n, false))
}

// OutConnections are the connections starting at this figure
func (d *DiagramObjectProxy) OutConnections() *Collection {
	return d.reg.resolveAll(entities.Connections(d.n, true))
}

// Delete removes incoming connections, then outgoing connections, then
// nested figures, then the figure itself if it is still on a view.
func (d *DiagramObjectProxy) Delete(ctx context.Context) error {
	if err := deleteAll(ctx, d.InConnections()); err != nil {
		return err
	}
	if err := deleteAll(ctx, d.OutConnections()); err != nil {
		return err
	}
	if err := deleteAll(ctx, d.Children()); err != nil {
		return err
	}
	return d.detach(ctx)
}

// AddElement nests a figure for element inside this one
func (d *DiagramObjectProxy) AddElement(ctx context.Context, element *ElementProxy, x, y, width, height int) (*DiagramObjectProxy, error) {
	return addElement(ctx, d.object, element, x, y, width, height)
}

// CreateObject nests a note or group inside this one
func (d *DiagramObjectProxy) CreateObject(ctx context.Context, kind, name string, x, y, width, height int) (*DiagramObjectProxy, error) {
	return createShape(ctx, d.object, kind, name, x, y, width, height)
}

func addElement(ctx context.Context, container *object, element *ElementProxy, x, y, width, height int) (*DiagramObjectProxy, error) {
	if element == nil {
		return nil, pkgerrors.NewInvalidArgumentError("element is required")
	}
	if m := container.n.Model(); m == nil || element.n.Model() != m {
		return nil, pkgerrors.NewInvalidArgumentError("element must belong to the view's model")
	}
	n, err := entities.NewDiagramObject(element.n, container.reg.bounds(x, y, width, height))
	if err != nil {
		return nil, err
	}
	return attachFigure(ctx, container, n)
}

// createShape accepts "note", "group" or their full kebab-case class names
func createShape(ctx context.Context, container *object, kind, name string, x, y, width, height int) (*DiagramObjectProxy, error) {
	class := shapeClass(kind)
	n, err := entities.NewDiagramShape(class, name, container.reg.bounds(x, y, width, height))
	if err != nil {
		return nil, err
	}
	return attachFigure(ctx, container, n)
}

func shapeClass(kind string) string {
	switch kind {
	case "note":
		return entities.ClassDiagramNote
	case "group":
		return entities.ClassDiagramGroup
	}
	class, _ := entities.ClassFromKebab(kind)
	return class
}

func addReference(ctx context.Context, container *object, view *DiagramModelProxy, x, y, width, height int) (*DiagramObjectProxy, error) {
	if view == nil {
		return nil, pkgerrors.NewInvalidArgumentError("view is required")
	}
	if m := container.n.Model(); m == nil || view.n.Model() != m {
		return nil, pkgerrors.NewInvalidArgumentError("view must belong to the same model")
	}
	n, err := entities.NewDiagramReference(view.n, container.reg.bounds(x, y, width, height))
	if err != nil {
		return nil, err
	}
	return attachFigure(ctx, container, n)
}

func attachFigure(ctx context.Context, container *object, n *entities.Node) (*DiagramObjectProxy, error) {
	if !container.n.IsContainer() {
		return nil, pkgerrors.NewUnsupportedOperationError("add child", container.self.String())
	}
	if err := container.exec(ctx, commands.NewAttachCommand(container.n, n, -1)); err != nil {
		return nil, err
	}
	p, _ := container.reg.Resolve(n).(*DiagramObjectProxy)
	return p, nil
}

// bounds substitutes the default figure size for -1 width or height
func (r *Registry) bounds(x, y, width, height int) valueobjects.Bounds {
	dw, dh := r.prefs.DefaultFigureSize()
	if width == -1 {
		width = dw
	}
	if height == -1 {
		height = dh
	}
	return valueobjects.NewBounds(x, y, width, height)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// within returns v when lo <= v <= hi, otherwise fallback
func within(v, lo, hi, fallback int) int {
	if v < lo || v > hi {
		return fallback
	}
	return v
}
