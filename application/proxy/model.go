package proxy

import (
	"context"
	"fmt"

	"github.com/m-sergey/archi-scripting-plugin/application/commands"
	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// ModelProxy wraps the root of a model. Models cannot be deleted.
type ModelProxy struct {
	*object
	model *entities.Model
}

// Children are the top-level folders
func (m *ModelProxy) Children() *Collection {
	return m.reg.resolveAll(m.n.Children())
}

// Parent of a model is always nil
func (m *ModelProxy) Parent() Proxy { return nil }

// Ancestors of a model are always nil
func (m *ModelProxy) Ancestors() *Collection { return nil }

// CreateElement adds a new element of the kebab-case type to its default
// folder, or to folder when one is given.
func (m *ModelProxy) CreateElement(ctx context.Context, kebabType, name string, folder *FolderProxy) (*ElementProxy, error) {
	class, ok := entities.ClassFromKebab(kebabType)
	if !ok || !entities.IsElementClass(class) {
		return nil, pkgerrors.NewInvalidArgumentError(fmt.Sprintf("unknown element type %q", kebabType))
	}
	n, err := entities.NewElement(class, name)
	if err != nil {
		return nil, err
	}
	parent, err := m.targetFolder(class, folder)
	if err != nil {
		return nil, err
	}
	if err := m.exec(ctx, commands.NewAttachCommand(parent, n, -1)); err != nil {
		return nil, err
	}
	p, _ := m.reg.Resolve(n).(*ElementProxy)
	return p, nil
}

// CreateRelationship connects two concepts of this model
func (m *ModelProxy) CreateRelationship(ctx context.Context, kebabType, name string, source, target Proxy) (*RelationshipProxy, error) {
	class, ok := entities.ClassFromKebab(kebabType)
	if !ok || !entities.IsRelationshipClass(class) {
		return nil, pkgerrors.NewInvalidArgumentError(fmt.Sprintf("unknown relationship type %q", kebabType))
	}
	if !present(source) || !present(target) {
		return nil, pkgerrors.NewInvalidArgumentError("relationship source and target are required")
	}
	if source.node().Model() != m.model || target.node().Model() != m.model {
		return nil, pkgerrors.NewInvalidArgumentError("relationship ends must belong to this model")
	}
	n, err := entities.NewRelationship(class, source.node(), target.node(), name)
	if err != nil {
		return nil, err
	}
	if err := m.exec(ctx, commands.NewAttachCommand(m.model.FolderFor(class), n, -1)); err != nil {
		return nil, err
	}
	p, _ := m.reg.Resolve(n).(*RelationshipProxy)
	return p, nil
}

// CreateView adds an empty diagram to the views folder, or to folder
func (m *ModelProxy) CreateView(ctx context.Context, name string, folder *FolderProxy) (*DiagramModelProxy, error) {
	n := entities.NewDiagramModel(name)
	parent, err := m.targetFolder(entities.ClassDiagramModel, folder)
	if err != nil {
		return nil, err
	}
	if err := m.exec(ctx, commands.NewAttachCommand(parent, n, -1)); err != nil {
		return nil, err
	}
	p, _ := m.reg.Resolve(n).(*DiagramModelProxy)
	return p, nil
}

func (m *ModelProxy) targetFolder(class string, folder *FolderProxy) (*entities.Node, error) {
	if folder == nil {
		return m.model.FolderFor(class), nil
	}
	if folder.n.Model() != m.model {
		return nil, pkgerrors.NewInvalidArgumentError("folder must belong to this model")
	}
	return folder.n, nil
}

// CreateSpecialization declares a specialization for a concept type.
// imagePath, when set, must already be in the archive.
func (m *ModelProxy) CreateSpecialization(ctx context.Context, name, kebabType, imagePath string) error {
	class, ok := entities.ClassFromKebab(kebabType)
	if !ok || !(entities.IsElementClass(class) || entities.IsRelationshipClass(class)) {
		return pkgerrors.NewInvalidArgumentError(fmt.Sprintf("unknown concept type %q", kebabType))
	}
	if m.model.FindProfile(name, class) != nil {
		return pkgerrors.NewConflictError(fmt.Sprintf("specialization %q already exists for %s", name, kebabType))
	}
	if imagePath != "" && !m.model.HasImage(imagePath) {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("image %q", imagePath))
	}
	profile, err := entities.NewProfile(name, class, imagePath)
	if err != nil {
		return err
	}
	return m.exec(ctx, commands.NewAttachCommand(m.n, profile, -1))
}

// Specializations lists declared specialization names with their
// kebab-case concept type, in declaration order.
func (m *ModelProxy) Specializations() []Specialization {
	var out []Specialization
	for _, p := range m.model.Profiles() {
		out = append(out, Specialization{
			Name:      p.Name(),
			Type:      entities.KebabCase(p.StringAttr(entities.AttrConceptType)),
			ImagePath: p.StringAttr(entities.AttrImagePath),
		})
	}
	return out
}

// Specialization describes one declared specialization
type Specialization struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	ImagePath string `json:"imagePath,omitempty"`
}

// DeleteSpecialization removes a declaration and clears it from every
// concept using it, as one unit of work.
func (m *ModelProxy) DeleteSpecialization(ctx context.Context, name, kebabType string) error {
	class, _ := entities.ClassFromKebab(kebabType)
	profile := m.model.FindProfile(name, class)
	if profile == nil {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("specialization %q", name))
	}
	id := profile.ID().String()
	cmd := bus.NewCompoundCommand("Delete specialization")
	m.n.Walk(func(n *entities.Node) bool {
		if n.Kind().IsConcept() && n.StringAttr(entities.AttrProfile) == id {
			cmd.Add(commands.NewSetAttributeCommand(n, entities.AttrProfile, nil))
		}
		return true
	})
	cmd.Add(commands.NewDetachCommand(profile))
	return m.exec(ctx, cmd)
}

// AddImage stores image bytes in the archive under path
func (m *ModelProxy) AddImage(ctx context.Context, path string, data []byte) error {
	return m.exec(ctx, commands.NewAddImageCommand(m.model, path, data))
}

// HasImage reports whether the archive holds path
func (m *ModelProxy) HasImage(path string) bool {
	return m.model.HasImage(path)
}
