package proxy

import (
	"context"

	"github.com/m-sergey/archi-scripting-plugin/application/commands"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// FolderProxy wraps a folder of the model tree
type FolderProxy struct {
	*object
}

// Children are sub-folders, concepts and views
func (f *FolderProxy) Children() *Collection {
	return f.reg.resolveAll(f.n.Children())
}

// IsTopLevel reports whether this is one of the model's default folders
func (f *FolderProxy) IsTopLevel() bool {
	return f.n.FolderType() != entities.FolderUser
}

// CreateFolder adds a user sub-folder
func (f *FolderProxy) CreateFolder(ctx context.Context, name string) (*FolderProxy, error) {
	if f.n.Model() == nil {
		return nil, pkgerrors.NewNotFoundError("model of " + f.ID())
	}
	n := entities.NewFolder(name)
	if err := f.exec(ctx, commands.NewAttachCommand(f.n, n, -1)); err != nil {
		return nil, err
	}
	p, _ := f.reg.Resolve(n).(*FolderProxy)
	return p, nil
}

// Delete removes a user folder with everything in it. Top-level folders
// are left alone.
func (f *FolderProxy) Delete(ctx context.Context) error {
	if f.IsTopLevel() {
		return nil
	}
	if err := deleteAll(ctx, f.Children()); err != nil {
		return err
	}
	return f.detach(ctx)
}
