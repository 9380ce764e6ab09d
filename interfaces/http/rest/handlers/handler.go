package handlers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/proxy"
	"github.com/m-sergey/archi-scripting-plugin/application/workspace"
	"github.com/m-sergey/archi-scripting-plugin/pkg/common"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
	"github.com/m-sergey/archi-scripting-plugin/pkg/utils"
)

const maxBodyBytes = 1 << 20

// base carries what every handler needs
type base struct {
	ws     *workspace.Workspace
	errs   *pkgerrors.ErrorHandler
	logger *zap.Logger
}

func newBase(ws *workspace.Workspace, errs *pkgerrors.ErrorHandler, logger *zap.Logger) base {
	return base{ws: ws, errs: errs, logger: logger}
}

// run executes fn under the workspace lock and renders its error, if any
func (b base) run(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context) error) bool {
	if err := b.ws.Do(r.Context(), fn); err != nil {
		b.errs.Handle(w, r, err)
		return false
	}
	return true
}

// decode parses and validates a JSON body
func (b base) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := common.ParseJSONBody(w, r, v, maxBodyBytes); err != nil {
		b.errs.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return false
	}
	if err := utils.ValidateStruct(v); err != nil {
		b.errs.Handle(w, r, err)
		return false
	}
	return true
}

// lookup finds an object by id and checks it is a T
func lookup[T proxy.Proxy](ws *workspace.Workspace, id, want string) (T, error) {
	var zero T
	p, err := ws.FindObject(id)
	if err != nil {
		return zero, err
	}
	t, ok := p.(T)
	if !ok {
		return zero, pkgerrors.NewTypeMismatchError(fmt.Sprintf("%s is a %s, not a %s", id, p.Type(), want))
	}
	return t, nil
}

// optionalFolder resolves an optional folder id
func optionalFolder(ws *workspace.Workspace, id string) (*proxy.FolderProxy, error) {
	if id == "" {
		return nil, nil
	}
	return lookup[*proxy.FolderProxy](ws, id, "folder")
}

func respondRefs(w http.ResponseWriter, r *http.Request, refs []ObjectRef) {
	if refs == nil {
		refs = []ObjectRef{}
	}
	common.RespondList(w, r, refs, len(refs))
}
