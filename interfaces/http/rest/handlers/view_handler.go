package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/proxy"
	"github.com/m-sergey/archi-scripting-plugin/application/workspace"
	"github.com/m-sergey/archi-scripting-plugin/pkg/common"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// ViewHandler places figures and connections on views
type ViewHandler struct {
	base
}

// NewViewHandler creates a new view handler
func NewViewHandler(ws *workspace.Workspace, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{base: newBase(ws, errs, logger)}
}

// AddObjectRequest adds one figure. Exactly one of ElementID, ViewRefID
// or Kind says what to draw. ParentID nests the figure in another one.
type AddObjectRequest struct {
	ElementID string `json:"elementId,omitempty" validate:"required_without_all=ViewRefID Kind"`
	ViewRefID string `json:"viewRefId,omitempty"`
	Kind      string `json:"kind,omitempty" validate:"omitempty,oneof=note group"`
	Name      string `json:"name,omitempty"`
	ParentID  string `json:"parentId,omitempty"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     *int   `json:"width,omitempty"`
	Height    *int   `json:"height,omitempty"`
}

// ConnectRequest draws a relationship between two figures
type ConnectRequest struct {
	SourceID       string `json:"sourceId" validate:"required"`
	TargetID       string `json:"targetId" validate:"required"`
	RelationshipID string `json:"relationshipId" validate:"required"`
}

// size falls back to -1, the "use the preference default" marker
func size(v *int) int {
	if v == nil {
		return -1
	}
	return *v
}

func (h *ViewHandler) view(r *http.Request) (*proxy.DiagramModelProxy, error) {
	return lookup[*proxy.DiagramModelProxy](h.ws, chi.URLParam(r, "id"), "view")
}

// AddObject handles POST /views/{id}/objects
func (h *ViewHandler) AddObject(w http.ResponseWriter, r *http.Request) {
	var req AddObjectRequest
	if !h.decode(w, r, &req) {
		return
	}
	width, height := size(req.Width), size(req.Height)

	var dto ObjectDTO
	if !h.run(w, r, func(ctx context.Context) error {
		view, err := h.view(r)
		if err != nil {
			return err
		}

		var parent *proxy.DiagramObjectProxy
		if req.ParentID != "" {
			if parent, err = lookup[*proxy.DiagramObjectProxy](h.ws, req.ParentID, "diagram object"); err != nil {
				return err
			}
			if !parent.View().Equal(view) {
				return pkgerrors.NewInvalidArgumentError("parent figure is on another view")
			}
		}

		var figure *proxy.DiagramObjectProxy
		switch {
		case req.ElementID != "":
			el, err := lookup[*proxy.ElementProxy](h.ws, req.ElementID, "element")
			if err != nil {
				return err
			}
			if parent != nil {
				figure, err = parent.AddElement(ctx, el, req.X, req.Y, width, height)
			} else {
				figure, err = view.Add(ctx, el, req.X, req.Y, width, height)
			}
			if err != nil {
				return err
			}
		case req.ViewRefID != "":
			if parent != nil {
				return pkgerrors.NewUnsupportedOperationError("nesting a view reference", "a figure")
			}
			ref, err := lookup[*proxy.DiagramModelProxy](h.ws, req.ViewRefID, "view")
			if err != nil {
				return err
			}
			if figure, err = view.CreateViewReference(ctx, ref, req.X, req.Y, width, height); err != nil {
				return err
			}
		default:
			if parent != nil {
				figure, err = parent.CreateObject(ctx, req.Kind, req.Name, req.X, req.Y, width, height)
			} else {
				figure, err = view.CreateObject(ctx, req.Kind, req.Name, req.X, req.Y, width, height)
			}
			if err != nil {
				return err
			}
		}
		dto = toObject(figure)
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusCreated, dto)
}

// Connect handles POST /views/{id}/connections
func (h *ViewHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if !h.decode(w, r, &req) {
		return
	}

	var dto ObjectDTO
	if !h.run(w, r, func(ctx context.Context) error {
		view, err := h.view(r)
		if err != nil {
			return err
		}
		source, err := h.ws.FindObject(req.SourceID)
		if err != nil {
			return err
		}
		target, err := h.ws.FindObject(req.TargetID)
		if err != nil {
			return err
		}
		rel, err := lookup[*proxy.RelationshipProxy](h.ws, req.RelationshipID, "relationship")
		if err != nil {
			return err
		}
		conn, err := view.Connect(ctx, source, target, rel)
		if err != nil {
			return err
		}
		dto = toObject(conn)
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusCreated, dto)
}

// References handles GET /views/{id}/references
func (h *ViewHandler) References(w http.ResponseWriter, r *http.Request) {
	var refs []ObjectRef
	if !h.run(w, r, func(context.Context) error {
		view, err := h.view(r)
		if err != nil {
			return err
		}
		refs = toRefs(view.References())
		return nil
	}) {
		return
	}
	respondRefs(w, r, refs)
}
