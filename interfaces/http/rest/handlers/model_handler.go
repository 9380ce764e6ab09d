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

// ModelHandler handles model-level requests: opening models and creating
// concepts, views and specializations in them.
type ModelHandler struct {
	base
	onChange func(open int)
}

// NewModelHandler creates a new model handler. onChange, if set, receives
// the number of open models after each create or close.
func NewModelHandler(ws *workspace.Workspace, errs *pkgerrors.ErrorHandler, logger *zap.Logger, onChange func(open int)) *ModelHandler {
	return &ModelHandler{base: newBase(ws, errs, logger), onChange: onChange}
}

// CreateModelRequest represents the request body for creating a model
type CreateModelRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CreateElementRequest represents the request body for creating an element
type CreateElementRequest struct {
	Type     string `json:"type" validate:"required"`
	Name     string `json:"name" validate:"max=1000"`
	FolderID string `json:"folderId,omitempty"`
}

// CreateRelationshipRequest represents the request body for creating a relationship
type CreateRelationshipRequest struct {
	Type     string `json:"type" validate:"required"`
	Name     string `json:"name" validate:"max=1000"`
	SourceID string `json:"sourceId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
}

// CreateViewRequest represents the request body for creating a view
type CreateViewRequest struct {
	Name     string `json:"name" validate:"max=1000"`
	FolderID string `json:"folderId,omitempty"`
}

// CreateSpecializationRequest represents the request body for declaring a specialization
type CreateSpecializationRequest struct {
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type" validate:"required"`
	ImagePath string `json:"imagePath,omitempty"`
}

func (h *ModelHandler) model(r *http.Request) (*proxy.ModelProxy, error) {
	return h.ws.Get(chi.URLParam(r, "modelID"))
}

func (h *ModelHandler) notify() {
	if h.onChange != nil {
		h.onChange(len(h.ws.List()))
	}
}

// CreateModel handles POST /models
func (h *ModelHandler) CreateModel(w http.ResponseWriter, r *http.Request) {
	var req CreateModelRequest
	if !h.decode(w, r, &req) {
		return
	}

	var dto ModelDTO
	if !h.run(w, r, func(context.Context) error {
		dto = toModel(h.ws.Create(req.Name))
		return nil
	}) {
		return
	}
	h.notify()
	common.RespondJSON(w, http.StatusCreated, dto)
}

// ListModels handles GET /models
func (h *ModelHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	var out []ObjectRef
	if !h.run(w, r, func(context.Context) error {
		for _, m := range h.ws.List() {
			out = append(out, *toRef(m))
		}
		return nil
	}) {
		return
	}
	respondRefs(w, r, out)
}

// GetModel handles GET /models/{modelID}
func (h *ModelHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	var dto ModelDTO
	if !h.run(w, r, func(context.Context) error {
		m, err := h.model(r)
		if err != nil {
			return err
		}
		dto = toModel(m)
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusOK, dto)
}

// CloseModel handles DELETE /models/{modelID}
func (h *ModelHandler) CloseModel(w http.ResponseWriter, r *http.Request) {
	if !h.run(w, r, func(context.Context) error {
		return h.ws.Close(chi.URLParam(r, "modelID"))
	}) {
		return
	}
	h.notify()
	w.WriteHeader(http.StatusNoContent)
}

// CreateElement handles POST /models/{modelID}/elements
func (h *ModelHandler) CreateElement(w http.ResponseWriter, r *http.Request) {
	var req CreateElementRequest
	if !h.decode(w, r, &req) {
		return
	}

	var dto ObjectDTO
	if !h.run(w, r, func(ctx context.Context) error {
		m, err := h.model(r)
		if err != nil {
			return err
		}
		folder, err := optionalFolder(h.ws, req.FolderID)
		if err != nil {
			return err
		}
		el, err := m.CreateElement(ctx, req.Type, req.Name, folder)
		if err != nil {
			return err
		}
		dto = toObject(el)
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusCreated, dto)
}

// CreateRelationship handles POST /models/{modelID}/relationships
func (h *ModelHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req CreateRelationshipRequest
	if !h.decode(w, r, &req) {
		return
	}

	var dto ObjectDTO
	if !h.run(w, r, func(ctx context.Context) error {
		m, err := h.model(r)
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
		rel, err := m.CreateRelationship(ctx, req.Type, req.Name, source, target)
		if err != nil {
			return err
		}
		dto = toObject(rel)
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusCreated, dto)
}

// CreateView handles POST /models/{modelID}/views
func (h *ModelHandler) CreateView(w http.ResponseWriter, r *http.Request) {
	var req CreateViewRequest
	if !h.decode(w, r, &req) {
		return
	}

	var dto ObjectDTO
	if !h.run(w, r, func(ctx context.Context) error {
		m, err := h.model(r)
		if err != nil {
			return err
		}
		folder, err := optionalFolder(h.ws, req.FolderID)
		if err != nil {
			return err
		}
		view, err := m.CreateView(ctx, req.Name, folder)
		if err != nil {
			return err
		}
		dto = toObject(view)
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusCreated, dto)
}

// ListSpecializations handles GET /models/{modelID}/specializations
func (h *ModelHandler) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	var specs []proxy.Specialization
	if !h.run(w, r, func(context.Context) error {
		m, err := h.model(r)
		if err != nil {
			return err
		}
		specs = m.Specializations()
		return nil
	}) {
		return
	}
	if specs == nil {
		specs = []proxy.Specialization{}
	}
	common.RespondList(w, r, specs, len(specs))
}

// CreateSpecialization handles POST /models/{modelID}/specializations
func (h *ModelHandler) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req CreateSpecializationRequest
	if !h.decode(w, r, &req) {
		return
	}

	if !h.run(w, r, func(ctx context.Context) error {
		m, err := h.model(r)
		if err != nil {
			return err
		}
		return m.CreateSpecialization(ctx, req.Name, req.Type, req.ImagePath)
	}) {
		return
	}
	common.RespondJSON(w, http.StatusCreated, proxy.Specialization{
		Name:      req.Name,
		Type:      req.Type,
		ImagePath: req.ImagePath,
	})
}

// DeleteSpecialization handles DELETE /models/{modelID}/specializations?name=&type=
func (h *ModelHandler) DeleteSpecialization(w http.ResponseWriter, r *http.Request) {
	name, typ := r.URL.Query().Get("name"), r.URL.Query().Get("type")
	if name == "" || typ == "" {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("name and type are required"))
		return
	}

	if !h.run(w, r, func(ctx context.Context) error {
		m, err := h.model(r)
		if err != nil {
			return err
		}
		return m.DeleteSpecialization(ctx, name, typ)
	}) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Find handles GET /models/{modelID}/find?selector=
func (h *ModelHandler) Find(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("selector")

	var found []ObjectRef
	if !h.run(w, r, func(context.Context) error {
		m, err := h.model(r)
		if err != nil {
			return err
		}
		found = toRefs(m.Find(selector))
		return nil
	}) {
		return
	}
	respondRefs(w, r, found)
}
