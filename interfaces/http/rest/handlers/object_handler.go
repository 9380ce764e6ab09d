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

// ObjectHandler exposes the generic proxy surface of any object by id
type ObjectHandler struct {
	base
}

// NewObjectHandler creates a new object handler
func NewObjectHandler(ws *workspace.Workspace, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *ObjectHandler {
	return &ObjectHandler{base: newBase(ws, errs, logger)}
}

// SetAttributeRequest carries any JSON value
type SetAttributeRequest struct {
	Value any `json:"value"`
}

// SetPropertyRequest represents the request body for setting a property
type SetPropertyRequest struct {
	Key             string `json:"key" validate:"required"`
	Value           string `json:"value"`
	AllowDuplicates bool   `json:"allowDuplicates,omitempty"`
}

// AttributeResponse is the value of one attribute
type AttributeResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func (h *ObjectHandler) object(r *http.Request) (proxy.Proxy, error) {
	return h.ws.FindObject(chi.URLParam(r, "id"))
}

// with runs fn on the addressed object under the workspace lock
func (h *ObjectHandler) with(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, p proxy.Proxy) error) bool {
	return h.run(w, r, func(ctx context.Context) error {
		p, err := h.object(r)
		if err != nil {
			return err
		}
		return fn(ctx, p)
	})
}

// GetObject handles GET /objects/{id}
func (h *ObjectHandler) GetObject(w http.ResponseWriter, r *http.Request) {
	var dto ObjectDTO
	if !h.with(w, r, func(_ context.Context, p proxy.Proxy) error {
		dto = toObject(p)
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusOK, dto)
}

// GetAttribute handles GET /objects/{id}/attributes/{key}
func (h *ObjectHandler) GetAttribute(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var value any
	if !h.with(w, r, func(_ context.Context, p proxy.Proxy) error {
		value = attributeValue(p.GetAttribute(key))
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusOK, AttributeResponse{Key: key, Value: value})
}

// SetAttribute handles PUT /objects/{id}/attributes/{key}. Values of the
// wrong shape for the key are ignored, so the response always carries the
// value read back after the write.
func (h *ObjectHandler) SetAttribute(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var req SetAttributeRequest
	if !h.decode(w, r, &req) {
		return
	}

	var value any
	if !h.with(w, r, func(ctx context.Context, p proxy.Proxy) error {
		if _, err := p.SetAttribute(ctx, key, req.Value); err != nil {
			return err
		}
		value = attributeValue(p.GetAttribute(key))
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusOK, AttributeResponse{Key: key, Value: value})
}

// GetProperties handles GET /objects/{id}/properties
func (h *ObjectHandler) GetProperties(w http.ResponseWriter, r *http.Request) {
	var props []PropertyDTO
	if !h.with(w, r, func(_ context.Context, p proxy.Proxy) error {
		props = toProperties(p)
		return nil
	}) {
		return
	}
	if props == nil {
		props = []PropertyDTO{}
	}
	common.RespondList(w, r, props, len(props))
}

// SetProperty handles PUT /objects/{id}/properties
func (h *ObjectHandler) SetProperty(w http.ResponseWriter, r *http.Request) {
	var req SetPropertyRequest
	if !h.decode(w, r, &req) {
		return
	}

	var props []PropertyDTO
	if !h.with(w, r, func(ctx context.Context, p proxy.Proxy) error {
		if _, err := p.SetProperty(ctx, req.Key, req.Value, req.AllowDuplicates); err != nil {
			return err
		}
		props = toProperties(p)
		return nil
	}) {
		return
	}
	common.RespondList(w, r, props, len(props))
}

// RemoveProperty handles DELETE /objects/{id}/properties/{key}. With a
// value query parameter only matching entries go.
func (h *ObjectHandler) RemoveProperty(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	query := r.URL.Query()

	if !h.with(w, r, func(ctx context.Context, p proxy.Proxy) error {
		var err error
		if query.Has("value") {
			_, err = p.RemovePropertyValue(ctx, key, query.Get("value"))
		} else {
			_, err = p.RemoveProperty(ctx, key)
		}
		return err
	}) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Children handles GET /objects/{id}/children
func (h *ObjectHandler) Children(w http.ResponseWriter, r *http.Request) {
	h.traverse(w, r, func(p proxy.Proxy) *proxy.Collection { return p.Children() })
}

// Parent handles GET /objects/{id}/parent. A model has no parent.
func (h *ObjectHandler) Parent(w http.ResponseWriter, r *http.Request) {
	var parent *ObjectRef
	if !h.with(w, r, func(_ context.Context, p proxy.Proxy) error {
		parent = toRef(p.Parent())
		return nil
	}) {
		return
	}
	common.RespondJSON(w, http.StatusOK, parent)
}

// Ancestors handles GET /objects/{id}/ancestors
func (h *ObjectHandler) Ancestors(w http.ResponseWriter, r *http.Request) {
	h.traverse(w, r, func(p proxy.Proxy) *proxy.Collection { return p.Ancestors() })
}

// Find handles GET /objects/{id}/find?selector=
func (h *ObjectHandler) Find(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("selector")
	h.traverse(w, r, func(p proxy.Proxy) *proxy.Collection { return p.Find(selector) })
}

func (h *ObjectHandler) traverse(w http.ResponseWriter, r *http.Request, step func(proxy.Proxy) *proxy.Collection) {
	var refs []ObjectRef
	if !h.with(w, r, func(_ context.Context, p proxy.Proxy) error {
		refs = toRefs(step(p))
		return nil
	}) {
		return
	}
	respondRefs(w, r, refs)
}

// DeleteObject handles DELETE /objects/{id}. The cascade is undone as
// one step.
func (h *ObjectHandler) DeleteObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.ws.Batch(r.Context(), "Delete "+id, func(ctx context.Context) error {
		p, err := h.ws.FindObject(id)
		if err != nil {
			return err
		}
		h.logger.Debug("Deleting object", zap.String("id", id), zap.String("type", p.Type()))
		return p.Delete(ctx)
	})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
