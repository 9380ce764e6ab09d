package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/application/workspace"
	"github.com/m-sergey/archi-scripting-plugin/pkg/common"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// HistoryHandler exposes undo and redo of the shared command stack
type HistoryHandler struct {
	base
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(ws *workspace.Workspace, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{base: newBase(ws, errs, logger)}
}

// History handles GET /history
func (h *HistoryHandler) History(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, HistoryDTO{History: h.ws.History()})
}

// Undo handles POST /undo
func (h *HistoryHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.ws.Undo)
}

// Redo handles POST /redo
func (h *HistoryHandler) Redo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.ws.Redo)
}

func (h *HistoryHandler) step(w http.ResponseWriter, r *http.Request, fn func(context.Context) (string, error)) {
	label, err := fn(r.Context())
	if errors.Is(err, bus.ErrNothingToUndo) || errors.Is(err, bus.ErrNothingToRedo) {
		err = pkgerrors.NewConflictError(err.Error())
	}
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, HistoryDTO{Label: label, History: h.ws.History()})
}
