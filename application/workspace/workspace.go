// Package workspace holds the models a host has open and serializes script
// operations against them.
package workspace

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/application/proxy"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

// Workspace is the set of open models, addressed by the id of their root.
//
// The proxy layer is single-threaded. Callers that may run concurrently
// (HTTP handlers) wrap every read or write of model state in Do.
type Workspace struct {
	reg    *proxy.Registry
	stack  *bus.CommandStack
	logger *zap.Logger

	mu     sync.RWMutex
	models map[string]*entities.Model
	opened map[string]int

	script sync.Mutex
	seq    int
}

// New creates an empty workspace
func New(reg *proxy.Registry, stack *bus.CommandStack, logger *zap.Logger) *Workspace {
	return &Workspace{
		reg:    reg,
		stack:  stack,
		logger: logger,
		models: make(map[string]*entities.Model),
		opened: make(map[string]int),
	}
}

// Registry returns the registry proxies are resolved through
func (w *Workspace) Registry() *proxy.Registry { return w.reg }

// Create opens a new empty model with the default folders
func (w *Workspace) Create(name string) *proxy.ModelProxy {
	return w.Open(entities.NewModel(name))
}

// Open adds an existing model. Opening the same model twice is harmless.
func (w *Workspace) Open(m *entities.Model) *proxy.ModelProxy {
	id := m.Root().ID().String()

	w.mu.Lock()
	if _, ok := w.models[id]; !ok {
		w.seq++
		w.models[id] = m
		w.opened[id] = w.seq
		w.logger.Info("Model opened", zap.String("model_id", id), zap.String("name", m.Name()))
	}
	w.mu.Unlock()

	return w.reg.ResolveModel(m)
}

// Get returns the open model with the given id
func (w *Workspace) Get(id string) (*proxy.ModelProxy, error) {
	w.mu.RLock()
	m, ok := w.models[id]
	w.mu.RUnlock()

	if !ok {
		return nil, pkgerrors.NewNotFoundError("model " + id)
	}
	return w.reg.ResolveModel(m), nil
}

// List returns the open models in the order they were opened
func (w *Workspace) List() []*proxy.ModelProxy {
	w.mu.RLock()
	ids := make([]string, 0, len(w.models))
	for id := range w.models {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return w.opened[ids[i]] < w.opened[ids[j]] })

	out := make([]*proxy.ModelProxy, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.reg.ResolveModel(w.models[id]))
	}
	w.mu.RUnlock()
	return out
}

// Close forgets a model. The command history is cleared because its entries
// may reference nodes of the closed model.
func (w *Workspace) Close(id string) error {
	w.mu.Lock()
	_, ok := w.models[id]
	delete(w.models, id)
	delete(w.opened, id)
	w.mu.Unlock()

	if !ok {
		return pkgerrors.NewNotFoundError("model " + id)
	}
	w.stack.Clear()
	w.logger.Info("Model closed", zap.String("model_id", id))
	return nil
}

// FindObject looks up any addressable node of any open model by id
func (w *Workspace) FindObject(id string) (proxy.Proxy, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, m := range w.models {
		if n := m.FindByID(id); n != nil {
			if p := w.reg.Resolve(n); p != nil {
				return p, nil
			}
		}
	}
	return nil, pkgerrors.NewNotFoundError("object " + id)
}

// Do runs fn with exclusive access to model state
func (w *Workspace) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	w.script.Lock()
	defer w.script.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Batch runs fn as a single undoable step. If fn fails every change it
// made is rolled back.
func (w *Workspace) Batch(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	return w.Do(ctx, func(ctx context.Context) error {
		return w.stack.Group(ctx, label, fn)
	})
}

// Undo reverts the last change to any open model
func (w *Workspace) Undo(ctx context.Context) (string, error) {
	var label string
	err := w.Do(ctx, func(ctx context.Context) error {
		label = w.stack.UndoLabel()
		return w.stack.Undo(ctx)
	})
	return label, err
}

// Redo reapplies the last undone change
func (w *Workspace) Redo(ctx context.Context) (string, error) {
	var label string
	err := w.Do(ctx, func(ctx context.Context) error {
		label = w.stack.RedoLabel()
		return w.stack.Redo(ctx)
	})
	return label, err
}

// History describes the undo/redo state
type History struct {
	CanUndo   bool   `json:"canUndo"`
	CanRedo   bool   `json:"canRedo"`
	UndoLabel string `json:"undoLabel,omitempty"`
	RedoLabel string `json:"redoLabel,omitempty"`
	Size      int    `json:"size"`
}

// History reports the current undo/redo state
func (w *Workspace) History() History {
	return History{
		CanUndo:   w.stack.CanUndo(),
		CanRedo:   w.stack.CanRedo(),
		UndoLabel: w.stack.UndoLabel(),
		RedoLabel: w.stack.RedoLabel(),
		Size:      w.stack.Size(),
	}
}
