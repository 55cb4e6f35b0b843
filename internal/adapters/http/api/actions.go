// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ActionsDependencies defines the interface for action list reads.
type ActionsDependencies interface {
	Actions(ctx context.Context) (ActionList, error)
}

// ActionsHandler handles action list requests.
type ActionsHandler struct {
	deps ActionsDependencies
}

// NewActionsHandler creates a new actions handler.
func NewActionsHandler(deps ActionsDependencies) *ActionsHandler {
	return &ActionsHandler{deps: deps}
}

// HandleGetActions handles GET /api/actions requests.
func (h *ActionsHandler) HandleGetActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	a, err := h.deps.Actions(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
