// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// RefreshDependencies defines the interface for triggering a pipeline run.
type RefreshDependencies interface {
	Refresh(ctx context.Context) error
}

// RefreshHandler handles manual pipeline refresh requests.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandlePostRefresh handles POST /api/refresh requests.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "refresh_failed", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "refreshed"})
}
