// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// OverviewDependencies defines the interface for overview reads.
type OverviewDependencies interface {
	Overview(ctx context.Context) (Overview, error)
}

// OverviewHandler handles overview requests.
type OverviewHandler struct {
	deps OverviewDependencies
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(deps OverviewDependencies) *OverviewHandler {
	return &OverviewHandler{deps: deps}
}

// HandleGetOverview handles GET /api/overview requests.
func (h *OverviewHandler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	o, err := h.deps.Overview(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
