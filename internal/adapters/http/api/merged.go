// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// MergedDependencies defines the interface for merged table reads.
type MergedDependencies interface {
	Merged(ctx context.Context) (TableView, error)
}

// MergedHandler serves the full merged table for the data tab.
type MergedHandler struct {
	deps MergedDependencies
}

// NewMergedHandler creates a new merged table handler.
func NewMergedHandler(deps MergedDependencies) *MergedHandler {
	return &MergedHandler{deps: deps}
}

// HandleGetMerged handles GET /api/merged requests.
func (h *MergedHandler) HandleGetMerged(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	m, err := h.deps.Merged(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
