// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// DuplicatesDependencies defines the interface for duplicate report reads.
type DuplicatesDependencies interface {
	Duplicates(ctx context.Context) (TableView, error)
}

// DuplicatesHandler handles duplicate report requests.
type DuplicatesHandler struct {
	deps DuplicatesDependencies
}

// NewDuplicatesHandler creates a new duplicates handler.
func NewDuplicatesHandler(deps DuplicatesDependencies) *DuplicatesHandler {
	return &DuplicatesHandler{deps: deps}
}

// HandleGetDuplicates handles GET /api/duplicates requests.
func (h *DuplicatesHandler) HandleGetDuplicates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	d, err := h.deps.Duplicates(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
