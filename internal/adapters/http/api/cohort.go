// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// CohortDependencies defines the interface for cohort summary reads.
type CohortDependencies interface {
	CohortSummary(ctx context.Context) (TableView, error)
}

// CohortHandler handles cohort summary requests.
type CohortHandler struct {
	deps CohortDependencies
}

// NewCohortHandler creates a new cohort handler.
func NewCohortHandler(deps CohortDependencies) *CohortHandler {
	return &CohortHandler{deps: deps}
}

// HandleGetCohort handles GET /api/cohort requests.
func (h *CohortHandler) HandleGetCohort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	c, err := h.deps.CohortSummary(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
