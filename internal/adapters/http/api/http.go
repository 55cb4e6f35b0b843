// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coachkit/huddle/internal/app"
)

// Read shapes served by the handlers, aliased so handler signatures stay
// free of the app import.
type (
	Overview   = app.Overview
	TableView  = app.TableView
	ActionList = app.ActionList
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Overview(ctx context.Context) (Overview, error)
	CohortSummary(ctx context.Context) (TableView, error)
	Actions(ctx context.Context) (ActionList, error)
	Members(ctx context.Context) ([]string, error)
	MemberSnapshot(ctx context.Context, email string) (map[string]any, error)
	Duplicates(ctx context.Context) (TableView, error)
	Merged(ctx context.Context) (TableView, error)

	// Refresh re-runs the pipeline now.
	Refresh(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	overviewHandler   *OverviewHandler
	cohortHandler     *CohortHandler
	actionsHandler    *ActionsHandler
	membersHandler    *MembersHandler
	duplicatesHandler *DuplicatesHandler
	mergedHandler     *MergedHandler
	refreshHandler    *RefreshHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		overviewHandler:   NewOverviewHandler(deps),
		cohortHandler:     NewCohortHandler(deps),
		actionsHandler:    NewActionsHandler(deps),
		membersHandler:    NewMembersHandler(deps),
		duplicatesHandler: NewDuplicatesHandler(deps),
		mergedHandler:     NewMergedHandler(deps),
		refreshHandler:    NewRefreshHandler(deps),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/overview", MetricsMiddleware(s.overviewHandler.HandleGetOverview, "overview"))
	mux.HandleFunc("/api/cohort", MetricsMiddleware(s.cohortHandler.HandleGetCohort, "cohort"))
	mux.HandleFunc("/api/actions", MetricsMiddleware(s.actionsHandler.HandleGetActions, "actions"))
	mux.HandleFunc("/api/members", MetricsMiddleware(s.membersHandler.HandleListMembers, "members"))
	mux.HandleFunc("/api/members/", MetricsMiddleware(s.membersHandler.HandleGetMemberLatest, "member_latest"))
	mux.HandleFunc("/api/duplicates", MetricsMiddleware(s.duplicatesHandler.HandleGetDuplicates, "duplicates"))
	mux.HandleFunc("/api/merged", MetricsMiddleware(s.mergedHandler.HandleGetMerged, "merged"))
	mux.HandleFunc("/api/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
}

type ackResponse struct {
	Status string `json:"status"`
	RunID  string `json:"run_id,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeReadError translates service read errors to HTTP responses.
func writeReadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNoData):
		writeError(w, http.StatusServiceUnavailable, "no_data", err)
	case errors.Is(err, app.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
