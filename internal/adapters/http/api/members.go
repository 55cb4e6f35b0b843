// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// MembersDependencies defines the interface for member reads.
type MembersDependencies interface {
	Members(ctx context.Context) ([]string, error)
	MemberSnapshot(ctx context.Context, email string) (map[string]any, error)
}

// MembersHandler handles member list and member detail requests.
type MembersHandler struct {
	deps MembersDependencies
}

// NewMembersHandler creates a new members handler.
func NewMembersHandler(deps MembersDependencies) *MembersHandler {
	return &MembersHandler{deps: deps}
}

// HandleListMembers handles GET /api/members requests.
func (h *MembersHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	members, err := h.deps.Members(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// HandleGetMemberLatest handles GET /api/members/{email}/latest requests.
func (h *MembersHandler) HandleGetMemberLatest(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_member_latest"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter between /api/members/ and /latest
	rest := strings.TrimPrefix(r.URL.Path, "/api/members/")
	email, ok := strings.CutSuffix(rest, "/latest")
	if !ok || email == "" || strings.Contains(email, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if unescaped, err := url.PathUnescape(email); err == nil {
		email = unescaped
	}
	row, err := h.deps.MemberSnapshot(r.Context(), email)
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}
