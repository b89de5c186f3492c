package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
	"github.com/mkovalcik/mcrm-backend/internal/usecase"
)

// Identity is the authenticated caller, taken from the headers the
// auth layer in front of this service sets. Session mechanics live in
// that layer, not here.
type Identity struct {
	UserID string
	Role   string
}

func (id Identity) IsAdmin() bool {
	return id.Role == entity.RoleAdmin
}

func identityFrom(r *http.Request) Identity {
	return Identity{
		UserID: r.Header.Get("X-User-ID"),
		Role:   r.Header.Get("X-User-Role"),
	}
}

// scopeFrom resolves the visibility scope: admins see everything
// unless they picked a single assignee; everyone else sees their own.
func scopeFrom(r *http.Request, id Identity) entity.VisibilityScope {
	if id.IsAdmin() {
		if assignee := r.URL.Query().Get("assigned_to"); assignee != "" {
			return entity.ScopeAssignedTo(assignee)
		}
		return entity.ScopeAll()
	}
	return entity.ScopeAssignedTo(id.UserID)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeUseCaseError maps the error taxonomy onto HTTP: business
// rejections are the caller's fault, technical failures are ours.
// Every rejection carries a human-readable reason; silent failure is
// not allowed.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if derr, ok := err.(*usecase.DomainError); ok {
		status := http.StatusBadRequest
		if derr.Code == "CONTACT_NOT_FOUND" || derr.Code == "REQUEST_NOT_FOUND" || derr.Code == "PROFILE_NOT_FOUND" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Error: derr.Message, Code: derr.Code})
		return
	}
	if terr, ok := err.(*usecase.TechnicalError); ok {
		status := http.StatusInternalServerError
		if terr.Code == "CALL_INITIATION_FAILED" {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorResponse{Error: terr.Message, Code: terr.Code})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
