package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

type ProfileHandler struct {
	profiles entity.ProfileRepositoryInterface
}

func NewProfileHandler(profiles entity.ProfileRepositoryInterface) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !id.IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list profiles"})
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	profileID := chi.URLParam(r, "id")
	if !id.IsAdmin() && profileID != id.UserID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "cannot view another user's profile"})
		return
	}

	profile, err := h.profiles.FindByID(r.Context(), profileID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load profile"})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type ensureProfileRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleEnsure creates the caller's profile on first login with the
// default salary, or returns the existing one. Idempotent.
func (h *ProfileHandler) HandleEnsure(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if id.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	existing, err := h.profiles.FindByID(r.Context(), id.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load profile"})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusOK, existing)
		return
	}

	var req ensureProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	profile := &entity.Profile{
		ID:         id.UserID,
		Email:      req.Email,
		Name:       req.Name,
		Role:       entity.RoleUser,
		BaseSalary: entity.DefaultBaseSalary,
		Active:     true,
		CreatedAt:  time.Now(),
	}
	if profile.Name == "" {
		profile.Name = req.Email
	}
	if err := profile.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.profiles.Create(r.Context(), profile); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create profile"})
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

type updateProfileRequest struct {
	Name             *string  `json:"name"`
	Role             *string  `json:"role"`
	BaseSalary       *float64 `json:"base_salary"`
	Advances         *float64 `json:"advances"`
	Active           *bool    `json:"active"`
	CloudTalkAgentID *string  `json:"cloudtalk_agent_id"`
}

// HandleUpdate is the admin's employee management endpoint. Alias and
// avatar changes do not go through here; they use the change request
// workflow.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !id.IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	profile, err := h.profiles.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load profile"})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "profile not found"})
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}
	if req.BaseSalary != nil {
		profile.BaseSalary = *req.BaseSalary
	}
	if req.Advances != nil {
		profile.Advances = *req.Advances
	}
	if req.Active != nil {
		profile.Active = *req.Active
	}
	if req.CloudTalkAgentID != nil {
		profile.CloudTalkAgentID = *req.CloudTalkAgentID
	}

	if err := profile.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.profiles.Update(r.Context(), profile); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to update profile"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
