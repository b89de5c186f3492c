package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
	"github.com/mkovalcik/mcrm-backend/internal/usecase"
)

type ChangeRequestHandler struct {
	requests entity.ChangeRequestRepositoryInterface
	review   *usecase.ReviewChangeRequestUseCase
}

func NewChangeRequestHandler(
	requests entity.ChangeRequestRepositoryInterface,
	review *usecase.ReviewChangeRequestUseCase,
) *ChangeRequestHandler {
	return &ChangeRequestHandler{requests: requests, review: review}
}

type createChangeRequestRequest struct {
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

// HandleCreate files an alias or avatar change for admin review.
func (h *ChangeRequestHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if id.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	var req createChangeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	request, err := entity.NewProfileChangeRequest(id.UserID, req.Kind, req.Payload)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.requests.Create(r.Context(), request); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create change request"})
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

// HandleList returns the caller's own requests; admins get the pending
// queue with ?pending=true.
func (h *ChangeRequestHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if id.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	if id.IsAdmin() && r.URL.Query().Get("pending") == "true" {
		requests, err := h.requests.ListPending(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list pending requests"})
			return
		}
		writeJSON(w, http.StatusOK, requests)
		return
	}

	requests, err := h.requests.ListByUser(r.Context(), id.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list requests"})
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

type reviewRequestRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

func (h *ChangeRequestHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !id.IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	var req reviewRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	request, err := h.review.Execute(r.Context(), usecase.ReviewChangeRequestInput{
		RequestID:   chi.URLParam(r, "id"),
		Approve:     req.Approve,
		Note:        req.Note,
		AdminUserID: id.UserID,
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
