package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
	"github.com/mkovalcik/mcrm-backend/internal/infra/http/middleware"
	"github.com/mkovalcik/mcrm-backend/internal/usecase"
)

type ContactHandler struct {
	contacts     entity.ContactRepositoryInterface
	callLog      entity.CallLogRepositoryInterface
	setStatus    *usecase.SetContactStatusUseCase
	recordCall   *usecase.RecordCallUseCase
	calendar     *usecase.CalendarUseCase
	initiateCall *usecase.InitiateCallUseCase
}

func NewContactHandler(
	contacts entity.ContactRepositoryInterface,
	callLog entity.CallLogRepositoryInterface,
	setStatus *usecase.SetContactStatusUseCase,
	recordCall *usecase.RecordCallUseCase,
	calendar *usecase.CalendarUseCase,
	initiateCall *usecase.InitiateCallUseCase,
) *ContactHandler {
	return &ContactHandler{
		contacts:     contacts,
		callLog:      callLog,
		setStatus:    setStatus,
		recordCall:   recordCall,
		calendar:     calendar,
		initiateCall: initiateCall,
	}
}

// HandleList returns the contacts the caller may see, most recently
// updated first.
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if id.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	contacts, err := h.contacts.List(r.Context(), scopeFrom(r, id))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list contacts"})
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}

type upsertContactRequest struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Company          string `json:"company"`
	Status           string `json:"status"`
	AssignedToUserID string `json:"assigned_to_user_id"`
	Notes            string `json:"notes"`
	ClientPotential  string `json:"client_potential"`
}

// HandleUpsert creates or updates a contact. New contacts start in the
// "new" stage assigned to the caller unless an assignee is given.
func (h *ContactHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if id.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	var req upsertContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	assignee := req.AssignedToUserID
	if assignee == "" {
		assignee = id.UserID
	}
	if !id.IsAdmin() {
		// Non-admins can only manage their own pipeline.
		assignee = id.UserID
	}

	var contact *entity.Contact
	if req.ID == "" {
		c, err := entity.NewContact(req.Name, req.Phone, assignee)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		contact = c
	} else {
		// Update path: send only what the caller supplied, the repo
		// keeps the stored value for empty fields.
		contact = &entity.Contact{
			ID:               req.ID,
			Name:             req.Name,
			Phone:            req.Phone,
			AssignedToUserID: assignee,
			UpdatedAt:        time.Now(),
		}
	}

	contact.Email = req.Email
	contact.Company = req.Company
	contact.Notes = req.Notes
	if req.Status != "" {
		status := entity.ContactStatus(req.Status)
		if !status.Valid() {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown contact status: " + req.Status})
			return
		}
		contact.Status = status
	}
	if req.ClientPotential != "" {
		potential := entity.ClientPotential(req.ClientPotential)
		if !potential.Valid() {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown client potential: " + req.ClientPotential})
			return
		}
		v := req.ClientPotential
		contact.ClientPotential = &v
	}

	saved, err := h.contacts.Upsert(r.Context(), contact)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save contact"})
		return
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !id.IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	contactID := chi.URLParam(r, "id")
	if err := h.contacts.Delete(r.Context(), contactID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to delete contact"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContactHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	contact, err := h.setStatus.Execute(r.Context(), usecase.SetContactStatusInput{
		ContactID: chi.URLParam(r, "id"),
		Status:    req.Status,
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// HandleRecordCall appends a call log entry and patches the contact.
// A partial failure (entry committed, patch failed) still returns the
// entry so the caller knows the attempt was recorded.
func (h *ContactHandler) HandleRecordCall(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)

	var req usecase.RecordCallInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	req.ContactID = chi.URLParam(r, "id")
	req.UserID = id.UserID

	out, err := h.recordCall.Execute(r.Context(), req)
	if err != nil {
		if out != nil && out.Entry != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error": err.Error(),
				"entry": out.Entry,
			})
			return
		}
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordCallLogged(string(out.Entry.Outcome))
	writeJSON(w, http.StatusCreated, out)
}

func (h *ContactHandler) HandleListCalls(w http.ResponseWriter, r *http.Request) {
	entries, err := h.callLog.ListByContact(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list call log"})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ContactHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if id.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	days, err := h.calendar.Execute(r.Context(), scopeFrom(r, id))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// HandleInitiateCall dials the contact through the telephony gateway
// on behalf of the caller's agent.
func (h *ContactHandler) HandleInitiateCall(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)

	contact, err := h.initiateCall.Execute(r.Context(), usecase.InitiateCallInput{
		ContactID: chi.URLParam(r, "id"),
		UserID:    id.UserID,
	})
	if err != nil {
		middleware.RecordCallInitiated("error")
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordCallInitiated("ok")
	writeJSON(w, http.StatusOK, contact)
}
