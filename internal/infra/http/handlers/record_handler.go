package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
	"github.com/mkovalcik/mcrm-backend/internal/usecase"
)

type RecordHandler struct {
	records  entity.RecordRepositoryInterface
	profiles entity.ProfileRepositoryInterface
	payroll  *usecase.PayrollUseCase
}

func NewRecordHandler(
	records entity.RecordRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	payroll *usecase.PayrollUseCase,
) *RecordHandler {
	return &RecordHandler{records: records, profiles: profiles, payroll: payroll}
}

// HandleList returns attendance/KPI records in the requested range.
// Non-admins only see their own.
func (h *RecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if id.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	q := r.URL.Query()
	filter := entity.RecordFilter{
		UserID: q.Get("user_id"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
	if !id.IsAdmin() {
		filter.UserID = id.UserID
	}

	records, err := h.records.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list records"})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !id.IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	var record entity.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := record.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.records.Upsert(r.Context(), &record); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save record"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !id.IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	q := r.URL.Query()
	userID, date := q.Get("user_id"), q.Get("date")
	if userID == "" || date == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id and date are required"})
		return
	}

	if err := h.records.Delete(r.Context(), userID, date); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to delete record"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSalaries computes the month's payroll summaries. Admins get
// everyone, employees get themselves.
func (h *RecordHandler) HandleSalaries(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if id.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	viewer, err := h.profiles.FindByID(r.Context(), id.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load profile"})
		return
	}
	if viewer == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "profile not found"})
		return
	}

	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "from and to are required (YYYY-MM-DD)"})
		return
	}

	summaries, err := h.payroll.Execute(r.Context(), viewer, from, to)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}
