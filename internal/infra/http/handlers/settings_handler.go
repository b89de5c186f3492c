package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

type SettingsHandler struct {
	settings entity.SettingsRepositoryInterface
}

func NewSettingsHandler(settings entity.SettingsRepositoryInterface) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load settings"})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !id.IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	var settings entity.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	settings.ID = "global"

	if err := h.settings.Update(r.Context(), &settings); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
