package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mkovalcik/mcrm-backend/internal/infra/http/middleware"
	"github.com/mkovalcik/mcrm-backend/internal/infra/integration/cloudtalk"
)

// CloudTalkHandler is the credential-holding proxy in front of the
// CloudTalk API. Whatever the provider answers, status and body are
// relayed verbatim so the caller can debug rejections without access
// to the key.
type CloudTalkHandler struct {
	client *cloudtalk.Client
}

func NewCloudTalkHandler(client *cloudtalk.Client) *CloudTalkHandler {
	return &CloudTalkHandler{client: client}
}

func (h *CloudTalkHandler) HandleCall(w http.ResponseWriter, r *http.Request) {
	var input cloudtalk.CreateCallInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if input.AgentID == "" || input.CalleeNumber == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing agent_id or callee_number"})
		return
	}

	result, err := h.client.CreateCallRaw(r.Context(), input)
	if err != nil {
		middleware.RecordIntegrationError("cloudtalk")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	// Relay the provider's verdict untouched.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.StatusCode)
	w.Write(result.Body)
}

// HandleEnvCheck reports credential presence and lengths without ever
// echoing the values.
func (h *CloudTalkHandler) HandleEnvCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.client.EnvCheck())
}
