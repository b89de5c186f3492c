package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkovalcik/mcrm-backend/internal/infra/integration/cloudtalk"
)

func TestCloudTalkProxyRelaysProviderResponseVerbatim(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"responseData":{"status":403,"message":"forbidden"}}`))
	}))
	defer provider.Close()

	h := NewCloudTalkHandler(cloudtalk.NewClient("id", "secret", provider.URL))

	req := httptest.NewRequest(http.MethodPost, "/api/cloudtalk/call",
		strings.NewReader(`{"agent_id":"agent-7","callee_number":"+421901234567"}`))
	rec := httptest.NewRecorder()

	h.HandleCall(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, `{"responseData":{"status":403,"message":"forbidden"}}`, rec.Body.String())
}

func TestCloudTalkProxyRejectsIncompleteRequests(t *testing.T) {
	h := NewCloudTalkHandler(cloudtalk.NewClient("id", "secret", "http://unused.invalid"))

	for _, body := range []string{
		`{"agent_id":"agent-7"}`,
		`{"callee_number":"+421901234567"}`,
		`{}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/cloudtalk/call", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleCall(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "Missing agent_id or callee_number")
	}
}

func TestCloudTalkProxyTransportFailureIsBadGateway(t *testing.T) {
	// Point at a closed server to force a transport error.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	h := NewCloudTalkHandler(cloudtalk.NewClient("id", "secret", dead.URL))

	req := httptest.NewRequest(http.MethodPost, "/api/cloudtalk/call",
		strings.NewReader(`{"agent_id":"agent-7","callee_number":"+421901234567"}`))
	rec := httptest.NewRecorder()

	h.HandleCall(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCloudTalkEnvCheckReportsPresenceOnly(t *testing.T) {
	h := NewCloudTalkHandler(cloudtalk.NewClient("abc", "secret-value", ""))

	req := httptest.NewRequest(http.MethodGet, "/api/cloudtalk/envcheck", nil)
	rec := httptest.NewRecorder()

	h.HandleEnvCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hasId":true,"hasSecret":true,"idLen":3,"secretLen":12}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret-value")
}
