package cloudtalk

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCallRawSendsBasicAuthAndRelaysVerbatim(t *testing.T) {
	var gotAuth, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"responseData":{"status":403}}`))
	}))
	defer srv.Close()

	client := NewClient("key-id", "key-secret", srv.URL)
	result, err := client.CreateCallRaw(context.Background(), CreateCallInput{
		AgentID:      "agent-7",
		CalleeNumber: "+421901234567",
	})

	assert.NoError(t, err) // provider rejection is not a transport error
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
	assert.Equal(t, `{"responseData":{"status":403}}`, string(result.Body))
	assert.False(t, result.OK())

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("key-id:key-secret"))
	assert.Equal(t, expected, gotAuth)
	assert.JSONEq(t, `{"agent_id":"agent-7","callee_number":"+421901234567"}`, gotBody)
}

func TestCreateCallGatewayContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"responseData":{"status":200}}`))
	}))
	defer srv.Close()

	client := NewClient("id", "secret", srv.URL)
	assert.NoError(t, client.CreateCall(context.Background(), "agent-7", "+421901234567"))
}

func TestCreateCallNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid number"}`))
	}))
	defer srv.Close()

	client := NewClient("id", "secret", srv.URL)
	err := client.CreateCall(context.Background(), "agent-7", "+421901234567")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

func TestCreateCallRawRequiresCredentials(t *testing.T) {
	client := NewClient("", "", "")
	_, err := client.CreateCallRaw(context.Background(), CreateCallInput{})
	assert.Error(t, err)
}

func TestEnvCheckNeverLeaksValues(t *testing.T) {
	client := NewClient("abc", "longer-secret", "")
	check := client.EnvCheck()

	assert.True(t, check.HasID)
	assert.True(t, check.HasSecret)
	assert.Equal(t, 3, check.IDLen)
	assert.Equal(t, 13, check.SecretLen)

	empty := NewClient("", "", "").EnvCheck()
	assert.False(t, empty.HasID)
	assert.Equal(t, 0, empty.SecretLen)
}
