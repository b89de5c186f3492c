package cloudtalk

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://my.cloudtalk.io/api"

// Client talks to CloudTalk's call-creation endpoint. Credentials are
// server-held API key id/secret sent as HTTP Basic auth; they never
// reach a browser.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

func NewClient(keyID, keySecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether both credential halves are present.
func (c *Client) Configured() bool {
	return c.keyID != "" && c.keySecret != ""
}

// CreateCallRaw posts the dial request and returns the provider's
// status and body untouched, success or not. Only transport failures
// return an error.
func (c *Client) CreateCallRaw(ctx context.Context, input CreateCallInput) (*CallResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("missing cloudtalk key id/secret")
	}

	jsonBody, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal call request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calls/create.json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudtalk request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cloudtalk response: %w", err)
	}

	return &CallResult{StatusCode: resp.StatusCode, Body: body}, nil
}

// CreateCall implements the usecase gateway contract: any non-2xx
// provider status is a call-initiation failure.
func (c *Client) CreateCall(ctx context.Context, agentID, calleeNumber string) error {
	result, err := c.CreateCallRaw(ctx, CreateCallInput{AgentID: agentID, CalleeNumber: calleeNumber})
	if err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("cloudtalk rejected the call (status %d): %s", result.StatusCode, string(result.Body))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	basic := base64.StdEncoding.EncodeToString([]byte(c.keyID + ":" + c.keySecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// EnvCheck is the diagnostics view of the configured credentials.
func (c *Client) EnvCheck() EnvCheckResult {
	return EnvCheckResult{
		HasID:     c.keyID != "",
		HasSecret: c.keySecret != "",
		IDLen:     len(c.keyID),
		SecretLen: len(c.keySecret),
	}
}
