package cloudtalk

// CreateCallInput is the payload CloudTalk's call-creation endpoint
// expects: the dialing agent and the callee in E.164.
type CreateCallInput struct {
	AgentID      string `json:"agent_id"`
	CalleeNumber string `json:"callee_number"`
}

// CallResult carries the provider's response through unmodified so
// callers (the proxy handler in particular) can relay it verbatim.
type CallResult struct {
	StatusCode int
	Body       []byte
}

func (r *CallResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// EnvCheckResult describes credential presence without exposing the
// values themselves.
type EnvCheckResult struct {
	HasID     bool `json:"hasId"`
	HasSecret bool `json:"hasSecret"`
	IDLen     int  `json:"idLen"`
	SecretLen int  `json:"secretLen"`
}
