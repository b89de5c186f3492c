package usecase

import "context"

// CallGateway originates a phone call through the telephony provider.
// A non-nil error means the dial attempt failed and the contact's
// status must not advance.
type CallGateway interface {
	CreateCall(ctx context.Context, agentID, calleeNumber string) error
}
