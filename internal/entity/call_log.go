package entity

import (
	"context"
	"errors"
	"time"
)

type CallOutcome string

const (
	OutcomeConnected CallOutcome = "connected"
	OutcomeNoAnswer  CallOutcome = "no_answer"
	OutcomeBusy      CallOutcome = "busy"
	OutcomeRejected  CallOutcome = "rejected"
	OutcomeOther     CallOutcome = "other"
)

func (o CallOutcome) Valid() bool {
	switch o {
	case OutcomeConnected, OutcomeNoAnswer, OutcomeBusy, OutcomeRejected, OutcomeOther:
		return true
	}
	return false
}

// CallAttitude is the contact's disposition expressed during a
// connected call. Empty means not recorded.
type CallAttitude string

const (
	AttitudeCallLaterNoTime CallAttitude = "call_later_no_time"
	AttitudeAlreadyCustomer CallAttitude = "already_customer"
	AttitudeNoInterest      CallAttitude = "no_interest"
	AttitudeInterrupted     CallAttitude = "interrupted"
	AttitudeBlacklist       CallAttitude = "blacklist"
)

func (a CallAttitude) Valid() bool {
	switch a {
	case AttitudeCallLaterNoTime, AttitudeAlreadyCustomer, AttitudeNoInterest,
		AttitudeInterrupted, AttitudeBlacklist:
		return true
	}
	return false
}

// CallLogEntry is an immutable record of one call attempt. Entries are
// only ever inserted; the repository exposes no update or delete.
type CallLogEntry struct {
	ID        string      `json:"id"`
	ContactID string      `json:"contact_id"`
	UserID    string      `json:"user_id"`
	Outcome   CallOutcome `json:"outcome"`
	Attitude  *string     `json:"attitude,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func (e *CallLogEntry) Validate() error {
	if e.ContactID == "" {
		return errors.New("contact_id is required")
	}
	if e.UserID == "" {
		return errors.New("user_id is required")
	}
	if !e.Outcome.Valid() {
		return errors.New("unknown call outcome: " + string(e.Outcome))
	}
	if e.Attitude != nil && !CallAttitude(*e.Attitude).Valid() {
		return errors.New("unknown call attitude: " + *e.Attitude)
	}
	return nil
}

type CallLogRepositoryInterface interface {
	Append(ctx context.Context, entry *CallLogEntry) error
	// ListByContact returns entries newest-first.
	ListByContact(ctx context.Context, contactID string) ([]CallLogEntry, error)
}
