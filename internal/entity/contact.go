package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type ContactStatus string

const (
	StatusNew        ContactStatus = "new"
	StatusInProgress ContactStatus = "in_progress"
	StatusCalled     ContactStatus = "called"
	StatusWon        ContactStatus = "won"
	StatusLost       ContactStatus = "lost"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCalled, StatusWon, StatusLost:
		return true
	}
	return false
}

type ClientPotential string

const (
	PotentialHigh    ClientPotential = "high"
	PotentialMid     ClientPotential = "mid"
	PotentialLow     ClientPotential = "low"
	PotentialVeryLow ClientPotential = "very_low"
)

func (p ClientPotential) Valid() bool {
	switch p {
	case PotentialHigh, PotentialMid, PotentialLow, PotentialVeryLow:
		return true
	}
	return false
}

type Contact struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Phone            string        `json:"phone"`
	Email            string        `json:"email,omitempty"`
	Company          string        `json:"company,omitempty"`
	Status           ContactStatus `json:"status"`
	AssignedToUserID string        `json:"assigned_to_user_id"`
	Notes            string        `json:"notes,omitempty"`

	ClientPotential  *string `json:"client_potential,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	SalesExperience  *string `json:"sales_experience,omitempty"`

	// Denormalized cache of the most recent call log entry.
	LastOutcome  *string    `json:"last_outcome,omitempty"`
	LastAttitude *string    `json:"last_attitude,omitempty"`
	LastNotes    *string    `json:"last_notes,omitempty"`
	LastCallAt   *time.Time `json:"last_call_at,omitempty"`

	NextCallAt *time.Time `json:"next_call_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewContact(name, phone, assignedToUserID string) (*Contact, error) {
	mid := string(PotentialMid)
	c := &Contact{
		ID:               uuid.New().String(),
		Name:             name,
		Phone:            phone,
		Status:           StatusNew,
		AssignedToUserID: assignedToUserID,
		ClientPotential:  &mid,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Contact) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.AssignedToUserID == "" {
		return errors.New("assigned_to_user_id is required")
	}
	if !c.Status.Valid() {
		return errors.New("unknown contact status: " + string(c.Status))
	}
	return nil
}

// IsLost reports whether the contact is in the terminal "lost" stage.
// A lost contact never carries a pending follow-up.
func (c *Contact) IsLost() bool {
	return c.Status == StatusLost
}

// VisibilityScope restricts a contact listing to what the viewer may
// see: everything (admin) or a single assignee.
type VisibilityScope struct {
	All              bool
	AssignedToUserID string
}

func ScopeAll() VisibilityScope {
	return VisibilityScope{All: true}
}

func ScopeAssignedTo(userID string) VisibilityScope {
	return VisibilityScope{AssignedToUserID: userID}
}

// CallResultPatch carries the contact-side effects of one logged call.
// Nil categorical fields clear the stored value; NextCallAt nil clears
// the pending follow-up.
type CallResultPatch struct {
	LastOutcome      *string
	LastAttitude     *string
	LastNotes        *string
	EmploymentStatus *string
	SalesExperience  *string
	ClientPotential  *string
	NextCallAt       *time.Time
}

type ContactRepositoryInterface interface {
	List(ctx context.Context, scope VisibilityScope) ([]Contact, error)
	FindByID(ctx context.Context, id string) (*Contact, error)
	Upsert(ctx context.Context, c *Contact) (*Contact, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status ContactStatus, clearNextCall bool) (*Contact, error)
	ApplyCallResult(ctx context.Context, id string, patch CallResultPatch) (*Contact, error)
}
