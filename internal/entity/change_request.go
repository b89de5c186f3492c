package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	ChangeKindAlias  = "alias"
	ChangeKindAvatar = "avatar"

	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// ProfileChangeRequest is a user's pending alias or avatar change,
// waiting for an admin to approve or reject it.
type ProfileChangeRequest struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Kind    string `json:"kind"`    // alias | avatar
	Payload string `json:"payload"` // the requested alias or avatar URL
	Status  string `json:"status"`

	Note       *string    `json:"note,omitempty"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewProfileChangeRequest(userID, kind, payload string) (*ProfileChangeRequest, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if kind != ChangeKindAlias && kind != ChangeKindAvatar {
		return nil, errors.New("unknown change kind: " + kind)
	}
	return &ProfileChangeRequest{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Payload:   payload,
		Status:    RequestPending,
		CreatedAt: time.Now(),
	}, nil
}

type ChangeRequestRepositoryInterface interface {
	Create(ctx context.Context, r *ProfileChangeRequest) error
	FindByID(ctx context.Context, id string) (*ProfileChangeRequest, error)
	ListByUser(ctx context.Context, userID string) ([]ProfileChangeRequest, error)
	ListPending(ctx context.Context) ([]ProfileChangeRequest, error)
	SetReview(ctx context.Context, id, status string, note *string, reviewedBy string, reviewedAt time.Time) error
}
