package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

// ReviewChangeRequestUseCase is the admin side of the alias/avatar
// approval workflow: mark the request reviewed, and on approval write
// the requested value through to the profile.
type ReviewChangeRequestUseCase struct {
	Requests entity.ChangeRequestRepositoryInterface
	Profiles entity.ProfileRepositoryInterface
}

func NewReviewChangeRequestUseCase(
	requests entity.ChangeRequestRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
) *ReviewChangeRequestUseCase {
	return &ReviewChangeRequestUseCase{Requests: requests, Profiles: profiles}
}

type ReviewChangeRequestInput struct {
	RequestID   string `json:"request_id"`
	Approve     bool   `json:"approve"`
	Note        string `json:"note"`
	AdminUserID string `json:"admin_user_id"`
}

func (uc *ReviewChangeRequestUseCase) Execute(ctx context.Context, input ReviewChangeRequestInput) (*entity.ProfileChangeRequest, error) {
	if input.RequestID == "" {
		return nil, &DomainError{Code: "MISSING_REQUEST_ID", Message: "request_id is required"}
	}
	if input.AdminUserID == "" {
		return nil, &DomainError{Code: "MISSING_USER_ID", Message: "admin_user_id is required"}
	}

	req, err := uc.Requests.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load request: " + err.Error()}
	}
	if req == nil {
		return nil, &DomainError{Code: "REQUEST_NOT_FOUND", Message: "change request not found: " + input.RequestID}
	}

	status := entity.RequestRejected
	if input.Approve {
		status = entity.RequestApproved
	}

	now := time.Now()
	note := normalizeOptional(input.Note)
	if err := uc.Requests.SetReview(ctx, req.ID, status, note, input.AdminUserID, now); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update request: " + err.Error()}
	}

	if input.Approve {
		if err := uc.applyToProfile(ctx, req); err != nil {
			return nil, err
		}
	}

	req.Status = status
	req.Note = note
	req.ReviewedBy = &input.AdminUserID
	req.ReviewedAt = &now
	return req, nil
}

func (uc *ReviewChangeRequestUseCase) applyToProfile(ctx context.Context, req *entity.ProfileChangeRequest) error {
	profile, err := uc.Profiles.FindByID(ctx, req.UserID)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load profile: " + err.Error()}
	}
	if profile == nil {
		return &DomainError{Code: "PROFILE_NOT_FOUND", Message: "profile not found: " + req.UserID}
	}

	value := normalizeOptional(strings.TrimSpace(req.Payload))
	switch req.Kind {
	case entity.ChangeKindAlias:
		profile.Alias = value
	case entity.ChangeKindAvatar:
		profile.AvatarURL = value
	default:
		return &DomainError{Code: "UNKNOWN_KIND", Message: "unknown change kind: " + req.Kind}
	}

	if err := uc.Profiles.Update(ctx, profile); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update profile: " + err.Error()}
	}
	return nil
}
