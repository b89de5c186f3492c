package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

// InitiateCallUseCase triggers an outbound dial through the telephony
// gateway. The contact only advances to "called" after the gateway
// accepted the dial; a failed attempt leaves the status untouched.
type InitiateCallUseCase struct {
	Contacts entity.ContactRepositoryInterface
	Profiles entity.ProfileRepositoryInterface
	Settings entity.SettingsRepositoryInterface
	Gateway  CallGateway
}

func NewInitiateCallUseCase(
	contacts entity.ContactRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	settings entity.SettingsRepositoryInterface,
	gateway CallGateway,
) *InitiateCallUseCase {
	return &InitiateCallUseCase{
		Contacts: contacts,
		Profiles: profiles,
		Settings: settings,
		Gateway:  gateway,
	}
}

type InitiateCallInput struct {
	ContactID string `json:"contact_id"`
	UserID    string `json:"user_id"`
}

func (uc *InitiateCallUseCase) Execute(ctx context.Context, input InitiateCallInput) (*entity.Contact, error) {
	if input.ContactID == "" {
		return nil, &DomainError{Code: "MISSING_CONTACT_ID", Message: "contact_id is required"}
	}
	if input.UserID == "" {
		return nil, &DomainError{Code: "MISSING_USER_ID", Message: "user_id is required"}
	}

	settings, err := uc.Settings.Get(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load settings: " + err.Error()}
	}
	if settings == nil || !settings.CloudTalk.Enabled {
		return nil, &DomainError{Code: "CLOUDTALK_DISABLED", Message: "cloudtalk calling is not enabled"}
	}

	profile, err := uc.Profiles.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load profile: " + err.Error()}
	}
	if profile == nil || profile.CloudTalkAgentID == "" {
		return nil, &DomainError{Code: "MISSING_AGENT_ID", Message: "profile has no cloudtalk agent_id"}
	}

	contact, err := uc.Contacts.FindByID(ctx, input.ContactID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load contact: " + err.Error()}
	}
	if contact == nil {
		return nil, &DomainError{Code: "CONTACT_NOT_FOUND", Message: "contact not found: " + input.ContactID}
	}

	phone := strings.TrimSpace(contact.Phone)
	if !IsLikelyE164(phone) {
		return nil, &DomainError{Code: "INVALID_PHONE", Message: "phone must be E.164, e.g. +421901234567"}
	}

	if err := uc.Gateway.CreateCall(ctx, profile.CloudTalkAgentID, phone); err != nil {
		return nil, &TechnicalError{Code: "CALL_INITIATION_FAILED", Message: "call initiation failed: " + err.Error()}
	}

	now := time.Now()
	contact.Status = entity.StatusCalled
	contact.LastCallAt = &now
	contact.UpdatedAt = now

	updated, err := uc.Contacts.Upsert(ctx, contact)
	if err != nil {
		// The dial already went out; only the bookkeeping failed.
		return nil, &TechnicalError{Code: "CONTACT_UPDATE_FAILED", Message: "call started but contact update failed: " + err.Error()}
	}

	return updated, nil
}
