package usecase

import (
	"context"
	"strings"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

// SetContactStatusUseCase moves a contact to another pipeline stage.
// Transitions are idempotent; "lost" unconditionally clears the
// pending follow-up so a lost contact never carries one.
type SetContactStatusUseCase struct {
	Contacts entity.ContactRepositoryInterface
}

func NewSetContactStatusUseCase(contacts entity.ContactRepositoryInterface) *SetContactStatusUseCase {
	return &SetContactStatusUseCase{Contacts: contacts}
}

type SetContactStatusInput struct {
	ContactID string `json:"contact_id"`
	Status    string `json:"status"`
}

func (uc *SetContactStatusUseCase) Execute(ctx context.Context, input SetContactStatusInput) (*entity.Contact, error) {
	if input.ContactID == "" {
		return nil, &DomainError{Code: "MISSING_CONTACT_ID", Message: "contact_id is required"}
	}

	status := entity.ContactStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if !status.Valid() {
		return nil, &DomainError{Code: "UNKNOWN_STATUS", Message: "unknown contact status: " + input.Status}
	}

	clearNextCall := status == entity.StatusLost

	contact, err := uc.Contacts.UpdateStatus(ctx, input.ContactID, status, clearNextCall)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update contact status: " + err.Error()}
	}
	if contact == nil {
		return nil, &DomainError{Code: "CONTACT_NOT_FOUND", Message: "contact not found: " + input.ContactID}
	}

	return contact, nil
}
