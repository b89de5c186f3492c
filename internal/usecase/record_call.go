package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

// RecordCallUseCase is the composite operation behind every logged
// call: append an immutable call log entry, then merge the call's
// outcome and scheduling effects into the contact.
//
// The two writes are deliberately not atomic. A call attempt, once
// logged, is historical fact: if the contact patch fails, the log
// entry stays committed and the output still carries it, so the caller
// knows the contact's displayed status may be stale relative to the
// just-logged call.
type RecordCallUseCase struct {
	Contacts entity.ContactRepositoryInterface
	CallLog  entity.CallLogRepositoryInterface
}

func NewRecordCallUseCase(
	contacts entity.ContactRepositoryInterface,
	callLog entity.CallLogRepositoryInterface,
) *RecordCallUseCase {
	return &RecordCallUseCase{Contacts: contacts, CallLog: callLog}
}

type RecordCallInput struct {
	ContactID string `json:"contact_id"`
	UserID    string `json:"user_id"`
	Outcome   string `json:"outcome"`
	Attitude  string `json:"attitude"`
	Notes     string `json:"notes"`

	EmploymentStatus string `json:"employment_status"`
	SalesExperience  string `json:"sales_experience"`
	ClientPotential  string `json:"client_potential"`

	// NextCallAt schedules the follow-up. Empty or unparseable input
	// clears the follow-up; it is never an error. Ignored entirely
	// when the contact is lost.
	NextCallAt string `json:"next_call_at"`
}

type RecordCallOutput struct {
	Entry   *entity.CallLogEntry `json:"entry"`
	Contact *entity.Contact      `json:"contact,omitempty"`
}

// Execute returns the appended log entry even on error when the
// contact patch is what failed (Output.Entry non-nil, Contact nil).
func (uc *RecordCallUseCase) Execute(ctx context.Context, input RecordCallInput) (*RecordCallOutput, error) {
	if input.ContactID == "" {
		return nil, &DomainError{Code: "MISSING_CONTACT_ID", Message: "contact_id is required"}
	}
	if input.UserID == "" {
		return nil, &DomainError{Code: "MISSING_USER_ID", Message: "user_id is required"}
	}

	outcome, verr := validateOutcome(input.Outcome)
	if verr != nil {
		return nil, &DomainError{Code: "UNKNOWN_OUTCOME", Message: verr.Error()}
	}
	attitude, verr := validateAttitude(input.Attitude)
	if verr != nil {
		return nil, &DomainError{Code: "UNKNOWN_ATTITUDE", Message: verr.Error()}
	}
	potential, verr := validatePotential(input.ClientPotential)
	if verr != nil {
		return nil, &DomainError{Code: "UNKNOWN_POTENTIAL", Message: verr.Error()}
	}

	contact, err := uc.Contacts.FindByID(ctx, input.ContactID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load contact: " + err.Error()}
	}
	if contact == nil {
		return nil, &DomainError{Code: "CONTACT_NOT_FOUND", Message: "contact not found: " + input.ContactID}
	}

	entry := &entity.CallLogEntry{
		ID:        uuid.New().String(),
		ContactID: input.ContactID,
		UserID:    input.UserID,
		Outcome:   outcome,
		Attitude:  attitude,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
	}

	if err := uc.CallLog.Append(ctx, entry); err != nil {
		return nil, &TechnicalError{Code: "CALL_LOG_ERROR", Message: "failed to append call log: " + err.Error()}
	}

	// A lost contact never gets a follow-up, whatever the caller
	// supplied.
	nextCallAt := parseNextCallAt(input.NextCallAt)
	if contact.IsLost() {
		nextCallAt = nil
	}

	outcomeStr := string(outcome)
	patch := entity.CallResultPatch{
		LastOutcome:      &outcomeStr,
		LastAttitude:     attitude,
		LastNotes:        normalizeOptional(input.Notes),
		EmploymentStatus: normalizeOptional(input.EmploymentStatus),
		SalesExperience:  normalizeOptional(input.SalesExperience),
		ClientPotential:  potential,
		NextCallAt:       nextCallAt,
	}

	updated, err := uc.Contacts.ApplyCallResult(ctx, input.ContactID, patch)
	if err != nil {
		// Log entry is committed; only the contact patch failed.
		return &RecordCallOutput{Entry: entry}, &TechnicalError{
			Code:    "CONTACT_UPDATE_FAILED",
			Message: "call logged but contact update failed: " + err.Error(),
		}
	}

	return &RecordCallOutput{Entry: entry, Contact: updated}, nil
}
