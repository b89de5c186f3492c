package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
	"github.com/mkovalcik/mcrm-backend/internal/usecase"
)

func TestRecordCallAppendsLogAndPatchesContact(t *testing.T) {
	ctx := context.Background()
	mockContacts := new(MockContactRepository)
	mockLog := new(MockCallLogRepository)

	contact := &entity.Contact{ID: "c-1", Name: "Peter", Status: entity.StatusInProgress}
	mockContacts.On("FindByID", ctx, "c-1").Return(contact, nil)
	mockLog.On("Append", ctx, mock.Anything).Return(nil)

	next := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	mockContacts.On("ApplyCallResult", ctx, "c-1", mock.MatchedBy(func(p entity.CallResultPatch) bool {
		return p.NextCallAt != nil && p.NextCallAt.Equal(next) &&
			p.LastOutcome != nil && *p.LastOutcome == "no_answer"
	})).Return(contact, nil)

	uc := usecase.NewRecordCallUseCase(mockContacts, mockLog)
	out, err := uc.Execute(ctx, usecase.RecordCallInput{
		ContactID:  "c-1",
		UserID:     "u-1",
		Outcome:    "no_answer",
		Attitude:   "call_later_no_time",
		NextCallAt: next.Format(time.RFC3339),
	})

	assert.NoError(t, err)
	assert.NotNil(t, out.Entry)
	assert.Equal(t, entity.CallOutcome("no_answer"), out.Entry.Outcome)
	mockContacts.AssertExpectations(t)
	mockLog.AssertExpectations(t)
}

func TestRecordCallLostContactNeverGetsFollowUp(t *testing.T) {
	ctx := context.Background()
	mockContacts := new(MockContactRepository)
	mockLog := new(MockCallLogRepository)

	lost := &entity.Contact{ID: "c-2", Status: entity.StatusLost}
	mockContacts.On("FindByID", ctx, "c-2").Return(lost, nil)
	mockLog.On("Append", ctx, mock.Anything).Return(nil)

	// Caller asks for a follow-up; the patch must still clear it.
	mockContacts.On("ApplyCallResult", ctx, "c-2", mock.MatchedBy(func(p entity.CallResultPatch) bool {
		return p.NextCallAt == nil
	})).Return(lost, nil)

	uc := usecase.NewRecordCallUseCase(mockContacts, mockLog)
	_, err := uc.Execute(ctx, usecase.RecordCallInput{
		ContactID:  "c-2",
		UserID:     "u-1",
		Outcome:    "connected",
		NextCallAt: "2026-09-01T10:00",
	})

	assert.NoError(t, err)
	mockContacts.AssertExpectations(t)
}

func TestRecordCallLogFailureLeavesContactUntouched(t *testing.T) {
	ctx := context.Background()
	mockContacts := new(MockContactRepository)
	mockLog := new(MockCallLogRepository)

	contact := &entity.Contact{ID: "c-3", Status: entity.StatusNew}
	mockContacts.On("FindByID", ctx, "c-3").Return(contact, nil)
	mockLog.On("Append", ctx, mock.Anything).Return(errors.New("insert failed"))

	uc := usecase.NewRecordCallUseCase(mockContacts, mockLog)
	out, err := uc.Execute(ctx, usecase.RecordCallInput{ContactID: "c-3", UserID: "u-1", Outcome: "busy"})

	assert.Nil(t, out)
	assert.True(t, usecase.IsTechnicalError(err))
	mockContacts.AssertNotCalled(t, "ApplyCallResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordCallPatchFailureStillReturnsCommittedEntry(t *testing.T) {
	ctx := context.Background()
	mockContacts := new(MockContactRepository)
	mockLog := new(MockCallLogRepository)

	contact := &entity.Contact{ID: "c-4", Status: entity.StatusNew}
	mockContacts.On("FindByID", ctx, "c-4").Return(contact, nil)
	mockLog.On("Append", ctx, mock.Anything).Return(nil)
	mockContacts.On("ApplyCallResult", ctx, "c-4", mock.Anything).Return(nil, errors.New("update failed"))

	uc := usecase.NewRecordCallUseCase(mockContacts, mockLog)
	out, err := uc.Execute(ctx, usecase.RecordCallInput{ContactID: "c-4", UserID: "u-1", Outcome: "connected"})

	var terr *usecase.TechnicalError
	assert.True(t, errors.As(err, &terr))
	assert.Equal(t, "CONTACT_UPDATE_FAILED", terr.Code)
	// The log entry survived the failed patch.
	assert.NotNil(t, out)
	assert.NotNil(t, out.Entry)
	assert.Nil(t, out.Contact)
}

func TestRecordCallRejectsUnknownOutcome(t *testing.T) {
	uc := usecase.NewRecordCallUseCase(new(MockContactRepository), new(MockCallLogRepository))

	_, err := uc.Execute(context.Background(), usecase.RecordCallInput{
		ContactID: "c-5",
		UserID:    "u-1",
		Outcome:   "ghosted",
	})

	var derr *usecase.DomainError
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, "UNKNOWN_OUTCOME", derr.Code)
}

func TestRecordCallUnparseableFollowUpClearsIt(t *testing.T) {
	ctx := context.Background()
	mockContacts := new(MockContactRepository)
	mockLog := new(MockCallLogRepository)

	contact := &entity.Contact{ID: "c-6", Status: entity.StatusCalled}
	mockContacts.On("FindByID", ctx, "c-6").Return(contact, nil)
	mockLog.On("Append", ctx, mock.Anything).Return(nil)
	mockContacts.On("ApplyCallResult", ctx, "c-6", mock.MatchedBy(func(p entity.CallResultPatch) bool {
		return p.NextCallAt == nil
	})).Return(contact, nil)

	uc := usecase.NewRecordCallUseCase(mockContacts, mockLog)
	_, err := uc.Execute(ctx, usecase.RecordCallInput{
		ContactID:  "c-6",
		UserID:     "u-1",
		Outcome:    "connected",
		NextCallAt: "tomorrow around lunch",
	})

	assert.NoError(t, err)
	mockContacts.AssertExpectations(t)
}
