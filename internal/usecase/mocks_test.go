package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) List(ctx context.Context, scope entity.VisibilityScope) ([]entity.Contact, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Upsert(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) UpdateStatus(ctx context.Context, id string, status entity.ContactStatus, clearNextCall bool) (*entity.Contact, error) {
	args := m.Called(ctx, id, status, clearNextCall)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) ApplyCallResult(ctx context.Context, id string, patch entity.CallResultPatch) (*entity.Contact, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

// MockCallLogRepository
type MockCallLogRepository struct {
	mock.Mock
}

func (m *MockCallLogRepository) Append(ctx context.Context, e *entity.CallLogEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockCallLogRepository) ListByContact(ctx context.Context, contactID string) ([]entity.CallLogEntry, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CallLogEntry), args.Error(1)
}

// MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context) ([]entity.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockRecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) List(ctx context.Context, f entity.RecordFilter) ([]entity.Record, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Record), args.Error(1)
}

func (m *MockRecordRepository) Upsert(ctx context.Context, r *entity.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, userID, date string) error {
	args := m.Called(ctx, userID, date)
	return args.Error(0)
}

// MockSettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, s *entity.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockChangeRequestRepository
type MockChangeRequestRepository struct {
	mock.Mock
}

func (m *MockChangeRequestRepository) Create(ctx context.Context, r *entity.ProfileChangeRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockChangeRequestRepository) FindByID(ctx context.Context, id string) (*entity.ProfileChangeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProfileChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) ListByUser(ctx context.Context, userID string) ([]entity.ProfileChangeRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProfileChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) ListPending(ctx context.Context) ([]entity.ProfileChangeRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProfileChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) SetReview(ctx context.Context, id, status string, note *string, reviewedBy string, reviewedAt time.Time) error {
	args := m.Called(ctx, id, status, note, reviewedBy, reviewedAt)
	return args.Error(0)
}

// MockCallGateway
type MockCallGateway struct {
	mock.Mock
}

func (m *MockCallGateway) CreateCall(ctx context.Context, agentID, calleeNumber string) error {
	args := m.Called(ctx, agentID, calleeNumber)
	return args.Error(0)
}
