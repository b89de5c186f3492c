package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
	"github.com/mkovalcik/mcrm-backend/internal/infra/cache"
	"github.com/mkovalcik/mcrm-backend/internal/infra/notify"
)

type stubContactRepo struct {
	contacts []entity.Contact
}

func (s *stubContactRepo) List(context.Context, entity.VisibilityScope) ([]entity.Contact, error) {
	return s.contacts, nil
}
func (s *stubContactRepo) FindByID(context.Context, string) (*entity.Contact, error) {
	return nil, nil
}
func (s *stubContactRepo) Upsert(context.Context, *entity.Contact) (*entity.Contact, error) {
	return nil, nil
}
func (s *stubContactRepo) Delete(context.Context, string) error { return nil }
func (s *stubContactRepo) UpdateStatus(context.Context, string, entity.ContactStatus, bool) (*entity.Contact, error) {
	return nil, nil
}
func (s *stubContactRepo) ApplyCallResult(context.Context, string, entity.CallResultPatch) (*entity.Contact, error) {
	return nil, nil
}

type stubProfileRepo struct{}

func (stubProfileRepo) FindByID(context.Context, string) (*entity.Profile, error) { return nil, nil }
func (stubProfileRepo) List(context.Context) ([]entity.Profile, error) {
	return []entity.Profile{{ID: "u-1", Email: "u1@example.com"}}, nil
}
func (stubProfileRepo) Create(context.Context, *entity.Profile) error { return nil }
func (stubProfileRepo) Update(context.Context, *entity.Profile) error { return nil }

type recordingNotifier struct {
	sent []notify.Reminder
}

func (r *recordingNotifier) Notify(_ context.Context, rem notify.Reminder) error {
	r.sent = append(r.sent, rem)
	return nil
}

func newTestWorker(contacts []entity.Contact, now time.Time) (*FollowUpWorker, *recordingNotifier) {
	sink := &recordingNotifier{}
	w := NewFollowUpWorker(
		&stubContactRepo{contacts: contacts},
		stubProfileRepo{},
		cache.NewMemoryDedupStore(time.Hour),
		sink,
	)
	w.now = func() time.Time { return now }
	return w, sink
}

func followUp(id string, next time.Time, status entity.ContactStatus) entity.Contact {
	return entity.Contact{
		ID:               id,
		Name:             "Contact " + id,
		Phone:            "+421900000001",
		Status:           status,
		AssignedToUserID: "u-1",
		NextCallAt:       &next,
	}
}

func TestDueWindowBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	horizon := 10 * time.Minute

	inWindow := followUp("a", now.Add(5*time.Minute), entity.StatusCalled)
	atHorizon := followUp("b", now.Add(horizon), entity.StatusCalled)
	justPast := followUp("c", now, entity.StatusCalled)
	beyond := followUp("d", now.Add(horizon+time.Second), entity.StatusCalled)
	lost := followUp("e", now.Add(5*time.Minute), entity.StatusLost)

	assert.True(t, Due(inWindow, now, horizon))
	assert.True(t, Due(atHorizon, now, horizon)) // inclusive upper bound
	assert.False(t, Due(justPast, now, horizon)) // delta == 0 is already missed
	assert.False(t, Due(beyond, now, horizon))
	assert.False(t, Due(lost, now, horizon))
	assert.False(t, Due(entity.Contact{ID: "f"}, now, horizon))
}

func TestTickNotifiesOncePerStamp(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	contacts := []entity.Contact{followUp("c-1", now.Add(3*time.Minute), entity.StatusCalled)}

	w, sink := newTestWorker(contacts, now)

	w.Tick(context.Background())
	w.Tick(context.Background())
	w.Tick(context.Background())

	assert.Len(t, sink.sent, 1)
	assert.Equal(t, "c-1", sink.sent[0].ContactID)
	assert.Equal(t, "u1@example.com", sink.sent[0].UserEmail)
}

func TestTickNotifiesAgainWhenFollowUpMoves(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	repo := &stubContactRepo{contacts: []entity.Contact{followUp("c-1", now.Add(3*time.Minute), entity.StatusCalled)}}

	sink := &recordingNotifier{}
	w := NewFollowUpWorker(repo, stubProfileRepo{}, cache.NewMemoryDedupStore(time.Hour), sink)
	w.now = func() time.Time { return now }

	w.Tick(context.Background())

	// Reschedule: same contact, new time, new stamp.
	repo.contacts = []entity.Contact{followUp("c-1", now.Add(8*time.Minute), entity.StatusCalled)}
	w.Tick(context.Background())

	assert.Len(t, sink.sent, 2)
}

func TestStampKeyedByExactScheduledTime(t *testing.T) {
	next := time.Date(2026, 8, 29, 12, 3, 0, 123456789, time.FixedZone("CEST", 2*3600))
	c := followUp("c-1", next, entity.StatusCalled)

	assert.Equal(t, "c-1_"+next.UTC().Format(time.RFC3339Nano), Stamp(c))

	moved := followUp("c-1", next.Add(time.Minute), entity.StatusCalled)
	assert.NotEqual(t, Stamp(c), Stamp(moved))
}
