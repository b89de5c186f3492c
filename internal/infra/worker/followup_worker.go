package worker

import (
	"context"
	"log"
	"time"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
	"github.com/mkovalcik/mcrm-backend/internal/infra/cache"
	"github.com/mkovalcik/mcrm-backend/internal/infra/http/middleware"
	"github.com/mkovalcik/mcrm-backend/internal/infra/notify"
)

// FollowUpWorker periodically scans contacts for follow-ups arriving
// within the notification horizon and raises at most one reminder per
// (contact, scheduled time) stamp, addressed to the assignee.
//
// Best-effort: a follow-up whose window elapsed entirely between
// ticks is skipped, never notified retroactively.
type FollowUpWorker struct {
	contacts entity.ContactRepositoryInterface
	profiles entity.ProfileRepositoryInterface
	dedup    cache.DedupStore
	notifier notify.Notifier

	horizon      time.Duration
	tickInterval time.Duration
	now          func() time.Time
}

func NewFollowUpWorker(
	contacts entity.ContactRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	dedup cache.DedupStore,
	notifier notify.Notifier,
) *FollowUpWorker {
	return &FollowUpWorker{
		contacts:     contacts,
		profiles:     profiles,
		dedup:        dedup,
		notifier:     notifier,
		horizon:      10 * time.Minute,
		tickInterval: 30 * time.Second,
		now:          time.Now,
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	log.Printf("🕒 follow-up worker started (horizon=%s, tick=%s)", w.horizon, w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ follow-up worker stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one scan. Errors never abort the loop: a reminder is a
// best-effort local alert, not durable state.
func (w *FollowUpWorker) Tick(ctx context.Context) {
	now := w.now()

	contacts, err := w.contacts.List(ctx, entity.ScopeAll())
	if err != nil {
		log.Printf("❌ follow-up scan failed: %v", err)
		return
	}

	var emails map[string]string

	for _, c := range contacts {
		if !Due(c, now, w.horizon) {
			continue
		}

		stamp := Stamp(c)
		seen, err := w.dedup.Seen(ctx, c.AssignedToUserID, stamp)
		if err != nil {
			log.Printf("⚠️ dedup lookup failed for %s: %v", stamp, err)
			continue
		}
		if seen {
			continue
		}

		if emails == nil {
			emails = w.loadEmails(ctx)
		}

		reminder := notify.Reminder{
			ContactID:   c.ID,
			ContactName: c.Name,
			Phone:       c.Phone,
			UserID:      c.AssignedToUserID,
			UserEmail:   emails[c.AssignedToUserID],
			NextCallAt:  *c.NextCallAt,
		}

		// Sink failures are non-fatal; the stamp is still recorded so
		// the next tick does not retry forever.
		_ = w.notifier.Notify(ctx, reminder)
		middleware.RecordReminderEmitted()

		if err := w.dedup.MarkNotified(ctx, c.AssignedToUserID, stamp, now); err != nil {
			log.Printf("⚠️ failed to record stamp %s: %v", stamp, err)
		}
	}
}

func (w *FollowUpWorker) loadEmails(ctx context.Context) map[string]string {
	out := map[string]string{}
	profiles, err := w.profiles.List(ctx)
	if err != nil {
		log.Printf("⚠️ failed to load profiles for reminders: %v", err)
		return out
	}
	for _, p := range profiles {
		out[p.ID] = p.Email
	}
	return out
}

// Due reports whether the contact's follow-up falls inside the
// notification window: strictly in the future, at most horizon away.
// delta == 0 is already missed, not due.
func Due(c entity.Contact, now time.Time, horizon time.Duration) bool {
	if c.NextCallAt == nil || c.IsLost() {
		return false
	}
	delta := c.NextCallAt.Sub(now)
	return delta > 0 && delta <= horizon
}

// Stamp keys dedup by contact and the exact scheduled time, so moving
// a follow-up makes the contact notifiable again for the new time.
func Stamp(c entity.Contact) string {
	return c.ID + "_" + c.NextCallAt.UTC().Format(time.RFC3339Nano)
}
