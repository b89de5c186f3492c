package cache

import (
	"context"
	"time"
)

// DedupStore remembers which (contact, follow-up time) stamps a user
// has already been reminded about, so re-scanning the same due
// follow-up never alerts twice. Stamps are value-keyed: rescheduling
// a follow-up produces a new stamp and becomes notifiable again.
type DedupStore interface {
	Seen(ctx context.Context, userID, stamp string) (bool, error)
	MarkNotified(ctx context.Context, userID, stamp string, at time.Time) error
}
