package notify

import (
	"context"
	"log"
	"time"
)

// Reminder is one due follow-up surfaced to the assignee. Delivery is
// a platform concern; sinks receive the composed title/body.
type Reminder struct {
	ContactID   string    `json:"contact_id"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	UserID      string    `json:"user_id"`
	UserEmail   string    `json:"user_email,omitempty"`
	NextCallAt  time.Time `json:"next_call_at"`
}

func (r Reminder) Title() string {
	return "Follow-up: time to call"
}

func (r Reminder) Body() string {
	name := r.ContactName
	if name == "" {
		name = "(no name)"
	}
	return name + " • " + r.Phone + " • " + r.NextCallAt.Local().Format("2006-01-02 15:04")
}

type Notifier interface {
	Notify(ctx context.Context, reminder Reminder) error
}

// LogNotifier is the always-on sink; also the whole notification
// surface when neither rabbitmq nor mail is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, r Reminder) error {
	log.Printf("🔔 %s: %s", r.Title(), r.Body())
	return nil
}

// MultiNotifier fans a reminder out to every sink. A failing sink is
// logged and never aborts the remaining sinks.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, r Reminder) error {
	for _, n := range m {
		if err := n.Notify(ctx, r); err != nil {
			log.Printf("⚠️ reminder sink failed: %v", err)
		}
	}
	return nil
}
