package usecase

import (
	"context"
	"sort"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

// CalendarUseCase is a read-only projection: all non-lost contacts
// with a pending follow-up, ascending by follow-up time, bucketed by
// local calendar day. It mutates nothing.
type CalendarUseCase struct {
	Contacts entity.ContactRepositoryInterface
}

func NewCalendarUseCase(contacts entity.ContactRepositoryInterface) *CalendarUseCase {
	return &CalendarUseCase{Contacts: contacts}
}

type CalendarDay struct {
	Day      string           `json:"day"` // YYYY-MM-DD, local time
	Contacts []entity.Contact `json:"contacts"`
}

func (uc *CalendarUseCase) Execute(ctx context.Context, scope entity.VisibilityScope) ([]CalendarDay, error) {
	contacts, err := uc.Contacts.List(ctx, scope)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list contacts: " + err.Error()}
	}
	return GroupByDay(contacts), nil
}

// GroupByDay filters and buckets pending follow-ups. Exported as a
// pure function so it can run over an already-fetched listing.
func GroupByDay(contacts []entity.Contact) []CalendarDay {
	var pending []entity.Contact
	for _, c := range contacts {
		if c.NextCallAt == nil || c.IsLost() {
			continue
		}
		pending = append(pending, c)
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].NextCallAt.Before(*pending[j].NextCallAt)
	})

	var days []CalendarDay
	for _, c := range pending {
		key := c.NextCallAt.Local().Format("2006-01-02")
		if n := len(days); n > 0 && days[n-1].Day == key {
			days[n-1].Contacts = append(days[n-1].Contacts, c)
			continue
		}
		days = append(days, CalendarDay{Day: key, Contacts: []entity.Contact{c}})
	}
	return days
}
