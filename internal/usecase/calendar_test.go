package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
	"github.com/mkovalcik/mcrm-backend/internal/usecase"
)

func at(t time.Time) *time.Time { return &t }

func TestGroupByDayBucketsAndSortsAscending(t *testing.T) {
	day1 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	day1Later := time.Date(2026, 9, 1, 15, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 9, 2, 8, 0, 0, 0, time.Local)

	contacts := []entity.Contact{
		{ID: "b", NextCallAt: at(day1Later), Status: entity.StatusCalled},
		{ID: "c", NextCallAt: at(day2), Status: entity.StatusInProgress},
		{ID: "a", NextCallAt: at(day1), Status: entity.StatusNew},
	}

	days := usecase.GroupByDay(contacts)

	assert.Len(t, days, 2)
	assert.Equal(t, "2026-09-01", days[0].Day)
	assert.Equal(t, []string{"a", "b"}, []string{days[0].Contacts[0].ID, days[0].Contacts[1].ID})
	assert.Equal(t, "2026-09-02", days[1].Day)
}

func TestGroupByDaySkipsLostAndUnscheduled(t *testing.T) {
	soon := time.Now().Add(time.Hour)

	contacts := []entity.Contact{
		{ID: "lost", NextCallAt: at(soon), Status: entity.StatusLost},
		{ID: "unscheduled", Status: entity.StatusNew},
		{ID: "kept", NextCallAt: at(soon), Status: entity.StatusWon},
	}

	days := usecase.GroupByDay(contacts)

	assert.Len(t, days, 1)
	assert.Len(t, days[0].Contacts, 1)
	assert.Equal(t, "kept", days[0].Contacts[0].ID)
}

func TestGroupByDayEmptyInput(t *testing.T) {
	assert.Empty(t, usecase.GroupByDay(nil))
}
