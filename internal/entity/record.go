package entity

import (
	"context"
	"errors"
	"time"
)

// Record is one day of attendance and KPI numbers for one employee.
// Keyed by (user_id, date); upserts overwrite the day.
type Record struct {
	UserID          string `json:"user_id"`
	Date            string `json:"date"` // YYYY-MM-DD
	Present         bool   `json:"present"`
	Minutes         int    `json:"minutes"`
	SuccessfulCalls int    `json:"successful_calls"`
	Accounts        int    `json:"accounts"`
}

func (r *Record) Validate() error {
	if r.UserID == "" {
		return errors.New("user_id is required")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	if r.Minutes < 0 || r.SuccessfulCalls < 0 || r.Accounts < 0 {
		return errors.New("kpi values must not be negative")
	}
	return nil
}

type RecordFilter struct {
	UserID string // empty means all users
	From   string // YYYY-MM-DD inclusive
	To     string // YYYY-MM-DD inclusive
}

type RecordRepositoryInterface interface {
	List(ctx context.Context, f RecordFilter) ([]Record, error)
	Upsert(ctx context.Context, r *Record) error
	Delete(ctx context.Context, userID, date string) error
}
