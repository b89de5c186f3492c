package database

import (
	"context"
	"database/sql"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

type RecordRepository struct {
	DB *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{DB: db}
}

func (r *RecordRepository) List(ctx context.Context, f entity.RecordFilter) ([]entity.Record, error) {
	if f.From == "" {
		f.From = "0001-01-01"
	}
	if f.To == "" {
		f.To = "9999-12-31"
	}

	query := `
		SELECT user_id, to_char(date, 'YYYY-MM-DD'), present, minutes, successful_calls, accounts
		FROM records
		WHERE date >= $1 AND date <= $2`
	args := []any{f.From, f.To}
	if f.UserID != "" {
		query += ` AND user_id = $3`
		args = append(args, f.UserID)
	}
	query += ` ORDER BY date DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Record
	for rows.Next() {
		var rec entity.Record
		if err := rows.Scan(&rec.UserID, &rec.Date, &rec.Present, &rec.Minutes, &rec.SuccessfulCalls, &rec.Accounts); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordRepository) Upsert(ctx context.Context, rec *entity.Record) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO records (user_id, date, present, minutes, successful_calls, accounts)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date)
		DO UPDATE SET
			present = EXCLUDED.present,
			minutes = EXCLUDED.minutes,
			successful_calls = EXCLUDED.successful_calls,
			accounts = EXCLUDED.accounts
	`, rec.UserID, rec.Date, rec.Present, rec.Minutes, rec.SuccessfulCalls, rec.Accounts)
	return err
}

func (r *RecordRepository) Delete(ctx context.Context, userID, date string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM records WHERE user_id = $1 AND date = $2`, userID, date)
	return err
}
