package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

// CallLogRepository is insert-only: entries are historical facts and
// are never updated or deleted.
type CallLogRepository struct {
	DB *sql.DB
}

func NewCallLogRepository(db *sql.DB) *CallLogRepository {
	return &CallLogRepository{DB: db}
}

func (r *CallLogRepository) Append(ctx context.Context, entry *entity.CallLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO contact_calls (id, contact_id, user_id, outcome, attitude, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NOW())
		RETURNING created_at
	`,
		entry.ID,
		entry.ContactID,
		entry.UserID,
		string(entry.Outcome),
		entry.Attitude,
		entry.Notes,
	).Scan(&entry.CreatedAt)
}

func (r *CallLogRepository) ListByContact(ctx context.Context, contactID string) ([]entity.CallLogEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, contact_id, user_id, outcome, attitude, notes, created_at
		FROM contact_calls
		WHERE contact_id = $1
		ORDER BY created_at DESC
	`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.CallLogEntry
	for rows.Next() {
		var e entity.CallLogEntry
		var outcome string
		var attitude, notes sql.NullString

		if err := rows.Scan(&e.ID, &e.ContactID, &e.UserID, &outcome, &attitude, &notes, &e.CreatedAt); err != nil {
			return nil, err
		}

		e.Outcome = entity.CallOutcome(outcome)
		e.Attitude = nullStringPtr(attitude)
		e.Notes = notes.String
		out = append(out, e)
	}
	return out, rows.Err()
}
