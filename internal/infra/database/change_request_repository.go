package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

type ChangeRequestRepository struct {
	DB *sql.DB
}

func NewChangeRequestRepository(db *sql.DB) *ChangeRequestRepository {
	return &ChangeRequestRepository{DB: db}
}

const changeRequestColumns = `
	id, user_id, kind, payload, status, note, reviewed_by, reviewed_at, created_at`

func (r *ChangeRequestRepository) Create(ctx context.Context, req *entity.ProfileChangeRequest) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO profile_change_requests (id, user_id, kind, payload, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`, req.ID, req.UserID, req.Kind, req.Payload, req.Status).Scan(&req.CreatedAt)
}

func (r *ChangeRequestRepository) FindByID(ctx context.Context, id string) (*entity.ProfileChangeRequest, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+changeRequestColumns+` FROM profile_change_requests WHERE id = $1`, id)
	req, err := scanChangeRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *ChangeRequestRepository) ListByUser(ctx context.Context, userID string) ([]entity.ProfileChangeRequest, error) {
	return r.list(ctx, `WHERE user_id = $1`, userID)
}

func (r *ChangeRequestRepository) ListPending(ctx context.Context) ([]entity.ProfileChangeRequest, error) {
	return r.list(ctx, `WHERE status = $1`, entity.RequestPending)
}

func (r *ChangeRequestRepository) list(ctx context.Context, where string, arg any) ([]entity.ProfileChangeRequest, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+changeRequestColumns+`
		FROM profile_change_requests `+where+`
		ORDER BY created_at DESC
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.ProfileChangeRequest
	for rows.Next() {
		req, err := scanChangeRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (r *ChangeRequestRepository) SetReview(ctx context.Context, id, status string, note *string, reviewedBy string, reviewedAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE profile_change_requests
		SET status = $2, note = $3, reviewed_by = $4, reviewed_at = $5
		WHERE id = $1
	`, id, status, note, reviewedBy, reviewedAt)
	return err
}

func scanChangeRequest(row rowScanner) (*entity.ProfileChangeRequest, error) {
	var req entity.ProfileChangeRequest
	var note, reviewedBy sql.NullString
	var reviewedAt sql.NullTime

	if err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Kind,
		&req.Payload,
		&req.Status,
		&note,
		&reviewedBy,
		&reviewedAt,
		&req.CreatedAt,
	); err != nil {
		return nil, err
	}

	req.Note = nullStringPtr(note)
	req.ReviewedBy = nullStringPtr(reviewedBy)
	req.ReviewedAt = nullTimePtr(reviewedAt)
	return &req, nil
}
