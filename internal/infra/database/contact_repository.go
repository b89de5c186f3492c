package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = `
	id, name, phone, email, company, status, assigned_to_user_id, notes,
	client_potential, employment_status, sales_experience,
	last_outcome, last_attitude, last_notes, last_call_at,
	next_call_at, created_at, updated_at`

func (r *ContactRepository) List(ctx context.Context, scope entity.VisibilityScope) ([]entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	args := []any{}
	if !scope.All {
		query += ` WHERE assigned_to_user_id = $1`
		args = append(args, scope.AssignedToUserID)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Upsert creates the contact when it has no id yet, otherwise merges
// the supplied fields onto the existing row. Empty strings and nil
// pointers keep the stored value; explicit clears go through
// UpdateStatus and ApplyCallResult.
func (r *ContactRepository) Upsert(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO contacts (
			id, name, phone, email, company, status, assigned_to_user_id, notes,
			client_potential, employment_status, sales_experience,
			last_outcome, last_attitude, last_notes, last_call_at, next_call_at,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			name                = COALESCE(NULLIF(EXCLUDED.name, ''), contacts.name),
			phone               = COALESCE(NULLIF(EXCLUDED.phone, ''), contacts.phone),
			email               = COALESCE(NULLIF(EXCLUDED.email, ''), contacts.email),
			company             = COALESCE(NULLIF(EXCLUDED.company, ''), contacts.company),
			status              = COALESCE(NULLIF(EXCLUDED.status, ''), contacts.status),
			assigned_to_user_id = COALESCE(NULLIF(EXCLUDED.assigned_to_user_id, ''), contacts.assigned_to_user_id),
			notes               = COALESCE(NULLIF(EXCLUDED.notes, ''), contacts.notes),
			client_potential    = COALESCE(EXCLUDED.client_potential, contacts.client_potential),
			employment_status   = COALESCE(EXCLUDED.employment_status, contacts.employment_status),
			sales_experience    = COALESCE(EXCLUDED.sales_experience, contacts.sales_experience),
			last_outcome        = COALESCE(EXCLUDED.last_outcome, contacts.last_outcome),
			last_attitude       = COALESCE(EXCLUDED.last_attitude, contacts.last_attitude),
			last_notes          = COALESCE(EXCLUDED.last_notes, contacts.last_notes),
			last_call_at        = COALESCE(EXCLUDED.last_call_at, contacts.last_call_at),
			next_call_at        = CASE WHEN COALESCE(NULLIF(EXCLUDED.status, ''), contacts.status) = 'lost'
			                           THEN NULL
			                           ELSE COALESCE(EXCLUDED.next_call_at, contacts.next_call_at)
			                      END,
			updated_at          = NOW()
		RETURNING `+contactColumns,
		c.ID,
		c.Name,
		c.Phone,
		c.Email,
		c.Company,
		string(c.Status),
		c.AssignedToUserID,
		c.Notes,
		c.ClientPotential,
		c.EmploymentStatus,
		c.SalesExperience,
		c.LastOutcome,
		c.LastAttitude,
		c.LastNotes,
		c.LastCallAt,
		c.NextCallAt,
	)

	return scanContact(row)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	return err
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status entity.ContactStatus, clearNextCall bool) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE contacts
		SET status = $2,
		    next_call_at = CASE WHEN $3 THEN NULL ELSE next_call_at END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+contactColumns,
		id, string(status), clearNextCall,
	)

	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyCallResult writes the call's side effects explicitly: nil
// pointers here mean NULL, including clearing next_call_at.
func (r *ContactRepository) ApplyCallResult(ctx context.Context, id string, patch entity.CallResultPatch) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE contacts
		SET last_outcome      = $2,
		    last_attitude     = $3,
		    last_notes        = $4,
		    employment_status = $5,
		    sales_experience  = $6,
		    client_potential  = $7,
		    next_call_at      = $8,
		    updated_at        = NOW()
		WHERE id = $1
		RETURNING `+contactColumns,
		id,
		patch.LastOutcome,
		patch.LastAttitude,
		patch.LastNotes,
		patch.EmploymentStatus,
		patch.SalesExperience,
		patch.ClientPotential,
		patch.NextCallAt,
	)

	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var c entity.Contact
	var status string
	var email, company, notes sql.NullString
	var potential, employment, experience sql.NullString
	var lastOutcome, lastAttitude, lastNotes sql.NullString
	var lastCallAt, nextCallAt sql.NullTime

	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&email,
		&company,
		&status,
		&c.AssignedToUserID,
		&notes,
		&potential,
		&employment,
		&experience,
		&lastOutcome,
		&lastAttitude,
		&lastNotes,
		&lastCallAt,
		&nextCallAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = entity.ContactStatus(status)
	c.Email = email.String
	c.Company = company.String
	c.Notes = notes.String
	c.ClientPotential = nullStringPtr(potential)
	c.EmploymentStatus = nullStringPtr(employment)
	c.SalesExperience = nullStringPtr(experience)
	c.LastOutcome = nullStringPtr(lastOutcome)
	c.LastAttitude = nullStringPtr(lastAttitude)
	c.LastNotes = nullStringPtr(lastNotes)
	c.LastCallAt = nullTimePtr(lastCallAt)
	c.NextCallAt = nullTimePtr(nextCallAt)

	return &c, nil
}
