package database

import (
	"context"
	"database/sql"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

const profileColumns = `
	id, email, name, alias, avatar_url, role, base_salary, advances,
	active, cloudtalk_agent_id, created_at`

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]entity.Profile, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO profiles (id, email, name, alias, avatar_url, role, base_salary, advances, active, cloudtalk_agent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NOW())
	`,
		p.ID, p.Email, p.Name, p.Alias, p.AvatarURL, p.Role,
		p.BaseSalary, p.Advances, p.Active, p.CloudTalkAgentID,
	)
	return err
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE profiles
		SET email = $2,
		    name = $3,
		    alias = $4,
		    avatar_url = $5,
		    role = $6,
		    base_salary = $7,
		    advances = $8,
		    active = $9,
		    cloudtalk_agent_id = NULLIF($10, '')
		WHERE id = $1
	`,
		p.ID, p.Email, p.Name, p.Alias, p.AvatarURL, p.Role,
		p.BaseSalary, p.Advances, p.Active, p.CloudTalkAgentID,
	)
	return err
}

func scanProfile(row rowScanner) (*entity.Profile, error) {
	var p entity.Profile
	var alias, avatar, agentID sql.NullString

	if err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&alias,
		&avatar,
		&p.Role,
		&p.BaseSalary,
		&p.Advances,
		&p.Active,
		&agentID,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Alias = nullStringPtr(alias)
	p.AvatarURL = nullStringPtr(avatar)
	p.CloudTalkAgentID = agentID.String
	return &p, nil
}
