package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

// SettingsRepository stores the single global row; the cloudtalk and
// salary_rules documents live in jsonb columns.
type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	var cloudtalkRaw, rulesRaw []byte

	err := r.DB.QueryRowContext(ctx, `
		SELECT cloudtalk, salary_rules FROM settings WHERE id = 'global'
	`).Scan(&cloudtalkRaw, &rulesRaw)
	if err == sql.ErrNoRows {
		return &entity.Settings{ID: "global", SalaryRules: entity.DefaultSalaryRules()}, nil
	}
	if err != nil {
		return nil, err
	}

	s := &entity.Settings{ID: "global", SalaryRules: entity.DefaultSalaryRules()}
	if len(cloudtalkRaw) > 0 {
		if err := json.Unmarshal(cloudtalkRaw, &s.CloudTalk); err != nil {
			return nil, err
		}
	}
	if len(rulesRaw) > 0 {
		if err := json.Unmarshal(rulesRaw, &s.SalaryRules); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *entity.Settings) error {
	cloudtalkRaw, err := json.Marshal(s.CloudTalk)
	if err != nil {
		return err
	}
	rulesRaw, err := json.Marshal(s.SalaryRules)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO settings (id, cloudtalk, salary_rules)
		VALUES ('global', $1, $2)
		ON CONFLICT (id)
		DO UPDATE SET cloudtalk = EXCLUDED.cloudtalk, salary_rules = EXCLUDED.salary_rules
	`, cloudtalkRaw, rulesRaw)
	return err
}
