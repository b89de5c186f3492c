package entity

import "context"

// Settings is the single global configuration row (id = "global").
type Settings struct {
	ID          string          `json:"id"`
	CloudTalk   CloudTalkConfig `json:"cloudtalk"`
	SalaryRules SalaryRules     `json:"salary_rules"`
}

type CloudTalkConfig struct {
	Enabled    bool   `json:"enabled"`
	BackendURL string `json:"backendUrl,omitempty"`
}

type SalaryRules struct {
	BonusEnabled             bool    `json:"bonusEnabled"`
	MinutesThreshold         int     `json:"minutesThreshold"`
	MinutesBonus             float64 `json:"minutesBonus"`
	SuccessfulCallsThreshold int     `json:"successfulCallsThreshold"`
	SuccessfulCallsBonus     float64 `json:"successfulCallsBonus"`
	AccountsThreshold        int     `json:"accountsThreshold"`
	AccountsBonus            float64 `json:"accountsBonus"`
}

// DefaultSalaryRules mirrors the fallback used when no rules have been
// saved yet.
func DefaultSalaryRules() SalaryRules {
	return SalaryRules{
		BonusEnabled:             true,
		MinutesThreshold:         1200,
		MinutesBonus:             50,
		SuccessfulCallsThreshold: 60,
		SuccessfulCallsBonus:     100,
		AccountsThreshold:        10,
		AccountsBonus:            150,
	}
}

type SettingsRepositoryInterface interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, s *Settings) error
}
