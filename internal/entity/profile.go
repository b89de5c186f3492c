package entity

import (
	"context"
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultBaseSalary is assigned when a profile is created on first
// login and an admin has not set a salary yet.
const DefaultBaseSalary = 700

type Profile struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	Name             string  `json:"name"`
	Alias            *string `json:"alias,omitempty"`
	AvatarURL        *string `json:"avatar_url,omitempty"`
	Role             string  `json:"role"`
	BaseSalary       float64 `json:"base_salary"`
	Advances         float64 `json:"advances"`
	Active           bool    `json:"active"`
	CloudTalkAgentID string  `json:"cloudtalk_agent_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Profile) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Email == "" {
		return errors.New("email is required")
	}
	if p.Role != RoleUser && p.Role != RoleAdmin {
		return errors.New("unknown role: " + p.Role)
	}
	return nil
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// DisplayName prefers the approved alias over the real name.
func (p *Profile) DisplayName() string {
	if p.Alias != nil && *p.Alias != "" {
		return *p.Alias
	}
	return p.Name
}

type ProfileRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
}
