package usecase

import (
	"strings"
	"time"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// normalizeOptional maps "" and whitespace to nil so empty form fields
// are never stored as a distinct "set" state.
func normalizeOptional(s string) *string {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return &v
}

// parseNextCallAt treats absent or unparseable input as "no follow-up",
// never as an error.
func parseNextCallAt(raw string) *time.Time {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// IsLikelyE164 accepts +<8..15 digits>, the shape CloudTalk expects.
func IsLikelyE164(phone string) bool {
	p := strings.TrimSpace(phone)
	if !strings.HasPrefix(p, "+") {
		return false
	}
	digits := p[1:]
	if len(digits) < 8 || len(digits) > 15 {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func validateOutcome(raw string) (entity.CallOutcome, *ValidationError) {
	o := entity.CallOutcome(strings.TrimSpace(raw))
	if !o.Valid() {
		return "", &ValidationError{"outcome", "unknown value: " + raw}
	}
	return o, nil
}

func validateAttitude(raw string) (*string, *ValidationError) {
	v := normalizeOptional(raw)
	if v == nil {
		return nil, nil
	}
	if !entity.CallAttitude(*v).Valid() {
		return nil, &ValidationError{"attitude", "unknown value: " + raw}
	}
	return v, nil
}

func validatePotential(raw string) (*string, *ValidationError) {
	v := normalizeOptional(raw)
	if v == nil {
		return nil, nil
	}
	if !entity.ClientPotential(*v).Valid() {
		return nil, &ValidationError{"client_potential", "unknown value: " + raw}
	}
	return v, nil
}
