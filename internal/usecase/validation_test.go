package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseNextCallAtAcceptedLayouts(t *testing.T) {
	got := parseNextCallAt("2026-09-01T10:30:00Z")
	assert.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), got.UTC())

	// datetime-local input, no zone
	got = parseNextCallAt("2026-09-01T10:30")
	assert.NotNil(t, got)
	assert.Equal(t, 10, got.Hour())

	got = parseNextCallAt("2026-09-01T10:30:00.123456789Z")
	assert.NotNil(t, got)
}

func TestParseNextCallAtGarbageMeansNoFollowUp(t *testing.T) {
	assert.Nil(t, parseNextCallAt(""))
	assert.Nil(t, parseNextCallAt("   "))
	assert.Nil(t, parseNextCallAt("next tuesday"))
	assert.Nil(t, parseNextCallAt("2026-99-01T10:30"))
}

func TestIsLikelyE164(t *testing.T) {
	assert.True(t, IsLikelyE164("+421901234567"))
	assert.True(t, IsLikelyE164("+12025550123"))
	assert.True(t, IsLikelyE164("  +421901234567  "))

	assert.False(t, IsLikelyE164("421901234567"))   // no plus
	assert.False(t, IsLikelyE164("+421 901 234"))   // spaces inside
	assert.False(t, IsLikelyE164("+1234567"))       // 7 digits
	assert.False(t, IsLikelyE164("+1234567890123456")) // 16 digits
	assert.False(t, IsLikelyE164(""))
}

func TestNormalizeOptional(t *testing.T) {
	assert.Nil(t, normalizeOptional(""))
	assert.Nil(t, normalizeOptional("   "))

	v := normalizeOptional(" hello ")
	assert.NotNil(t, v)
	assert.Equal(t, "hello", *v)
}

func TestValidateAttitudeOptional(t *testing.T) {
	v, err := validateAttitude("")
	assert.Nil(t, err)
	assert.Nil(t, v)

	v, err = validateAttitude("no_interest")
	assert.Nil(t, err)
	assert.Equal(t, "no_interest", *v)

	_, err = validateAttitude("angry")
	assert.NotNil(t, err)
}
