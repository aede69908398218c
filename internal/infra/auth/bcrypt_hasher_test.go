package auth

import (
	"testing"

	"agora/config"
	domainerrors "agora/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newFastHasher() *bcryptHasher {
	return NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}).(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newFastHasher()

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)
	assert.NotEqual(t, "StrongPass123!", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newFastHasher()
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "not-a-bcrypt-hash"))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "no auth section", cfg: &config.Config{}},
		{name: "cost too high", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(tt.cfg).(*bcryptHasher)
			assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
		})
	}
}

func TestPasswordPolicy_Defaults(t *testing.T) {
	policy := NewPasswordPolicy(nil)

	assert.NoError(t, policy.Validate("abc123"))
	assert.ErrorIs(t, policy.Validate("abc12"), domainerrors.ErrPasswordStrength)
	assert.ErrorIs(t, policy.Validate("Password"), domainerrors.ErrPasswordForbiddenWords)
}

func TestPasswordPolicy_StrengthFlags(t *testing.T) {
	policy := NewPasswordPolicy(&config.Config{PasswordStrength: &config.PasswordStrengthConfig{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}})

	weak := []string{
		"Sh0rt!",       // too short
		"PASSWORD123!", // no lowercase
		"password123!", // no uppercase
		"PasswordABC!", // no number
		"Password1234", // no special character
	}
	for _, password := range weak {
		assert.ErrorIs(t, policy.Validate(password), domainerrors.ErrPasswordStrength, password)
	}

	assert.NoError(t, policy.Validate("StrongPass123!"))
}
