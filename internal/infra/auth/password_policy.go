package auth

import (
	"fmt"
	"strings"
	"unicode"

	"agora/config"
	domainerrors "agora/internal/domain/errors"
)

const defaultMinPasswordLength = 6

// bcrypt ignores everything past 72 bytes.
const bcryptMaxPasswordLength = 72

var forbiddenPasswords = []string{"password", "123456", "12345678", "qwerty", "letmein", "agora"}

// PasswordPolicy checks new passwords against the configured strength rules.
type PasswordPolicy struct {
	cfg config.PasswordStrengthConfig
}

// NewPasswordPolicy builds the policy from config. Only the minimum length is enforced by default.
func NewPasswordPolicy(cfg *config.Config) *PasswordPolicy {
	policy := &PasswordPolicy{}
	if cfg != nil && cfg.PasswordStrength != nil {
		policy.cfg = *cfg.PasswordStrength
	}
	if policy.cfg.MinLength <= 0 {
		policy.cfg.MinLength = defaultMinPasswordLength
	}
	if policy.cfg.MaxLength <= 0 || policy.cfg.MaxLength > bcryptMaxPasswordLength {
		policy.cfg.MaxLength = bcryptMaxPasswordLength
	}

	return policy
}

// Validate returns ErrPasswordStrength or ErrPasswordForbiddenWords describing the first broken rule.
func (p *PasswordPolicy) Validate(password string) error {
	if len(password) < p.cfg.MinLength {
		return domainerrors.ErrPasswordStrength.WithDetails(
			fmt.Sprintf("password must be at least %d characters", p.cfg.MinLength))
	}
	if len(password) > p.cfg.MaxLength {
		return domainerrors.ErrPasswordStrength.WithDetails(
			fmt.Sprintf("password must be at most %d characters", p.cfg.MaxLength))
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	switch {
	case p.cfg.RequireUppercase && !hasUpper:
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain an uppercase letter")
	case p.cfg.RequireLowercase && !hasLower:
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain a lowercase letter")
	case p.cfg.RequireNumbers && !hasNumber:
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain a number")
	case p.cfg.RequireSpecial && !hasSpecial:
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain a special character")
	}

	lowered := strings.ToLower(password)
	for _, word := range forbiddenPasswords {
		if lowered == word {
			return domainerrors.ErrPasswordForbiddenWords
		}
	}

	return nil
}
