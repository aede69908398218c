package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultRank is the tier assigned to freshly created profiles.
const DefaultRank = "Newcomer"

// Username and display name bounds shared by profile creation and updates.
const (
	UsernameMinLength      = 3
	UsernameMaxLength      = 30
	DisplayNameMaxLength   = 100
	fallbackUsernamePrefix = "user_"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// IsValidUsername reports whether username fits the stored username rules.
func IsValidUsername(username string) bool {
	return len(username) >= UsernameMinLength &&
		len(username) <= UsernameMaxLength &&
		usernamePattern.MatchString(username)
}

// Profile is the application-owned record of user-facing attributes, keyed by identity id.
type Profile struct {
	ID                    uuid.UUID
	Email                 string
	Username              string
	DisplayName           *string
	AvatarURL             *string
	Bio                   *string
	Points                int
	Rank                  string
	IsPremium             bool
	PremiumUntil          *time.Time
	TotalUploads          int
	TotalDownloads        int
	EmailNotifications    bool
	DownloadNotifications bool
	ForumNotifications    bool
	IsActive              bool
	IsBanned              bool
	BanReason             *string
	BannedUntil           *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewDefaultProfile builds the record created the first time an identity signs in.
func NewDefaultProfile(identity *Identity, now time.Time) *Profile {
	profile := &Profile{
		ID:                    identity.ID,
		Email:                 identity.Email,
		Username:              DefaultUsername(identity),
		Rank:                  DefaultRank,
		EmailNotifications:    true,
		DownloadNotifications: true,
		ForumNotifications:    true,
		IsActive:              true,
		IsBanned:              false,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if name, ok := identity.MetadataString(MetadataFullName); ok {
		name = truncateRunes(name, DisplayNameMaxLength)
		profile.DisplayName = &name
	} else if name, ok := identity.MetadataString(MetadataName); ok {
		name = truncateRunes(name, DisplayNameMaxLength)
		profile.DisplayName = &name
	}

	if avatar, ok := identity.MetadataString(MetadataAvatarURL); ok {
		profile.AvatarURL = &avatar
	}

	return profile
}

// DefaultUsername picks the metadata username, then the email local part,
// then FallbackUsername. Candidates are folded onto the username alphabet and
// cut to UsernameMaxLength; one that still breaks the rules is skipped.
func DefaultUsername(identity *Identity) string {
	if username, ok := identity.MetadataString(MetadataUsername); ok {
		if candidate := normalizeUsername(username); candidate != "" {
			return candidate
		}
	}

	if candidate := normalizeUsername(identity.EmailLocalPart()); candidate != "" {
		return candidate
	}

	return FallbackUsername(identity.ID)
}

// FallbackUsername is "user_" followed by the first 8 characters of id.
func FallbackUsername(id uuid.UUID) string {
	return fallbackUsernamePrefix + id.String()[:8]
}

// normalizeUsername replaces characters outside the username alphabet with
// '_' and truncates. It returns "" when nothing usable is left.
func normalizeUsername(raw string) string {
	var b strings.Builder
	hasAlnum := false
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r < 128 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'):
			hasAlnum = true
			b.WriteRune(r)
		case r == '_' || r == '.' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= UsernameMaxLength {
			break
		}
	}

	candidate := b.String()
	if !hasAlnum || !IsValidUsername(candidate) {
		return ""
	}

	return candidate
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}

// ProfileUpdate carries the self-editable subset of a Profile. Nil fields are left untouched.
type ProfileUpdate struct {
	Username              *string
	DisplayName           *string
	AvatarURL             *string
	Bio                   *string
	EmailNotifications    *bool
	DownloadNotifications *bool
	ForumNotifications    *bool
}

// IsEmpty reports whether the update changes nothing.
func (u *ProfileUpdate) IsEmpty() bool {
	return u == nil || (u.Username == nil &&
		u.DisplayName == nil &&
		u.AvatarURL == nil &&
		u.Bio == nil &&
		u.EmailNotifications == nil &&
		u.DownloadNotifications == nil &&
		u.ForumNotifications == nil)
}
