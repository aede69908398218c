package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUsername(t *testing.T) {
	id := uuid.MustParse("abcdef12-0000-4000-8000-000000000000")

	tests := []struct {
		name     string
		email    string
		metadata map[string]any
		want     string
	}{
		{name: "email local part", email: "jane@example.com", metadata: map[string]any{}, want: "jane"},
		{name: "metadata wins", email: "jane@example.com", metadata: map[string]any{"username": "janedoe"}, want: "janedoe"},
		{name: "no email", email: "", metadata: map[string]any{}, want: "user_abcdef12"},
		{name: "blank metadata ignored", email: "jane@example.com", metadata: map[string]any{"username": "  "}, want: "jane"},
		{name: "non string metadata ignored", email: "", metadata: map[string]any{"username": 42}, want: "user_abcdef12"},
		{name: "email without local part", email: "@example.com", metadata: nil, want: "user_abcdef12"},
		{
			name:  "long local part is cut",
			email: "firstname.middlename.lastname.work@example.com",
			want:  "firstname.middlename.lastname.",
		},
		{name: "plus tag folded", email: "jo+tag@example.com", want: "jo_tag"},
		{name: "too short local part", email: "jo@example.com", want: "user_abcdef12"},
		{name: "no ascii letters", email: "日本語@example.com", want: "user_abcdef12"},
		{name: "invalid metadata falls to email", email: "jane@example.com", metadata: map[string]any{"username": "!!"}, want: "jane"},
		{name: "long metadata is cut", metadata: map[string]any{"username": strings.Repeat("a", 40)}, want: strings.Repeat("a", 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &Identity{ID: id, Email: tt.email, Metadata: tt.metadata}
			got := DefaultUsername(identity)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValidUsername(got), "username %q breaks the stored rules", got)
		})
	}
}

func TestNewDefaultProfile(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	identity := &Identity{
		ID:    uuid.New(),
		Email: "jane@example.com",
		Metadata: map[string]any{
			MetadataName:      "Jane",
			MetadataAvatarURL: "https://cdn.example.com/j.png",
		},
	}

	profile := NewDefaultProfile(identity, now)

	assert.Equal(t, identity.ID, profile.ID)
	assert.Equal(t, "jane@example.com", profile.Email)
	assert.Equal(t, "jane", profile.Username)
	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, "Jane", *profile.DisplayName)
	require.NotNil(t, profile.AvatarURL)
	assert.Equal(t, DefaultRank, profile.Rank)
	assert.True(t, profile.EmailNotifications)
	assert.True(t, profile.DownloadNotifications)
	assert.True(t, profile.ForumNotifications)
	assert.True(t, profile.IsActive)
	assert.False(t, profile.IsBanned)
	assert.Zero(t, profile.Points)
	assert.Equal(t, now, profile.CreatedAt)
	assert.Equal(t, now, profile.UpdatedAt)
}

func TestNewDefaultProfile_FullNamePreferredOverName(t *testing.T) {
	identity := &Identity{
		ID:       uuid.New(),
		Metadata: map[string]any{MetadataFullName: "Jane Doe", MetadataName: "JD"},
	}

	profile := NewDefaultProfile(identity, time.Now())

	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, "Jane Doe", *profile.DisplayName)
}

func TestNewDefaultProfile_DisplayNameIsBounded(t *testing.T) {
	identity := &Identity{
		ID:       uuid.New(),
		Metadata: map[string]any{MetadataFullName: strings.Repeat("é", DisplayNameMaxLength+20)},
	}

	profile := NewDefaultProfile(identity, time.Now())

	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, DisplayNameMaxLength, len([]rune(*profile.DisplayName)))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("jane.doe-1_x"))
	assert.False(t, IsValidUsername("jo"))
	assert.False(t, IsValidUsername("jo+tag"))
	assert.False(t, IsValidUsername(strings.Repeat("a", UsernameMaxLength+1)))
}

func TestSession_Clone(t *testing.T) {
	s := &Session{
		AccessToken: "a",
		Identity:    &Identity{ID: uuid.New(), Metadata: map[string]any{"k": "v"}},
	}

	clone := s.Clone()
	clone.Identity.Metadata["k"] = "changed"

	assert.Equal(t, "v", s.Identity.Metadata["k"])
	assert.Nil(t, (*Session)(nil).Clone())
}

func TestProfileUpdate_IsEmpty(t *testing.T) {
	assert.True(t, (*ProfileUpdate)(nil).IsEmpty())
	assert.True(t, (&ProfileUpdate{}).IsEmpty())

	off := false
	assert.False(t, (&ProfileUpdate{ForumNotifications: &off}).IsEmpty())
}
