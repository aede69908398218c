// Package handler contains the HTTP handlers for the account API.
package handler

import (
	"time"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionView is the public part of a session. The refresh token never leaves the process.
type SessionView struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// IdentityView is the JSON form of an identity.
type IdentityView struct {
	ID           uuid.UUID      `json:"id"`
	Email        string         `json:"email,omitempty"`
	Provider     string         `json:"provider"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	LastSignInAt time.Time      `json:"lastSignInAt"`
}

// ProfileView is the JSON form of a profile, keyed like the update payload.
type ProfileView struct {
	ID                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	Username              string     `json:"username"`
	DisplayName           *string    `json:"display_name"`
	AvatarURL             *string    `json:"avatar_url"`
	Bio                   *string    `json:"bio"`
	Points                int        `json:"points"`
	Rank                  string     `json:"rank"`
	IsPremium             bool       `json:"is_premium"`
	PremiumUntil          *time.Time `json:"premium_until"`
	TotalUploads          int        `json:"total_uploads"`
	TotalDownloads        int        `json:"total_downloads"`
	EmailNotifications    bool       `json:"email_notifications"`
	DownloadNotifications bool       `json:"download_notifications"`
	ForumNotifications    bool       `json:"forum_notifications"`
	IsActive              bool       `json:"is_active"`
	IsBanned              bool       `json:"is_banned"`
	BanReason             *string    `json:"ban_reason"`
	BannedUntil           *time.Time `json:"banned_until"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// StateView is the snapshot returned by GET /session and the sign-in family.
type StateView struct {
	Session  *SessionView  `json:"session"`
	Identity *IdentityView `json:"identity"`
	Profile  *ProfileView  `json:"profile"`
	Loading  bool          `json:"loading"`
	State    string        `json:"state"`
}

func newStateView(state *entity.AuthState) *StateView {
	if state == nil {
		return &StateView{State: entity.AuthStatusUninitialized.String()}
	}

	return &StateView{
		Session:  newSessionView(state.Session),
		Identity: newIdentityView(state.Identity),
		Profile:  newProfileView(state.Profile),
		Loading:  state.Loading,
		State:    state.Status.String(),
	}
}

func newSessionView(session *entity.Session) *SessionView {
	if session == nil {
		return nil
	}

	return &SessionView{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		ExpiresAt:   session.ExpiresAt,
	}
}

func newIdentityView(identity *entity.Identity) *IdentityView {
	if identity == nil {
		return nil
	}

	return &IdentityView{
		ID:           identity.ID,
		Email:        identity.Email,
		Provider:     string(identity.Provider),
		Metadata:     identity.Metadata,
		CreatedAt:    identity.CreatedAt,
		LastSignInAt: identity.LastSignInAt,
	}
}

func newProfileView(profile *entity.Profile) *ProfileView {
	if profile == nil {
		return nil
	}

	return &ProfileView{
		ID:                    profile.ID,
		Email:                 profile.Email,
		Username:              profile.Username,
		DisplayName:           profile.DisplayName,
		AvatarURL:             profile.AvatarURL,
		Bio:                   profile.Bio,
		Points:                profile.Points,
		Rank:                  profile.Rank,
		IsPremium:             profile.IsPremium,
		PremiumUntil:          profile.PremiumUntil,
		TotalUploads:          profile.TotalUploads,
		TotalDownloads:        profile.TotalDownloads,
		EmailNotifications:    profile.EmailNotifications,
		DownloadNotifications: profile.DownloadNotifications,
		ForumNotifications:    profile.ForumNotifications,
		IsActive:              profile.IsActive,
		IsBanned:              profile.IsBanned,
		BanReason:             profile.BanReason,
		BannedUntil:           profile.BannedUntil,
		CreatedAt:             profile.CreatedAt,
		UpdatedAt:             profile.UpdatedAt,
	}
}
