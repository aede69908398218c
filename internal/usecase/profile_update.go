package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// Profile fields a signed-in user may change on their own record.
var mutableProfileFields = map[string]struct{}{
	"username":               {},
	"display_name":           {},
	"avatar_url":             {},
	"bio":                    {},
	"email_notifications":    {},
	"download_notifications": {},
	"forum_notifications":    {},
}

// Profile fields owned by the store or by administrators.
var immutableProfileFields = map[string]struct{}{
	"id":              {},
	"email":           {},
	"created_at":      {},
	"updated_at":      {},
	"points":          {},
	"rank":            {},
	"is_premium":      {},
	"premium_until":   {},
	"total_uploads":   {},
	"total_downloads": {},
	"is_active":       {},
	"is_banned":       {},
	"ban_reason":      {},
	"banned_until":    {},
}

// Optional text fields that accept null to clear the stored value.
var clearableProfileFields = map[string]struct{}{
	"display_name": {},
	"avatar_url":   {},
	"bio":          {},
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return entity.IsValidUsername(fl.Field().String())
	})

	return v
}

// ProfileUpdateInput is the JSON shape of a partial profile update.
type ProfileUpdateInput struct {
	Username              *string `json:"username" validate:"omitnil,min=3,max=30,username"`
	DisplayName           *string `json:"display_name" validate:"omitempty,max=100"`
	AvatarURL             *string `json:"avatar_url" validate:"omitempty,url,max=2048"`
	Bio                   *string `json:"bio" validate:"omitempty,max=500"`
	EmailNotifications    *bool   `json:"email_notifications"`
	DownloadNotifications *bool   `json:"download_notifications"`
	ForumNotifications    *bool   `json:"forum_notifications"`
}

// ParseProfileUpdate validates a JSON object of partial profile fields. Unknown
// and immutable fields are rejected here rather than left to the store.
func ParseProfileUpdate(body []byte) (*entity.ProfileUpdate, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, domainerrors.ValidationFailed("body must be a JSON object")
	}

	if len(fields) == 0 {
		return nil, domainerrors.ValidationFailed("no fields to update")
	}

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if _, ok := immutableProfileFields[key]; ok {
			return nil, domainerrors.ValidationFailed(fmt.Sprintf("field %q is immutable", key))
		}
		if _, ok := mutableProfileFields[key]; !ok {
			return nil, domainerrors.ValidationFailed(fmt.Sprintf("unknown field %q", key))
		}
		if isJSONNull(fields[key]) {
			if _, ok := clearableProfileFields[key]; !ok {
				return nil, domainerrors.ValidationFailed(fmt.Sprintf("field %q cannot be null", key))
			}
		}
	}

	var input ProfileUpdateInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, domainerrors.ValidationFailed(err.Error())
	}

	// null clears an optional text field; it is stored as NULL.
	empty := ""
	for key := range clearableProfileFields {
		raw, ok := fields[key]
		if !ok || !isJSONNull(raw) {
			continue
		}
		switch key {
		case "display_name":
			input.DisplayName = &empty
		case "avatar_url":
			input.AvatarURL = &empty
		case "bio":
			input.Bio = &empty
		}
	}

	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		input.Username = &trimmed
	}

	if err := profileValidator.Struct(&input); err != nil {
		return nil, domainerrors.ValidationFailed(err.Error())
	}

	return &entity.ProfileUpdate{
		Username:              input.Username,
		DisplayName:           input.DisplayName,
		AvatarURL:             input.AvatarURL,
		Bio:                   input.Bio,
		EmailNotifications:    input.EmailNotifications,
		DownloadNotifications: input.DownloadNotifications,
		ForumNotifications:    input.ForumNotifications,
	}, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
