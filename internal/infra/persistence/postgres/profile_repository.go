// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/errors"
	"agora/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepository implements repository.ProfileRepository over the users table.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByID retrieves the profile keyed by the identity id.
func (repo *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, domainerrors.NewTransportError(err, "failed to find profile by id")
	}

	return toProfileDomain(&profileM), nil
}

// Upsert inserts the profile. On an id conflict only updated_at is refreshed,
// so a concurrent first login never overwrites fields the user already edited.
func (repo *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	profileM := fromProfileDomain(profile)

	err := repo.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
			},
			clause.Returning{},
		).
		Create(profileM).Error
	if err != nil {
		if isUniqueViolationOn(err, usernameConstraint) {
			return nil, repository.ErrUsernameTaken
		}
		if isValueRejected(err) {
			return nil, errors.Wrap(repository.ErrProfileInvalid, err.Error())
		}

		return nil, domainerrors.NewTransportError(err, "failed to upsert profile")
	}

	return toProfileDomain(profileM), nil
}

// UpdateByID applies the non-nil fields of update plus updatedAt and returns the stored row.
func (repo *profileRepository) UpdateByID(
	ctx context.Context,
	id uuid.UUID,
	update *entity.ProfileUpdate,
	updatedAt time.Time,
) (*entity.Profile, error) {
	var profileM model.ProfileModel
	result := repo.db.WithContext(ctx).
		Model(&profileM).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(profileUpdateColumns(update, updatedAt))
	if result.Error != nil {
		if isUniqueViolationOn(result.Error, usernameConstraint) {
			return nil, repository.ErrUsernameTaken
		}
		if isValueRejected(result.Error) {
			return nil, errors.Wrap(repository.ErrProfileInvalid, result.Error.Error())
		}

		return nil, domainerrors.NewTransportError(result.Error, "failed to update profile")
	}

	if result.RowsAffected == 0 {
		return nil, repository.ErrProfileNotFound
	}

	return toProfileDomain(&profileM), nil
}

// profileUpdateColumns maps an update onto column names. Empty optional text is stored as NULL.
func profileUpdateColumns(update *entity.ProfileUpdate, updatedAt time.Time) map[string]any {
	columns := map[string]any{"updated_at": updatedAt}
	if update == nil {
		return columns
	}

	if update.Username != nil {
		columns["username"] = *update.Username
	}
	if update.DisplayName != nil {
		columns["display_name"] = nullableText(*update.DisplayName)
	}
	if update.AvatarURL != nil {
		columns["avatar_url"] = nullableText(*update.AvatarURL)
	}
	if update.Bio != nil {
		columns["bio"] = nullableText(*update.Bio)
	}
	if update.EmailNotifications != nil {
		columns["email_notifications"] = *update.EmailNotifications
	}
	if update.DownloadNotifications != nil {
		columns["download_notifications"] = *update.DownloadNotifications
	}
	if update.ForumNotifications != nil {
		columns["forum_notifications"] = *update.ForumNotifications
	}

	return columns
}

func nullableText(value string) any {
	if value == "" {
		return nil
	}

	return value
}

// --- Mapper Functions ---

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		ID:                    data.ID,
		Email:                 data.Email,
		Username:              data.Username,
		DisplayName:           data.DisplayName,
		AvatarURL:             data.AvatarURL,
		Bio:                   data.Bio,
		Points:                data.Points,
		Rank:                  data.Rank,
		IsPremium:             data.IsPremium,
		PremiumUntil:          data.PremiumUntil,
		TotalUploads:          data.TotalUploads,
		TotalDownloads:        data.TotalDownloads,
		EmailNotifications:    data.EmailNotifications,
		DownloadNotifications: data.DownloadNotifications,
		ForumNotifications:    data.ForumNotifications,
		IsActive:              data.IsActive,
		IsBanned:              data.IsBanned,
		BanReason:             data.BanReason,
		BannedUntil:           data.BannedUntil,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel.
func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfileModel{
		ID:                    data.ID,
		Email:                 data.Email,
		Username:              data.Username,
		DisplayName:           data.DisplayName,
		AvatarURL:             data.AvatarURL,
		Bio:                   data.Bio,
		Points:                data.Points,
		Rank:                  data.Rank,
		IsPremium:             data.IsPremium,
		PremiumUntil:          data.PremiumUntil,
		TotalUploads:          data.TotalUploads,
		TotalDownloads:        data.TotalDownloads,
		EmailNotifications:    data.EmailNotifications,
		DownloadNotifications: data.DownloadNotifications,
		ForumNotifications:    data.ForumNotifications,
		IsActive:              data.IsActive,
		IsBanned:              data.IsBanned,
		BanReason:             data.BanReason,
		BannedUntil:           data.BannedUntil,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}
