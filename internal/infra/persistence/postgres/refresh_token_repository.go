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
)

// refreshTokenRepository implements the domain.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{
		db:  db,
		now: time.Now,
	}
}

// CreateRefreshToken persists a new refresh token, representing a session.
func (repo *refreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	tokenM := fromRefreshTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrIdentityNotFound
		}

		return domainerrors.NewTransportError(err, "failed to create refresh token")
	}

	// Update the entity with generated values
	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindRefreshTokenByHash retrieves a refresh token record by its securely stored hash.
func (repo *refreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, domainerrors.NewTransportError(err, "failed to find refresh token")
	}

	token := toRefreshTokenDomain(&tokenM)

	// Check if token has expired
	if token.ExpiresAt.Before(repo.now()) {
		return nil, repository.ErrRefreshTokenExpired
	}

	return token, nil
}

// DeleteRefreshTokenByHash deletes a refresh token by its hash, effectively ending a session.
func (repo *refreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	result := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return domainerrors.NewTransportError(result.Error, "failed to delete refresh token")
	}

	// If no rows were affected, it means the token was not found.
	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

// DeleteRefreshTokensByIdentityID removes all refresh tokens of an identity.
func (repo *refreshTokenRepository) DeleteRefreshTokensByIdentityID(ctx context.Context, identityID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Delete(&model.RefreshTokenModel{}).Error
	if err != nil {
		return domainerrors.NewTransportError(err, "failed to delete refresh tokens")
	}

	return nil
}

// DeleteExpiredRefreshTokens removes all expired refresh tokens and reports how many went.
func (repo *refreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ?", repo.now()).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, domainerrors.NewTransportError(result.Error, "failed to delete expired refresh tokens")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toRefreshTokenDomain converts a GORM RefreshTokenModel to a domain RefreshToken entity.
func toRefreshTokenDomain(data *model.RefreshTokenModel) *entity.RefreshToken {
	if data == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:         data.ID,
		IdentityID: data.IdentityID,
		TokenHash:  data.TokenHash,
		ExpiresAt:  data.ExpiresAt,
		CreatedAt:  data.CreatedAt,
	}
}

// fromRefreshTokenDomain converts a domain RefreshToken entity to a GORM RefreshTokenModel.
func fromRefreshTokenDomain(data *entity.RefreshToken) *model.RefreshTokenModel {
	if data == nil {
		return nil
	}

	return &model.RefreshTokenModel{
		ID:         data.ID,
		IdentityID: data.IdentityID,
		TokenHash:  data.TokenHash,
		ExpiresAt:  data.ExpiresAt,
		CreatedAt:  data.CreatedAt,
	}
}
