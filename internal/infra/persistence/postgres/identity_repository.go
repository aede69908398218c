package postgres

import (
	"context"
	"strings"
	"time"

	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/errors"
	"agora/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// identityRepository implements repository.IdentityRepository.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// CreateIdentity persists a new identity.
func (repo *identityRepository) CreateIdentity(ctx context.Context, identity *entity.Identity) error {
	identityM := fromIdentityDomain(identity)

	if err := repo.db.WithContext(ctx).Omit("Authentications", "RefreshTokens").Create(identityM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrIdentityExists
		}

		return domainerrors.NewTransportError(err, "failed to create identity")
	}

	identity.CreatedAt = identityM.CreatedAt

	return nil
}

// FindIdentityByID retrieves an identity by id.
func (repo *identityRepository) FindIdentityByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	var identityM model.IdentityModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&identityM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewTransportError(err, "failed to find identity by id")
	}

	return toIdentityDomain(&identityM), nil
}

// FindIdentityByEmail retrieves an identity by its email, ignoring case.
func (repo *identityRepository) FindIdentityByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	var identityM model.IdentityModel
	err := repo.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&identityM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewTransportError(err, "failed to find identity by email")
	}

	return toIdentityDomain(&identityM), nil
}

// TouchLastSignIn records a successful sign-in and the provider used for it.
func (repo *identityRepository) TouchLastSignIn(ctx context.Context, id uuid.UUID, provider entity.ProviderType, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.IdentityModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"provider":        provider.String(),
			"last_sign_in_at": at,
		})
	if result.Error != nil {
		return domainerrors.NewTransportError(result.Error, "failed to record sign-in")
	}

	if result.RowsAffected == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

// CreateAuthentication links a credential to an identity.
func (repo *identityRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	authM := fromAuthenticationDomain(auth)

	if err := repo.db.WithContext(ctx).Create(authM).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return repository.ErrIdentityExists
		case isForeignKeyConstraintViolation(err):
			return repository.ErrIdentityNotFound
		case isNotNullConstraintViolation(err):
			return domainerrors.ValidationFailed("missing required authentication information")
		}

		return domainerrors.NewTransportError(err, "failed to create authentication")
	}

	auth.ID = authM.ID
	auth.CreatedAt = authM.CreatedAt

	return nil
}

// FindAuthentication retrieves a credential by provider and provider user id.
func (repo *identityRepository) FindAuthentication(
	ctx context.Context,
	provider entity.ProviderType,
	providerUserID string,
) (*entity.Authentication, error) {
	var authM model.AuthenticationModel
	err := repo.db.WithContext(ctx).
		Where("provider = ? AND provider_user_id = ?", provider.String(), providerUserID).
		First(&authM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAuthNotFound
		}

		return nil, domainerrors.NewTransportError(err, "failed to find authentication")
	}

	return toAuthenticationDomain(&authM), nil
}

// UpdatePasswordHash replaces the email credential hash of an identity.
func (repo *identityRepository) UpdatePasswordHash(ctx context.Context, identityID uuid.UUID, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AuthenticationModel{}).
		Where("identity_id = ? AND provider = ?", identityID, entity.ProviderTypeEmail.String()).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return domainerrors.NewTransportError(result.Error, "failed to update password hash")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAuthNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toIdentityDomain converts a GORM IdentityModel to a domain Identity entity.
func toIdentityDomain(data *model.IdentityModel) *entity.Identity {
	if data == nil {
		return nil
	}

	identity := &entity.Identity{
		ID:        data.ID,
		Provider:  entity.ProviderType(data.Provider),
		Metadata:  map[string]any(data.Metadata),
		CreatedAt: data.CreatedAt,
	}
	if data.Email != nil {
		identity.Email = *data.Email
	}
	if data.LastSignInAt != nil {
		identity.LastSignInAt = *data.LastSignInAt
	}

	return identity
}

// fromIdentityDomain converts a domain Identity entity to a GORM IdentityModel.
// An empty email is stored as NULL so the unique index ignores it.
func fromIdentityDomain(data *entity.Identity) *model.IdentityModel {
	if data == nil {
		return nil
	}

	metadata := datatypes.JSONMap(data.Metadata)
	if metadata == nil {
		metadata = datatypes.JSONMap{}
	}

	identityM := &model.IdentityModel{
		ID:        data.ID,
		Provider:  data.Provider.String(),
		Metadata:  metadata,
		CreatedAt: data.CreatedAt,
	}
	if email := strings.ToLower(strings.TrimSpace(data.Email)); email != "" {
		identityM.Email = &email
	}
	if !data.LastSignInAt.IsZero() {
		lastSignInAt := data.LastSignInAt
		identityM.LastSignInAt = &lastSignInAt
	}

	return identityM
}

// toAuthenticationDomain converts a GORM AuthenticationModel to a domain Authentication entity.
func toAuthenticationDomain(data *model.AuthenticationModel) *entity.Authentication {
	if data == nil {
		return nil
	}

	return &entity.Authentication{
		ID:             data.ID,
		IdentityID:     data.IdentityID,
		Provider:       entity.ProviderType(data.Provider),
		ProviderUserID: data.ProviderUserID,
		PasswordHash:   data.PasswordHash,
		CreatedAt:      data.CreatedAt,
	}
}

// fromAuthenticationDomain converts a domain Authentication entity to a GORM AuthenticationModel.
func fromAuthenticationDomain(data *entity.Authentication) *model.AuthenticationModel {
	if data == nil {
		return nil
	}

	return &model.AuthenticationModel{
		ID:             data.ID,
		IdentityID:     data.IdentityID,
		Provider:       data.Provider.String(),
		ProviderUserID: data.ProviderUserID,
		PasswordHash:   data.PasswordHash,
		CreatedAt:      data.CreatedAt,
	}
}
