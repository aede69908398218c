package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"agora/config"
	"agora/internal/domain/constants"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/errors"
	mockRepo "agora/internal/mocks/repository"
	mockService "agora/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockedProvider struct {
	provider      *LocalIdentityProvider
	txManager     *mockRepo.MockTransactionManager
	factory       *mockRepo.MockRepositoryFactory
	identities    *mockRepo.MockIdentityRepository
	refreshTokens *mockRepo.MockRefreshTokenRepository
	tokens        *mockService.MockTokenService
	hasher        *mockService.MockPasswordHasher
	kv            *mockService.MockKVStorage
}

func newMockedProvider(t *testing.T) *mockedProvider {
	t.Helper()

	m := &mockedProvider{
		txManager:     mockRepo.NewMockTransactionManager(t),
		factory:       mockRepo.NewMockRepositoryFactory(t),
		identities:    mockRepo.NewMockIdentityRepository(t),
		refreshTokens: mockRepo.NewMockRefreshTokenRepository(t),
		tokens:        mockService.NewMockTokenService(t),
		hasher:        mockService.NewMockPasswordHasher(t),
		kv:            mockService.NewMockKVStorage(t),
	}
	m.provider = newLocalIdentityProvider(LocalIdentityProviderParams{
		Config:        &config.Config{Auth: &config.AuthConfig{}},
		TxManager:     m.txManager,
		Identities:    m.identities,
		RefreshTokens: m.refreshTokens,
		Tokens:        m.tokens,
		Hasher:        m.hasher,
		OAuth:         mockService.NewMockOAuthRegistry(t),
		Storage:       m.kv,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(m.provider.Close)

	return m
}

func TestLocalIdentityProvider_SignUp_HashFailure(t *testing.T) {
	m := newMockedProvider(t)
	ctx := context.Background()

	m.identities.EXPECT().FindIdentityByEmail(ctx, "ada@example.com").Return(nil, repository.ErrIdentityNotFound)
	m.hasher.EXPECT().Hash("secret123").Return("", errors.New("entropy exhausted"))

	err := m.provider.SignUp(ctx, "Ada@Example.com", "secret123", nil)

	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestLocalIdentityProvider_SignUp_TransactionErrors(t *testing.T) {
	storeDown := domainerrors.NewTransportError(errors.New("connection refused"), "identity store")

	tests := []struct {
		name      string
		createErr error
		txErr     error
		wantErr   error
	}{
		{name: "duplicate inside transaction", createErr: repository.ErrIdentityExists, wantErr: domainerrors.ErrUserAlreadyExists},
		{name: "transaction cannot begin", txErr: storeDown, wantErr: storeDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockedProvider(t)
			ctx := context.Background()

			m.identities.EXPECT().FindIdentityByEmail(ctx, "ada@example.com").Return(nil, repository.ErrIdentityNotFound)
			m.hasher.EXPECT().Hash("secret123").Return("hashed", nil)

			if tt.txErr != nil {
				m.txManager.EXPECT().Execute(ctx, mock.Anything).Return(tt.txErr)
			} else {
				m.txManager.EXPECT().Execute(ctx, mock.Anything).
					RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
						return fn(m.factory)
					})
				m.factory.EXPECT().NewIdentityRepository().Return(m.identities)
				m.identities.EXPECT().CreateIdentity(ctx, mock.Anything).Return(tt.createErr)
			}

			err := m.provider.SignUp(ctx, "ada@example.com", "secret123", nil)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLocalIdentityProvider_SignIn_StoreFailureIsNotInvalidCredentials(t *testing.T) {
	m := newMockedProvider(t)
	ctx := context.Background()
	storeDown := domainerrors.NewTransportError(errors.New("timeout"), "identity store")

	m.identities.EXPECT().FindIdentityByEmail(ctx, "ada@example.com").Return(nil, storeDown)

	err := m.provider.SignIn(ctx, "ada@example.com", "secret123")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.True(t, domainerrors.IsTransport(err))
}

func TestLocalIdentityProvider_SignIn_TokenFailureLeavesNoSession(t *testing.T) {
	m := newMockedProvider(t)
	ctx := context.Background()
	identity := &entity.Identity{ID: uuid.New(), Email: "ada@example.com"}

	m.identities.EXPECT().FindIdentityByEmail(ctx, "ada@example.com").Return(identity, nil)
	m.identities.EXPECT().FindAuthentication(ctx, entity.ProviderTypeEmail, "ada@example.com").
		Return(&entity.Authentication{IdentityID: identity.ID, PasswordHash: "hashed"}, nil)
	m.hasher.EXPECT().Check("secret123", "hashed").Return(true)
	m.identities.EXPECT().TouchLastSignIn(ctx, identity.ID, entity.ProviderTypeEmail, mock.AnythingOfType("time.Time")).Return(nil)
	m.tokens.EXPECT().GenerateTokens(identity.ID, identity.Email).Return(nil, errors.New("signing key unavailable"))

	err := m.provider.SignIn(ctx, "ada@example.com", "secret123")

	require.Error(t, err)
	assert.Nil(t, m.provider.session)
}

func TestLocalIdentityProvider_CurrentSession_StorageFailure(t *testing.T) {
	m := newMockedProvider(t)
	ctx := context.Background()

	m.kv.EXPECT().Get(ctx, constants.StorageKeyCurrentSession).Return(nil, errors.New("redis unavailable"))

	session, err := m.provider.CurrentSession(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load persisted session")
	assert.Nil(t, session)

	// A failed load is retried on the next call.
	m.kv.EXPECT().Get(ctx, constants.StorageKeyCurrentSession).Return([]byte("not json"), nil)

	session, err = m.provider.CurrentSession(ctx)

	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestLocalIdentityProvider_SignOut_RevokeFailure(t *testing.T) {
	m := newMockedProvider(t)
	ctx := context.Background()
	storeDown := domainerrors.NewTransportError(errors.New("timeout"), "refresh token store")

	m.provider.session = &entity.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
		Identity:     &entity.Identity{ID: uuid.New()},
	}
	m.provider.loaded = true
	m.refreshTokens.EXPECT().DeleteRefreshTokenByHash(ctx, hashToken("refresh")).Return(storeDown)

	err := m.provider.SignOut(ctx)

	assert.ErrorIs(t, err, storeDown)
	assert.NotNil(t, m.provider.session)
}
