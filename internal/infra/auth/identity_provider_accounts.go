package auth

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"agora/internal/domain/constants"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/domain/service"
	"agora/internal/errors"

	"github.com/google/uuid"
)

// SignUp creates an identity with an email credential and opens a session.
func (p *LocalIdentityProvider) SignUp(ctx context.Context, email, password string, metadata map[string]any) error {
	email, err := p.normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := p.policy.Validate(password); err != nil {
		return err
	}

	if _, err := p.identities.FindIdentityByEmail(ctx, email); err == nil {
		return domainerrors.ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrIdentityNotFound) {
		return err
	}

	passwordHash, err := p.hasher.Hash(password)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WithDetails(err.Error())
	}

	identity := &entity.Identity{
		ID:        uuid.New(),
		Email:     email,
		Provider:  entity.ProviderTypeEmail,
		Metadata:  copyMetadata(metadata),
		CreatedAt: p.now(),
	}

	err = p.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		identities := factory.NewIdentityRepository()
		if err := identities.CreateIdentity(ctx, identity); err != nil {
			return err
		}

		return identities.CreateAuthentication(ctx, &entity.Authentication{
			IdentityID:     identity.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: email,
			PasswordHash:   passwordHash,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrIdentityExists) {
			return domainerrors.ErrUserAlreadyExists
		}

		return err
	}

	p.publish(ctx, &entity.AccountEvent{
		Type:       entity.AccountEventIdentityCreated,
		IdentityID: identity.ID,
		Email:      email,
		Attributes: map[string]string{"provider": entity.ProviderTypeEmail.String()},
		OccurredAt: p.now(),
	})

	p.opMu.Lock()
	defer p.opMu.Unlock()

	return p.openSession(ctx, identity, entity.AuthEventSignedIn)
}

// SignIn opens a session for an email credential. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (p *LocalIdentityProvider) SignIn(ctx context.Context, email, password string) error {
	email, err := p.normalizeEmail(email)
	if err != nil {
		return domainerrors.ErrInvalidCredentials
	}

	identity, err := p.identities.FindIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return domainerrors.ErrInvalidCredentials
		}

		return err
	}

	credential, err := p.identities.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return domainerrors.ErrInvalidCredentials
		}

		return err
	}

	if credential.IdentityID != identity.ID || !p.hasher.Check(password, credential.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}
	identity.Provider = entity.ProviderTypeEmail

	p.opMu.Lock()
	defer p.opMu.Unlock()

	return p.openSession(ctx, identity, entity.AuthEventSignedIn)
}

// SignInWithOAuth stores a single use state and returns the consent URL.
func (p *LocalIdentityProvider) SignInWithOAuth(ctx context.Context, provider entity.ProviderType) (string, error) {
	oauthProvider, ok := p.oauth.Get(provider)
	if !ok {
		return "", domainerrors.ErrOAuthProviderUnsupported.WithDetails("provider " + provider.String() + " is not configured")
	}

	state := randomToken()
	if err := p.storage.Set(ctx, constants.StorageKeyOAuthState+state, []byte(provider.String()), p.oauthStateTTL); err != nil {
		return "", err
	}

	return oauthProvider.AuthCodeURL(state), nil
}

// CompleteOAuth validates state, exchanges the code and opens a session for
// the linked identity, creating or linking one on first use.
func (p *LocalIdentityProvider) CompleteOAuth(ctx context.Context, provider entity.ProviderType, code, state string) error {
	oauthProvider, ok := p.oauth.Get(provider)
	if !ok {
		return domainerrors.ErrOAuthProviderUnsupported
	}
	if state == "" {
		return domainerrors.ErrOAuthStateInvalid
	}
	if code == "" {
		return domainerrors.ErrOAuthCodeInvalid
	}

	stored, err := p.storage.Take(ctx, constants.StorageKeyOAuthState+state)
	if err != nil {
		if errors.Is(err, service.ErrKeyNotFound) {
			return domainerrors.ErrOAuthStateInvalid
		}

		return err
	}
	if string(stored) != provider.String() {
		return domainerrors.ErrOAuthStateInvalid
	}

	oauthUser, err := oauthProvider.Exchange(ctx, code)
	if err != nil {
		return err
	}
	if oauthUser.ID == "" {
		return domainerrors.ErrOAuthFailed.WithDetails("provider returned no user id")
	}

	identity, err := p.resolveOAuthIdentity(ctx, oauthUser)
	if err != nil {
		return err
	}
	identity.Provider = provider

	p.opMu.Lock()
	defer p.opMu.Unlock()

	return p.openSession(ctx, identity, entity.AuthEventOAuthCallback)
}

// resolveOAuthIdentity finds the identity linked to the provider account. An
// unlinked account joins the identity owning the same verified email, or gets
// a new identity.
func (p *LocalIdentityProvider) resolveOAuthIdentity(ctx context.Context, oauthUser *service.OAuthUser) (*entity.Identity, error) {
	credential, err := p.identities.FindAuthentication(ctx, oauthUser.Provider, oauthUser.ID)
	if err == nil {
		return p.identities.FindIdentityByID(ctx, credential.IdentityID)
	}
	if !errors.Is(err, repository.ErrAuthNotFound) {
		return nil, err
	}

	var identity *entity.Identity
	created := false
	err = p.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		identities := factory.NewIdentityRepository()

		if oauthUser.Email != "" && oauthUser.EmailVerified {
			existing, err := identities.FindIdentityByEmail(ctx, oauthUser.Email)
			switch {
			case err == nil:
				identity = existing
			case !errors.Is(err, repository.ErrIdentityNotFound):
				return err
			}
		}

		if identity == nil {
			identity = &entity.Identity{
				ID:        uuid.New(),
				Email:     strings.ToLower(strings.TrimSpace(oauthUser.Email)),
				Provider:  oauthUser.Provider,
				Metadata:  oauthMetadata(oauthUser),
				CreatedAt: p.now(),
			}
			if err := identities.CreateIdentity(ctx, identity); err != nil {
				return err
			}
			created = true
		}

		return identities.CreateAuthentication(ctx, &entity.Authentication{
			IdentityID:     identity.ID,
			Provider:       oauthUser.Provider,
			ProviderUserID: oauthUser.ID,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrIdentityExists) {
			return nil, domainerrors.ErrUserAlreadyExists.WithDetails("email is registered to another account")
		}

		return nil, err
	}

	if created {
		p.publish(ctx, &entity.AccountEvent{
			Type:       entity.AccountEventIdentityCreated,
			IdentityID: identity.ID,
			Email:      identity.Email,
			Attributes: map[string]string{"provider": oauthUser.Provider.String()},
			OccurredAt: p.now(),
		})
	}

	return identity, nil
}

// SignOut revokes and forgets the current session. Signing out without a
// session is a no-op.
func (p *LocalIdentityProvider) SignOut(ctx context.Context) error {
	if _, err := p.loadSession(ctx); err != nil {
		return err
	}

	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	current := p.session
	p.mu.Unlock()
	if current == nil {
		return nil
	}

	return p.endSessionLocked(ctx, current)
}

// RequestPasswordReset stores a reset token and publishes the reset link.
// Unknown emails succeed silently so callers cannot probe for accounts.
func (p *LocalIdentityProvider) RequestPasswordReset(ctx context.Context, email string) error {
	email, err := p.normalizeEmail(email)
	if err != nil {
		return err
	}

	identity, err := p.identities.FindIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			p.logger.DebugContext(ctx, "Password reset requested for unknown email")

			return nil
		}

		return err
	}

	token := randomToken()
	if err := p.storage.Set(ctx, constants.StorageKeyPasswordReset+hashToken(token), []byte(identity.ID.String()), p.resetTokenTTL); err != nil {
		return err
	}

	if p.publisher == nil {
		p.logger.WarnContext(ctx, "No event publisher configured, password reset link not delivered",
			slog.String("identityId", identity.ID.String()))

		return nil
	}

	err = p.publisher.PublishAccountEvent(ctx, &entity.AccountEvent{
		Type:       entity.AccountEventPasswordResetRequested,
		IdentityID: identity.ID,
		Email:      identity.Email,
		Attributes: map[string]string{"reset_link": p.resetLink(token)},
		OccurredAt: p.now(),
	})
	if err != nil {
		return domainerrors.NewTransportError(err, "failed to publish password reset")
	}

	return nil
}

// CompletePasswordReset consumes the reset token, replaces the password,
// revokes older sessions and opens a new one.
func (p *LocalIdentityProvider) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domainerrors.ErrResetTokenInvalid
	}
	if err := p.policy.Validate(newPassword); err != nil {
		return err
	}

	raw, err := p.storage.Take(ctx, constants.StorageKeyPasswordReset+hashToken(token))
	if err != nil {
		if errors.Is(err, service.ErrKeyNotFound) {
			return domainerrors.ErrResetTokenInvalid
		}

		return err
	}

	identityID, err := uuid.ParseBytes(raw)
	if err != nil {
		return domainerrors.ErrResetTokenInvalid
	}

	identity, err := p.identities.FindIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return domainerrors.ErrResetTokenInvalid
		}

		return err
	}

	passwordHash, err := p.hasher.Hash(newPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WithDetails(err.Error())
	}

	err = p.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewIdentityRepository().UpdatePasswordHash(ctx, identity.ID, passwordHash); err != nil {
			return err
		}

		return factory.NewRefreshTokenRepository().DeleteRefreshTokensByIdentityID(ctx, identity.ID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return domainerrors.ErrResetTokenInvalid.WithDetails("account has no password credential")
		}

		return err
	}
	identity.Provider = entity.ProviderTypeEmail

	p.opMu.Lock()
	defer p.opMu.Unlock()

	return p.openSession(ctx, identity, entity.AuthEventPasswordRecovery)
}

func (p *LocalIdentityProvider) normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := p.validate.Var(email, "required,email"); err != nil {
		return "", domainerrors.ValidationFailed("email must be a valid address")
	}

	return email, nil
}

func (p *LocalIdentityProvider) resetLink(token string) string {
	return strings.TrimRight(p.siteURL, "/") + "/auth/reset-password?token=" + url.QueryEscape(token)
}

func copyMetadata(metadata map[string]any) map[string]any {
	copied := make(map[string]any, len(metadata))
	for key, value := range metadata {
		copied[key] = value
	}

	return copied
}

// oauthMetadata is the metadata bag of an identity created from a provider account.
func oauthMetadata(user *service.OAuthUser) map[string]any {
	metadata := map[string]any{
		entity.MetadataProvider: user.Provider.String(),
	}
	if user.Name != "" {
		metadata[entity.MetadataFullName] = user.Name
		metadata[entity.MetadataName] = user.Name
	}
	if user.AvatarURL != "" {
		metadata[entity.MetadataAvatarURL] = user.AvatarURL
	}

	return metadata
}
