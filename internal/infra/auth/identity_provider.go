package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"agora/config"
	"agora/internal/domain/constants"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/lifecycle"
	"agora/internal/domain/repository"
	"agora/internal/domain/service"
	"agora/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	fallbackRefreshLeeway = time.Minute
	fallbackResetTokenTTL = time.Hour
	fallbackOAuthStateTTL = 10 * time.Minute

	// minRefreshDelay keeps a session whose lifetime is shorter than the
	// leeway from refreshing in a tight loop.
	minRefreshDelay = time.Second

	randomTokenBytes = 32
)

// LocalIdentityProviderParams holds dependencies for NewLocalIdentityProvider.
type LocalIdentityProviderParams struct {
	fx.In

	Lifecycle     fx.Lifecycle `optional:"true"`
	Config        *config.Config
	TxManager     repository.TransactionManager
	Identities    repository.IdentityRepository
	RefreshTokens repository.RefreshTokenRepository
	Tokens        service.TokenService
	Hasher        service.PasswordHasher
	OAuth         service.OAuthRegistry
	Storage       service.KVStorage
	Publisher     service.EventPublisher `optional:"true"`
	Logger        *slog.Logger
}

// LocalIdentityProvider hosts identities, credentials and the single session of
// this process. Session changes are announced to subscribers in the order they
// happen.
type LocalIdentityProvider struct {
	txManager     repository.TransactionManager
	identities    repository.IdentityRepository
	refreshTokens repository.RefreshTokenRepository
	tokens        service.TokenService
	hasher        service.PasswordHasher
	oauth         service.OAuthRegistry
	storage       service.KVStorage
	publisher     service.EventPublisher
	policy        *PasswordPolicy
	validate      *validator.Validate
	logger        *slog.Logger
	now           func() time.Time
	afterFunc     func(d time.Duration, f func()) *time.Timer

	refreshLeeway time.Duration
	resetTokenTTL time.Duration
	oauthStateTTL time.Duration
	siteURL       string

	// opMu serializes every session change together with its event delivery.
	opMu sync.Mutex

	mu           sync.Mutex
	session      *entity.Session
	loaded       bool
	refreshTimer *time.Timer
	closed       bool

	listenersMu    sync.Mutex
	listeners      map[uint64]service.AuthListener
	nextListenerID uint64
}

// persistedSession is the storage form of the current session.
type persistedSession struct {
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	TokenType    string            `json:"tokenType"`
	ExpiresAt    time.Time         `json:"expiresAt"`
	Identity     persistedIdentity `json:"identity"`
}

type persistedIdentity struct {
	ID           uuid.UUID      `json:"id"`
	Email        string         `json:"email,omitempty"`
	Provider     string         `json:"provider"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	LastSignInAt time.Time      `json:"lastSignInAt"`
}

// NewLocalIdentityProvider creates the provider and stops its refresh timer on shutdown.
func NewLocalIdentityProvider(params LocalIdentityProviderParams) service.IdentityProvider {
	provider := newLocalIdentityProvider(params)

	if params.Lifecycle != nil {
		params.Lifecycle.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				provider.Close()

				return nil
			},
		})
	}

	return provider
}

func newLocalIdentityProvider(params LocalIdentityProviderParams) *LocalIdentityProvider {
	provider := &LocalIdentityProvider{
		txManager:     params.TxManager,
		identities:    params.Identities,
		refreshTokens: params.RefreshTokens,
		tokens:        params.Tokens,
		hasher:        params.Hasher,
		oauth:         params.OAuth,
		storage:       params.Storage,
		publisher:     params.Publisher,
		policy:        NewPasswordPolicy(params.Config),
		validate:      validator.New(),
		logger:        params.Logger,
		now:           time.Now,
		afterFunc:     time.AfterFunc,
		refreshLeeway: fallbackRefreshLeeway,
		resetTokenTTL: fallbackResetTokenTTL,
		oauthStateTTL: fallbackOAuthStateTTL,
		listeners:     make(map[uint64]service.AuthListener),
	}

	if authCfg := params.Config.Auth; authCfg != nil {
		if authCfg.RefreshLeeway > 0 {
			provider.refreshLeeway = authCfg.RefreshLeeway
		}
		if authCfg.ResetTokenTTL > 0 {
			provider.resetTokenTTL = authCfg.ResetTokenTTL
		}
		if authCfg.OAuthStateTTL > 0 {
			provider.oauthStateTTL = authCfg.OAuthStateTTL
		}
		provider.siteURL = authCfg.SiteURL
	}

	return provider
}

// Close stops the refresh timer. The persisted session survives for the next start.
func (p *LocalIdentityProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.stopTimerLocked()
}

// Subscribe registers listener and returns the function that unregisters it.
func (p *LocalIdentityProvider) Subscribe(listener service.AuthListener) func() {
	p.listenersMu.Lock()
	id := p.nextListenerID
	p.nextListenerID++
	p.listeners[id] = listener
	p.listenersMu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			p.listenersMu.Lock()
			delete(p.listeners, id)
			p.listenersMu.Unlock()
		})
	}
}

// emit delivers one event to every listener. Callers hold opMu, so events
// reach listeners one at a time in emission order.
func (p *LocalIdentityProvider) emit(kind entity.AuthEventKind, session *entity.Session) {
	p.listenersMu.Lock()
	listeners := make([]service.AuthListener, 0, len(p.listeners))
	for _, listener := range p.listeners {
		listeners = append(listeners, listener)
	}
	p.listenersMu.Unlock()

	for _, listener := range listeners {
		listener(entity.AuthEvent{
			Kind:       kind,
			Session:    session.Clone(),
			OccurredAt: p.now(),
		})
	}
}

// CurrentSession returns the live session, refreshing it first when the access
// token is inside the refresh leeway.
func (p *LocalIdentityProvider) CurrentSession(ctx context.Context) (*entity.Session, error) {
	session, err := p.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if !session.ExpiresWithin(p.now(), p.refreshLeeway) {
		return session.Clone(), nil
	}

	p.opMu.Lock()
	defer p.opMu.Unlock()

	// Another caller may have refreshed while we waited.
	p.mu.Lock()
	current := p.session
	p.mu.Unlock()
	if current == nil {
		return nil, nil
	}
	if !current.ExpiresWithin(p.now(), p.refreshLeeway) {
		return current.Clone(), nil
	}

	return p.refreshLocked(ctx)
}

// loadSession reads the persisted session once per process.
func (p *LocalIdentityProvider) loadSession(ctx context.Context) (*entity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaded {
		return p.session, nil
	}

	raw, err := p.storage.Get(ctx, constants.StorageKeyCurrentSession)
	if errors.Is(err, service.ErrKeyNotFound) {
		p.loaded = true

		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load persisted session")
	}

	var stored persistedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		p.logger.WarnContext(ctx, "Discarding unreadable persisted session", slog.Any("error", err))
		p.loaded = true

		return nil, nil
	}

	p.session = stored.toEntity()
	p.loaded = true
	p.scheduleRefreshLocked(p.session)

	return p.session, nil
}

// refreshLocked rotates the refresh token. A token the store no longer honours
// ends the session with SIGNED_OUT and yields a nil session. Requires opMu.
func (p *LocalIdentityProvider) refreshLocked(ctx context.Context) (*entity.Session, error) {
	p.mu.Lock()
	current := p.session
	p.mu.Unlock()

	if current == nil {
		return nil, nil
	}

	identity, err := p.verifyRefreshToken(ctx, current.RefreshToken)
	if err != nil {
		if domainerrors.IsTransport(err) {
			return nil, err
		}

		p.logger.InfoContext(ctx, "Refresh token rejected, signing out", slog.Any("error", err))
		if err := p.endSessionLocked(ctx, current); err != nil {
			return nil, err
		}

		return nil, nil
	}

	if err := p.refreshTokens.DeleteRefreshTokenByHash(ctx, hashToken(current.RefreshToken)); err != nil &&
		!errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return nil, err
	}

	session, err := p.issueSession(ctx, identity)
	if err != nil {
		return nil, err
	}
	p.emit(entity.AuthEventTokenRefreshed, session)

	return session.Clone(), nil
}

// verifyRefreshToken checks the signature and that the store still holds the
// token, then reloads the identity so metadata changes show up.
func (p *LocalIdentityProvider) verifyRefreshToken(ctx context.Context, refreshToken string) (*entity.Identity, error) {
	claims, err := p.tokens.ValidateToken(refreshToken, service.TokenTypeRefresh)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WithDetails(err.Error())
	}

	if _, err := p.refreshTokens.FindRefreshTokenByHash(ctx, hashToken(refreshToken)); err != nil {
		if errors.IsAny(err, repository.ErrRefreshTokenNotFound, repository.ErrRefreshTokenExpired) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, err
	}

	identity, err := p.identities.FindIdentityByID(ctx, claims.IdentityID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, err
	}

	return identity, nil
}

// refreshFromTimer runs when the scheduled refresh fires.
func (p *LocalIdentityProvider) refreshFromTimer() {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return
	}

	if _, err := p.refreshLocked(ctx); err != nil {
		p.logger.ErrorContext(ctx, "Scheduled session refresh failed", slog.Any("error", err))
	}
}

// openSession replaces any current session with a fresh one for identity and
// announces it with kind. Requires opMu.
func (p *LocalIdentityProvider) openSession(ctx context.Context, identity *entity.Identity, kind entity.AuthEventKind) error {
	p.mu.Lock()
	previous := p.session
	p.mu.Unlock()

	if previous != nil {
		if err := p.refreshTokens.DeleteRefreshTokenByHash(ctx, hashToken(previous.RefreshToken)); err != nil &&
			!errors.Is(err, repository.ErrRefreshTokenNotFound) {
			p.logger.WarnContext(ctx, "Failed to revoke replaced session", slog.Any("error", err))
		}
	}

	signedInAt := p.now()
	if err := p.identities.TouchLastSignIn(ctx, identity.ID, identity.Provider, signedInAt); err != nil {
		return err
	}
	identity.LastSignInAt = signedInAt

	session, err := p.issueSession(ctx, identity)
	if err != nil {
		return err
	}
	p.emit(kind, session)

	return nil
}

// issueSession mints tokens, records the refresh token, persists and installs the session.
func (p *LocalIdentityProvider) issueSession(ctx context.Context, identity *entity.Identity) (*entity.Session, error) {
	pair, err := p.tokens.GenerateTokens(identity.ID, identity.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := p.refreshTokens.CreateRefreshToken(ctx, &entity.RefreshToken{
		IdentityID: identity.ID,
		TokenHash:  hashToken(pair.RefreshToken),
		ExpiresAt:  pair.RefreshExpiresAt,
	}); err != nil {
		return nil, err
	}

	session := &entity.Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    entity.TokenTypeBearer,
		ExpiresAt:    pair.AccessExpiresAt,
		Identity:     identity.Clone(),
	}

	raw, err := json.Marshal(newPersistedSession(session))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session")
	}
	ttl := pair.RefreshExpiresAt.Sub(p.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	if err := p.storage.Set(ctx, constants.StorageKeyCurrentSession, raw, ttl); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.session = session
	p.loaded = true
	p.scheduleRefreshLocked(session)
	p.mu.Unlock()

	return session, nil
}

// endSessionLocked revokes and forgets current, then emits SIGNED_OUT. Requires opMu.
func (p *LocalIdentityProvider) endSessionLocked(ctx context.Context, current *entity.Session) error {
	if err := p.refreshTokens.DeleteRefreshTokenByHash(ctx, hashToken(current.RefreshToken)); err != nil &&
		!errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return err
	}

	if err := p.storage.Delete(ctx, constants.StorageKeyCurrentSession); err != nil {
		return err
	}

	p.mu.Lock()
	p.session = nil
	p.loaded = true
	p.stopTimerLocked()
	p.mu.Unlock()

	p.emit(entity.AuthEventSignedOut, nil)

	return nil
}

// scheduleRefreshLocked arms the timer to refresh leeway before expiry. Requires mu.
func (p *LocalIdentityProvider) scheduleRefreshLocked(session *entity.Session) {
	p.stopTimerLocked()
	if session == nil || p.closed {
		return
	}

	delay := session.ExpiresAt.Sub(p.now()) - p.refreshLeeway
	if delay < minRefreshDelay {
		delay = minRefreshDelay
	}
	p.refreshTimer = p.afterFunc(delay, p.refreshFromTimer)
}

func (p *LocalIdentityProvider) stopTimerLocked() {
	if p.refreshTimer != nil {
		p.refreshTimer.Stop()
		p.refreshTimer = nil
	}
}

// publish sends an account event when a publisher is configured. Failures are logged.
func (p *LocalIdentityProvider) publish(ctx context.Context, event *entity.AccountEvent) {
	if p.publisher == nil {
		return
	}

	if err := p.publisher.PublishAccountEvent(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "Failed to publish account event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err),
		)
	}
}

func newPersistedSession(session *entity.Session) persistedSession {
	identity := session.Identity

	return persistedSession{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		ExpiresAt:    session.ExpiresAt,
		Identity: persistedIdentity{
			ID:           identity.ID,
			Email:        identity.Email,
			Provider:     identity.Provider.String(),
			Metadata:     identity.Metadata,
			CreatedAt:    identity.CreatedAt,
			LastSignInAt: identity.LastSignInAt,
		},
	}
}

func (s persistedSession) toEntity() *entity.Session {
	return &entity.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		ExpiresAt:    s.ExpiresAt,
		Identity: &entity.Identity{
			ID:           s.Identity.ID,
			Email:        s.Identity.Email,
			Provider:     entity.ProviderType(s.Identity.Provider),
			Metadata:     s.Identity.Metadata,
			CreatedAt:    s.Identity.CreatedAt,
			LastSignInAt: s.Identity.LastSignInAt,
		},
	}
}

// hashToken returns the hex SHA-256 of a token, the form stored in the database.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// randomToken returns a URL safe random string.
func randomToken() string {
	b := make([]byte, randomTokenBytes)
	// rand.Read never returns an error
	_, _ = rand.Read(b)

	return base64.RawURLEncoding.EncodeToString(b)
}
