// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	deliverycontext "agora/internal/delivery/context"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/lifecycle"
	"agora/internal/domain/repository"
	"agora/internal/domain/service"
	"agora/internal/errors"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// sessionReconciler implements usecase.SessionUsecase.
//
// Session events are applied to the cached state as soon as the provider
// delivers them; every profile store call runs on a single worker goroutine
// fed by a mailbox, so at most one reconcile, update or refresh is in flight.
type sessionReconciler struct {
	provider  service.IdentityProvider
	profiles  repository.ProfileRepository
	publisher service.EventPublisher
	sanitizer service.TextSanitizer
	metrics   service.SessionMetrics
	logger    *slog.Logger
	now       func() time.Time

	state atomic.Pointer[entity.AuthState]
	mu    sync.Mutex // serializes state writers
	seq   uint64     // guarded by mu, bumped on every auth event

	box       *mailbox
	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}

	lifecycleMu sync.Mutex
	started     bool
	closed      bool
	unsubscribe func()
	cancel      context.CancelFunc
}

// SessionReconcilerParams holds dependencies for the session reconciler, injected by Fx.
type SessionReconcilerParams struct {
	fx.In

	Lifecycle fx.Lifecycle `optional:"true"`
	Provider  service.IdentityProvider
	Profiles  repository.ProfileRepository
	Publisher service.EventPublisher `optional:"true"`
	Sanitizer service.TextSanitizer  `optional:"true"`
	Metrics   service.SessionMetrics `optional:"true"`
	Logger    *slog.Logger
}

// NewSessionReconciler builds the process-wide reconciler. When a lifecycle is
// supplied it is started with the application and closed on shutdown.
func NewSessionReconciler(params SessionReconcilerParams) usecase.SessionUsecase {
	r := newSessionReconciler(params)

	if params.Lifecycle != nil {
		params.Lifecycle.Append(fx.Hook{
			OnStart: r.Start,
			OnStop: func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
				defer cancel()

				return r.Close(ctx)
			},
		})
	}

	return r
}

func newSessionReconciler(params SessionReconcilerParams) *sessionReconciler {
	r := &sessionReconciler{
		provider:  params.Provider,
		profiles:  params.Profiles,
		publisher: params.Publisher,
		sanitizer: params.Sanitizer,
		metrics:   params.Metrics,
		logger:    params.Logger,
		now:       time.Now,
		box:       newMailbox(),
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
	}

	if r.metrics == nil {
		r.metrics = noopSessionMetrics{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	r.state.Store(&entity.AuthState{Status: entity.AuthStatusUninitialized, Loading: true})

	return r
}

// --- Lifecycle ---

// Start begins bootstrap without waiting for it.
func (r *sessionReconciler) Start(ctx context.Context) error {
	r.lifecycleMu.Lock()
	defer r.lifecycleMu.Unlock()

	if r.closed {
		return domainerrors.ErrReconcilerClosed
	}
	if r.started {
		return nil
	}
	r.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel

	r.mu.Lock()
	next := *r.state.Load()
	next.Status = entity.AuthStatusBootstrapping
	r.state.Store(&next)
	r.mu.Unlock()

	go r.run(runCtx)

	// Subscribe before querying the current session so no event in between is lost.
	r.unsubscribe = r.provider.Subscribe(r.onAuthEvent)
	r.box.post(r.bootstrap)

	return nil
}

// Close unsubscribes from the provider and waits for queued work to drain.
// If ctx expires first, in-flight store calls are cancelled.
func (r *sessionReconciler) Close(ctx context.Context) error {
	r.lifecycleMu.Lock()
	if r.closed {
		r.lifecycleMu.Unlock()

		return nil
	}
	r.closed = true
	started := r.started
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
	r.box.close()
	r.lifecycleMu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-r.done:
		r.cancel()

		return nil
	case <-ctx.Done():
		r.cancel()
		<-r.done

		return errors.Wrap(ctx.Err(), "drain session mailbox")
	}
}

func (r *sessionReconciler) run(ctx context.Context) {
	defer close(r.done)

	for {
		j, ok := r.box.next(ctx)
		if !ok {
			return
		}
		r.metrics.MailboxDepth(r.box.depth())
		r.runJob(ctx, j)
	}
}

func (r *sessionReconciler) runJob(ctx context.Context, j job) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.ErrorContext(ctx, "Session job panicked", slog.Any("panic", p))
		}
	}()

	j(ctx)
}

// --- Read side ---

func (r *sessionReconciler) Snapshot() *entity.AuthState {
	return r.state.Load()
}

func (r *sessionReconciler) Ready() <-chan struct{} {
	return r.ready
}

func (r *sessionReconciler) WaitReady(ctx context.Context) error {
	select {
	case <-r.ready:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait for session bootstrap")
	}
}

// --- Bootstrap and events ---

func (r *sessionReconciler) bootstrap(ctx context.Context) {
	r.mu.Lock()
	seq := r.seq
	r.mu.Unlock()

	session, err := r.provider.CurrentSession(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to load current session, continuing signed out", slog.Any("error", err))
		r.metrics.BootstrapFailed()
		r.finishBootstrap()

		return
	}
	session = session.Clone()

	r.mu.Lock()
	superseded := r.seq != seq
	if !superseded {
		r.applySessionLocked(session)
	}
	r.mu.Unlock()

	if superseded {
		// A newer event already set the session and queued its reconcile;
		// finish behind it so loading only drops once that profile is in.
		if !r.box.post(func(context.Context) { r.finishBootstrap() }) {
			r.finishBootstrap()
		}

		return
	}

	if session != nil {
		r.reconcile(ctx, session.Identity)
	}
	r.finishBootstrap()
}

func (r *sessionReconciler) finishBootstrap() {
	r.readyOnce.Do(func() {
		r.mu.Lock()
		next := *r.state.Load()
		next.Loading = false
		next.Status = statusFor(next.Session)
		r.state.Store(&next)
		r.mu.Unlock()

		r.logger.Info("Session bootstrap completed", slog.String("status", next.Status.String()))
		close(r.ready)
	})
}

// onAuthEvent is the provider listener. It must not block: the session is
// applied in place and the store work is queued.
func (r *sessionReconciler) onAuthEvent(event entity.AuthEvent) {
	r.metrics.AuthEvent(event.Kind)
	session := event.Session.Clone()

	r.mu.Lock()
	r.seq++
	r.applySessionLocked(session)
	r.mu.Unlock()

	r.logger.Debug("Auth state changed",
		slog.String("event", event.Kind.String()),
		slog.Bool("has_session", session != nil),
	)

	if session == nil {
		return
	}

	identity := session.Identity
	if !r.box.post(func(ctx context.Context) { r.reconcile(ctx, identity) }) {
		r.logger.Warn("Dropped reconcile after close", slog.String("identity_id", identity.ID.String()))
	}
}

// applySessionLocked swaps in the new session. The cached profile survives only
// while the identity stays the same. Callers hold r.mu.
func (r *sessionReconciler) applySessionLocked(session *entity.Session) {
	prev := r.state.Load()
	next := *prev

	next.Session = session
	next.Identity = nil
	if session != nil {
		next.Identity = session.Identity
	}

	if next.Identity == nil || prev.Identity == nil || prev.Identity.ID != next.Identity.ID {
		next.Profile = nil
	}
	if !next.Loading {
		next.Status = statusFor(session)
	}

	r.state.Store(&next)
}

// reconcile makes sure a profile exists for identity and caches it. Failures are
// logged and leave the cache as it was.
func (r *sessionReconciler) reconcile(ctx context.Context, identity *entity.Identity) {
	started := time.Now()
	logger := r.logger.With(slog.String("identity_id", identity.ID.String()))

	outcome := service.ReconcileFetched
	profile, err := r.profiles.FindByID(ctx, identity.ID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		outcome = service.ReconcileCreated
		profile, err = r.createProfile(ctx, identity)
	}

	if err != nil {
		logger.ErrorContext(ctx, "Failed to reconcile profile",
			slog.String("stage", outcome),
			slog.Bool("transport", domainerrors.IsTransport(err)),
			slog.Any("error", err),
		)
		r.metrics.ReconcileOutcome(service.ReconcileFailed, time.Since(started))

		return
	}

	if outcome == service.ReconcileCreated {
		r.publishProfileCreated(ctx, profile)
	}

	if !r.commitProfile(identity.ID, profile) {
		logger.DebugContext(ctx, "Discarded profile of superseded identity")
		r.metrics.ReconcileOutcome(service.ReconcileStale, time.Since(started))

		return
	}

	r.metrics.ReconcileOutcome(outcome, time.Since(started))
}

// createProfile upserts the default profile. When the derived username is
// taken or refused by the store it retries once with FallbackUsername.
func (r *sessionReconciler) createProfile(ctx context.Context, identity *entity.Identity) (*entity.Profile, error) {
	profile := entity.NewDefaultProfile(identity, r.now())
	stored, err := r.profiles.Upsert(ctx, profile)
	if err == nil || !errors.IsAny(err, repository.ErrUsernameTaken, repository.ErrProfileInvalid) {
		return stored, err
	}

	fallback := entity.FallbackUsername(identity.ID)
	if profile.Username == fallback {
		return nil, err
	}

	r.logger.WarnContext(ctx, "Default username rejected, retrying with fallback",
		slog.String("identity_id", identity.ID.String()),
		slog.String("username", profile.Username),
		slog.Any("error", err),
	)
	profile.Username = fallback

	return r.profiles.Upsert(ctx, profile)
}

// commitProfile caches profile if id is still the current identity.
func (r *sessionReconciler) commitProfile(id uuid.UUID, profile *entity.Profile) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.state.Load()
	if prev.Identity == nil || prev.Identity.ID != id {
		return false
	}

	next := *prev
	next.Profile = profile
	r.state.Store(&next)

	return true
}

func (r *sessionReconciler) publishProfileCreated(ctx context.Context, profile *entity.Profile) {
	if r.publisher == nil {
		return
	}

	event := &entity.AccountEvent{
		Type:       entity.AccountEventProfileCreated,
		IdentityID: profile.ID,
		Email:      profile.Email,
		Attributes: map[string]string{"username": profile.Username},
		OccurredAt: r.now(),
	}
	if err := r.publisher.PublishAccountEvent(ctx, event); err != nil {
		r.logger.WarnContext(ctx, "Failed to publish profile_created",
			slog.String("identity_id", profile.ID.String()),
			slog.Any("error", err),
		)
	}
}

// --- Queued operations ---

// submit runs fn on the worker and waits for its result.
func (r *sessionReconciler) submit(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.Snapshot().Status == entity.AuthStatusUninitialized {
		return domainerrors.ErrReconcilerClosed.WithDetails("session service not started")
	}

	reply := make(chan error, 1)
	posted := r.box.post(func(runCtx context.Context) {
		var err error
		defer func() {
			if p := recover(); p != nil {
				err = errors.Errorf("session job panicked: %v", p)
			}
			reply <- err
		}()

		if err = ctx.Err(); err != nil {
			return
		}

		jobCtx, cancel := context.WithCancel(ctx)
		stop := context.AfterFunc(runCtx, cancel)
		defer func() {
			stop()
			cancel()
		}()

		err = fn(jobCtx)
	})
	if !posted {
		return domainerrors.ErrReconcilerClosed
	}
	r.metrics.MailboxDepth(r.box.depth())

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait for session mailbox")
	case <-r.done:
		select {
		case err := <-reply:
			return err
		default:
			return domainerrors.ErrReconcilerClosed
		}
	}
}

func (r *sessionReconciler) Sync(ctx context.Context) error {
	return r.submit(ctx, func(context.Context) error { return nil })
}

func (r *sessionReconciler) UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) (*entity.Profile, error) {
	if r.Snapshot().Identity == nil {
		r.metrics.ProfileUpdate("unauthenticated")

		return nil, domainerrors.ErrNoAuthenticatedUser
	}

	if update.IsEmpty() {
		return nil, domainerrors.ValidationFailed("no fields to update")
	}
	update = r.sanitizeUpdate(update)

	var updated *entity.Profile
	err := r.submit(ctx, func(ctx context.Context) error {
		identity := r.Snapshot().Identity
		if identity == nil {
			return domainerrors.ErrNoAuthenticatedUser
		}

		profile, err := r.profiles.UpdateByID(ctx, identity.ID, update, r.now())
		if err != nil {
			return mapProfileStoreError(err, "update profile")
		}

		r.commitProfile(identity.ID, profile)
		updated = profile

		return nil
	})

	switch {
	case err == nil:
		r.metrics.ProfileUpdate("ok")
	case errors.Is(err, domainerrors.ErrNoAuthenticatedUser):
		r.metrics.ProfileUpdate("unauthenticated")
	default:
		r.metrics.ProfileUpdate("failed")
		r.log(ctx).WarnContext(ctx, "Failed to update profile", slog.Any("error", err))
	}

	return updated, err
}

func (r *sessionReconciler) RefreshProfile(ctx context.Context) error {
	if r.Snapshot().Identity == nil {
		return nil
	}

	return r.submit(ctx, r.refresh)
}

func (r *sessionReconciler) refresh(ctx context.Context) error {
	identity := r.Snapshot().Identity
	if identity == nil {
		return nil
	}

	profile, err := r.profiles.FindByID(ctx, identity.ID)
	if err != nil {
		return mapProfileStoreError(err, "refresh profile")
	}

	r.commitProfile(identity.ID, profile)

	return nil
}

func (r *sessionReconciler) HandleProfileChanged(ctx context.Context, profileID uuid.UUID) error {
	identity := r.Snapshot().Identity
	if identity == nil || identity.ID != profileID {
		r.log(ctx).DebugContext(ctx, "Ignoring change of another profile", slog.String("profile_id", profileID.String()))

		return nil
	}

	return r.RefreshProfile(ctx)
}

func (r *sessionReconciler) sanitizeUpdate(update *entity.ProfileUpdate) *entity.ProfileUpdate {
	clean := *update

	if clean.Username != nil {
		username := strings.TrimSpace(*clean.Username)
		clean.Username = &username
	}
	if r.sanitizer == nil {
		return &clean
	}
	if clean.DisplayName != nil {
		name := strings.TrimSpace(r.sanitizer.Sanitize(*clean.DisplayName))
		clean.DisplayName = &name
	}
	if clean.Bio != nil {
		bio := strings.TrimSpace(r.sanitizer.Sanitize(*clean.Bio))
		clean.Bio = &bio
	}

	return &clean
}

// --- Identity provider passthrough ---

func (r *sessionReconciler) SignUp(ctx context.Context, input *usecase.SignUpInput) error {
	if input.Password != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch
	}

	if err := r.provider.SignUp(ctx, normalizeEmail(input.Email), input.Password, input.Metadata()); err != nil {
		return errors.Wrap(err, "sign up")
	}

	return r.Sync(ctx)
}

func (r *sessionReconciler) SignIn(ctx context.Context, input *usecase.SignInInput) error {
	if err := r.provider.SignIn(ctx, normalizeEmail(input.Email), input.Password); err != nil {
		return errors.Wrap(err, "sign in")
	}

	return r.Sync(ctx)
}

func (r *sessionReconciler) SignInWithOAuth(ctx context.Context, provider string) (string, error) {
	providerType := entity.ProviderType(strings.ToLower(provider))
	if !providerType.IsOAuth() {
		return "", domainerrors.ErrOAuthProviderUnsupported.WithDetails(provider)
	}

	url, err := r.provider.SignInWithOAuth(ctx, providerType)
	if err != nil {
		return "", errors.Wrap(err, "start oauth")
	}

	return url, nil
}

func (r *sessionReconciler) CompleteOAuth(ctx context.Context, input *usecase.OAuthCallbackInput) error {
	providerType := entity.ProviderType(strings.ToLower(input.Provider))
	if !providerType.IsOAuth() {
		return domainerrors.ErrOAuthProviderUnsupported.WithDetails(input.Provider)
	}

	if err := r.provider.CompleteOAuth(ctx, providerType, input.Code, input.State); err != nil {
		return errors.Wrap(err, "complete oauth")
	}

	return r.Sync(ctx)
}

func (r *sessionReconciler) SignOut(ctx context.Context) error {
	if err := r.provider.SignOut(ctx); err != nil {
		return errors.Wrap(err, "sign out")
	}

	return r.Sync(ctx)
}

func (r *sessionReconciler) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	return errors.Wrap(r.provider.RequestPasswordReset(ctx, normalizeEmail(input.Email)), "request password reset")
}

func (r *sessionReconciler) ConfirmPasswordReset(ctx context.Context, input *usecase.ConfirmPasswordResetInput) error {
	if input.Password != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch
	}

	if err := r.provider.CompletePasswordReset(ctx, input.Token, input.Password); err != nil {
		return errors.Wrap(err, "complete password reset")
	}

	return r.Sync(ctx)
}

func (r *sessionReconciler) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, r.logger)
}

// --- helpers ---

func statusFor(session *entity.Session) entity.AuthStatus {
	if session == nil {
		return entity.AuthStatusUnauthenticated
	}

	return entity.AuthStatusAuthenticated
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapProfileStoreError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		return domainerrors.ErrProfileNotFound
	case errors.Is(err, repository.ErrUsernameTaken):
		return domainerrors.ErrUsernameTaken
	case errors.Is(err, repository.ErrProfileInvalid):
		return domainerrors.ValidationFailed(err.Error())
	default:
		return errors.Wrap(err, op)
	}
}

type noopSessionMetrics struct{}

func (noopSessionMetrics) AuthEvent(entity.AuthEventKind)         {}
func (noopSessionMetrics) ReconcileOutcome(string, time.Duration) {}
func (noopSessionMetrics) ProfileUpdate(string)                   {}
func (noopSessionMetrics) BootstrapFailed()                       {}
func (noopSessionMetrics) MailboxDepth(int)                       {}
