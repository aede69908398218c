package impl

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/domain/service"
	"agora/internal/errors"
	mockRepo "agora/internal/mocks/repository"
	mockService "agora/internal/mocks/service"
	"agora/internal/usecase"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

const (
	identityA = "abcdef12-0000-4000-8000-000000000001"
	identityB = "bcdef123-0000-4000-8000-000000000002"
)

// fakeIdentityProvider delivers events synchronously to its listeners, in order.
type fakeIdentityProvider struct {
	mu           sync.Mutex
	session      *entity.Session
	sessionErr   error
	listeners    map[int]service.AuthListener
	nextID       int
	unsubscribed int
	signInErr    error
	signedUp     []string
}

func newFakeIdentityProvider(session *entity.Session, err error) *fakeIdentityProvider {
	return &fakeIdentityProvider{
		session:    session,
		sessionErr: err,
		listeners:  map[int]service.AuthListener{},
	}
}

func (p *fakeIdentityProvider) CurrentSession(context.Context) (*entity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.session, p.sessionErr
}

func (p *fakeIdentityProvider) Subscribe(listener service.AuthListener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = listener

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
		p.unsubscribed++
	}
}

func (p *fakeIdentityProvider) emit(kind entity.AuthEventKind, session *entity.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.session = session
	for _, listener := range p.listeners {
		listener(entity.AuthEvent{Kind: kind, Session: session, OccurredAt: fixedNow})
	}
}

func (p *fakeIdentityProvider) listenerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.listeners)
}

func (p *fakeIdentityProvider) SignUp(_ context.Context, email, _ string, metadata map[string]any) error {
	p.mu.Lock()
	p.signedUp = append(p.signedUp, email)
	p.mu.Unlock()

	identity := &entity.Identity{ID: uuid.MustParse(identityA), Email: email, Metadata: metadata}
	p.emit(entity.AuthEventSignedIn, sessionFor(identity))

	return nil
}

func (p *fakeIdentityProvider) SignIn(_ context.Context, email, _ string) error {
	if p.signInErr != nil {
		return p.signInErr
	}

	p.emit(entity.AuthEventSignedIn, sessionFor(&entity.Identity{ID: uuid.MustParse(identityA), Email: email}))

	return nil
}

func (p *fakeIdentityProvider) SignInWithOAuth(_ context.Context, provider entity.ProviderType) (string, error) {
	return "https://accounts.example.com/" + provider.String(), nil
}

func (p *fakeIdentityProvider) CompleteOAuth(context.Context, entity.ProviderType, string, string) error {
	return nil
}

func (p *fakeIdentityProvider) SignOut(context.Context) error {
	p.emit(entity.AuthEventSignedOut, nil)

	return nil
}

func (p *fakeIdentityProvider) RequestPasswordReset(context.Context, string) error { return nil }

func (p *fakeIdentityProvider) CompletePasswordReset(context.Context, string, string) error {
	return nil
}

type tagStripper struct{}

func (tagStripper) Sanitize(in string) string { return strings.ReplaceAll(in, "<b>", "") }

type reconcilerFixture struct {
	r        *sessionReconciler
	provider *fakeIdentityProvider
	profiles *mockRepo.MockProfileRepository
}

func newReconcilerFixture(t *testing.T, session *entity.Session, sessionErr error) reconcilerFixture {
	t.Helper()

	profiles := mockRepo.NewMockProfileRepository(t)
	provider := newFakeIdentityProvider(session, sessionErr)

	r := newSessionReconciler(SessionReconcilerParams{
		Provider:  provider,
		Profiles:  profiles,
		Sanitizer: tagStripper{},
		Logger:    newDiscardLogger(),
	})
	r.now = func() time.Time { return fixedNow }

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		assert.NoError(t, r.Close(ctx))
	})

	return reconcilerFixture{r: r, provider: provider, profiles: profiles}
}

func (f reconcilerFixture) start(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, f.r.Start(ctx))
	require.NoError(t, f.r.WaitReady(ctx))
}

func (f reconcilerFixture) sync(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, f.r.Sync(ctx))
}

func newIdentity(id, email string, metadata map[string]any) *entity.Identity {
	return &entity.Identity{
		ID:       uuid.MustParse(id),
		Email:    email,
		Provider: entity.ProviderTypeEmail,
		Metadata: metadata,
	}
}

func sessionFor(identity *entity.Identity) *entity.Session {
	return &entity.Session{
		AccessToken:  "access-" + identity.ID.String(),
		RefreshToken: "refresh-" + identity.ID.String(),
		TokenType:    entity.TokenTypeBearer,
		ExpiresAt:    fixedNow.Add(time.Hour),
		Identity:     identity,
	}
}

func newStoredProfile(id, username string) *entity.Profile {
	return &entity.Profile{
		ID:                 uuid.MustParse(id),
		Username:           username,
		Rank:               entity.DefaultRank,
		EmailNotifications: true,
		IsActive:           true,
		CreatedAt:          fixedNow.Add(-24 * time.Hour),
		UpdatedAt:          fixedNow.Add(-24 * time.Hour),
	}
}

func returnArgProfile(_ context.Context, p *entity.Profile) (*entity.Profile, error) {
	return p, nil
}

func TestSessionReconciler_InitialState(t *testing.T) {
	f := newReconcilerFixture(t, nil, nil)

	state := f.r.Snapshot()
	assert.Equal(t, entity.AuthStatusUninitialized, state.Status)
	assert.True(t, state.Loading)

	_, err := f.r.UpdateProfile(context.Background(), &entity.ProfileUpdate{Bio: ptr("x")})
	assert.ErrorIs(t, err, domainerrors.ErrNoAuthenticatedUser)
	assert.ErrorIs(t, f.r.Sync(context.Background()), domainerrors.ErrReconcilerClosed)
}

func TestSessionReconciler_Bootstrap_NoSession(t *testing.T) {
	f := newReconcilerFixture(t, nil, nil)
	f.start(t)

	state := f.r.Snapshot()
	assert.Equal(t, entity.AuthStatusUnauthenticated, state.Status)
	assert.False(t, state.Loading)
	assert.Nil(t, state.Session)
	assert.Nil(t, state.Profile)
	assert.Equal(t, 1, f.provider.listenerCount())
}

func TestSessionReconciler_Bootstrap_ExistingProfile(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", nil)
	stored := newStoredProfile(identityA, "jane_the_great")
	f := newReconcilerFixture(t, sessionFor(identity), nil)

	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(stored, nil).Once()

	f.start(t)

	state := f.r.Snapshot()
	assert.Equal(t, entity.AuthStatusAuthenticated, state.Status)
	assert.False(t, state.Loading)
	assert.Same(t, stored, state.Profile)
	assert.Equal(t, identity.ID, state.Identity.ID)
}

func TestSessionReconciler_Bootstrap_CreatesDefaultProfile(t *testing.T) {
	tests := []struct {
		name            string
		email           string
		metadata        map[string]any
		wantUsername    string
		wantDisplayName *string
	}{
		{
			name:         "email local part",
			email:        "jane@example.com",
			metadata:     map[string]any{},
			wantUsername: "jane",
		},
		{
			name:            "metadata username",
			email:           "jane@example.com",
			metadata:        map[string]any{"username": "janedoe", "full_name": "Jane Doe"},
			wantUsername:    "janedoe",
			wantDisplayName: ptr("Jane Doe"),
		},
		{
			name:         "long local part is cut to the column width",
			email:        "firstname.middlename.lastname.work@example.com",
			metadata:     map[string]any{},
			wantUsername: "firstname.middlename.lastname.",
		},
		{
			name:            "synthesized fallback",
			email:           "",
			metadata:        map[string]any{"name": "J"},
			wantUsername:    "user_abcdef12",
			wantDisplayName: ptr("J"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := newIdentity(identityA, tt.email, tt.metadata)
			f := newReconcilerFixture(t, sessionFor(identity), nil)

			f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(nil, repository.ErrProfileNotFound).Once()
			f.profiles.EXPECT().Upsert(mock.Anything, mock.AnythingOfType("*entity.Profile")).RunAndReturn(returnArgProfile).Once()

			f.start(t)

			profile := f.r.Snapshot().Profile
			require.NotNil(t, profile)
			assert.Equal(t, identity.ID, profile.ID)
			assert.Equal(t, tt.wantUsername, profile.Username)
			assert.Equal(t, tt.wantDisplayName, profile.DisplayName)
			assert.True(t, profile.EmailNotifications)
			assert.True(t, profile.DownloadNotifications)
			assert.True(t, profile.ForumNotifications)
			assert.True(t, profile.IsActive)
			assert.False(t, profile.IsBanned)
			assert.Equal(t, fixedNow, profile.CreatedAt)
			assert.Equal(t, fixedNow, profile.UpdatedAt)
		})
	}
}

func TestSessionReconciler_CreateProfile_FallsBackWhenUsernameRejected(t *testing.T) {
	tests := []struct {
		name      string
		upsertErr error
	}{
		{name: "username taken", upsertErr: repository.ErrUsernameTaken},
		{name: "value refused by store", upsertErr: repository.ErrProfileInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := newIdentity(identityA, "jane@other.example", nil)
			f := newReconcilerFixture(t, sessionFor(identity), nil)

			var attempted []string
			f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(nil, repository.ErrProfileNotFound).Once()
			f.profiles.EXPECT().Upsert(mock.Anything, mock.AnythingOfType("*entity.Profile")).
				RunAndReturn(func(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
					attempted = append(attempted, p.Username)
					if p.Username == "jane" {
						return nil, tt.upsertErr
					}

					return returnArgProfile(ctx, p)
				}).Twice()

			f.start(t)

			profile := f.r.Snapshot().Profile
			require.NotNil(t, profile)
			assert.Equal(t, "user_abcdef12", profile.Username)
			assert.Equal(t, []string{"jane", "user_abcdef12"}, attempted)
		})
	}
}

func TestSessionReconciler_CreateProfile_FallbackRejectedIsNotRetriedAgain(t *testing.T) {
	identity := newIdentity(identityA, "jane@other.example", nil)
	f := newReconcilerFixture(t, sessionFor(identity), nil)

	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(nil, repository.ErrProfileNotFound).Once()
	f.profiles.EXPECT().Upsert(mock.Anything, mock.AnythingOfType("*entity.Profile")).
		Return(nil, repository.ErrUsernameTaken).Twice()

	f.start(t)

	assert.Nil(t, f.r.Snapshot().Profile)
	assert.False(t, f.r.Snapshot().Loading)
}

func TestSessionReconciler_Bootstrap_SessionErrorFinishesOnce(t *testing.T) {
	f := newReconcilerFixture(t, nil, domainerrors.NewTransportError(errors.New("provider unreachable"), "getSession"))
	f.start(t)

	state := f.r.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, entity.AuthStatusUnauthenticated, state.Status)

	select {
	case <-f.r.Ready():
	default:
		t.Fatal("ready must be closed after bootstrap")
	}

	// Later events never bring loading back.
	identity := newIdentity(identityA, "jane@example.com", nil)
	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(newStoredProfile(identityA, "jane"), nil).Once()

	f.provider.emit(entity.AuthEventSignedIn, sessionFor(identity))
	f.sync(t)

	state = f.r.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, entity.AuthStatusAuthenticated, state.Status)
}

func TestSessionReconciler_Bootstrap_FailedReconcileStillCompletes(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", nil)
	f := newReconcilerFixture(t, sessionFor(identity), nil)

	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).
		Return(nil, domainerrors.NewTransportError(errors.New("timeout"), "fetch")).Once()

	f.start(t)

	state := f.r.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, entity.AuthStatusAuthenticated, state.Status)
	assert.Nil(t, state.Profile)
}

func TestSessionReconciler_Ordering_LaterSignInWins(t *testing.T) {
	f := newReconcilerFixture(t, nil, nil)
	f.start(t)

	a := newIdentity(identityA, "a@example.com", nil)
	b := newIdentity(identityB, "b@example.com", nil)
	profileA := newStoredProfile(identityA, "a")
	profileB := newStoredProfile(identityB, "b")

	fetchStarted := make(chan struct{})
	release := make(chan struct{})

	f.profiles.EXPECT().FindByID(mock.Anything, a.ID).
		RunAndReturn(func(context.Context, uuid.UUID) (*entity.Profile, error) {
			close(fetchStarted)
			<-release

			return profileA, nil
		}).Once()
	f.profiles.EXPECT().FindByID(mock.Anything, b.ID).Return(profileB, nil).Once()

	f.provider.emit(entity.AuthEventSignedIn, sessionFor(a))
	<-fetchStarted
	f.provider.emit(entity.AuthEventSignedIn, sessionFor(b))

	// B is visible at once, without a profile until its reconcile runs.
	state := f.r.Snapshot()
	assert.Equal(t, b.ID, state.Identity.ID)
	assert.Nil(t, state.Profile)

	close(release)
	f.sync(t)

	state = f.r.Snapshot()
	require.NotNil(t, state.Profile)
	assert.Equal(t, b.ID, state.Profile.ID)
	assert.Equal(t, "b", state.Profile.Username)
}

func TestSessionReconciler_SignOut_ClearsProfileWithoutStoreCall(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", nil)
	f := newReconcilerFixture(t, sessionFor(identity), nil)

	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(newStoredProfile(identityA, "jane"), nil).Once()
	f.start(t)
	require.NotNil(t, f.r.Snapshot().Profile)

	f.provider.emit(entity.AuthEventSignedOut, nil)

	// Cleared synchronously, before any queued work runs.
	state := f.r.Snapshot()
	assert.Nil(t, state.Profile)
	assert.Nil(t, state.Session)
	assert.Nil(t, state.Identity)
	assert.Equal(t, entity.AuthStatusUnauthenticated, state.Status)

	f.sync(t)
	f.profiles.AssertNumberOfCalls(t, "FindByID", 1)
	f.profiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSessionReconciler_UpdateProfile_WithoutSession(t *testing.T) {
	f := newReconcilerFixture(t, nil, nil)
	f.start(t)

	profile, err := f.r.UpdateProfile(context.Background(), &entity.ProfileUpdate{Bio: ptr("hi")})

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, domainerrors.ErrNoAuthenticatedUser)
	f.profiles.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionReconciler_UpdateProfile_EmptyUpdate(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", nil)
	f := newReconcilerFixture(t, sessionFor(identity), nil)
	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(newStoredProfile(identityA, "jane"), nil).Once()
	f.start(t)

	_, err := f.r.UpdateProfile(context.Background(), &entity.ProfileUpdate{})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestSessionReconciler_UpdateProfile_SessionCheckedBeforeContent(t *testing.T) {
	f := newReconcilerFixture(t, nil, nil)
	f.start(t)

	for _, update := range []*entity.ProfileUpdate{{}, nil} {
		_, err := f.r.UpdateProfile(context.Background(), update)

		assert.ErrorIs(t, err, domainerrors.ErrNoAuthenticatedUser)
		assert.NotErrorIs(t, err, domainerrors.ErrValidationFailed)
	}
}

func TestSessionReconciler_UpdateProfile_UsesStoreRecord(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", nil)
	f := newReconcilerFixture(t, sessionFor(identity), nil)
	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(newStoredProfile(identityA, "jane"), nil).Once()
	f.start(t)

	fromStore := newStoredProfile(identityA, "jane")
	fromStore.Bio = ptr("bio as stored")
	fromStore.UpdatedAt = fixedNow

	f.profiles.EXPECT().
		UpdateByID(mock.Anything, identity.ID, mock.AnythingOfType("*entity.ProfileUpdate"), fixedNow).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, update *entity.ProfileUpdate, _ time.Time) (*entity.Profile, error) {
			assert.Equal(t, "hello", *update.Bio)
			assert.Equal(t, "Jane", *update.DisplayName)

			return fromStore, nil
		}).Once()

	got, err := f.r.UpdateProfile(context.Background(), &entity.ProfileUpdate{
		Bio:         ptr("<b>hello"),
		DisplayName: ptr("  Jane "),
	})

	require.NoError(t, err)
	assert.Same(t, fromStore, got)
	assert.Same(t, fromStore, f.r.Snapshot().Profile)
}

func TestSessionReconciler_UpdateProfile_FailureKeepsCache(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", nil)
	cached := newStoredProfile(identityA, "jane")
	f := newReconcilerFixture(t, sessionFor(identity), nil)
	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(cached, nil).Once()
	f.start(t)

	f.profiles.EXPECT().UpdateByID(mock.Anything, identity.ID, mock.Anything, mock.Anything).
		Return(nil, repository.ErrUsernameTaken).Once()

	_, err := f.r.UpdateProfile(context.Background(), &entity.ProfileUpdate{Username: ptr("taken")})

	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
	assert.Same(t, cached, f.r.Snapshot().Profile)
}

func TestSessionReconciler_TransportErrorKeepsCachedProfile(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", nil)
	cached := newStoredProfile(identityA, "jane")
	f := newReconcilerFixture(t, sessionFor(identity), nil)

	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(cached, nil).Once()
	f.start(t)

	before := f.r.Snapshot().Profile
	require.Same(t, cached, before)

	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).
		Return(nil, domainerrors.NewTransportError(errors.New("connection reset"), "fetch")).Once()

	f.provider.emit(entity.AuthEventTokenRefreshed, sessionFor(identity))
	f.sync(t)

	assert.Same(t, before, f.r.Snapshot().Profile)
	f.profiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSessionReconciler_RefreshProfile(t *testing.T) {
	t.Run("no identity is a no-op", func(t *testing.T) {
		f := newReconcilerFixture(t, nil, nil)
		f.start(t)

		assert.NoError(t, f.r.RefreshProfile(context.Background()))
	})

	t.Run("replaces cache", func(t *testing.T) {
		identity := newIdentity(identityA, "jane@example.com", nil)
		f := newReconcilerFixture(t, sessionFor(identity), nil)
		f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(newStoredProfile(identityA, "jane"), nil).Once()
		f.start(t)

		banned := newStoredProfile(identityA, "jane")
		banned.IsBanned = true
		f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(banned, nil).Once()

		require.NoError(t, f.r.RefreshProfile(context.Background()))
		assert.Same(t, banned, f.r.Snapshot().Profile)
	})

	t.Run("error is returned and cache kept", func(t *testing.T) {
		identity := newIdentity(identityA, "jane@example.com", nil)
		cached := newStoredProfile(identityA, "jane")
		f := newReconcilerFixture(t, sessionFor(identity), nil)
		f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(cached, nil).Once()
		f.start(t)

		f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).
			Return(nil, domainerrors.NewTransportError(errors.New("down"), "fetch")).Once()

		err := f.r.RefreshProfile(context.Background())
		assert.True(t, domainerrors.IsTransport(err))
		assert.Same(t, cached, f.r.Snapshot().Profile)
	})
}

func TestSessionReconciler_HandleProfileChanged(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", nil)
	f := newReconcilerFixture(t, sessionFor(identity), nil)
	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(newStoredProfile(identityA, "jane"), nil).Twice()
	f.start(t)

	require.NoError(t, f.r.HandleProfileChanged(context.Background(), uuid.MustParse(identityB)))
	require.NoError(t, f.r.HandleProfileChanged(context.Background(), identity.ID))

	f.profiles.AssertNumberOfCalls(t, "FindByID", 2)
}

func TestSessionReconciler_Reconcile_Idempotent(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", map[string]any{})
	f := newReconcilerFixture(t, nil, nil)
	f.start(t)

	rows := map[uuid.UUID]*entity.Profile{}
	var rowsMu sync.Mutex

	f.profiles.EXPECT().FindByID(mock.Anything, identity.ID).
		RunAndReturn(func(_ context.Context, id uuid.UUID) (*entity.Profile, error) {
			rowsMu.Lock()
			defer rowsMu.Unlock()
			if p, ok := rows[id]; ok {
				clone := *p
				return &clone, nil
			}

			return nil, repository.ErrProfileNotFound
		})
	f.profiles.EXPECT().Upsert(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, p *entity.Profile) (*entity.Profile, error) {
			rowsMu.Lock()
			defer rowsMu.Unlock()
			if _, ok := rows[p.ID]; !ok {
				rows[p.ID] = p
			}
			clone := *rows[p.ID]

			return &clone, nil
		}).Once()

	f.provider.emit(entity.AuthEventSignedIn, sessionFor(identity))
	f.sync(t)
	first := f.r.Snapshot().Profile

	f.provider.emit(entity.AuthEventTokenRefreshed, sessionFor(identity))
	f.sync(t)
	second := f.r.Snapshot().Profile

	require.NotNil(t, first)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("profile changed between reconciles (-first +second):\n%s", diff)
	}
	assert.Len(t, rows, 1)
	assert.Equal(t, identity.ID, second.ID)
}

func TestSessionReconciler_PublishesProfileCreated(t *testing.T) {
	identity := newIdentity(identityA, "jane@example.com", nil)
	profiles := mockRepo.NewMockProfileRepository(t)
	publisher := mockService.NewMockEventPublisher(t)
	provider := newFakeIdentityProvider(sessionFor(identity), nil)

	r := newSessionReconciler(SessionReconcilerParams{
		Provider:  provider,
		Profiles:  profiles,
		Publisher: publisher,
		Logger:    newDiscardLogger(),
	})
	r.now = func() time.Time { return fixedNow }
	t.Cleanup(func() { _ = r.Close(context.Background()) })

	profiles.EXPECT().FindByID(mock.Anything, identity.ID).Return(nil, repository.ErrProfileNotFound).Once()
	profiles.EXPECT().Upsert(mock.Anything, mock.Anything).RunAndReturn(returnArgProfile).Once()
	publisher.EXPECT().
		PublishAccountEvent(mock.Anything, mock.MatchedBy(func(e *entity.AccountEvent) bool {
			return e.Type == entity.AccountEventProfileCreated && e.IdentityID == identity.ID
		})).
		Return(errors.New("topic not found")).Once()

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.WaitReady(context.Background()))

	// Publishing failures never block caching the profile.
	require.NotNil(t, r.Snapshot().Profile)
	assert.Equal(t, "jane", r.Snapshot().Profile.Username)
}

func TestSessionReconciler_SignIn_WaitsForReconcile(t *testing.T) {
	f := newReconcilerFixture(t, nil, nil)
	f.start(t)

	f.profiles.EXPECT().FindByID(mock.Anything, uuid.MustParse(identityA)).Return(newStoredProfile(identityA, "jane"), nil).Once()

	err := f.r.SignIn(context.Background(), &usecase.SignInInput{Email: " Jane@Example.com ", Password: "secret"})
	require.NoError(t, err)

	state := f.r.Snapshot()
	require.NotNil(t, state.Profile)
	assert.Equal(t, "jane@example.com", state.Identity.Email)
}

func TestSessionReconciler_SignIn_ErrorSurfaced(t *testing.T) {
	f := newReconcilerFixture(t, nil, nil)
	f.provider.signInErr = domainerrors.ErrInvalidCredentials
	f.start(t)

	err := f.r.SignIn(context.Background(), &usecase.SignInInput{Email: "jane@example.com", Password: "nope"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionReconciler_SignUp_PasswordMismatch(t *testing.T) {
	provider := mockService.NewMockIdentityProvider(t)
	r := newSessionReconciler(SessionReconcilerParams{
		Provider: provider,
		Profiles: mockRepo.NewMockProfileRepository(t),
		Logger:   newDiscardLogger(),
	})

	err := r.SignUp(context.Background(), &usecase.SignUpInput{
		Email:           "jane@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)
}

func TestSessionReconciler_SignInWithOAuth(t *testing.T) {
	f := newReconcilerFixture(t, nil, nil)
	f.start(t)

	url, err := f.r.SignInWithOAuth(context.Background(), "GitHub")
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example.com/github", url)

	_, err = f.r.SignInWithOAuth(context.Background(), "myspace")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthProviderUnsupported)
}

func TestSessionReconciler_Close(t *testing.T) {
	f := newReconcilerFixture(t, nil, nil)
	f.start(t)

	require.NoError(t, f.r.Close(context.Background()))
	assert.Equal(t, 0, f.provider.listenerCount())
	assert.Equal(t, 1, f.provider.unsubscribed)

	select {
	case <-f.r.done:
	default:
		t.Fatal("worker must have exited")
	}

	// Events after teardown are ignored and operations fail fast.
	f.provider.emit(entity.AuthEventSignedIn, sessionFor(newIdentity(identityA, "a@example.com", nil)))
	assert.ErrorIs(t, f.r.Sync(context.Background()), domainerrors.ErrReconcilerClosed)
	assert.ErrorIs(t, f.r.Start(context.Background()), domainerrors.ErrReconcilerClosed)
	assert.NoError(t, f.r.Close(context.Background()))
}

func ptr[T any](v T) *T {
	return &v
}
