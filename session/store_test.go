package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodhub/foodhub-go/core"
	"github.com/foodhub/foodhub-go/storage"
)

// fakeProfiles is a scripted ProfileFetcher.
type fakeProfiles struct {
	user  *core.User
	err   error
	calls int
}

func (f *fakeProfiles) Profile(ctx context.Context) (*core.User, error) {
	f.calls++
	return f.user, f.err
}

type notifyRecorder struct {
	successes []string
	errors    []string
}

func (n *notifyRecorder) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *notifyRecorder) Error(msg string)   { n.errors = append(n.errors, msg) }

func annUser() core.User {
	return core.User{
		ID:       "u1",
		Name:     "Ann",
		Email:    "ann@example.com",
		Role:     core.RoleCustomer,
		IsActive: true,
	}
}

func persistSession(t *testing.T, backing core.Storage, token string, user core.User) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, backing.Set(ctx, core.StorageKeyToken, token, 0))
	data, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, backing.Set(ctx, core.StorageKeyUser, string(data), 0))
}

func TestLogin_SetsBothFieldsAtomically(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	store := New(backing, &fakeProfiles{})

	store.Login(ctx, "tok-1", annUser())

	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "tok-1", store.Token())
	assert.True(t, store.Authenticated())
	assert.False(t, store.Loading())

	// Both entries persisted.
	token, err := backing.Get(ctx, core.StorageKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	raw, err := backing.Get(ctx, core.StorageKeyUser)
	require.NoError(t, err)
	assert.Contains(t, raw, `"Ann"`)
}

func TestLogin_RoleBasedNavigation(t *testing.T) {
	tests := []struct {
		role core.Role
		want string
	}{
		{core.RoleAdmin, core.PathAdminDashboard},
		{core.RoleProvider, core.PathProviderDashboard},
		{core.RoleCustomer, core.PathHome},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			nav := &core.MemoryNavigator{}
			store := New(storage.NewMemoryStore(), &fakeProfiles{}, WithNavigator(nav))

			user := annUser()
			user.Role = tt.role
			store.Login(context.Background(), "tok", user)

			assert.Equal(t, tt.want, nav.Path())
		})
	}
}

func TestLogin_GreetsUserByName(t *testing.T) {
	recorder := &notifyRecorder{}
	store := New(storage.NewMemoryStore(), &fakeProfiles{}, WithNotifier(recorder))

	store.Login(context.Background(), "tok", annUser())

	require.Len(t, recorder.successes, 1)
	assert.Equal(t, "Welcome back, Ann!", recorder.successes[0])
}

func TestLogin_SecondCallWinsCompletely(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	store := New(backing, &fakeProfiles{})

	store.Login(ctx, "tok-1", annUser())

	second := core.User{ID: "u2", Name: "Bob", Role: core.RoleProvider}
	store.Login(ctx, "tok-2", second)

	assert.Equal(t, "tok-2", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, "Bob", store.User().Name)

	token, _ := backing.Get(ctx, core.StorageKeyToken)
	assert.Equal(t, "tok-2", token)
}

func TestLogout_ClearsStateAndStorage(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	nav := &core.MemoryNavigator{}
	store := New(backing, &fakeProfiles{}, WithNavigator(nav))

	store.Login(ctx, "tok", annUser())
	store.Logout(ctx)

	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())
	assert.False(t, store.Authenticated())
	assert.Equal(t, core.PathLogin, nav.Path())

	for _, key := range []string{core.StorageKeyToken, core.StorageKeyUser} {
		exists, err := backing.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, "key %s should be cleared", key)
	}
}

func TestLogout_IdempotentWhenAnonymous(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemoryStore(), &fakeProfiles{})

	store.Logout(ctx)
	store.Logout(ctx)

	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())
}

func TestBootstrap_NoPersistedTokenSettlesAnonymous(t *testing.T) {
	profiles := &fakeProfiles{}
	store := New(storage.NewMemoryStore(), profiles)

	require.NoError(t, store.Bootstrap(context.Background()))

	assert.False(t, store.Loading())
	assert.Equal(t, PhaseSettled, store.Phase())
	assert.Nil(t, store.User())
	// No profile call without a credential.
	assert.Equal(t, 0, profiles.calls)
}

func TestBootstrap_ReconcilesWithServerProfile(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()

	stale := annUser()
	stale.Name = "Ann (stale)"
	persistSession(t, backing, "abc", stale)

	fresh := annUser()
	profiles := &fakeProfiles{user: &fresh}
	store := New(backing, profiles)

	require.NoError(t, store.Bootstrap(ctx))

	require.NotNil(t, store.User())
	assert.Equal(t, "Ann", store.User().Name, "server profile replaces the snapshot")
	assert.Equal(t, "abc", store.Token())
	assert.False(t, store.Loading())

	// The authoritative profile is re-persisted.
	raw, err := backing.Get(ctx, core.StorageKeyUser)
	require.NoError(t, err)
	assert.NotContains(t, raw, "stale")
}

func TestBootstrap_AuthRejectionForcesLogout(t *testing.T) {
	for _, status := range []int{401, 403} {
		ctx := context.Background()
		backing := storage.NewMemoryStore()
		nav := &core.MemoryNavigator{}
		persistSession(t, backing, "abc", annUser())

		profiles := &fakeProfiles{err: &core.ClientError{
			Op:     "api.auth.Profile",
			Kind:   core.ErrorKindAuth,
			Status: status,
			Err:    core.ErrAuthRejected,
		}}
		store := New(backing, profiles, WithNavigator(nav))

		require.NoError(t, store.Bootstrap(ctx))

		assert.Nil(t, store.User(), "status %d", status)
		assert.Empty(t, store.Token(), "status %d", status)
		assert.False(t, store.Loading())
		assert.Equal(t, core.PathLogin, nav.Path())

		exists, err := backing.Exists(ctx, core.StorageKeyToken)
		require.NoError(t, err)
		assert.False(t, exists)
	}
}

func TestBootstrap_ConnectivityFailurePreservesOptimisticState(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	persistSession(t, backing, "abc", annUser())

	profiles := &fakeProfiles{err: &core.ClientError{
		Op:   "api.auth.Profile",
		Kind: core.ErrorKindConnectivity,
		Err:  core.ErrConnectionFailed,
	}}
	store := New(backing, profiles)

	err := store.Bootstrap(ctx)
	require.Error(t, err)
	assert.True(t, core.IsRetryable(err))

	// The persisted pair remains set and loading has resolved.
	require.NotNil(t, store.User())
	assert.Equal(t, "Ann", store.User().Name)
	assert.Equal(t, "abc", store.Token())
	assert.False(t, store.Loading())

	// Storage untouched.
	token, _ := backing.Get(ctx, core.StorageKeyToken)
	assert.Equal(t, "abc", token)
}

func TestBootstrap_RateLimitPreservesOptimisticState(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	persistSession(t, backing, "abc", annUser())

	profiles := &fakeProfiles{err: &core.ClientError{
		Op:     "api.auth.Profile",
		Kind:   core.ErrorKindRateLimit,
		Status: 429,
		Err:    core.ErrRateLimited,
	}}
	store := New(backing, profiles)

	err := store.Bootstrap(ctx)
	require.Error(t, err)

	require.NotNil(t, store.User())
	assert.Equal(t, "abc", store.Token())
	assert.False(t, store.Loading())
}

func TestBootstrap_TokenWithoutSnapshotStillReconciles(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, core.StorageKeyToken, "abc", 0))

	fresh := annUser()
	profiles := &fakeProfiles{user: &fresh}
	store := New(backing, profiles)

	require.NoError(t, store.Bootstrap(ctx))

	require.NotNil(t, store.User())
	assert.Equal(t, "abc", store.Token())
	assert.Equal(t, 1, profiles.calls)
}

func TestBootstrap_CorruptSnapshotIgnored(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, core.StorageKeyToken, "abc", 0))
	require.NoError(t, backing.Set(ctx, core.StorageKeyUser, "{broken", 0))

	fresh := annUser()
	profiles := &fakeProfiles{user: &fresh}
	store := New(backing, profiles)

	require.NoError(t, store.Bootstrap(ctx))
	require.NotNil(t, store.User())
	assert.Equal(t, "Ann", store.User().Name)
}

func TestPhaseTransitions(t *testing.T) {
	store := New(storage.NewMemoryStore(), &fakeProfiles{})
	assert.Equal(t, PhaseHydrating, store.Phase())
	assert.True(t, store.Loading())

	require.NoError(t, store.Bootstrap(context.Background()))
	assert.Equal(t, PhaseSettled, store.Phase())
	assert.False(t, store.Loading())
}
