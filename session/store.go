// Package session owns the authenticated identity and bearer credential.
//
// The store's life is a three-phase bootstrap machine:
//
//	Hydrating → Reconciling → Settled
//
// Hydrating applies the persisted token/user snapshot optimistically, so a
// returning user never sees a logged-out flash. Reconciling replaces the
// snapshot with the server's authoritative profile. A rejected credential
// (401/403) during reconciliation is fatal to the session and forces a full
// logout; any other failure (connectivity, timeout, rate limit) preserves
// the optimistic state — "credential is invalid" and "server is unreachable"
// are different situations and only the first one ends the session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/foodhub/foodhub-go/core"
)

// Phase is the bootstrap lifecycle position.
type Phase string

const (
	// PhaseHydrating: before persisted state has been read.
	PhaseHydrating Phase = "hydrating"
	// PhaseReconciling: optimistic state applied, profile fetch in flight.
	PhaseReconciling Phase = "reconciling"
	// PhaseSettled: bootstrap finished (either outcome); Loading() is false.
	PhaseSettled Phase = "settled"
)

// ProfileFetcher is the "who am I" collaborator. api.AuthService satisfies it.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*core.User, error)
}

// Store owns session state and its persistence/reconciliation contract.
// The invariant: user and token are set together or both absent.
type Store struct {
	mu    sync.RWMutex
	user  *core.User
	token string
	phase Phase

	storage   core.Storage
	profiles  ProfileFetcher
	navigator core.Navigator
	notifier  core.Notifier
	logger    core.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger core.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNavigator sets the navigation side-effect target.
func WithNavigator(nav core.Navigator) Option {
	return func(s *Store) {
		if nav != nil {
			s.navigator = nav
		}
	}
}

// WithNotifier sets the user-feedback side-effect target.
func WithNotifier(n core.Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// New creates a session store. It starts in PhaseHydrating; call Bootstrap
// once at application start.
func New(storage core.Storage, profiles ProfileFetcher, opts ...Option) *Store {
	s := &Store{
		phase:     PhaseHydrating,
		storage:   storage,
		profiles:  profiles,
		navigator: &core.NoOpNavigator{},
		notifier:  &core.NoOpNotifier{},
		logger:    &core.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap restores the session from persisted storage and reconciles it
// with the server. It returns nil when the session settled cleanly —
// including the forced-logout branch, which the store handles itself — and
// returns the underlying error when reconciliation failed for a non-auth
// reason (state is preserved in that case; the caller decides how to
// present the failure). Loading() is false once Bootstrap returns.
func (s *Store) Bootstrap(ctx context.Context) error {
	defer s.settle()

	token, err := s.storage.Get(ctx, core.StorageKeyToken)
	if err != nil {
		s.logger.Error("Failed to read persisted token", map[string]interface{}{
			"operation": "session_bootstrap",
			"error":     err.Error(),
		})
		return nil
	}
	if token == "" {
		s.logger.Debug("No persisted session", map[string]interface{}{
			"operation": "session_bootstrap",
		})
		return nil
	}

	// Apply the persisted snapshot immediately to avoid a logged-out flash.
	if raw, err := s.storage.Get(ctx, core.StorageKeyUser); err == nil && raw != "" {
		var snapshot core.User
		if err := json.Unmarshal([]byte(raw), &snapshot); err == nil {
			s.mu.Lock()
			s.user = &snapshot
			s.token = token
			s.mu.Unlock()
		} else {
			s.logger.Warn("Persisted user snapshot corrupt, ignoring", map[string]interface{}{
				"operation": "session_bootstrap",
				"error":     err.Error(),
			})
		}
	}

	s.mu.Lock()
	s.phase = PhaseReconciling
	s.mu.Unlock()

	user, err := s.profiles.Profile(ctx)
	if err != nil {
		if core.IsAuthRejected(err) {
			s.logger.Warn("Persisted session rejected by API", map[string]interface{}{
				"operation": "session_bootstrap",
				"error":     err.Error(),
			})
			s.Logout(ctx)
			return nil
		}
		// Non-auth failure: the optimistic state stays. The server being
		// unreachable does not invalidate the credential.
		s.logger.Warn("Profile reconciliation failed, keeping optimistic session", map[string]interface{}{
			"operation": "session_bootstrap",
			"error":     err.Error(),
		})
		return err
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	s.persistUser(ctx, user)

	s.logger.Info("Session reconciled", map[string]interface{}{
		"operation": "session_bootstrap",
		"user_id":   user.ID,
		"role":      string(user.Role),
	})
	return nil
}

// Login sets the credential and identity atomically, persists both, and
// performs the role-based landing navigation. The network call that produced
// the pair is the caller's concern. A second Login overwrites completely.
func (s *Store) Login(ctx context.Context, token string, user core.User) {
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.phase = PhaseSettled
	s.mu.Unlock()

	s.persistToken(ctx, token)
	s.persistUser(ctx, &user)

	switch user.Role {
	case core.RoleAdmin:
		s.navigator.Navigate(core.PathAdminDashboard)
	case core.RoleProvider:
		s.navigator.Navigate(core.PathProviderDashboard)
	default:
		s.navigator.Navigate(core.PathHome)
	}

	s.notifier.Success(fmt.Sprintf("Welcome back, %s!", user.Name))

	s.logger.Info("Logged in", map[string]interface{}{
		"operation": "session_login",
		"user_id":   user.ID,
		"role":      string(user.Role),
	})
}

// Logout clears the session and both persisted entries, then navigates to
// the login surface. Idempotent: logging out while anonymous only repeats
// the navigation and notification.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.phase = PhaseSettled
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, core.StorageKeyToken); err != nil {
		s.logger.Error("Failed to clear persisted token", map[string]interface{}{
			"operation": "session_logout",
			"error":     err.Error(),
		})
	}
	if err := s.storage.Delete(ctx, core.StorageKeyUser); err != nil {
		s.logger.Error("Failed to clear persisted user", map[string]interface{}{
			"operation": "session_logout",
			"error":     err.Error(),
		})
	}

	s.navigator.Navigate(core.PathLogin)
	s.notifier.Success("Logged out successfully")

	s.logger.Info("Logged out", map[string]interface{}{
		"operation": "session_logout",
	})
}

// User returns a copy of the current identity, or nil when anonymous.
func (s *Store) User() *core.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current bearer credential, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a principal is signed in.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Loading is true only until the initial bootstrap settles.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase != PhaseSettled
}

// Phase returns the current bootstrap phase.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Store) settle() {
	s.mu.Lock()
	s.phase = PhaseSettled
	s.mu.Unlock()
}

func (s *Store) persistToken(ctx context.Context, token string) {
	if err := s.storage.Set(ctx, core.StorageKeyToken, token, 0); err != nil {
		s.logger.Error("Failed to persist token", map[string]interface{}{
			"operation": "session_persist",
			"error":     err.Error(),
		})
	}
}

func (s *Store) persistUser(ctx context.Context, user *core.User) {
	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("Failed to encode user", map[string]interface{}{
			"operation": "session_persist",
			"error":     err.Error(),
		})
		return
	}
	if err := s.storage.Set(ctx, core.StorageKeyUser, string(data), 0); err != nil {
		s.logger.Error("Failed to persist user", map[string]interface{}{
			"operation": "session_persist",
			"error":     err.Error(),
		})
	}
}
