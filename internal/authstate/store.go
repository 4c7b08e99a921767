// Package authstate holds the observable authentication state for one browser
// session: the provider session, the cached user profile with its roles, and
// the subscription surface the rest of the service reads it through.
package authstate

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"rent-hub/internal/domain"

	"golang.org/x/sync/singleflight"
)

// Store is the single source of truth for "who is logged in and with which
// roles" for one credential. It is constructed once per credential (see
// Registry), initialized exactly once, and kept in sync with the identity
// provider's push notifications for its whole lifetime.
//
// Consumers only read snapshots via State or react via Subscribe; they must
// never mutate a returned snapshot. Every mutation installs a fresh AuthState
// value, so snapshots can be diffed by pointer.
type Store struct {
	provider   domain.AuthProvider
	profiles   domain.ProfileRepository
	credential string
	logger     *slog.Logger

	mu        sync.Mutex
	state     *domain.AuthState
	gen       uint64
	listeners map[int]func()
	nextID    int

	initOnce sync.Once
	watching atomic.Bool
	ready    chan struct{}

	fetches singleflight.Group
}

// New creates a store for the given credential. The store starts in the
// initializing state; Run drives it to resolution.
func New(provider domain.AuthProvider, profiles domain.ProfileRepository, credential string, logger *slog.Logger) *Store {
	return &Store{
		provider:   provider,
		profiles:   profiles,
		credential: credential,
		logger:     logger.With("component", "authstate"),
		state:      &domain.AuthState{Initializing: true},
		listeners:  make(map[int]func()),
		ready:      make(chan struct{}),
	}
}

// State returns the current snapshot. It never blocks and is safe to call
// before initialization completes.
func (s *Store) State() *domain.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be invoked after every committed state mutation
// and returns its unsubscribe function. Unsubscribing is effective
// immediately, including from inside another listener's callback. Listeners
// must not assume any ordering relative to each other.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// HasRole reports whether the resolved profile carries the named role. It is
// false whenever no profile is loaded.
func (s *Store) HasRole(name string) bool {
	return s.State().Profile.HasRole(name)
}

// Run performs the one-shot initialization protocol and then watches the
// provider for session changes until ctx is done. Re-entry is a no-op for the
// initialization and returns immediately when a watch is already active.
func (s *Store) Run(ctx context.Context) error {
	s.initOnce.Do(func() { s.initialize(ctx) })

	if !s.watching.CompareAndSwap(false, true) {
		return nil
	}
	return s.provider.WatchSession(ctx, s.credential, func(ev domain.AuthEvent) {
		s.handleAuthEvent(ctx, ev)
	})
}

// WaitReady blocks until initialization has settled or ctx is done, then
// returns the current snapshot. On timeout the snapshot still carries
// Initializing=true.
func (s *Store) WaitReady(ctx context.Context) *domain.AuthState {
	select {
	case <-s.ready:
	case <-ctx.Done():
	}
	return s.State()
}

// initialize resolves the session and, when one names a user, the profile.
// Neither failure is fatal: an unreachable provider settles as logged out and
// a failed profile fetch leaves the profile nil. Initializing always
// transitions to false here and never becomes true again.
func (s *Store) initialize(ctx context.Context) {
	session, err := s.provider.GetCurrentSession(ctx, s.credential)
	if err != nil {
		s.logger.WarnContext(ctx, "session fetch failed during initialization, settling logged out", "error", err)
		session = nil
	}

	var profile *domain.UserProfile
	if session != nil {
		profile, err = s.fetchProfile(ctx, session.UserID)
		if err != nil {
			s.logger.WarnContext(ctx, "profile fetch failed during initialization",
				"user_id", session.UserID, "error", err)
			profile = nil
		}
	}

	s.mu.Lock()
	s.gen++
	s.state = &domain.AuthState{Session: session, Profile: profile, Initializing: false}
	s.mu.Unlock()
	close(s.ready)
	s.notify()
}

// handleAuthEvent applies one provider notification. Unchanged sessions
// (same user id and bearer token) cause no mutation and no notification.
func (s *Store) handleAuthEvent(ctx context.Context, ev domain.AuthEvent) {
	s.mu.Lock()
	cur := s.state
	if cur.Session.Same(ev.Session) {
		s.mu.Unlock()
		return
	}

	s.gen++
	gen := s.gen

	if ev.Session == nil {
		s.state = &domain.AuthState{Initializing: cur.Initializing}
		s.mu.Unlock()
		s.notify()
		return
	}

	// A token refresh keeps the user: the cached profile stays valid and no
	// fetch is issued.
	var profile *domain.UserProfile
	if cur.Profile != nil && cur.Profile.ID == ev.Session.UserID {
		profile = cur.Profile
	}
	s.state = &domain.AuthState{Session: ev.Session, Profile: profile, Initializing: cur.Initializing}
	s.mu.Unlock()
	s.notify()

	if profile == nil {
		s.loadProfile(ctx, ev.Session.UserID, gen)
	}
}

// loadProfile fetches the profile for userID and commits it unless a newer
// auth event has been applied meanwhile (newest event wins). Concurrent loads
// for the same user share one remote call.
func (s *Store) loadProfile(ctx context.Context, userID string, gen uint64) {
	profile, err := s.fetchProfile(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "profile fetch failed", "user_id", userID, "error", err)
		return
	}

	s.mu.Lock()
	if s.gen != gen || s.state.Session == nil || s.state.Session.UserID != userID {
		s.mu.Unlock()
		return
	}
	s.state = &domain.AuthState{Session: s.state.Session, Profile: profile, Initializing: s.state.Initializing}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) fetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	v, err, _ := s.fetches.Do(userID, func() (any, error) {
		return s.profiles.FetchByUserID(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.UserProfile), nil
}

// notify invokes every listener registered at notification time, after the
// mutation is committed. Liveness is re-checked per listener so that an
// unsubscribe issued from inside a callback suppresses the pending call.
func (s *Store) notify() {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.listeners[id]
		s.mu.Unlock()
		if ok {
			fn()
		}
	}
}
