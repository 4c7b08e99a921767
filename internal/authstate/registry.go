package authstate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rent-hub/internal/domain"
)

// entry tracks one live store with its watch cancellation and last access.
type entry struct {
	store    *Store
	cancel   context.CancelFunc
	lastSeen time.Time
}

// Registry hands out one Store per browser credential and retires stores that
// have not been touched within the idle TTL. Each store's provider watch runs
// on its own goroutine and is cancelled on eviction or registry shutdown.
type Registry struct {
	provider domain.AuthProvider
	profiles domain.ProfileRepository
	logger   *slog.Logger
	base     *slog.Logger
	idleTTL  time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewRegistry creates a registry whose stores live until idle for idleTTL.
func NewRegistry(provider domain.AuthProvider, profiles domain.ProfileRepository, idleTTL time.Duration, logger *slog.Logger) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Registry{
		provider: provider,
		profiles: profiles,
		logger:   logger.With("component", "authstate_registry"),
		base:     logger,
		idleTTL:  idleTTL,
		entries:  make(map[string]*entry),
		baseCtx:  ctx,
		cancel:   cancel,
	}
	go r.cleanupLoop()
	return r
}

// Get returns the store for the credential, creating and starting it on first
// use. Access refreshes the idle timer.
func (r *Registry) Get(credential string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[credential]; ok {
		e.lastSeen = time.Now()
		return e.store
	}

	store := New(r.provider, r.profiles, credential, r.base)
	ctx, cancel := context.WithCancel(r.baseCtx)
	r.entries[credential] = &entry{store: store, cancel: cancel, lastSeen: time.Now()}

	go func() {
		if err := store.Run(ctx); err != nil && ctx.Err() == nil {
			r.logger.Warn("session watch terminated", "error", err)
		}
	}()

	return store
}

// Len reports the number of live stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close cancels every store watch and the cleanup loop.
func (r *Registry) Close() {
	r.cancel()
	r.mu.Lock()
	defer r.mu.Unlock()
	for cred, e := range r.entries {
		e.cancel()
		delete(r.entries, cred)
	}
}

// cleanupLoop retires idle stores every minute.
func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-r.baseCtx.Done():
			return
		case <-ticker.C:
			r.evictIdle(time.Now())
		}
	}
}

func (r *Registry) evictIdle(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for cred, e := range r.entries {
		if now.Sub(e.lastSeen) > r.idleTTL {
			e.cancel()
			delete(r.entries, cred)
		}
	}
}
