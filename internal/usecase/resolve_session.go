package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rent-hub/internal/authstate"
	"rent-hub/internal/domain"
)

// StoreProvider hands out the auth-state store for a browser credential.
type StoreProvider interface {
	Get(credential string) *authstate.Store
}

// SessionResult is the snapshot returned to the frontend: session identity,
// resolved profile and roles, plus a short-lived API token.
type SessionResult struct {
	Initializing  bool
	Authenticated bool
	UserID        string
	Email         string
	DisplayName   string
	AvatarURL     string
	Roles         []string
	SessionID     string
	ExpiresAt     time.Time
	APIToken      string
}

// ResolveSession resolves the auth-state snapshot for a credential, waiting
// briefly for a fresh store to settle so the common case returns a resolved
// state instead of an initializing one.
type ResolveSession struct {
	stores StoreProvider
	token  domain.TokenIssuer
	wait   time.Duration
	logger *slog.Logger
}

// NewResolveSession creates a new ResolveSession usecase.
func NewResolveSession(stores StoreProvider, token domain.TokenIssuer, wait time.Duration, logger *slog.Logger) *ResolveSession {
	return &ResolveSession{stores: stores, token: token, wait: wait, logger: logger}
}

// Execute returns the current snapshot for the credential. A store still
// initializing after the grace period is reported as such, never an error.
func (uc *ResolveSession) Execute(ctx context.Context, credential string) (*SessionResult, error) {
	store := uc.stores.Get(credential)

	waitCtx, cancel := context.WithTimeout(ctx, uc.wait)
	defer cancel()
	state := store.WaitReady(waitCtx)

	result := &SessionResult{Initializing: state.Initializing}
	if state.Session == nil {
		return result, nil
	}

	result.Authenticated = true
	result.UserID = state.Session.UserID
	result.Email = state.Session.Email
	result.SessionID = state.Session.SessionID
	result.ExpiresAt = state.Session.ExpiresAt
	if state.Profile != nil {
		result.DisplayName = state.Profile.DisplayName
		result.AvatarURL = state.Profile.AvatarURL
		result.Roles = state.Profile.Roles
	}

	apiToken, err := uc.token.IssueAPIToken(state.Profile, state.Session.SessionID)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to issue API token", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}
	result.APIToken = apiToken

	return result, nil
}
