package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"rent-hub/internal/authstate"
	"rent-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRegistry(t *testing.T, provider domain.AuthProvider, profiles domain.ProfileRepository) *authstate.Registry {
	t.Helper()
	registry := authstate.NewRegistry(provider, profiles, 5*time.Minute, slog.Default())
	t.Cleanup(registry.Close)
	return registry
}

func TestResolveSession_Authenticated(t *testing.T) {
	provider := &stubProvider{session: &domain.Session{
		UserID:    "u1",
		Email:     "ana@example.com",
		SessionID: "sess-1",
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	profiles := &stubProfiles{profiles: map[string]*domain.UserProfile{
		"u1": {ID: "u1", DisplayName: "Ana", Roles: []string{"customer"}},
	}}
	registry := newSessionRegistry(t, provider, profiles)

	uc := NewResolveSession(registry, &mockTokenIssuer{token: "api-token"}, time.Second, slog.Default())
	result, err := uc.Execute(context.Background(), "cookie-1")

	require.NoError(t, err)
	assert.False(t, result.Initializing)
	assert.True(t, result.Authenticated)
	assert.Equal(t, "u1", result.UserID)
	assert.Equal(t, "Ana", result.DisplayName)
	assert.Equal(t, []string{"customer"}, result.Roles)
	assert.Equal(t, "api-token", result.APIToken)
}

func TestResolveSession_LoggedOut(t *testing.T) {
	registry := newSessionRegistry(t, &stubProvider{}, &stubProfiles{})

	uc := NewResolveSession(registry, &mockTokenIssuer{token: "unused"}, time.Second, slog.Default())
	result, err := uc.Execute(context.Background(), "cookie-1")

	require.NoError(t, err)
	assert.False(t, result.Initializing)
	assert.False(t, result.Authenticated)
	assert.Empty(t, result.APIToken, "no token is minted for anonymous visitors")
}

func TestResolveSession_ProviderDownDegradesToLoggedOut(t *testing.T) {
	registry := newSessionRegistry(t, &stubProvider{err: domain.ErrProviderUnavailable}, &stubProfiles{})

	uc := NewResolveSession(registry, &mockTokenIssuer{}, time.Second, slog.Default())
	result, err := uc.Execute(context.Background(), "cookie-1")

	require.NoError(t, err, "provider failures must not surface to the caller")
	assert.False(t, result.Authenticated)
	assert.False(t, result.Initializing)
}

func TestResolveSession_TokenFailure(t *testing.T) {
	provider := &stubProvider{session: &domain.Session{UserID: "u1", SessionID: "sess-1", Token: "tok-1"}}
	profiles := &stubProfiles{profiles: map[string]*domain.UserProfile{"u1": {ID: "u1"}}}
	registry := newSessionRegistry(t, provider, profiles)

	uc := NewResolveSession(registry, &mockTokenIssuer{err: errors.New("hsm offline")}, time.Second, slog.Default())
	_, err := uc.Execute(context.Background(), "cookie-1")

	assert.ErrorIs(t, err, domain.ErrTokenGeneration)
}
