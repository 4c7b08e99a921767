package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"rent-hub/internal/domain"

	kratos "github.com/ory/kratos-client-go"
)

const sessionCookieName = "ory_kratos_session"

// KratosGateway implements domain.AuthProvider against the Ory Kratos
// frontend API.
type KratosGateway struct {
	client          *kratos.APIClient
	httpClient      *http.Client
	revalidateEvery time.Duration
	logger          *slog.Logger
}

// NewKratosGateway creates a new Kratos gateway with tuned HTTP transport.
// revalidateEvery controls how often WatchSession re-checks a credential.
func NewKratosGateway(baseURL string, timeout, revalidateEvery time.Duration, logger *slog.Logger) *KratosGateway {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: baseURL},
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
	configuration.HTTPClient = httpClient

	return &KratosGateway{
		client:          kratos.NewAPIClient(configuration),
		httpClient:      httpClient,
		revalidateEvery: revalidateEvery,
		logger:          logger.With("component", "kratos_gateway"),
	}
}

// GetCurrentSession resolves the session behind a cookie credential. An
// unauthenticated or inactive session resolves to (nil, nil); only transport
// level failures return an error.
func (g *KratosGateway) GetCurrentSession(ctx context.Context, credential string) (*domain.Session, error) {
	if credential == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	cookie := fmt.Sprintf("%s=%s", sessionCookieName, credential)
	session, resp, err := g.client.FrontendAPI.ToSession(ctx).Cookie(cookie).Execute()
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	if session.Active != nil && !*session.Active {
		return nil, nil
	}

	if session.Identity == nil {
		return nil, domain.ErrMissingIdentity
	}

	email := ""
	if traits, ok := session.Identity.Traits.(map[string]interface{}); ok {
		if emailVal, ok := traits["email"]; ok {
			if emailStr, ok := emailVal.(string); ok {
				email = emailStr
			}
		}
	}

	var expiresAt time.Time
	if session.ExpiresAt != nil {
		expiresAt = *session.ExpiresAt
	}

	return &domain.Session{
		UserID:    session.Identity.Id,
		Email:     email,
		SessionID: session.Id,
		Token:     sessionToken(session.Id, expiresAt),
		ExpiresAt: expiresAt,
	}, nil
}

// sessionToken fingerprints a Kratos session. A session refresh extends the
// expiry while keeping the id, so the fingerprint changes on refresh and the
// store observes it as a token rotation.
func sessionToken(sessionID string, expiresAt time.Time) string {
	return fmt.Sprintf("%s.%d", sessionID, expiresAt.Unix())
}

// WatchSession re-validates the credential on an interval and pushes the
// observed transitions to fn until ctx is done. Live sessions are
// re-announced on every cycle; consumers absorb the duplicates.
func (g *KratosGateway) WatchSession(ctx context.Context, credential string, fn func(domain.AuthEvent)) error {
	ticker := time.NewTicker(g.revalidateEvery)
	defer ticker.Stop()

	var last *domain.Session
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		session, err := g.GetCurrentSession(ctx, credential)
		if err != nil {
			// A flapping provider is not a sign-out; keep the last known state.
			g.logger.DebugContext(ctx, "session revalidation failed", "error", err)
			continue
		}

		switch {
		case session == nil && last == nil:
			// still logged out
		case session == nil:
			fn(domain.AuthEvent{Type: domain.AuthEventSignedOut})
		case last == nil || last.UserID != session.UserID:
			fn(domain.AuthEvent{Type: domain.AuthEventSignedIn, Session: session})
		case last.Token != session.Token:
			fn(domain.AuthEvent{Type: domain.AuthEventTokenRefreshed, Session: session})
		default:
			fn(domain.AuthEvent{Type: domain.AuthEventSignedIn, Session: session})
		}
		last = session
	}
}
