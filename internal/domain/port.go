package domain

import "context"

// AuthProvider is the identity provider seen from this service: a one-shot
// session fetch plus a push-style watch that reports subsequent transitions.
type AuthProvider interface {
	// GetCurrentSession resolves the session for a browser credential.
	// Returns (nil, nil) when the credential names no authenticated user.
	GetCurrentSession(ctx context.Context, credential string) (*Session, error)

	// WatchSession blocks until ctx is done, invoking fn for session
	// transitions observed for the credential. The provider may re-emit an
	// unchanged session; consumers must treat that as a no-op.
	WatchSession(ctx context.Context, credential string, fn func(AuthEvent)) error
}

// ProfileRepository fetches the application user record with its joined role
// names. Missing role rows yield an empty role set, not an error.
type ProfileRepository interface {
	FetchByUserID(ctx context.Context, userID string) (*UserProfile, error)
}

// VehicleRepository reads the vehicle catalog. Facets and Simulate call
// backend-owned SQL functions; the aggregation and pricing rules live there.
type VehicleRepository interface {
	List(ctx context.Context, filter VehicleFilter) (*VehiclePage, error)
	Facets(ctx context.Context, filter VehicleFilter) (*FilterFacets, error)
	Get(ctx context.Context, id string) (*VehicleDetail, error)
	Simulate(ctx context.Context, id string, params SimulationParams) (*RentalQuote, error)
}

// ContentRepository reads and updates the editable site content.
type ContentRepository interface {
	HomeContent(ctx context.Context) (*HomeContent, error)
	UpdateHomeContent(ctx context.Context, content HomeContent) error
	SiteTexts(ctx context.Context) ([]SiteText, error)
	UpdateSiteText(ctx context.Context, key, value string) error
}

// TokenIssuer mints signed API tokens carrying the resolved roles.
type TokenIssuer interface {
	IssueAPIToken(profile *UserProfile, sessionID string) (string, error)
}
