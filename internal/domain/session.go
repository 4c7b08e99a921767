package domain

import "time"

// Session is a read-only copy of the credential bundle issued by the identity
// provider. The provider owns the session; rent-hub only replaces its copy when
// the provider announces a change.
type Session struct {
	UserID    string
	Email     string
	SessionID string
	Token     string
	ExpiresAt time.Time
}

// Same reports whether two sessions describe the same authentication, compared
// by user identity and bearer token rather than pointer identity. The provider
// may re-announce an unchanged session (tab refocus, multi-tab sync) and those
// re-announcements must not look like transitions.
func (s *Session) Same(other *Session) bool {
	if s == nil || other == nil {
		return s == nil && other == nil
	}
	return s.UserID == other.UserID && s.Token == other.Token
}

// UserProfile is the locally cached projection of the application's user
// record, keyed by the session's user id.
type UserProfile struct {
	ID          string
	DisplayName string
	AvatarURL   string
	Email       string
	Roles       []string
}

// HasRole reports whether the profile carries the named role.
func (p *UserProfile) HasRole(name string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// AuthState is an immutable snapshot of the authentication state. Every
// mutation installs a fresh value, so consumers may diff snapshots by pointer.
//
// Invariants: Profile is nil whenever Session is nil; when both are non-nil,
// Profile.ID == Session.UserID. Initializing is true only until the first full
// resolution completes and never becomes true again.
type AuthState struct {
	Session      *Session
	Profile      *UserProfile
	Initializing bool
}

// AuthEventType classifies session transitions pushed by the identity provider.
type AuthEventType string

const (
	AuthEventSignedIn       AuthEventType = "signed_in"
	AuthEventSignedOut      AuthEventType = "signed_out"
	AuthEventTokenRefreshed AuthEventType = "token_refreshed"
)

// AuthEvent is a push notification from the identity provider. Session is nil
// on sign-out.
type AuthEvent struct {
	Type    AuthEventType
	Session *Session
}
