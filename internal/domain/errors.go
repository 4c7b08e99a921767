package domain

import "errors"

// Authentication errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrSessionInactive = errors.New("session is not active")
	ErrMissingIdentity = errors.New("missing identity in session")
	ErrRoleRequired    = errors.New("required role missing")
)

// Token errors.
var (
	ErrTokenGeneration = errors.New("token generation failed")
	ErrTokenSecretWeak = errors.New("API token secret too short")
)

// External service errors.
var (
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	ErrBackendUnavailable  = errors.New("marketplace backend unavailable")
)

// Catalog and content errors.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrContentNotFound = errors.New("content not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)
