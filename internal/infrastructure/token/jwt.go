package token

import (
	"time"

	"rent-hub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig holds API token generation configuration.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// apiClaims are the claims embedded in tokens handed to the browser for
// direct marketplace API calls. Roles come from the resolved profile.
type apiClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	Sid   string   `json:"sid"`
	jwt.RegisteredClaims
}

// JWTIssuer mints signed API tokens. Implements domain.TokenIssuer.
type JWTIssuer struct {
	cfg JWTConfig
}

// NewJWTIssuer creates a new issuer. Secrets under 32 bytes are rejected.
func NewJWTIssuer(cfg JWTConfig) (*JWTIssuer, error) {
	if len(cfg.Secret) < 32 {
		return nil, domain.ErrTokenSecretWeak
	}
	return &JWTIssuer{cfg: cfg}, nil
}

// IssueAPIToken generates a signed token for the resolved profile. A nil
// profile yields an anonymous token with no roles.
func (j *JWTIssuer) IssueAPIToken(profile *domain.UserProfile, sessionID string) (string, error) {
	now := time.Now()
	claims := apiClaims{
		Sid: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.cfg.Issuer,
			Audience:  jwt.ClaimStrings{j.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.TTL)),
		},
	}
	if profile != nil {
		claims.Subject = profile.ID
		claims.Email = profile.Email
		claims.Roles = profile.Roles
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", domain.ErrTokenGeneration
	}
	return signed, nil
}
