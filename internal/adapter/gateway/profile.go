package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"rent-hub/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ProfileGateway implements domain.ProfileRepository against the marketplace
// database.
type ProfileGateway struct {
	db     DB
	logger *slog.Logger
}

// NewProfileGateway creates a new profile gateway.
func NewProfileGateway(db DB, logger *slog.Logger) *ProfileGateway {
	return &ProfileGateway{
		db:     db,
		logger: logger.With("component", "profile_gateway"),
	}
}

const profileByUserIDQuery = `
	SELECT p.id, p.display_name, p.avatar_url, p.email,
	       COALESCE(array_agg(r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
	FROM profiles p
	LEFT JOIN user_roles ur ON ur.user_id = p.id
	LEFT JOIN roles r ON r.id = ur.role_id
	WHERE p.id = $1
	GROUP BY p.id, p.display_name, p.avatar_url, p.email`

// FetchByUserID loads the profile with its joined role names. A user without
// role rows gets an empty role set; a missing profile row is
// domain.ErrProfileNotFound.
func (g *ProfileGateway) FetchByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var (
		profile   domain.UserProfile
		avatarURL *string
		roles     []string
	)

	row := g.db.QueryRow(ctx, profileByUserIDQuery, userID)
	if err := row.Scan(&profile.ID, &profile.DisplayName, &avatarURL, &profile.Email, &roles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
		}
		g.logger.ErrorContext(ctx, "failed to fetch profile", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	if avatarURL != nil {
		profile.AvatarURL = *avatarURL
	}
	profile.Roles = roles
	return &profile, nil
}
