package gateway

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"rent-hub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileGateway(t *testing.T) (*ProfileGateway, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return NewProfileGateway(mockDB, slog.Default()), mockDB
}

func TestProfileGateway_FetchByUserID(t *testing.T) {
	t.Run("returns profile with joined roles", func(t *testing.T) {
		gw, mockDB := newProfileGateway(t)
		avatar := "https://cdn.example.com/u1.png"

		mockDB.ExpectQuery("SELECT p.id, p.display_name").
			WithArgs("u1").
			WillReturnRows(pgxmock.NewRows([]string{"id", "display_name", "avatar_url", "email", "roles"}).
				AddRow("u1", "Ana", &avatar, "ana@example.com", []string{"customer", "admin"}))

		profile, err := gw.FetchByUserID(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, "u1", profile.ID)
		assert.Equal(t, "Ana", profile.DisplayName)
		assert.Equal(t, avatar, profile.AvatarURL)
		assert.Equal(t, []string{"customer", "admin"}, profile.Roles)
		assert.True(t, profile.HasRole("admin"))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("missing role rows yield an empty role set", func(t *testing.T) {
		gw, mockDB := newProfileGateway(t)

		mockDB.ExpectQuery("SELECT p.id, p.display_name").
			WithArgs("u2").
			WillReturnRows(pgxmock.NewRows([]string{"id", "display_name", "avatar_url", "email", "roles"}).
				AddRow("u2", "Ben", (*string)(nil), "ben@example.com", []string{}))

		profile, err := gw.FetchByUserID(context.Background(), "u2")

		require.NoError(t, err)
		assert.Empty(t, profile.Roles)
		assert.False(t, profile.HasRole("admin"))
	})

	t.Run("missing profile maps to not found", func(t *testing.T) {
		gw, mockDB := newProfileGateway(t)

		mockDB.ExpectQuery("SELECT p.id, p.display_name").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := gw.FetchByUserID(context.Background(), "ghost")

		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("transport errors are wrapped", func(t *testing.T) {
		gw, mockDB := newProfileGateway(t)

		mockDB.ExpectQuery("SELECT p.id, p.display_name").
			WithArgs("u1").
			WillReturnError(errors.New("connection refused"))

		_, err := gw.FetchByUserID(context.Background(), "u1")

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrProfileNotFound)
	})
}
