package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"rent-hub/internal/authstate"

	"github.com/labstack/echo/v4"
)

const sessionCookieName = "ory_kratos_session"

// storeProvider resolves the auth-state store for a browser credential.
type storeProvider interface {
	Get(credential string) *authstate.Store
}

// GuardConfig controls the role guard.
type GuardConfig struct {
	// Role is the role name the route requires.
	Role string
	// LoginURL receives visitors with no session.
	LoginURL string
	// DeniedURL receives signed-in users missing the role.
	DeniedURL string
	// Wait bounds how long a request blocks on a store still resolving its
	// first session fetch.
	Wait time.Duration
}

// RequireRole gates a route group on an authenticated session carrying the
// given role. Browsers are redirected rather than shown a JSON error: to the
// login page when there is no session, to the denied page when the role is
// missing. A store that cannot settle within the wait window answers 503 so
// the browser retries instead of being bounced to login on a slow identity
// provider.
func RequireRole(stores storeProvider, cfg GuardConfig) echo.MiddlewareFunc {
	if cfg.LoginURL == "" {
		cfg.LoginURL = "/login"
	}
	if cfg.DeniedURL == "" {
		cfg.DeniedURL = "/"
	}
	if cfg.Wait <= 0 {
		cfg.Wait = 3 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, cfg.LoginURL)
			}

			store := stores.Get(cookie.Value)

			waitCtx, cancel := context.WithTimeout(c.Request().Context(), cfg.Wait)
			state := store.WaitReady(waitCtx)
			cancel()

			if state.Initializing {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(cfg.Wait.Seconds())+1))
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session state not ready")
			}
			if state.Session == nil {
				return c.Redirect(http.StatusSeeOther, cfg.LoginURL)
			}
			if cfg.Role != "" && !store.HasRole(cfg.Role) {
				return c.Redirect(http.StatusSeeOther, cfg.DeniedURL)
			}

			return next(c)
		}
	}
}
