package handler

import (
	"net/http"
	"time"

	"rent-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the identity provider's session cookie.
const SessionCookieName = "ory_kratos_session"

// SessionHandler serves the auth-state snapshot consumed by the frontend on
// page load and after auth transitions.
type SessionHandler struct {
	uc *usecase.ResolveSession
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(uc *usecase.ResolveSession) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// sessionUser is the user object in the response.
type sessionUser struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName,omitempty"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
	Roles       []string `json:"roles"`
}

// sessionInfo is the session object in the response.
type sessionInfo struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// sessionResponse is the JSON envelope. User and Session are null for
// anonymous visitors; Initializing is true while a fresh store is still
// resolving.
type sessionResponse struct {
	OK           bool         `json:"ok"`
	Initializing bool         `json:"initializing"`
	User         *sessionUser `json:"user"`
	Session      *sessionInfo `json:"session"`
}

// Handle processes GET /v1/session. A missing cookie is an anonymous visitor,
// not an error.
func (h *SessionHandler) Handle(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return c.JSON(http.StatusOK, sessionResponse{OK: true})
	}

	result, err := h.uc.Execute(c.Request().Context(), cookie.Value)
	if err != nil {
		return mapDomainError(err)
	}

	resp := sessionResponse{OK: true, Initializing: result.Initializing}
	if result.Authenticated {
		roles := result.Roles
		if roles == nil {
			roles = []string{}
		}
		resp.User = &sessionUser{
			ID:          result.UserID,
			Email:       result.Email,
			DisplayName: result.DisplayName,
			AvatarURL:   result.AvatarURL,
			Roles:       roles,
		}
		resp.Session = &sessionInfo{ID: result.SessionID, ExpiresAt: result.ExpiresAt}
		c.Response().Header().Set("X-Rent-Api-Token", result.APIToken)
	}

	return c.JSON(http.StatusOK, resp)
}
