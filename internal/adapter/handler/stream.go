package handler

import (
	"log/slog"
	"net/http"
	"time"

	"rent-hub/internal/authstate"
	"rent-hub/internal/domain"
	"rent-hub/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const streamWriteTimeout = 10 * time.Second

// StreamHandler pushes auth-state snapshots over a websocket so every open
// tab converges on the same view after a sign-in, sign-out or role change.
type StreamHandler struct {
	stores   usecase.StoreProvider
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewStreamHandler creates a new stream handler. checkOrigin follows the
// server's CORS posture.
func NewStreamHandler(stores usecase.StoreProvider, checkOrigin func(*http.Request) bool, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		stores: stores,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger.With("component", "session_stream"),
	}
}

// streamSnapshot is the pushed message. It mirrors the /v1/session payload
// without the API token; tabs re-fetch the token over HTTP when they need it.
type streamSnapshot struct {
	Initializing bool         `json:"initializing"`
	User         *sessionUser `json:"user"`
	Session      *sessionInfo `json:"session"`
}

func snapshotOf(state *domain.AuthState) streamSnapshot {
	snap := streamSnapshot{Initializing: state.Initializing}
	if state.Session != nil {
		snap.Session = &sessionInfo{ID: state.Session.SessionID, ExpiresAt: state.Session.ExpiresAt}
		user := &sessionUser{ID: state.Session.UserID, Email: state.Session.Email, Roles: []string{}}
		if state.Profile != nil {
			user.DisplayName = state.Profile.DisplayName
			user.AvatarURL = state.Profile.AvatarURL
			if state.Profile.Roles != nil {
				user.Roles = state.Profile.Roles
			}
		}
		snap.User = user
	}
	return snap
}

// Handle processes GET /v1/session/stream.
func (h *StreamHandler) Handle(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "session cookie not found")
	}
	store := h.stores.Get(cookie.Value)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return nil
	}
	defer conn.Close()

	ctx := c.Request().Context()

	// Coalescing signal: a burst of mutations collapses into one pending
	// wake-up, and the snapshot is read fresh at write time.
	updates := make(chan struct{}, 1)
	unsubscribe := store.Subscribe(func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	// Reader goroutine: the client never sends data, but reading is what
	// detects the tab going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.write(conn, store); err != nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			return nil
		case <-updates:
			if err := h.write(conn, store); err != nil {
				return nil
			}
		}
	}
}

func (h *StreamHandler) write(conn *websocket.Conn, store *authstate.Store) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}
	if err := conn.WriteJSON(snapshotOf(store.State())); err != nil {
		h.logger.Debug("stream write failed", "error", err)
		return err
	}
	return nil
}
