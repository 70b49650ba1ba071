package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bacheca/board-api/internal/api/metrics"
	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// SessionHandler exposes the current session and its refresh operations.
type SessionHandler struct {
	sessions ports.SessionManager
}

func NewSessionHandler(sessions ports.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

// Get returns the session behind the bearer token.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	user := h.sessions.User(c.Request().Context(), ctxToken(c))
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: user != nil,
		User:          user,
	})
}

// Refresh explicitly extends the session expiry by a full window.
//
// @Summary      Refresh session expiry
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Router       /v1/session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	if err := h.sessions.Refresh(c.Request().Context(), ctxToken(c)); err != nil {
		return err
	}
	metrics.SessionRefreshesTotal.WithLabelValues("explicit").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Activity registers a user-activity ping. The refresh it triggers is
// debounced server-side, so clients may call this on every interaction.
//
// @Summary      Report user activity
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Router       /v1/session/activity [post]
func (h *SessionHandler) Activity(c echo.Context) error {
	h.sessions.Touch(ctxToken(c))
	metrics.SessionRefreshesTotal.WithLabelValues("activity").Inc()
	return c.JSON(http.StatusAccepted, map[string]bool{"accepted": true})
}
