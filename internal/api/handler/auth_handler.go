package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bacheca/board-api/internal/api/metrics"
	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// AuthHandler serves login and logout. A successful login creates the
// server-side session and rehydrates the user's favorites.
type AuthHandler struct {
	auth      ports.AuthService
	sessions  ports.SessionManager
	favorites ports.FavoriteService
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionManager, favorites ports.FavoriteService) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, favorites: favorites}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	// PasswordHash is the SHA-256 hex digest computed by the login form.
	PasswordHash string `json:"password_hash" validate:"required"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// Login authenticates and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials (password as SHA-256 hex digest)"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload non valido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	token, user, err := h.auth.Login(ctx, req.Username, req.PasswordHash)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	if err := h.sessions.Save(ctx, token, user); err != nil {
		return err
	}
	// Favorites load best-effort: a store hiccup must not block the login.
	if err := h.favorites.Rehydrate(ctx, user.Username); err != nil {
		c.Logger().Warnf("favorites rehydrate failed for %s: %v", user.Username, err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Success: true, Token: token, User: user})
}

// Logout tears down the session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Clear(c.Request().Context(), ctxToken(c)); err != nil {
		return err
	}
	h.favorites.Forget(username)

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
