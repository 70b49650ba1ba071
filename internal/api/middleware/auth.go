package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bacheca/board-api/internal/core/ports"
)

// Auth validates the bearer token and injects the session identity into
// context. The token must both verify against the signing secret and match
// a live server-side session; a valid signature on an expired or cleared
// session is not enough.
func Auth(jwtSecret string, sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			token := parts[1]

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user := sessions.User(c.Request().Context(), token)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set("username", user.Username)
			c.Set("role", user.Role)
			c.Set("token", token)

			return next(c)
		}
	}
}
