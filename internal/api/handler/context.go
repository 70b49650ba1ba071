package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the session identity injected by the Auth middleware.
// A missing username means the middleware never ran on this route.
func ctxIdentity(c echo.Context) (username, role string, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(string)
	return username, role, nil
}

// ctxToken returns the bearer token stored by the Auth middleware.
func ctxToken(c echo.Context) string {
	token, _ := c.Get("token").(string)
	return token
}
