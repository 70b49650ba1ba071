package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bacheca/board-api/internal/core/domain"
)

// RBAC enforces role-based access control. The role must have been injected
// by the Auth middleware; a missing role never matches.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
