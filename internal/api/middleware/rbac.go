package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC restricts the route to the given roles. It reads the role injected by
// Auth, so it must be registered after it; a request arriving without a role
// claim is rejected the same way as a wrong one. Errors flow to the central
// error handler for the standard envelope.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
