package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tivit/users-api/internal/core/domain"
)

// RequireRole admits only principals whose role satisfies the required tier.
// Must run after Auth; a missing principal means the token was never
// validated and maps to 401, not 403.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := c.Get(PrincipalKey).(domain.Principal)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}
			if !p.Role.Satisfies(required) {
				return echo.NewHTTPError(http.StatusForbidden, "not enough permissions")
			}
			return next(c)
		}
	}
}
