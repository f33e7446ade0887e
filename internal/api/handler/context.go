package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tivit/users-api/internal/api/middleware"
	"github.com/tivit/users-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any downstream call. A missing principal means the
// middleware never ran on this route — reject with 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || p.Username == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
