package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tivit/users-api/internal/api/metrics"
	"github.com/tivit/users-api/internal/core/domain"
	"github.com/tivit/users-api/internal/core/token"
)

// PrincipalKey is the echo context key under which Auth stores the
// authenticated principal.
const PrincipalKey = "principal"

// One message for every authentication failure so callers cannot probe
// whether a token was missing, expired, or forged.
const unauthorizedMessage = "could not validate credentials"

// Auth validates the bearer token and injects the principal into the context.
// All failure modes map to 401 with an indistinct message; the real reason is
// logged internally.
func Auth(codec *token.Codec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}

			claims, err := codec.Decode(strings.TrimSpace(parts[1]))
			if err != nil {
				result := "invalid"
				if errors.Is(err, token.ErrExpired) {
					result = "expired"
				}
				metrics.TokenValidationsTotal.WithLabelValues(result).Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}

			role, err := domain.ParseRole(string(claims.Role))
			if err != nil || claims.Subject == "" {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				log.Debug().Err(err).Msg("token claims incomplete")
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}

			metrics.TokenValidationsTotal.WithLabelValues("success").Inc()
			c.Set(PrincipalKey, domain.Principal{Username: claims.Subject, Role: role})

			return next(c)
		}
	}
}
