package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inest/inest-backend/internal/api/metrics"
	"github.com/inest/inest-backend/internal/core/domain"
	"github.com/inest/inest-backend/internal/core/ports"
)

// identityKey is the echo context key holding the verified domain.Identity.
const identityKey = "identity"

// Auth requires a valid bearer token and injects the identity into context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request())
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("missing_token").Inc()
				return err
			}

			id, err := verifier.Verify(token)
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			SetIdentity(c, *id)
			return next(c)
		}
	}
}

// OptionalAuth attaches the identity when a valid bearer token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, err := bearerToken(c.Request()); err == nil {
				if id, err := verifier.Verify(token); err == nil {
					SetIdentity(c, *id)
				}
			}
			return next(c)
		}
	}
}

// SetIdentity stores id on the request context.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity attached by an auth gate, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
