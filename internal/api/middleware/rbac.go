package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inest/inest-backend/internal/api/metrics"
	"github.com/inest/inest-backend/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth; a request
// with no identity is forbidden.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				metrics.AccessDeniedTotal.WithLabelValues("no_identity").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			if _, ok := allowed[id.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues("role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
