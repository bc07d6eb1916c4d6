package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inest/inest-backend/internal/api/middleware"
	"github.com/inest/inest-backend/internal/core/domain"
)

var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "invalid payload")

// actor returns the identity attached by the Auth gate. Its absence means the
// route was wired without Auth, so the request is treated as unauthenticated.
func actor(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.UserID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// optionalActor returns the identity when the OptionalAuth gate found one.
func optionalActor(c echo.Context) *domain.Identity {
	if id, ok := middleware.IdentityFrom(c); ok {
		return &id
	}
	return nil
}
