package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inest/inest-backend/internal/api/metrics"
	"github.com/inest/inest-backend/internal/core/domain"
	"github.com/inest/inest-backend/internal/core/ports"
)

// createRequest is a validated create payload convertible to a record T.
type createRequest[T any] interface {
	toDomain() *T
}

// ListingHandler serves list/create/update/delete for one listing resource.
// C is the create payload and P the partial-update payload.
type ListingHandler[T any, C createRequest[T], P domain.Patch] struct {
	service  ports.ListingService[T]
	resource string
}

// NewListingHandler builds a handler for resource (the metric label, e.g. "bakers").
func NewListingHandler[T any, C createRequest[T], P domain.Patch](service ports.ListingService[T], resource string) *ListingHandler[T, C, P] {
	return &ListingHandler[T, C, P]{service: service, resource: resource}
}

// NewBakerHandler serves /bakers.
func NewBakerHandler(service ports.ListingService[domain.Baker]) *ListingHandler[domain.Baker, createBakerRequest, domain.BakerPatch] {
	return NewListingHandler[domain.Baker, createBakerRequest, domain.BakerPatch](service, "bakers")
}

// NewLaundryHandler serves /laundry.
func NewLaundryHandler(service ports.ListingService[domain.Laundry]) *ListingHandler[domain.Laundry, createLaundryRequest, domain.LaundryPatch] {
	return NewListingHandler[domain.Laundry, createLaundryRequest, domain.LaundryPatch](service, "laundry")
}

// NewMedicalHandler serves /medicals.
func NewMedicalHandler(service ports.ListingService[domain.Medical]) *ListingHandler[domain.Medical, createMedicalRequest, domain.MedicalPatch] {
	return NewListingHandler[domain.Medical, createMedicalRequest, domain.MedicalPatch](service, "medicals")
}

// List handles GET /<resource>. Open to everyone.
func (h *ListingHandler[T, C, P]) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /<resource>.
func (h *ListingHandler[T, C, P]) Create(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req C
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), id, req.toDomain())
	if err != nil {
		return err
	}

	metrics.ListingMutationsTotal.WithLabelValues(h.resource, "create").Inc()
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /<resource>/:id with a partial body.
func (h *ListingHandler[T, C, P]) Update(c echo.Context) error {
	var patch P
	if err := c.Bind(&patch); err != nil {
		return errInvalidPayload
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.ListingMutationsTotal.WithLabelValues(h.resource, "update").Inc()
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /<resource>/:id.
func (h *ListingHandler[T, C, P]) Delete(c echo.Context) error {
	msg, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ListingMutationsTotal.WithLabelValues(h.resource, "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
