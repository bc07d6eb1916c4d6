package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inest/inest-backend/internal/api/metrics"
	"github.com/inest/inest-backend/internal/core/ports"
)

// ReportHandler serves the WhistleNest routes.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Submit handles POST /whistlenest. Authentication is optional; an
// authenticated caller becomes the report's owner.
//
// @Summary      Submit a report
// @Tags         whistlenest
// @Accept       json
// @Produce      json
// @Param        body  body      submitReportRequest  true  "Report"
// @Success      201   {object}  domain.Report
// @Failure      400   {object}  map[string]string
// @Router       /whistlenest [post]
func (h *ReportHandler) Submit(c echo.Context) error {
	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}

	author := optionalActor(c)
	report, err := h.service.Submit(c.Request().Context(), author, ports.SubmitReportInput{
		Subject:     req.Subject,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		return err
	}

	metrics.ReportsSubmittedTotal.WithLabelValues(string(report.Type), strconv.FormatBool(author == nil)).Inc()
	return c.JSON(http.StatusCreated, report)
}

// ListMine handles GET /whistlenest/user.
//
// @Summary      List the caller's reports
// @Tags         whistlenest
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Report
// @Failure      401  {object}  map[string]string
// @Router       /whistlenest/user [get]
func (h *ReportHandler) ListMine(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	reports, err := h.service.ListMine(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// ListAll handles GET /whistlenest/admin.
//
// @Summary      List all reports
// @Tags         whistlenest
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Report
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /whistlenest/admin [get]
func (h *ReportHandler) ListAll(c echo.Context) error {
	reports, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// UpdateStatus handles PATCH /whistlenest/:id/status.
//
// @Summary      Update a report's status
// @Tags         whistlenest
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Report
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /whistlenest/{id}/status [patch]
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}

	report, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.ReportStatusChangesTotal.WithLabelValues(string(report.Status)).Inc()
	return c.JSON(http.StatusOK, report)
}
