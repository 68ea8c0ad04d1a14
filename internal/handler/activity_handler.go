package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/service"
)

// ActivityHandler serves the admin audit trail.
type ActivityHandler struct {
	svc  service.ActivityService
	gate *auth.Gate
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(svc service.ActivityService, gate *auth.Gate) *ActivityHandler {
	return &ActivityHandler{svc: svc, gate: gate}
}

// List godoc
// @Summary List audit activities
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.ActivityPage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.svc.List(c.Request().Context(), actor, page, limit)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}
