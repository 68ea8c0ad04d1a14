package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/service"
)

// SettingHandler handles site settings endpoints.
type SettingHandler struct {
	svc  service.SettingService
	gate *auth.Gate
}

// NewSettingHandler creates a new setting handler.
func NewSettingHandler(svc service.SettingService, gate *auth.Gate) *SettingHandler {
	return &SettingHandler{svc: svc, gate: gate}
}

// UpdateSettingRequest carries one setting write.
type UpdateSettingRequest struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value" validate:"required"`
}

// GetAll godoc
// @Summary Read all site settings
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings [get]
func (h *SettingHandler) GetAll(c echo.Context) error {
	settings, err := h.svc.GetAll(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Update godoc
// @Summary Write one site setting
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateSettingRequest true "Setting payload"
// @Success 200 {object} model.Setting
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /settings [put]
func (h *SettingHandler) Update(c echo.Context) error {
	var req UpdateSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	updated, err := h.svc.Update(c.Request().Context(), actor, req.Key, req.Value, c.RealIP())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}
