package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/service"
)

// CarouselHandler handles carousel image endpoints.
type CarouselHandler struct {
	svc  service.CarouselService
	gate *auth.Gate
}

// NewCarouselHandler creates a new carousel handler.
func NewCarouselHandler(svc service.CarouselService, gate *auth.Gate) *CarouselHandler {
	return &CarouselHandler{svc: svc, gate: gate}
}

// CarouselRequest carries the editable carousel slide fields.
type CarouselRequest struct {
	Title    string `json:"title" validate:"omitempty,max=255"`
	Caption  string `json:"caption" validate:"omitempty,max=512"`
	ImageURL string `json:"image_url" validate:"required,url"`
	Position int    `json:"position" validate:"omitempty,min=0"`
	Active   *bool  `json:"active"`
}

// List godoc
// @Summary List active carousel images
// @Tags carousel
// @Produce json
// @Success 200 {array} model.CarouselImage
// @Failure 500 {object} errors.ErrorResponse
// @Router /carousel [get]
func (h *CarouselHandler) List(c echo.Context) error {
	imgs, err := h.svc.List(c.Request().Context(), true)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, imgs)
}

// ListAll godoc
// @Summary List all carousel images including inactive
// @Tags carousel
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CarouselImage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/carousel [get]
func (h *CarouselHandler) ListAll(c echo.Context) error {
	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}
	if err := h.gate.RequirePermission(actor, "carousel", model.ActionRead); err != nil {
		return respondError(err)
	}

	imgs, err := h.svc.List(c.Request().Context(), false)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, imgs)
}

// Create godoc
// @Summary Add a carousel image
// @Tags carousel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CarouselRequest true "Carousel payload"
// @Success 201 {object} model.CarouselImage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /carousel [post]
func (h *CarouselHandler) Create(c echo.Context) error {
	var req CarouselRequest
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

	created, err := h.svc.Create(c.Request().Context(), actor, service.CarouselInput{
		Title:    req.Title,
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
		Position: req.Position,
		Active:   req.Active,
	}, c.RealIP())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update a carousel image
// @Tags carousel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Image ID"
// @Param request body CarouselRequest true "Carousel payload"
// @Success 200 {object} model.CarouselImage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /carousel/{id} [put]
func (h *CarouselHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid image ID",
			Code:  "INVALID_UUID",
		})
	}

	var req CarouselRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	updated, err := h.svc.Update(c.Request().Context(), actor, id, service.CarouselInput{
		Title:    req.Title,
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
		Position: req.Position,
		Active:   req.Active,
	}, c.RealIP())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Remove a carousel image
// @Tags carousel
// @Produce json
// @Security BearerAuth
// @Param id path string true "Image ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /carousel/{id} [delete]
func (h *CarouselHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid image ID",
			Code:  "INVALID_UUID",
		})
	}

	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	if err := h.svc.Delete(c.Request().Context(), actor, id, c.RealIP()); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "carousel image deleted"})
}
