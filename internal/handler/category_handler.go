package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc  service.CategoryService
	gate *auth.Gate
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(svc service.CategoryService, gate *auth.Gate) *CategoryHandler {
	return &CategoryHandler{svc: svc, gate: gate}
}

// CategoryRequest carries the editable category fields.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=120"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "Category payload"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
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

	created, err := h.svc.Create(c.Request().Context(), actor, req.Name, req.Slug, req.Description, c.RealIP())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body CategoryRequest true "Category payload"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	updated, err := h.svc.Update(c.Request().Context(), actor, id, req.Name, req.Slug, req.Description, c.RealIP())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid category ID",
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
	return c.JSON(http.StatusOK, map[string]string{"message": "category deleted"})
}
