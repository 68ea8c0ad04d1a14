package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/service"
)

// TestimonialHandler handles the testimonial endpoints.
type TestimonialHandler struct {
	svc  service.TestimonialService
	gate *auth.Gate
}

// NewTestimonialHandler creates a new testimonial handler.
func NewTestimonialHandler(svc service.TestimonialService, gate *auth.Gate) *TestimonialHandler {
	return &TestimonialHandler{svc: svc, gate: gate}
}

// SubmitTestimonialRequest represents a testimonial submission.
type SubmitTestimonialRequest struct {
	Role        string `json:"role" validate:"required,max=100"`
	Testimonial string `json:"testimonial" validate:"required,max=2000"`
}

// DeleteTestimonialResponse confirms a deletion.
type DeleteTestimonialResponse struct {
	Message   string    `json:"message"`
	DeletedID uuid.UUID `json:"deletedId"`
}

// Submit godoc
// @Summary Submit the caller's testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitTestimonialRequest true "Testimonial payload"
// @Success 201 {object} model.Testimonial
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /testimonials [post]
func (h *TestimonialHandler) Submit(c echo.Context) error {
	var req SubmitTestimonialRequest
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

	created, err := h.svc.Submit(c.Request().Context(), actor, req.Role, req.Testimonial)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List testimonials
// @Description Returns a paginated listing. Non-admin callers only ever see approved testimonials.
// @Tags testimonials
// @Produce json
// @Param approved query bool false "Filter by approval state (admins only)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.TestimonialPage
// @Failure 500 {object} errors.ErrorResponse
// @Router /testimonials [get]
func (h *TestimonialHandler) List(c echo.Context) error {
	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	approvedOnly := true
	if raw := c.QueryParam("approved"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			approvedOnly = parsed
		}
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.svc.List(c.Request().Context(), actor, approvedOnly, page, limit)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Approve godoc
// @Summary Approve a testimonial
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 200 {object} model.Testimonial
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /testimonials/{id}/approve [patch]
func (h *TestimonialHandler) Approve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid testimonial ID",
			Code:  "INVALID_UUID",
		})
	}

	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	updated, err := h.svc.Approve(c.Request().Context(), actor, id, c.RealIP())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a testimonial
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 200 {object} DeleteTestimonialResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /testimonials/{id} [delete]
func (h *TestimonialHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid testimonial ID",
			Code:  "INVALID_UUID",
		})
	}

	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	deletedID, err := h.svc.Delete(c.Request().Context(), actor, id, c.RealIP())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, DeleteTestimonialResponse{
		Message:   "testimonial deleted",
		DeletedID: deletedID,
	})
}
