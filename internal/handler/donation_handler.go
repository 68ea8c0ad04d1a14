package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/service"
)

// DonationHandler handles donation endpoints.
type DonationHandler struct {
	svc  service.DonationService
	gate *auth.Gate
}

// NewDonationHandler creates a new donation handler.
func NewDonationHandler(svc service.DonationService, gate *auth.Gate) *DonationHandler {
	return &DonationHandler{svc: svc, gate: gate}
}

// DonationRequest records a completed contribution.
type DonationRequest struct {
	DonorName  string `json:"donor_name" validate:"omitempty,max=255"`
	DonorEmail string `json:"donor_email" validate:"omitempty,email"`
	Amount     string `json:"amount" validate:"required"`
	Currency   string `json:"currency" validate:"omitempty,len=3"`
	Message    string `json:"message" validate:"omitempty,max=2000"`
	Anonymous  bool   `json:"anonymous"`
}

// Create godoc
// @Summary Record a donation
// @Tags donations
// @Accept json
// @Produce json
// @Param request body DonationRequest true "Donation payload"
// @Success 201 {object} model.Donation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /donations [post]
func (h *DonationHandler) Create(c echo.Context) error {
	var req DonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid donation amount",
			Code:  "INVALID_AMOUNT",
		})
	}

	created, err := h.svc.Record(c.Request().Context(), service.DonationInput{
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Amount:     amount,
		Currency:   req.Currency,
		Message:    req.Message,
		Anonymous:  req.Anonymous,
	}, c.RealIP())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.DonationPage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/donations [get]
func (h *DonationHandler) List(c echo.Context) error {
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

// Summary godoc
// @Summary Donation totals
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DonationSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/donations/summary [get]
func (h *DonationHandler) Summary(c echo.Context) error {
	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	summary, err := h.svc.Summary(c.Request().Context(), actor)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
