package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/service"
)

// UserHandler covers the admin user-management surface.
type UserHandler struct {
	svc  service.UserService
	gate *auth.Gate
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService, gate *auth.Gate) *UserHandler {
	return &UserHandler{svc: svc, gate: gate}
}

// UpdateRoleRequest changes one user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// PermissionGrant is one resource/action pair in a grant set.
type PermissionGrant struct {
	Resource string `json:"resource" validate:"required,max=64"`
	Action   string `json:"action" validate:"required,oneof=create read update delete manage"`
}

// ReplacePermissionsRequest replaces a user's whole grant set.
type ReplacePermissionsRequest struct {
	Permissions []PermissionGrant `json:"permissions" validate:"dive"`
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.UserPage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
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

// UpdateRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateRoleRequest true "Role payload"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateRoleRequest
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

	updated, err := h.svc.UpdateRole(c.Request().Context(), actor, id, model.Role(req.Role), c.RealIP())
	if err != nil {
		if err == service.ErrInvalidRole {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_ROLE",
			})
		}
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// ReplacePermissions godoc
// @Summary Replace a user's permission set
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body ReplacePermissionsRequest true "Permissions payload"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/permissions [put]
func (h *UserHandler) ReplacePermissions(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID",
			Code:  "INVALID_UUID",
		})
	}

	var req ReplacePermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	perms := make([]model.Permission, 0, len(req.Permissions))
	for _, grant := range req.Permissions {
		perms = append(perms, model.Permission{
			Resource: grant.Resource,
			Action:   model.Action(grant.Action),
		})
	}

	actor, err := resolveActor(c, h.gate)
	if err != nil {
		return respondError(err)
	}

	updated, err := h.svc.ReplacePermissions(c.Request().Context(), actor, id, perms, c.RealIP())
	if err != nil {
		if err == service.ErrInvalidPermission {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_PERMISSION",
			})
		}
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}
