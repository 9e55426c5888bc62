package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authDTO "github.com/Samadhi-12/MinuteMe/internal/adapter/dto/auth"
	"github.com/Samadhi-12/MinuteMe/internal/adapter/presenter"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/user"
)

// Admin handles user management. Routes are mounted behind RequireRole(admin).
type Admin struct {
	users  *user.Service
	logger *zap.Logger
}

// NewAdmin creates a new admin handler
func NewAdmin(users *user.Service, logger *zap.Logger) *Admin {
	return &Admin{users: users, logger: logger}
}

// Users handles GET /admin/users
// @Summary      List users
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  common.SuccessResponse{data=[]auth.UserResponse}
// @Failure      403     {object}  common.ErrorResponse
// @Router       /admin/users [get]
func (h *Admin) Users(c echo.Context) error {
	limit, err := queryInt(c, "limit", user.DefaultPageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	users, err := h.users.List(c.Request().Context(), limit, offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponses(users))
}

// UpdateRole handles PATCH /admin/user/:id/role
// @Summary      Change a user's role
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "User ID"
// @Param        request  body      auth.UpdateRoleRequest    true  "New role"
// @Success      200      {object}  common.SuccessResponse{data=auth.UserResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /admin/user/{id}/role [patch]
func (h *Admin) UpdateRole(c echo.Context) error {
	var req authDTO.UpdateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	u, err := h.users.UpdateRole(c.Request().Context(), c.Param("id"), entities.UserRole(req.Role))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(u))
}

// UpdateTier handles PATCH /admin/user/:id/tier
// @Summary      Change a user's tier
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "User ID"
// @Param        request  body      auth.UpdateTierRequest    true  "New tier"
// @Success      200      {object}  common.SuccessResponse{data=auth.UserResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /admin/user/{id}/tier [patch]
func (h *Admin) UpdateTier(c echo.Context) error {
	var req authDTO.UpdateTierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	u, err := h.users.UpdateTier(c.Request().Context(), c.Param("id"), entities.Tier(req.Tier))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(u))
}

// DeleteUser handles DELETE /admin/user/:id
// @Summary      Delete a user
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /admin/user/{id} [delete]
func (h *Admin) DeleteUser(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": c.Param("id")})
}

// Me handles GET /me
// @Summary      Current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=auth.UserResponse}
// @Router       /me [get]
func (h *Admin) Me(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	u, err := h.users.Get(c.Request().Context(), id.UserID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(u))
}
