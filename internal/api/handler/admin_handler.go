package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// AdminHandler exposes profile administration. Every route is behind
// the admin RBAC group.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager tech_support viewer"`
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List every authorization profile
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Profile
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Authorize handles POST /v1/admin/users/:id/authorize.
//
// @Summary      Approve an account
// @Tags         admin
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id}/authorize [post]
func (h *AdminHandler) Authorize(c echo.Context) error {
	if err := h.service.Authorize(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Block handles POST /v1/admin/users/:id/block. Blocking also destroys
// the user's live sessions, so the lockout is immediate.
//
// @Summary      Block an account
// @Tags         admin
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id}/block [post]
func (h *AdminHandler) Block(c echo.Context) error {
	if err := h.service.Block(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unblock handles POST /v1/admin/users/:id/unblock.
//
// @Summary      Unblock an account
// @Tags         admin
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id}/unblock [post]
func (h *AdminHandler) Unblock(c echo.Context) error {
	if err := h.service.Unblock(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetRole handles PUT /v1/admin/users/:id/role.
//
// @Summary      Change an account's role
// @Tags         admin
// @Accept       json
// @Param        id    path  string          true  "User id"
// @Param        body  body  setRoleRequest  true  "New role"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id}/role [put]
func (h *AdminHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
