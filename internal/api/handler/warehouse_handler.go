package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/core/ports"
)

// WarehouseHandler handles HTTP requests for warehouses.
type WarehouseHandler struct {
	service ports.WarehouseService
}

func NewWarehouseHandler(service ports.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{service: service}
}

type warehouseRequest struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Street    string `json:"street" validate:"required"`
	RegionID  int    `json:"region_id" validate:"required"`
	CommuneID int    `json:"commune_id" validate:"required"`
}

func (r warehouseRequest) toInput() ports.WarehouseInput {
	return ports.WarehouseInput{
		Code:      r.Code,
		Name:      r.Name,
		Street:    r.Street,
		RegionID:  r.RegionID,
		CommuneID: r.CommuneID,
	}
}

// Create handles POST /v1/warehouses.
//
// @Summary      Create a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        body  body      warehouseRequest  true  "Warehouse details"
// @Success      201   {object}  domain.Warehouse
// @Failure      400   {object}  map[string]string
// @Router       /v1/warehouses [post]
func (h *WarehouseHandler) Create(c echo.Context) error {
	var req warehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	warehouse, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, warehouse)
}

// Get handles GET /v1/warehouses/:id.
//
// @Summary      Get a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id   path      string  true  "Warehouse id"
// @Success      200  {object}  domain.Warehouse
// @Failure      404  {object}  map[string]string
// @Router       /v1/warehouses/{id} [get]
func (h *WarehouseHandler) Get(c echo.Context) error {
	warehouse, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouse)
}

// Update handles PUT /v1/warehouses/:id.
//
// @Summary      Update a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Warehouse id"
// @Param        body  body      warehouseRequest  true  "Warehouse details"
// @Success      200   {object}  domain.Warehouse
// @Failure      404   {object}  map[string]string
// @Router       /v1/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c echo.Context) error {
	var req warehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	warehouse, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouse)
}

// List handles GET /v1/warehouses.
//
// @Summary      List all warehouses
// @Tags         warehouses
// @Produce      json
// @Success      200  {array}  domain.Warehouse
// @Router       /v1/warehouses [get]
func (h *WarehouseHandler) List(c echo.Context) error {
	warehouses, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouses)
}

// Deactivate handles DELETE /v1/warehouses/:id. Warehouses are never
// removed, only marked inactive, so historic invoices keep resolving.
//
// @Summary      Deactivate a warehouse
// @Tags         warehouses
// @Param        id  path  string  true  "Warehouse id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/warehouses/{id} [delete]
func (h *WarehouseHandler) Deactivate(c echo.Context) error {
	if err := h.service.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
