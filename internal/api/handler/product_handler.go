package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type createProductRequest struct {
	SKU         string `json:"sku" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Brand       string `json:"brand"`
	UnitPrice   int64  `json:"unit_price" validate:"gt=0"`
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Brand       *string `json:"brand"`
	UnitPrice   *int64  `json:"unit_price"`
	Active      *bool   `json:"active"`
}

type adjustStockRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Delta       int64  `json:"delta" validate:"required"`
}

type listResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Create handles POST /v1/products.
//
// @Summary      Create a catalog product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Get handles GET /v1/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Update handles PATCH /v1/products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  map[string]string
// @Router       /v1/products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		UnitPrice:   req.UnitPrice,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// List handles GET /v1/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        search    query     string  false  "Partial sku/name match"
// @Param        active    query     bool    false  "Active flag filter"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Rows per page"
// @Success      200       {object}  listResponse[domain.Product]
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := ports.ListProductsFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
	if raw := c.QueryParam("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	res, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[*domain.Product]{
		Items:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

// AdjustStock handles POST /v1/products/:id/stock.
//
// @Summary      Move stock in or out of a warehouse
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Product id"
// @Param        body  body      adjustStockRequest  true  "Warehouse and signed quantity"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/products/{id}/stock [post]
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	var req adjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.AdjustStock(c.Request().Context(), c.Param("id"), req.WarehouseID, req.Delta); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// queryInt parses an integer query parameter, returning 0 when absent
// or malformed; services normalize zero values to their defaults.
func queryInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}
