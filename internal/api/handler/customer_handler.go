package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customer records.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

type customerRequest struct {
	RUT       string `json:"rut" validate:"required,rut"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Street    string `json:"street" validate:"required"`
	RegionID  int    `json:"region_id" validate:"required"`
	CommuneID int    `json:"commune_id" validate:"required"`
}

func (r customerRequest) toInput() ports.CustomerInput {
	return ports.CustomerInput{
		RUT:       r.RUT,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Street:    r.Street,
		RegionID:  r.RegionID,
		CommuneID: r.CommuneID,
	}
}

// Create handles POST /v1/customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      customerRequest  true  "Customer details"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customer)
}

// Get handles GET /v1/customers/:id.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  map[string]string
// @Router       /v1/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Update handles PUT /v1/customers/:id.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Customer id"
// @Param        body  body      customerRequest  true  "Customer details"
// @Success      200   {object}  domain.Customer
// @Failure      404   {object}  map[string]string
// @Router       /v1/customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// List handles GET /v1/customers.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        search  query     string  false  "Partial rut/name match"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Rows per page"
// @Success      200     {object}  listResponse[domain.Customer]
// @Router       /v1/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	res, err := h.service.List(c.Request().Context(), ports.ListCustomersFilter{
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[*domain.Customer]{
		Items:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}
