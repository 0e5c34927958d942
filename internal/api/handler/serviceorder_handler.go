package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/api/metrics"
	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// ServiceOrderHandler handles HTTP requests for workshop service orders.
type ServiceOrderHandler struct {
	service ports.ServiceOrderService
}

func NewServiceOrderHandler(service ports.ServiceOrderService) *ServiceOrderHandler {
	return &ServiceOrderHandler{service: service}
}

type createOrderRequest struct {
	CustomerID   string `json:"customer_id" validate:"required"`
	Equipment    string `json:"equipment" validate:"required"`
	SerialNumber string `json:"serial_number"`
	Problem      string `json:"problem" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=received diagnosing repairing ready delivered cancelled"`
	Notes  string `json:"notes"`
}

type assignRequest struct {
	TechnicianID string `json:"technician_id" validate:"required"`
}

type diagnosisRequest struct {
	Diagnosis string `json:"diagnosis" validate:"required"`
}

// Create handles POST /v1/orders.
//
// @Summary      Open a service order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Equipment and reported problem"
// @Success      201   {object}  domain.ServiceOrder
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/orders [post]
func (h *ServiceOrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.Create(c.Request().Context(), ports.CreateServiceOrderInput{
		CustomerID:   req.CustomerID,
		Equipment:    req.Equipment,
		SerialNumber: req.SerialNumber,
		Problem:      req.Problem,
	})
	if err != nil {
		return err
	}

	metrics.ServiceOrdersTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusCreated, order)
}

// Get handles GET /v1/orders/:id.
//
// @Summary      Get a service order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.ServiceOrder
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/{id} [get]
func (h *ServiceOrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// List handles GET /v1/orders.
//
// @Summary      List service orders
// @Tags         orders
// @Produce      json
// @Param        customer_id    query     string  false  "Customer filter"
// @Param        technician_id  query     string  false  "Technician filter"
// @Param        status         query     string  false  "Status filter"
// @Param        page           query     int     false  "Page (1-based)"
// @Param        limit          query     int     false  "Rows per page"
// @Success      200            {object}  listResponse[domain.ServiceOrder]
// @Router       /v1/orders [get]
func (h *ServiceOrderHandler) List(c echo.Context) error {
	res, err := h.service.List(c.Request().Context(), ports.ListServiceOrdersFilter{
		CustomerID:   c.QueryParam("customer_id"),
		TechnicianID: c.QueryParam("technician_id"),
		Status:       c.QueryParam("status"),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[*domain.ServiceOrder]{
		Items:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

// UpdateStatus handles POST /v1/orders/:id/status. The acting user is
// recorded in the order's status history.
//
// @Summary      Advance a service order through its lifecycle
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.ServiceOrder
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders/{id}/status [post]
func (h *ServiceOrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), ports.UpdateOrderStatusInput{
		Status:   domain.ServiceOrderStatus(req.Status),
		Notes:    req.Notes,
		ByUserID: profile.UserID,
	})
	if err != nil {
		return err
	}

	metrics.ServiceOrdersTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusOK, order)
}

// Assign handles POST /v1/orders/:id/assign.
//
// @Summary      Assign the responsible technician
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Order id"
// @Param        body  body      assignRequest  true  "Technician user id"
// @Success      200   {object}  domain.ServiceOrder
// @Failure      404   {object}  map[string]string
// @Router       /v1/orders/{id}/assign [post]
func (h *ServiceOrderHandler) Assign(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.Assign(c.Request().Context(), c.Param("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// SetDiagnosis handles POST /v1/orders/:id/diagnosis.
//
// @Summary      Record the technician's diagnosis
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Order id"
// @Param        body  body      diagnosisRequest  true  "Diagnosis text"
// @Success      200   {object}  domain.ServiceOrder
// @Failure      404   {object}  map[string]string
// @Router       /v1/orders/{id}/diagnosis [post]
func (h *ServiceOrderHandler) SetDiagnosis(c echo.Context) error {
	var req diagnosisRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.SetDiagnosis(c.Request().Context(), c.Param("id"), req.Diagnosis)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
