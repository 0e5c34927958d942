package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/api/metrics"
	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

type invoiceLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
}

type createInvoiceRequest struct {
	CustomerID  string               `json:"customer_id" validate:"required"`
	WarehouseID string               `json:"warehouse_id" validate:"required"`
	Lines       []invoiceLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// Create handles POST /v1/invoices. The issuing user is taken from the
// gate-attached profile, never from the payload.
//
// @Summary      Issue an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      createInvoiceRequest  true  "Invoice lines"
// @Success      201   {object}  domain.Invoice
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
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

	lines := make([]ports.InvoiceLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, ports.InvoiceLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	invoice, err := h.service.Create(c.Request().Context(), ports.CreateInvoiceInput{
		CustomerID:  req.CustomerID,
		WarehouseID: req.WarehouseID,
		Lines:       lines,
		IssuedBy:    profile.UserID,
	})
	if err != nil {
		return err
	}

	metrics.InvoicesIssuedTotal.Inc()
	return c.JSON(http.StatusCreated, invoice)
}

// Get handles GET /v1/invoices/:id.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  domain.Invoice
// @Failure      404  {object}  map[string]string
// @Router       /v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	invoice, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// List handles GET /v1/invoices.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        customer_id  query     string  false  "Customer filter"
// @Param        date_from    query     string  false  "Issued on/after (RFC 3339)"
// @Param        date_to      query     string  false  "Issued on/before (RFC 3339)"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Rows per page"
// @Success      200          {object}  listResponse[domain.Invoice]
// @Router       /v1/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	filter := ports.ListInvoicesFilter{
		CustomerID: c.QueryParam("customer_id"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	}
	if raw := c.QueryParam("date_from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_from must be RFC 3339")
		}
		filter.DateFrom = t
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_to must be RFC 3339")
		}
		filter.DateTo = t
	}

	res, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[*domain.Invoice]{
		Items:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}
