package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

type stubProductService struct {
	created   *ports.CreateProductInput
	createErr error
	product   *domain.Product
	getErr    error
	listRes   *ports.ListProductsResult
	adjusted  []string
	adjustErr error
}

func (s *stubProductService) Create(_ context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	s.created = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Product{ID: "p1", SKU: in.SKU, Name: in.Name, UnitPrice: in.UnitPrice, Active: true}, nil
}

func (s *stubProductService) Get(context.Context, string) (*domain.Product, error) {
	return s.product, s.getErr
}

func (s *stubProductService) Update(_ context.Context, _ string, _ ports.UpdateProductInput) (*domain.Product, error) {
	return s.product, s.getErr
}

func (s *stubProductService) List(context.Context, ports.ListProductsFilter) (*ports.ListProductsResult, error) {
	return s.listRes, nil
}

func (s *stubProductService) AdjustStock(_ context.Context, productID, warehouseID string, delta int64) error {
	s.adjusted = append(s.adjusted, productID)
	return s.adjustErr
}

func newProductTestContext(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProductHandler_Create(t *testing.T) {
	stub := &stubProductService{}
	h := NewProductHandler(stub)

	body := strings.NewReader(`{"sku":"nb-001","name":"Notebook 14","category":"equipos","unit_price":549990}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/products", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newProductTestContext(t, req)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.created == nil || stub.created.SKU != "nb-001" || stub.created.UnitPrice != 549990 {
		t.Fatalf("input not forwarded: %+v", stub.created)
	}
}

func TestProductHandler_Create_RejectsZeroPrice(t *testing.T) {
	h := NewProductHandler(&stubProductService{})

	body := strings.NewReader(`{"sku":"nb-001","name":"Notebook 14","category":"equipos","unit_price":0}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/products", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := newProductTestContext(t, req)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	h := NewProductHandler(&stubProductService{getErr: domain.ErrProductNotFound})

	req := httptest.NewRequest(http.MethodGet, "/v1/products/missing", nil)
	c, _ := newProductTestContext(t, req)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected domain error to propagate, got %v", err)
	}
}

func TestProductHandler_List_ParsesQuery(t *testing.T) {
	stub := &stubProductService{listRes: &ports.ListProductsResult{
		Items:      []*domain.Product{{ID: "p1", SKU: "NB-001"}},
		Total:      1,
		Page:       2,
		Limit:      10,
		TotalPages: 1,
	}}
	h := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/products?page=2&limit=10&active=true&search=nb", nil)
	c, rec := newProductTestContext(t, req)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Items []json.RawMessage `json:"items"`
		Total int64             `json:"total"`
		Page  int               `json:"page"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Items) != 1 || resp.Total != 1 || resp.Page != 2 {
		t.Fatalf("unexpected page envelope: %+v", resp)
	}
}

func TestProductHandler_AdjustStock_InsufficientStock(t *testing.T) {
	h := NewProductHandler(&stubProductService{adjustErr: domain.ErrInsufficientStock})

	body := strings.NewReader(`{"warehouse_id":"w1","delta":-5}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/products/p1/stock", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := newProductTestContext(t, req)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.AdjustStock(c); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
}
