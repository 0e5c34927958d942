package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/api/handler"
	"github.com/soportec/inventory-system/internal/core/domain"
)

func runRBAC(t *testing.T, profile *domain.Profile, allowed ...domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if profile != nil {
		c.Set(handler.CtxProfile, profile)
	}

	called := false
	h := RBAC(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRBAC_AllowedRole(t *testing.T) {
	rec, called := runRBAC(t, &domain.Profile{UserID: "u1", Role: domain.RoleManager},
		domain.RoleAdmin, domain.RoleManager)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_DisallowedRole(t *testing.T) {
	rec, called := runRBAC(t, &domain.Profile{UserID: "u1", Role: domain.RoleViewer},
		domain.RoleAdmin)
	if called {
		t.Fatalf("viewer must not pass an admin gate")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_MissingProfileDenies(t *testing.T) {
	rec, called := runRBAC(t, nil, domain.RoleAdmin)
	if called {
		t.Fatalf("missing profile must deny")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
