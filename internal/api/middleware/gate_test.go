package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/api/handler"
	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// stubGate returns a fixed result and records the input it was given.
type stubGate struct {
	result ports.GateResult
	seen   ports.DecideInput
}

func (s *stubGate) Decide(_ context.Context, in ports.DecideInput) ports.GateResult {
	s.seen = in
	return s.result
}

func runGate(t *testing.T, gate *stubGate, cfg GateConfig, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	cfg.Gate = gate
	if cfg.CookieName == "" {
		cfg.CookieName = "session_id"
	}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Gate(cfg)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestGate_AllowAttachesSessionAndProfile(t *testing.T) {
	sess := &domain.Session{ID: "sess-1", UserID: "u1"}
	profile := &domain.Profile{UserID: "u1", Authorized: true}
	gate := &stubGate{result: ports.GateResult{
		Decision: ports.DecisionAllow,
		Session:  sess,
		Profile:  profile,
	}}

	var activity []string
	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Gate(GateConfig{
		Gate:       gate,
		CookieName: "session_id",
		Activity:   func(id string) { activity = append(activity, id) },
	})(func(c echo.Context) error {
		if got, _ := c.Get(handler.CtxSession).(*domain.Session); got != sess {
			t.Fatalf("session not attached")
		}
		if got, _ := c.Get(handler.CtxProfile).(*domain.Profile); got != profile {
			t.Fatalf("profile not attached")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if gate.seen.SessionID != "sess-1" {
		t.Fatalf("cookie not passed to gate, got %q", gate.seen.SessionID)
	}
	if len(activity) != 1 || activity[0] != "sess-1" {
		t.Fatalf("activity not recorded: %v", activity)
	}
}

// The warning dialog polls /auth/session to read the idle state; that
// poll (and the other session-observation endpoints) must not register
// as activity, or a polling client could never idle out.
func TestGate_SessionEndpointsDoNotCountAsActivity(t *testing.T) {
	sess := &domain.Session{ID: "sess-1", UserID: "u1"}
	gate := &stubGate{result: ports.GateResult{
		Decision: ports.DecisionAllow,
		Session:  sess,
		Profile:  &domain.Profile{UserID: "u1", Authorized: true},
	}}

	for _, path := range []string{"/auth/session", "/auth/session/extend", "/auth/logout"} {
		var activity []string
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})

		_, called := runGate(t, gate, GateConfig{
			Activity: func(id string) { activity = append(activity, id) },
		}, req)

		if !called {
			t.Fatalf("%s: next not called", path)
		}
		if len(activity) != 0 {
			t.Fatalf("%s: idle-state endpoint recorded activity: %v", path, activity)
		}
	}

	// A business route with the same verdict does count.
	var activity []string
	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	runGate(t, gate, GateConfig{
		Activity: func(id string) { activity = append(activity, id) },
	}, req)
	if len(activity) != 1 || activity[0] != "sess-1" {
		t.Fatalf("business route did not record activity: %v", activity)
	}
}

func TestGate_LoginDecision_BrowserRedirects(t *testing.T) {
	gate := &stubGate{result: ports.GateResult{Decision: ports.DecisionLogin}}

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec, called := runGate(t, gate, GateConfig{}, req)

	if called {
		t.Fatalf("next should not run")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != PathLogin {
		t.Fatalf("expected redirect to %s, got %s", PathLogin, loc)
	}
}

func TestGate_LoginDecision_APIGetsJSON401(t *testing.T) {
	gate := &stubGate{result: ports.GateResult{Decision: ports.DecisionLogin}}

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set("Accept", "application/json")
	rec, called := runGate(t, gate, GateConfig{}, req)

	if called {
		t.Fatalf("next should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGate_UnauthorizedCarriesReason(t *testing.T) {
	gate := &stubGate{result: ports.GateResult{
		Decision: ports.DecisionUnauthorized,
		Reason:   "blocked",
	}}

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set("Accept", "text/html")
	rec, _ := runGate(t, gate, GateConfig{}, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	want := PathUnauthorized + "?reason=blocked"
	if loc := rec.Header().Get("Location"); loc != want {
		t.Fatalf("expected redirect to %s, got %s", want, loc)
	}
}

func TestGate_BearerSubjectVerified(t *testing.T) {
	gate := &stubGate{result: ports.GateResult{Decision: ports.DecisionAllow}}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "svc-1"})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	_, called := runGate(t, gate, GateConfig{JWTSecret: "secret"}, req)

	if !called {
		t.Fatalf("next not called")
	}
	if gate.seen.APIUserID != "svc-1" {
		t.Fatalf("expected verified subject svc-1, got %q", gate.seen.APIUserID)
	}
}

func TestGate_BearerBadSignatureYieldsEmptySubject(t *testing.T) {
	gate := &stubGate{result: ports.GateResult{Decision: ports.DecisionLogin}}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "svc-1"})
	signed, err := token.SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec, called := runGate(t, gate, GateConfig{JWTSecret: "secret"}, req)

	if called {
		t.Fatalf("next should not run")
	}
	if gate.seen.APIUserID != "" {
		t.Fatalf("bad signature must not produce a subject, got %q", gate.seen.APIUserID)
	}
	// Bearer clients never get a redirect.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
