package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

type stubAuthService struct {
	loginURL    string
	loginErr    error
	session     *domain.Session
	callbackErr error
	token       string
	tokenErr    error
	signedOut   []string
	signOutErr  error
}

func (s *stubAuthService) LoginURL(context.Context) (string, error) {
	return s.loginURL, s.loginErr
}

func (s *stubAuthService) HandleCallback(_ context.Context, code, state string) (*domain.Session, error) {
	if s.callbackErr != nil {
		return nil, s.callbackErr
	}
	return s.session, nil
}

func (s *stubAuthService) TokenLogin(_ context.Context, email, _ string) (string, *domain.Profile, error) {
	if s.tokenErr != nil {
		return "", nil, s.tokenErr
	}
	return s.token, &domain.Profile{UserID: "u1", Email: email}, nil
}

func (s *stubAuthService) SignOut(_ context.Context, sessionID string) error {
	s.signedOut = append(s.signedOut, sessionID)
	return s.signOutErr
}

type stubMonitor struct {
	state    ports.SessionState
	tracked  bool
	extended []string
	extendOK bool
}

func (m *stubMonitor) Track(string)    {}
func (m *stubMonitor) Activity(string) {}
func (m *stubMonitor) State(string) (ports.SessionState, bool) {
	return m.state, m.tracked
}
func (m *stubMonitor) Extend(id string) bool {
	m.extended = append(m.extended, id)
	return m.extendOK
}
func (m *stubMonitor) Terminate(context.Context, string) error { return nil }
func (m *stubMonitor) Forget(string)                           {}

func newAuthTestContext(t *testing.T, req *http.Request) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_RedirectsToProvider(t *testing.T) {
	stub := &stubAuthService{loginURL: "https://idp.example/authorize?state=abc"}
	h := NewAuthHandler(stub, &stubMonitor{}, CookieConfig{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	_, c, rec := newAuthTestContext(t, req)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != stub.loginURL {
		t.Fatalf("unexpected redirect target %s", loc)
	}
}

func TestAuthHandler_Callback_SetsCookieAndRedirects(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	stub := &stubAuthService{session: &domain.Session{ID: "sess-9", UserID: "u1", ExpiresAt: expires}}
	h := NewAuthHandler(stub, &stubMonitor{}, CookieConfig{Name: "session_id"})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=xyz", nil)
	_, c, rec := newAuthTestContext(t, req)

	if err := h.Callback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}

	res := rec.Result()
	var cookie *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == "session_id" {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if cookie.Value != "sess-9" {
		t.Fatalf("cookie carries %q, want sess-9", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
}

func TestAuthHandler_Callback_RejectedFlow(t *testing.T) {
	stub := &stubAuthService{callbackErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(stub, &stubMonitor{}, CookieConfig{})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=replayed", nil)
	_, c, _ := newAuthTestContext(t, req)

	err := h.Callback(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Logout_ReportsStoreFailure(t *testing.T) {
	stub := &stubAuthService{signOutErr: errors.New("redis down")}
	h := NewAuthHandler(stub, &stubMonitor{}, CookieConfig{Name: "session_id"})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-9"})
	_, c, rec := newAuthTestContext(t, req)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "logout_error" {
		t.Fatalf("expected logout_error marker, got %q", resp["status"])
	}
	if len(stub.signedOut) != 1 || stub.signedOut[0] != "sess-9" {
		t.Fatalf("sign-out not attempted for sess-9: %v", stub.signedOut)
	}

	// Cookie must be cleared regardless of the store failure.
	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "session_id" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("session cookie not cleared")
	}
}

func TestAuthHandler_SessionState(t *testing.T) {
	monitor := &stubMonitor{
		state:   ports.SessionState{Warning: true, SecondsRemaining: 74},
		tracked: true,
	}
	h := NewAuthHandler(&stubAuthService{}, monitor, CookieConfig{})

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	_, c, rec := newAuthTestContext(t, req)
	c.Set(CtxSession, &domain.Session{ID: "sess-9"})

	if err := h.SessionState(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var state ports.SessionState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !state.Warning || state.SecondsRemaining != 74 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestAuthHandler_SessionState_NoSession(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubMonitor{}, CookieConfig{})

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	_, c, _ := newAuthTestContext(t, req)

	err := h.SessionState(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_ExtendSession(t *testing.T) {
	monitor := &stubMonitor{extendOK: true}
	h := NewAuthHandler(&stubAuthService{}, monitor, CookieConfig{})

	req := httptest.NewRequest(http.MethodPost, "/auth/session/extend", nil)
	_, c, rec := newAuthTestContext(t, req)
	c.Set(CtxSession, &domain.Session{ID: "sess-9"})

	if err := h.ExtendSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(monitor.extended) != 1 || monitor.extended[0] != "sess-9" {
		t.Fatalf("extend not forwarded: %v", monitor.extended)
	}
}

func TestAuthHandler_ExtendSession_Terminated(t *testing.T) {
	monitor := &stubMonitor{extendOK: false}
	h := NewAuthHandler(&stubAuthService{}, monitor, CookieConfig{})

	req := httptest.NewRequest(http.MethodPost, "/auth/session/extend", nil)
	_, c, _ := newAuthTestContext(t, req)
	c.Set(CtxSession, &domain.Session{ID: "sess-9"})

	err := h.ExtendSession(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_TokenLogin(t *testing.T) {
	stub := &stubAuthService{token: "signed.jwt.token"}
	h := NewAuthHandler(stub, &stubMonitor{}, CookieConfig{})

	body := strings.NewReader(`{"email":"svc@soportec.cl","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/token", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	_, c, rec := newAuthTestContext(t, req)

	if err := h.TokenLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed.jwt.token" {
		t.Fatalf("token missing from response: %v", resp)
	}
}

func TestAuthHandler_TokenLogin_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubMonitor{}, CookieConfig{})

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	_, c, _ := newAuthTestContext(t, req)

	err := h.TokenLogin(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Unauthorized_BlockedReason(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubMonitor{}, CookieConfig{})

	req := httptest.NewRequest(http.MethodGet, "/auth/unauthorized?reason=blocked", nil)
	_, c, rec := newAuthTestContext(t, req)

	if err := h.Unauthorized(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.Contains(resp["message"], "blocked") {
		t.Fatalf("blocked marker not reflected: %q", resp["message"])
	}
}
