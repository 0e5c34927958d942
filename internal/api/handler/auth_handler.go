package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/api/metrics"
	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// CookieConfig controls the session cookie written after login.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler drives the browser login flow, the idle-session endpoints
// and the token login for API clients.
type AuthHandler struct {
	authService ports.AuthService
	monitor     ports.SessionMonitor
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, monitor ports.SessionMonitor, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session_id"
	}
	return &AuthHandler{authService: authService, monitor: monitor, cookie: cookie}
}

type tokenLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenLoginResponse struct {
	Token string          `json:"token"`
	User  *domain.Profile `json:"user"`
}

// Login starts the hosted identity flow.
//
// @Summary      Redirect the browser to the identity provider
// @Tags         auth
// @Success      302
// @Failure      502  {object}  map[string]string
// @Router       /auth/login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	url, err := h.authService.LoginURL(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")
	}
	return c.Redirect(http.StatusFound, url)
}

// Callback completes the hosted identity flow and establishes the
// server-side session.
//
// @Summary      Identity provider callback
// @Tags         auth
// @Param        code   query  string  true   "Authorization code"
// @Param        state  query  string  true   "Opaque flow state"
// @Success      302
// @Failure      401  {object}  map[string]string
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing code or state")
	}

	sess, err := h.authService.HandleCallback(c.Request().Context(), code, state)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "login flow rejected")
		}
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/")
}

// Unauthorized is the landing page for denied accounts. The reason
// query parameter distinguishes a blocked account from one that is
// simply awaiting approval.
//
// @Summary      Unauthorized landing page
// @Tags         auth
// @Produce      json
// @Param        reason  query  string  false  "Denial marker (e.g. blocked)"
// @Success      200  {object}  map[string]string
// @Router       /auth/unauthorized [get]
func (h *AuthHandler) Unauthorized(c echo.Context) error {
	msg := "your account is awaiting authorization"
	if c.QueryParam("reason") == "blocked" {
		msg = "your account has been blocked"
	}
	return c.JSON(http.StatusOK, map[string]string{"message": msg})
}

// TokenLogin authenticates a local account and returns a bearer token
// for non-browser API clients.
//
// @Summary      Token login for API clients
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenLoginRequest  true  "Credentials"
// @Success      200   {object}  tokenLoginResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/token [post]
func (h *AuthHandler) TokenLogin(c echo.Context) error {
	var req tokenLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, profile, err := h.authService.TokenLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenLoginResponse{Token: token, User: profile})
}

// Logout destroys the session and clears the cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	resp := map[string]string{"status": "signed_out"}

	if cookie, err := c.Cookie(h.cookie.Name); err == nil && cookie.Value != "" {
		if err := h.authService.SignOut(c.Request().Context(), cookie.Value); err != nil {
			// The visitor still ends up signed out locally; surface the
			// marker so the UI can tell the session may linger server-side.
			resp["status"] = "logout_error"
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, resp)
}

// SessionState reports the idle monitor's view of the caller's session,
// polled by the warning dialog.
//
// @Summary      Idle state of the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ports.SessionState
// @Failure      401  {object}  map[string]string
// @Router       /auth/session [get]
func (h *AuthHandler) SessionState(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	state, ok := h.monitor.State(sess.ID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session no longer tracked")
	}
	return c.JSON(http.StatusOK, state)
}

// ExtendSession is the explicit "keep me signed in" action from the
// idle warning dialog.
//
// @Summary      Extend the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/session/extend [post]
func (h *AuthHandler) ExtendSession(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if !h.monitor.Extend(sess.ID) {
		return echo.NewHTTPError(http.StatusUnauthorized, "session already terminated")
	}
	metrics.SessionExtensionsTotal.Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "extended"})
}
