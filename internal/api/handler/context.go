package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// Context keys set by the gate middleware after an allow decision.
const (
	CtxSession = "session"
	CtxProfile = "profile"
)

// ctxProfile extracts the authorization profile injected by the gate
// middleware. Its presence proves the gate ran and allowed the request;
// a missing profile on a protected route means a wiring mistake, so the
// request is rejected rather than served without identity.
func ctxProfile(c echo.Context) (*domain.Profile, error) {
	profile, _ := c.Get(CtxProfile).(*domain.Profile)
	if profile == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization profile")
	}
	return profile, nil
}

// ctxSession extracts the session injected by the gate middleware.
// Bearer-token API clients have a profile but no session.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(CtxSession).(*domain.Session)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return sess, nil
}
