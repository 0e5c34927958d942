package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/soportec/inventory-system/internal/api/handler"
	"github.com/soportec/inventory-system/internal/api/metrics"
	"github.com/soportec/inventory-system/internal/core/ports"
)

const (
	// PathLogin is where denied browser requests without a session land.
	PathLogin = "/auth/login"
	// PathUnauthorized is where denied browser requests with a session land.
	PathUnauthorized = "/auth/unauthorized"
)

// quietPaths are the session-observation endpoints. Requests to them
// never count as user activity: the warning dialog polls /auth/session
// to read the idle state, and that poll must not reset the idle timer
// it is there to observe. Leaving the warning window is an explicit
// extend, never a side effect of looking at it.
var quietPaths = map[string]struct{}{
	"/auth/session":        {},
	"/auth/session/extend": {},
	"/auth/logout":         {},
}

// GateConfig wires the gate middleware.
type GateConfig struct {
	Gate       ports.Gate
	CookieName string
	// JWTSecret verifies bearer tokens from non-browser API clients.
	JWTSecret string
	// Activity reports the session id of every allowed request to the
	// idle monitor. Optional.
	Activity func(sessionID string)
}

// Gate runs the request gate on every request. The gate itself decides
// whether the path is public; this middleware only translates the
// verdict into HTTP: browsers get redirects, API clients get JSON.
func Gate(cfg GateConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			in := ports.DecideInput{Path: c.Request().URL.Path}

			if cookie, err := c.Cookie(cfg.CookieName); err == nil {
				in.SessionID = cookie.Value
			}
			in.APIUserID = bearerSubject(c, cfg.JWTSecret)

			res := cfg.Gate.Decide(c.Request().Context(), in)

			switch res.Decision {
			case ports.DecisionAllow:
				metrics.GateDecisionsTotal.WithLabelValues("allow").Inc()
				if res.Session != nil {
					c.Set(handler.CtxSession, res.Session)
					if _, quiet := quietPaths[in.Path]; !quiet && cfg.Activity != nil {
						cfg.Activity(res.Session.ID)
					}
				}
				if res.Profile != nil {
					c.Set(handler.CtxProfile, res.Profile)
				}
				return next(c)

			case ports.DecisionLogin:
				metrics.GateDecisionsTotal.WithLabelValues("login").Inc()
				if wantsHTML(c) {
					return c.Redirect(http.StatusFound, PathLogin)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

			default:
				metrics.GateDecisionsTotal.WithLabelValues("unauthorized").Inc()
				target := PathUnauthorized
				if res.Reason != "" {
					target += "?reason=" + res.Reason
				}
				if wantsHTML(c) {
					return c.Redirect(http.StatusFound, target)
				}
				return echo.NewHTTPError(http.StatusForbidden, "account not authorized")
			}
		}
	}
}

// bearerSubject returns the verified subject of a Bearer token, or ""
// when the request carries none or verification fails. The gate decides
// what an empty subject means; this helper never lets an unverified
// subject through.
func bearerSubject(c echo.Context, secret string) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" || secret == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}

	sub, _ := claims["sub"].(string)
	return sub
}

// wantsHTML reports whether the client is a browser expecting a page,
// as opposed to an API client expecting JSON.
func wantsHTML(c echo.Context) bool {
	if c.Request().Header.Get("Authorization") != "" {
		return false
	}
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}
