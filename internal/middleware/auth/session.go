package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/almadepapel/storefront/internal/service"
	"github.com/almadepapel/storefront/internal/tokens"
)

const CookieName = "session"

// ContextKey is where verified claims are stored on the echo context.
const ContextKey = "session"

type Middleware struct {
	Auth *service.AuthService
}

// ClaimsFromRequest verifies the session cookie. A missing cookie is an
// Unauthorized, a bad or expired token a Forbidden.
func (m *Middleware) ClaimsFromRequest(c echo.Context) (*tokens.SessionClaims, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	claims, err := m.Auth.VerifySession(cookie.Value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "invalid or expired session")
	}
	return claims, nil
}

func (m *Middleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.ClaimsFromRequest(c)
		if err != nil {
			return err
		}
		c.Set(ContextKey, claims)
		return next(c)
	}
}

// AdminOnly gates mutation routes; it runs before any handler touches the
// store, so a rejected request has no side effects.
func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireSession(func(c echo.Context) error {
		claims := c.Get(ContextKey).(*tokens.SessionClaims)
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	})
}
