package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/utils"
)

// SessionCookie is the name of the HttpOnly cookie carrying the session
// token for browser navigation. API clients send the same token as a
// Bearer header instead.
const SessionCookie = "session"

// TokenFromRequest extracts the raw session token from the Authorization
// header (preferred) or the session cookie. Returns "" when neither is
// present.
func TokenFromRequest(c echo.Context) string {
	if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	return ""
}

// Session returns middleware that requires a valid session token and
// injects the token's subject and role into the request context. The
// role stored here is the login-time snapshot: handlers use it for
// coarse gating only and re-verify against the user record before any
// authorization-sensitive operation.
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := TokenFromRequest(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			claims, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
