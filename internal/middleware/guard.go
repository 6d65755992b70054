package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
	"github.com/muhammadafan/fresh-harvest-connect/internal/utils"
)

// Decision is the outcome of the route guard for one request.
type Decision int

const (
	// Allow lets the request through unchanged.
	Allow Decision = iota
	// RedirectLogin sends an unauthenticated browser to the login page.
	RedirectLogin
	// RedirectDashboard sends the browser to the default authenticated
	// landing page. Used both for re-login attempts while authenticated
	// and for non-farmers hitting farmer pages (a silent redirect, not
	// an error).
	RedirectDashboard
)

// Paths reachable without a session.
func isPublicPath(path string) bool {
	return path == "/login" || path == "/signup" || path == "/register"
}

// Paths restricted to the FARMER role, matched by prefix.
func isFarmerPath(path string) bool {
	return strings.HasPrefix(path, "/farmer")
}

// Decide classifies a browser navigation. It is a pure function over
// (path, session-presence, session-role) with no side effects, evaluated
// independently for every request. The rules apply in this order:
//
//  1. no session and the path is not public       -> login
//  2. farmer-restricted path and role != FARMER   -> dashboard
//  3. session present and the path is public      -> dashboard
//  4. otherwise                                   -> allow
func Decide(path string, hasSession bool, role string) Decision {
	if !hasSession && !isPublicPath(path) {
		return RedirectLogin
	}
	if isFarmerPath(path) && role != model.RoleFarmer {
		return RedirectDashboard
	}
	if hasSession && isPublicPath(path) {
		return RedirectDashboard
	}
	return Allow
}

// Guard returns middleware applying Decide to page navigation. Unlike
// Session it never responds 401: an invalid or absent token simply means
// "no session" and the decision table picks the redirect.
func Guard(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hasSession := false
			role := ""
			if raw := TokenFromRequest(c); raw != "" {
				if claims, err := utils.ParseSessionToken(secret, raw); err == nil {
					hasSession = true
					role = claims.Role
					c.Set("user_id", claims.UserID)
					c.Set("role", claims.Role)
				}
			}
			switch Decide(c.Request().URL.Path, hasSession, role) {
			case RedirectLogin:
				return c.Redirect(http.StatusSeeOther, "/login")
			case RedirectDashboard:
				return c.Redirect(http.StatusSeeOther, "/dashboard")
			}
			return next(c)
		}
	}
}
