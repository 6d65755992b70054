package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Page returns a minimal handler for a browser navigation target. The
// real pages are rendered by the web client; the server's job here is
// only to anchor the route guard's redirect policy, so the body is a
// placeholder.
func Page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, name)
	}
}
