package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/muhammadafan/fresh-harvest-connect/internal/metrics"
)

// Metrics returns middleware recording a request counter and latency
// histogram per method and route pattern.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			metrics.RecordHTTPRequest(
				c.Request().Method,
				route,
				strconv.Itoa(c.Response().Status),
				time.Since(start),
			)
			return err
		}
	}
}
