package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"event-rental/pkg/metrics"
)

// Metrics records request count and latency per route template.
func Metrics(m *metrics.HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.Observe(c.Request().Method, path, status, time.Since(start))
			return err
		}
	}
}
