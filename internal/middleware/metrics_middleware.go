package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"adRecoDashboard/pkg/metrics"
)

// Metrics records latency and count of every routed request.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.RequestLatency.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
			metrics.RequestsTotal.WithLabelValues(method, route, status).Inc()

			return nil
		}
	}
}
