package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"adRecoDashboard/pkg/trace"
)

const HeaderTraceID = "X-Trace-ID"

// TraceID tags each request with a trace id, reusing a valid incoming
// X-Trace-ID header.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(HeaderTraceID)
			if _, err := uuid.Parse(tid); err != nil {
				tid = uuid.NewString()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(trace.WithTraceID(req.Context(), tid)))
			c.Response().Header().Set(HeaderTraceID, tid)

			return next(c)
		}
	}
}
