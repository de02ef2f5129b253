package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"adRecoDashboard/pkg/logger"
	"adRecoDashboard/pkg/trace"
)

// ErrorHandler renders errors that escape handlers as {"message": ...}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		logger.Error("unhandled error",
			"trace_id", trace.TraceIDFromContext(c.Request().Context()),
			"path", c.Path(),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"message": message})
	}
	if err != nil {
		logger.Error("failed to write error response", err)
	}
}
