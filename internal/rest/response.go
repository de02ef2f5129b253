package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"adRecoDashboard/domain"
	"adRecoDashboard/pkg/logger"
	"adRecoDashboard/pkg/trace"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// errorStatus maps service errors to an HTTP status and a user-facing message.
func errorStatus(err error) (int, string) {
	var missing *domain.MissingDataFileError

	switch {
	case errors.Is(err, domain.ErrResolutionNotFound):
		return http.StatusNotFound, domain.ErrResolutionNotFound.Error()
	case errors.As(err, &missing):
		return http.StatusNotFound, missing.Error()
	case errors.Is(err, domain.ErrMissingDataFile):
		return http.StatusNotFound, domain.ErrMissingDataFile.Error()
	case errors.Is(err, domain.ErrEmptyCandidateSet):
		return http.StatusUnprocessableEntity, domain.ErrEmptyCandidateSet.Error()
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, domain.ErrSessionNotFound.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func respondError(c echo.Context, err error) error {
	code, message := errorStatus(err)
	if code == http.StatusInternalServerError {
		logger.Error("request failed",
			"trace_id", trace.TraceIDFromContext(c.Request().Context()),
			"path", c.Path(),
			"error", err,
		)
	}
	return c.JSON(code, ResponseError{Message: message})
}
