package rest

import (
	"context"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"adRecoDashboard/domain"
)

type (
	SessionHandler struct {
		dashboard      *DashboardHandler
		sessionService SessionService
	}

	SessionService interface {
		Create(ctx context.Context) (domain.Session, error)
		Get(ctx context.Context, id string) (domain.Session, error)
		Update(ctx context.Context, id string, sel domain.Selection) (domain.Session, error)
	}
)

// NewSessionHandler serves session-scoped views through the dashboard handler.
func NewSessionHandler(svc SessionService, dashboard *DashboardHandler) *SessionHandler {
	return &SessionHandler{
		dashboard:      dashboard,
		sessionService: svc,
	}
}

// POST /api/v1/sessions
func (h *SessionHandler) Create(c echo.Context) error {
	sess, err := h.sessionService.Create(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(sess))
}

// GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c echo.Context) error {
	sess, err := h.sessionService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(sess))
}

// PUT /api/v1/sessions/:id
// body: {"industry": "게임", "os": "Android", "quarter": "2Q"}
func (h *SessionHandler) Update(c echo.Context) error {
	var sel domain.Selection
	if err := (&echo.DefaultBinder{}).BindBody(c, &sel); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.dashboard.validate.Struct(&sel); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	sess, err := h.sessionService.Update(c.Request().Context(), c.Param("id"), sel)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(sess))
}

// GET /api/v1/sessions/:id/overview
func (h *SessionHandler) Overview(c echo.Context) error {
	sess, err := h.sessionService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return h.dashboard.overview(c, sess.Selection)
}

// GET /api/v1/sessions/:id/recommendations
func (h *SessionHandler) Recommend(c echo.Context) error {
	sess, err := h.sessionService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return h.dashboard.recommend(c, sess.Selection)
}
