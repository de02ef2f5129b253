package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"adRecoDashboard/domain"
	"adRecoDashboard/pkg/metrics"
)

type (
	DashboardHandler struct {
		validate         *validator.Validate
		dashboardService DashboardService
	}

	DashboardService interface {
		Options() domain.SelectionOptions
		ResolveCluster(ctx context.Context, sel domain.Selection) (int, error)
		Overview(ctx context.Context, sel domain.Selection) (domain.ClusterOverview, error)
		Recommend(ctx context.Context, sel domain.Selection) (domain.RecommendationReport, error)
		Explain(ctx context.Context, sel domain.Selection) ([]domain.CandidateTrace, error)
	}

	ClusterResponse struct {
		Selection domain.Selection `json:"selection"`
		ClusterID int              `json:"cluster_id"`
	}
)

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{
		validate:         validator.New(),
		dashboardService: svc,
	}
}

// bindSelection reads industry, os and quarter from the query string.
func (h *DashboardHandler) bindSelection(c echo.Context) (domain.Selection, error) {
	var sel domain.Selection
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &sel); err != nil {
		return domain.Selection{}, err
	}
	if err := h.validate.Struct(&sel); err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}

// GET /api/v1/options
func (h *DashboardHandler) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.dashboardService.Options()))
}

// GET /api/v1/clusters/resolve?industry=음식&os=Web&quarter=1Q
func (h *DashboardHandler) ResolveCluster(c echo.Context) error {
	sel, err := h.bindSelection(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	clusterID, err := h.dashboardService.ResolveCluster(c.Request().Context(), sel)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ClusterResponse{Selection: sel, ClusterID: clusterID}))
}

// GET /api/v1/overview?industry=음식&os=Web&quarter=1Q
func (h *DashboardHandler) Overview(c echo.Context) error {
	sel, err := h.bindSelection(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	return h.overview(c, sel)
}

func (h *DashboardHandler) overview(c echo.Context, sel domain.Selection) error {
	ov, err := h.dashboardService.Overview(c.Request().Context(), sel)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(ov))
}

// GET /api/v1/recommendations?industry=음식&os=Web&quarter=1Q
func (h *DashboardHandler) Recommend(c echo.Context) error {
	sel, err := h.bindSelection(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	return h.recommend(c, sel)
}

func (h *DashboardHandler) recommend(c echo.Context, sel domain.Selection) error {
	report, err := h.dashboardService.Recommend(c.Request().Context(), sel)
	metrics.RecommendationsTotal.WithLabelValues(recommendOutcome(err)).Inc()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

// GET /api/v1/recommendations/debug?industry=음식&os=Web&quarter=1Q
func (h *DashboardHandler) Explain(c echo.Context) error {
	sel, err := h.bindSelection(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	traces, err := h.dashboardService.Explain(c.Request().Context(), sel)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(traces))
}

func recommendOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrResolutionNotFound):
		return "unresolved"
	case errors.Is(err, domain.ErrEmptyCandidateSet):
		return "empty"
	case errors.Is(err, domain.ErrMissingDataFile):
		return "missing_file"
	default:
		return "error"
	}
}
