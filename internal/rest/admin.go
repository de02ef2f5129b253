package rest

import (
	"context"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"adRecoDashboard/business/loader"
	"adRecoDashboard/pkg/logger"
)

type (
	CacheAdminHandler struct {
		cache CacheManager
	}

	CacheManager interface {
		Invalidate()
		Warm(ctx context.Context) (loader.WarmResult, error)
	}
)

func NewCacheAdminHandler(cache CacheManager) *CacheAdminHandler {
	return &CacheAdminHandler{cache: cache}
}

// POST /api/v1/admin/cache/clear
func (h *CacheAdminHandler) Clear(c echo.Context) error {
	h.cache.Invalidate()
	logger.Info("cache cleared by admin", "user_id", c.Get("user_id"))

	return c.JSON(http.StatusOK, fres.Response.StatusOK("cache cleared"))
}

// POST /api/v1/admin/cache/warm
func (h *CacheAdminHandler) Warm(c echo.Context) error {
	res, err := h.cache.Warm(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	logger.Info("cache warmed by admin", "user_id", c.Get("user_id"), "clusters", len(res.Clusters))

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}
