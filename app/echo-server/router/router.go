package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adRecoDashboard/internal/rest"
)

func SetupDashboardRoutes(api *echo.Group, handler *rest.DashboardHandler) {
	api.GET("/options", handler.Options)
	api.GET("/clusters/resolve", handler.ResolveCluster)
	api.GET("/overview", handler.Overview)

	reco := api.Group("/recommendations")
	reco.GET("", handler.Recommend)
	reco.GET("/debug", handler.Explain)
}

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler) {
	sessions := api.Group("/sessions")

	sessions.POST("", handler.Create)
	sessions.GET("/:id", handler.Get)
	sessions.PUT("/:id", handler.Update)
	sessions.GET("/:id/overview", handler.Overview)
	sessions.GET("/:id/recommendations", handler.Recommend)
}

func SetupCacheAdminRoutes(api *echo.Group, handler *rest.CacheAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/cache", authRequired, adminOnly)

	admin.POST("/clear", handler.Clear)
	admin.POST("/warm", handler.Warm)
}

func SetupOpsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
