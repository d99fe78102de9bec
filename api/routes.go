package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires all routes. Only /api/* is rate limited; the health and
// metrics endpoints stay open for probes and scrapers.
func NewRouter(handler *Handler, metricsHandler http.Handler, requestsPerMinute int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(metricsHandler))

	api := router.Group("/api")
	api.Use(RateLimiter(requestsPerMinute))
	api.POST("/analyze", handler.Analyze)
	api.POST("/download", handler.DownloadAll)
	api.POST("/download/one", handler.DownloadOne)
	api.GET("/status", handler.Status)
	api.GET("/settings", handler.GetSettings)
	api.PUT("/settings", handler.PutSettings)

	return router
}
