package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes. metricsHandler may be nil to
// disable the Prometheus endpoint.
func SetupRoutes(router *gin.Engine, handler *Handler, metricsHandler http.Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/media/classify", handler.ClassifyMedia)     // POST /api/v1/media/classify
		v1.POST("/reports/moderate", handler.ModerateReport)  // POST /api/v1/reports/moderate
		v1.POST("/water/predict", handler.PredictWater)       // POST /api/v1/water/predict
		v1.POST("/chat", handler.Chat)                        // POST /api/v1/chat
		v1.GET("/taxonomies", handler.ListTaxonomies)         // GET /api/v1/taxonomies
		v1.GET("/stats", handler.GetStats)                    // GET /api/v1/stats
	}
}
