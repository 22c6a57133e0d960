package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/getcarekorea/content-engine/internal/http/handlers"
	httpMW "github.com/getcarekorea/content-engine/internal/http/middleware"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AdminAuth *httpMW.AdminAuth

	HealthHandler      *httpH.HealthHandler
	FeedbackHandler    *httpH.FeedbackHandler
	PerformanceHandler *httpH.PerformanceHandler
	GenerateHandler    *httpH.GenerateHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("content-engine"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	admin := r.Group("/api/admin")
	{
		if cfg.AdminAuth != nil {
			admin.Use(cfg.AdminAuth.RequireAdmin())
		}

		// Feedback
		if cfg.FeedbackHandler != nil {
			admin.POST("/feedback", cfg.FeedbackHandler.Submit)
		}

		// Performance collection and reporting
		if cfg.PerformanceHandler != nil {
			admin.POST("/performance/collect", cfg.PerformanceHandler.CollectAll)
			admin.POST("/performance/collect/:contentItemID", cfg.PerformanceHandler.CollectItem)
			admin.GET("/performance/summary", cfg.PerformanceHandler.Summary)
		}

		// Generation
		if cfg.GenerateHandler != nil {
			admin.POST("/generate", cfg.GenerateHandler.Generate)
		}
	}

	return r
}
