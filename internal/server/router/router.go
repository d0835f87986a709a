package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jean1991/creditcarbon/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(satellite *handlers.SatelliteHandler, reports *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/provinces", satellite.ListProvinces)
		api.GET("/satellite-data/:province", satellite.GetForestLoss)

		api.POST("/reports", reports.Create)
		api.GET("/reports", reports.List)
		api.GET("/reports/:id", reports.Get)
		api.PATCH("/reports/:id", reports.Update)
		api.POST("/reports/:id/finalize", reports.Finalize)
		api.POST("/reports/:id/export", reports.Export)
		api.GET("/reports/:id/exports", reports.ListExports)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
