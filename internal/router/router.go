package router

import (
	"github.com/gin-gonic/gin"

	"invotab/internal/handler"
	"invotab/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	fileH *handler.FileHandler,
	extractH *handler.ExtractHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	files := v1.Group("/files")
	files.POST("/upload", fileH.Upload)

	extract := v1.Group("/extract")
	extract.POST("/process", extractH.Process)
	extract.GET("/data", extractH.Data)
	extract.GET("/export", extractH.Export)
	extract.POST("/clear", extractH.Clear)

	return r
}
