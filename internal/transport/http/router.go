package http

import (
	"github.com/gin-gonic/gin"

	"github.com/iamasit07/4-in-a-row/engine/internal/transport/http/middleware"
)

// NewRouter wires every API route onto a fresh gin engine.
func NewRouter(engine *EngineHandler, matches *MatchHandler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", engine.Health)
		api.POST("/move", engine.Move)
		api.POST("/evaluate", engine.Evaluate)

		api.GET("/matches", matches.List)
		api.POST("/matches", matches.Create)
		api.GET("/matches/:id", matches.Get)
		api.POST("/matches/:id/moves", matches.Play)
		api.DELETE("/matches/:id", matches.Delete)
	}

	return router
}
