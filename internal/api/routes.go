package api

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/playcue/billiards/internal/api/handlers"
	"github.com/playcue/billiards/internal/config"
	"github.com/playcue/billiards/internal/game"
	"github.com/playcue/billiards/internal/ws"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, session *game.Session, hub *ws.Hub, cfg *config.Config) {
	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			// Aggressive no-cache for development
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Table endpoints
		table := v1.Group("/table")
		{
			table.GET("", handlers.GetTableState(session))
			table.GET("/ws", handlers.HandleTableWebSocket(hub))
		}
	}
}
