package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/playcue/billiards/internal/api"
	"github.com/playcue/billiards/internal/config"
	"github.com/playcue/billiards/internal/game"
	"github.com/playcue/billiards/internal/middleware"
	"github.com/playcue/billiards/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Wire the websocket presentation layer: scene calls fan out to every
	// connected client, client mouse events feed the session.
	hub := ws.NewHub()
	broadcaster := ws.NewBroadcaster(hub)

	session := game.NewSession(game.ParamsFromConfig(cfg), broadcaster)
	hub.SetSession(session)
	go hub.Run()

	if err := session.Init(); err != nil {
		log.Fatalf("Failed to initialize session: %v", err)
	}
	defer session.Deinit()

	// Frame driver: one Update per tick at the configured rate.
	go runFrameLoop(session, cfg.TargetFPS)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg))

	api.SetupRoutes(router, session, hub, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting billiards server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// runFrameLoop drives the session at the target frame rate, passing the
// measured elapsed time so a slow tick does not slow the simulation.
func runFrameLoop(session *game.Session, fps int) {
	if fps <= 0 {
		fps = game.TargetFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for now := range ticker.C {
		dt := now.Sub(last).Seconds()
		last = now
		session.Update(dt)
	}
}
