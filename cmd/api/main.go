package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/iamasit07/connect4-solo/internal/config"
	"github.com/iamasit07/connect4-solo/internal/service/cleanup"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-solo/internal/transport/http"
	"github.com/iamasit07/connect4-solo/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-solo/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	// 1. Services
	sessionManager := game.NewSessionManager(cfg.RNGSeed)
	connManager := websocket.NewConnectionManager()

	// 2. Background workers
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.SessionIdleTimeout)
	go cleanupWorker.Start(ctx)

	// 3. Handlers
	gameHandler := transportHttp.NewGameHandler(sessionManager)
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.IsOriginAllowed)

	// 4. Router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))

	router.GET("/health", transportHttp.Health(sessionManager))
	gameHandler.Register(router)
	router.GET("/ws", gin.WrapF(wsHandler.HandleWebSocket))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
