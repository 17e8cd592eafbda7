package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo_webapp/internal/config"
	httpServer "todo_webapp/internal/http"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/service"
	"todo_webapp/internal/storage"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

// Version is set via ldflags during build
var Version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.JSONLogs())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	facade, err := storage.Open(ctx, cfg.StorageOptions())
	cancel()
	if err != nil {
		logger.Fatal("failed to open storage", "mode", cfg.StorageMode, "error", err)
	}
	defer facade.Close()

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedisRateLimiter()

	hub := ws.NewHub()
	todos := service.NewTodoService(facade, hub)

	r := gin.Default()
	httpServer.RegisterRoutes(r, httpServer.Deps{
		Todos:   todos,
		Hub:     hub,
		Config:  cfg,
		Version: Version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "storage_mode", facade.Mode(), "local_mode", facade.IsLocalMode())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
