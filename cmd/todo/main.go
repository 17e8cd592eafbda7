package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todo_webapp/cmd/todo/commands"
	"todo_webapp/internal/logger"

	"github.com/joho/godotenv"
)

// Version information (set via ldflags during build)
var Version = "dev"

func main() {
	_ = godotenv.Load()
	logger.InitTo(os.Stderr, envOr("LOG_LEVEL", "warn"), os.Getenv("LOG_FORMAT") == "json")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := commands.Execute(ctx, Version); err != nil {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
