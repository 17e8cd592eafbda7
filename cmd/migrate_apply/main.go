package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"todo_webapp/internal/db"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/migrations"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apply := flag.Bool("apply", false, "apply migrations")
	flag.Parse()

	if !*apply {
		names, err := migrations.Names()
		if err != nil {
			logger.Fatal("list migrations", "error", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	if err := migrations.Apply(context.Background(), pool); err != nil {
		logger.Fatal("failed to apply migrations", "error", err)
	}
	fmt.Println("migrations applied")
}
