package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"todo_webapp/internal/db"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/migrations"
	"todo_webapp/internal/repository"

	redis "github.com/redis/go-redis/v9"
)

// Blob backends for local mode.
const (
	BlobFile   = "file"
	BlobRedis  = "redis"
	BlobMemory = "memory"
)

// Options carries everything Open needs to build one backend.
type Options struct {
	Mode Mode

	DatabaseURL string
	AutoMigrate bool

	BlobBackend   string
	DataDir       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	APIURL     string
	HTTPClient *http.Client
}

// Open selects the backend once and wraps it in a Facade. The choice is
// fixed for the lifetime of the returned Facade.
func Open(ctx context.Context, opts Options) (*Facade, error) {
	store, err := openStore(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("storage backend selected", "mode", opts.Mode, "blob_backend", opts.BlobBackend)
	return New(store, opts.Mode), nil
}

func openStore(ctx context.Context, opts Options) (Store, error) {
	switch opts.Mode {
	case ModeDatabase:
		if opts.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required in database mode")
		}
		pool, err := db.Open(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if opts.AutoMigrate {
			if err := migrations.Apply(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
		return repository.NewTodoRepository(pool), nil

	case ModeRemote:
		if opts.APIURL == "" {
			return nil, errors.New("TODO_API_URL is required in remote mode")
		}
		return NewRemote(opts.APIURL, opts.HTTPClient), nil

	case ModeLocal:
		blobs, err := openBlobs(ctx, opts)
		if err != nil {
			return nil, err
		}
		return NewLocal(blobs), nil
	}
	return nil, fmt.Errorf("unknown storage mode %q", opts.Mode)
}

func openBlobs(ctx context.Context, opts Options) (BlobStore, error) {
	switch opts.BlobBackend {
	case "", BlobFile:
		return NewFileBlobs(opts.DataDir)
	case BlobMemory:
		return NewMemoryBlobs(), nil
	case BlobRedis:
		if opts.RedisAddr == "" {
			return nil, errors.New("REDIS_ADDR is required for the redis blob backend")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedisBlobs(client, opts.RedisPrefix), nil
	}
	return nil, fmt.Errorf("unknown local blob backend %q", opts.BlobBackend)
}
