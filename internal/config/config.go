package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"todo_webapp/internal/logger"
	"todo_webapp/internal/storage"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// Storage
	StorageMode      storage.Mode
	DatabaseURL      string
	AutoMigrate      bool
	LocalBlobBackend string
	LocalDataDir     string

	// Redis (rate limiter and the redis local backend)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Limits
	APIRateLimit              int
	APIRateWindowSeconds      int
	MutationRateLimit         int
	MutationRateWindowSeconds int

	LogLevel  string
	LogFormat string

	AllowedOrigin string
	FrontendDir   string
}

// Load reads the config from env (and .env if present) and exits on errors.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (*Config, error) {
	mode, err := storage.ParseMode(os.Getenv("STORAGE_MODE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppPort:                   getEnv("APP_PORT", "8080"),
		StorageMode:               mode,
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		AutoMigrate:               os.Getenv("AUTO_MIGRATE") == "true",
		LocalBlobBackend:          strings.ToLower(getEnv("LOCAL_BLOB_BACKEND", storage.BlobFile)),
		LocalDataDir:              getEnv("LOCAL_DATA_DIR", "./data"),
		RedisAddr:                 os.Getenv("REDIS_ADDR"),
		RedisPassword:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:                   getInt("REDIS_DB", 0),
		APIRateLimit:              getInt("API_RATE_LIMIT", 120),
		APIRateWindowSeconds:      getInt("API_RATE_WINDOW_SECONDS", 60),
		MutationRateLimit:         getInt("MUTATION_RATE_LIMIT", 30),
		MutationRateWindowSeconds: getInt("MUTATION_RATE_WINDOW_SECONDS", 60),
		LogLevel:                  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:                 strings.ToLower(getEnv("LOG_FORMAT", "text")),
		AllowedOrigin:             os.Getenv("ALLOWED_ORIGIN"),
		FrontendDir:               os.Getenv("FRONTEND_DIR"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected mode has what it needs and can be
// served by the API server.
func (c *Config) Validate() error {
	switch c.StorageMode {
	case storage.ModeDatabase:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}
	case storage.ModeRemote:
		// the remote store calls this API; serving it from itself would loop
		return errors.New("STORAGE_MODE=remote is only supported by the todo CLI")
	case storage.ModeLocal:
		switch c.LocalBlobBackend {
		case storage.BlobFile:
			if c.LocalDataDir == "" {
				return errors.New("LOCAL_DATA_DIR is not set")
			}
		case storage.BlobRedis:
			if c.RedisAddr == "" {
				return errors.New("REDIS_ADDR is required when LOCAL_BLOB_BACKEND=redis")
			}
		case storage.BlobMemory:
		default:
			return errors.New("LOCAL_BLOB_BACKEND must be file, redis or memory")
		}
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.New("LOG_FORMAT must be text or json")
	}
	return nil
}

// JSONLogs reports whether logs should be written as JSON.
func (c *Config) JSONLogs() bool { return c.LogFormat == "json" }

// StorageOptions maps the config onto storage.Open options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Mode:          c.StorageMode,
		DatabaseURL:   c.DatabaseURL,
		AutoMigrate:   c.AutoMigrate,
		BlobBackend:   c.LocalBlobBackend,
		DataDir:       c.LocalDataDir,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   "todo:",
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt falls back to def for unset, malformed or non-positive values.
func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
