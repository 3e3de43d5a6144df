// Package config loads application configuration from environment variables
// and an optional .env file.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Import   ImportConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ImportConfig struct {
	// BatchSize is the number of rows one advance call consumes.
	BatchSize int
	// StateTTL bounds how long an idle import stays resumable.
	StateTTL time.Duration
	// LockTTL bounds the per-import advance lock.
	LockTTL time.Duration
	// UploadDir is where received import files are stored.
	UploadDir string
	// DefaultRole is assigned to rows that carry no role.
	DefaultRole string
	// SkipInvalidRows switches the row-error policy from fail-fast to
	// skip-and-count.
	SkipInvalidRows bool
}

// Load reads the environment, honoring a .env file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: databaseURL,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Import: ImportConfig{
			BatchSize:       getIntEnv("IMPORT_BATCH_SIZE", 100),
			StateTTL:        time.Duration(getIntEnv("IMPORT_STATE_TTL_SECONDS", 86400)) * time.Second,
			LockTTL:         time.Duration(getIntEnv("IMPORT_LOCK_TTL_SECONDS", 60)) * time.Second,
			UploadDir:       getEnv("IMPORT_UPLOAD_DIR", "uploads"),
			DefaultRole:     getEnv("IMPORT_DEFAULT_ROLE", "subscriber"),
			SkipInvalidRows: getBoolEnv("IMPORT_SKIP_INVALID_ROWS", false),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getBoolEnv(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
