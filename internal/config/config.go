package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Config holds all configuration for the application.
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Database
	Database Database

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int
}

// Database selects the persistence backend: "sqlite" with a file path,
// or "postgres" with a connection URL and pool size.
type Database struct {
	Driver     string
	SQLitePath string
	URL        string
	MaxConns   int32
}

// Load reads configuration from environment variables, with an
// optional .env file.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:         getEnv("ENV", "development"),
		Database: Database{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			SQLitePath: getEnv("SQLITE_PATH", "data/gastos.db"),
			URL:        getEnv("DATABASE_URL", ""),
			MaxConns:   int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 300),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 30),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
