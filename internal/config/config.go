package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingBackendURL = errors.New("BACKEND_URL is required")

type Config struct {
	AppPort string
	AppEnv  string

	// BackendURL is the base URL of the storefront API every client call goes to.
	BackendURL     string
	BackendTimeout time.Duration

	DBURL      string
	JWTSecret  string
	PaymentURL string

	// CatalogPath is where the UI lands when a direct-buy checkout cannot start.
	CatalogPath string

	CORSOrigin string

	// Sessions idle longer than SessionIdleTimeout are dropped by the sweeper.
	SessionIdleTimeout time.Duration
	SessionSweepEvery  time.Duration
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "development"),
		BackendURL:     os.Getenv("BACKEND_URL"),
		BackendTimeout: getDuration("BACKEND_TIMEOUT_SECONDS", 15*time.Second),
		DBURL:          os.Getenv("DB_URL"),
		JWTSecret:      os.Getenv("SECRET_KEY"),
		PaymentURL:     getEnv("PAYMENT_URL", "/payment"),
		CatalogPath:    getEnv("CATALOG_PATH", "/products"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:3000"),

		SessionIdleTimeout: getDuration("SESSION_IDLE_SECONDS", 2*time.Hour),
		SessionSweepEvery:  getDuration("SESSION_SWEEP_SECONDS", 5*time.Minute),
	}

	if cfg.BackendURL == "" {
		return nil, ErrMissingBackendURL
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
