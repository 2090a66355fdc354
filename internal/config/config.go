// Package config handles loading runtime configuration for the Rowdy Cup API.
// Configuration values (database URL, port, JWT secret) come from environment
// variables rather than being hardcoded, so the same binary runs in dev and
// production — just swap the environment.
package config

import (
	"os"

	// godotenv reads a .env file and loads its key=value pairs into the
	// process environment. Convenient in development; in production real
	// env vars are set by the deployment platform and no .env file exists.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port        string // TCP port the HTTP server listens on (e.g. "8080")
	DatabaseURL string // PostgreSQL connection string
	JWTSecret   string // HMAC secret for signing and verifying session tokens
	Env         string // "development", "staging", or "production"
}

// Load reads configuration from environment variables and returns a
// populated Config. A missing .env file is fine — in production the real
// environment is already set, so the load error is intentionally ignored.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	return &Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"), // Required — server fails to start without it
		JWTSecret:   os.Getenv("JWT_SECRET"),   // Required for login and request auth
		Env:         env,
	}
}
