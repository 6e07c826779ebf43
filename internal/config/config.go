package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultBaseURL matches the backend's local development address.
const DefaultBaseURL = "http://localhost:8000/api"

// Config holds all client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8000/api".
	BaseURL string
	// ConfigDir overrides where local state (session db) lives.
	// Empty means ~/.tramite.
	ConfigDir string
}

// Load reads configuration from a .env file (if present) and environment
// variables. Missing values fall back to defaults; Load never fails on an
// absent .env.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:   strings.TrimRight(getEnv("TRAMITE_API_URL", DefaultBaseURL), "/"),
		ConfigDir: strings.TrimSpace(os.Getenv("TRAMITE_CONFIG_DIR")),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
