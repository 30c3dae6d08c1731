// Package config loads service configuration from the environment, once at
// process start. A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPort    = "8080"
	DefaultDataDir = "./pb_data"

	DefaultCivicAPIURL = "https://www.googleapis.com/civicinfo/v2"
	DefaultNewsAPIURL  = "https://newsapi.org/v2"
)

// Config holds everything the server needs from the environment. API keys are
// supplied here and nowhere else; they are never embedded in source.
type Config struct {
	Port    string
	DataDir string

	CivicAPIKey string
	CivicAPIURL string

	NewsAPIKey string
	NewsAPIURL string
}

// Load reads a .env file if present, then the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenv("PORT", DefaultPort),
		DataDir:     getenv("DATA_DIR", DefaultDataDir),
		CivicAPIKey: os.Getenv("CIVIC_API_KEY"),
		CivicAPIURL: getenv("CIVIC_API_URL", DefaultCivicAPIURL),
		NewsAPIKey:  os.Getenv("NEWS_API_KEY"),
		NewsAPIURL:  getenv("NEWS_API_URL", DefaultNewsAPIURL),
	}

	if cfg.CivicAPIKey == "" {
		return nil, fmt.Errorf("CIVIC_API_KEY is required")
	}
	if cfg.NewsAPIKey == "" {
		return nil, fmt.Errorf("NEWS_API_KEY is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
