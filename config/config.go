// Package config manages the application configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/gamijournal/emocal/model"
)

// Config holds the whole application configuration.
type Config struct {
	// Base URL of the upstream habit API
	UpstreamURL string

	// Bearer token for the upstream habit API
	UpstreamToken string

	// API key required on /api/ endpoints
	APIKey string

	// Snapshot database directory
	DataDir string

	// HTTP server port
	Port string

	// Calendar-day convention (utc or local)
	TimezoneMode model.TimezoneMode

	// Window length in weeks when a request does not specify one
	DefaultWeeks int
}

// NewConfig reads the configuration from environment variables.
func NewConfig() *Config {
	upstreamURL := os.Getenv("GJ_UPSTREAM_URL")
	if upstreamURL == "" {
		upstreamURL = "http://localhost:9000"
	}

	dataDir := os.Getenv("GJ_DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(".", "data")
	}

	port := os.Getenv("GJ_SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	apiKey := os.Getenv("GJ_API_KEY")
	if apiKey == "" {
		// no default key is provided
		panic("GJ_API_KEY is not set")
	}

	tzMode, err := model.NewTimezoneMode(os.Getenv("GJ_TZ_MODE"))
	if err != nil {
		panic(err)
	}

	// empty GJ_DEFAULT_WEEKS falls back to the built-in window length
	defaultWeeks, err := model.NewWindowWeeks(os.Getenv("GJ_DEFAULT_WEEKS"))
	if err != nil {
		panic(err)
	}

	return &Config{
		UpstreamURL:   upstreamURL,
		UpstreamToken: os.Getenv("GJ_UPSTREAM_TOKEN"),
		APIKey:        apiKey,
		DataDir:       dataDir,
		Port:          port,
		TimezoneMode:  tzMode,
		DefaultWeeks:  defaultWeeks.Int(),
	}
}
