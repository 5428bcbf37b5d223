package config

import (
	"fmt"
	"os"
	"time"
)

// AppConfig is the process configuration, read from the environment.
type AppConfig struct {
	OpenWeatherAPIKey string
	GoogleAPIKey      string // Geocoding API, used for reverse geocoding
	ChatBaseURL       string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// RefreshInterval controls how often the saved location's weather is
	// refreshed.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.ChatBaseURL = getenvDefault("CHAT_BASE_URL", "http://localhost:5000/api")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	intervalStr := getenvDefault("REFRESH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
