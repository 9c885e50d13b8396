// Package config loads application configuration from the environment.
//
// A .env file in the working directory is loaded first (godotenv) so local
// development doesn't need exported shell variables; real environments just
// set the variables directly and no .env file exists.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sakif/weather-hub/internal/geocode"
	"github.com/sakif/weather-hub/internal/weather"
)

// Config holds everything the composition root needs to wire the server.
type Config struct {
	// Server
	Port   int
	DBPath string

	// Auth
	JWTSecret string

	// Weather / geocoding endpoints. Defaults are the public free
	// providers; overridable mainly so tests and proxies can redirect them.
	WeatherBaseURL string
	PhotonURL      string
	NominatimURL   string

	// History sink (Google Sheets). Both empty ⇒ history endpoints are
	// disabled but the rest of the API still works.
	GoogleSheetID         string
	GoogleCredentialsJSON string
}

// Load reads the configuration. Only JWT_SECRET is hard-required — the
// server refuses to start without a signing secret.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file is the normal case outside dev.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  8000,
		DBPath:                getEnv("DB_PATH", "data/weatherhub.db"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		WeatherBaseURL:        getEnv("WEATHER_BASE_URL", weather.DefaultBaseURL),
		PhotonURL:             getEnv("PHOTON_URL", geocode.DefaultPhotonURL),
		NominatimURL:          getEnv("NOMINATIM_URL", geocode.DefaultNominatimURL),
		GoogleSheetID:         os.Getenv("GOOGLE_SHEET_ID"),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("config: invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is not set")
	}

	return cfg, nil
}

// HistoryEnabled reports whether the Google Sheets sink is configured.
func (c *Config) HistoryEnabled() bool {
	return c.GoogleSheetID != "" && c.GoogleCredentialsJSON != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
