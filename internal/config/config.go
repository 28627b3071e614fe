package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/ngmaloney/weather-terminal/internal/database"
)

const (
	DefaultGeocodingURL  = "https://api.openweathermap.org"
	DefaultForecastURL   = "https://api.open-meteo.com"
	DefaultIPLocationURL = "http://ip-api.com/json"
)

// AppConfig is everything the composition root needs to wire the app.
type AppConfig struct {
	OpenWeatherAPIKey string

	GeocodingBaseURL string
	ForecastBaseURL  string
	IPLocationURL    string

	DBPath          string
	PreferencesPath string

	// HTTPTimeout bounds every outbound request.
	HTTPTimeout time.Duration

	// Pinned device location. Both nil means "ask the IP lookup".
	Lat *float64
	Lon *float64
}

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("INFO: error loading .env file: %v", err)
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		GeocodingBaseURL:  getenvDefault("GEOCODING_BASE_URL", DefaultGeocodingURL),
		ForecastBaseURL:   getenvDefault("FORECAST_BASE_URL", DefaultForecastURL),
		IPLocationURL:     getenvDefault("IP_LOCATION_URL", DefaultIPLocationURL),
		DBPath:            getenvDefault("WEATHER_DB_PATH", database.DBPath()),
		PreferencesPath:   getenvDefault("WEATHER_PREFS_PATH", filepath.Join("data", "preferences.toml")),
	}

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	lat, err := getenvFloat("WEATHER_LAT")
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("WEATHER_LON")
	if err != nil {
		return nil, err
	}
	if err := cfg.SetLocation(lat, lon); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetLocation pins the device location. Both values must be set or both nil.
func (c *AppConfig) SetLocation(lat, lon *float64) error {
	if (lat == nil) != (lon == nil) {
		return fmt.Errorf("latitude and longitude must be set together")
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return fmt.Errorf("latitude %v out of range", *lat)
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		return fmt.Errorf("longitude %v out of range", *lon)
	}
	c.Lat, c.Lon = lat, lon
	return nil
}

// HasPinnedLocation reports whether a fixed device location is configured.
func (c *AppConfig) HasPinnedLocation() bool {
	return c.Lat != nil && c.Lon != nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
