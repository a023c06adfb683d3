package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelvins/geocoder"

	"github.com/wakaweather/confidence-meter/internal/forecast"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	WeatherAPIKey      string
	WeatherstackAPIKey string

	OpenAIAPIKey string
	ChatModel    string

	GeocoderAPIKey string

	// ProviderTimeout bounds each outbound provider call.
	ProviderTimeout time.Duration

	// DefaultLocation is used when the request does not override it.
	DefaultLocation forecast.Location

	AlertsFeedURL  string
	AlertsRefresh  time.Duration
	AlertCountries []string

	Port     string
	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.WeatherstackAPIKey = os.Getenv("WEATHERSTACK_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.ChatModel = getenvDefault("CHAT_MODEL", "gpt-3.5-turbo")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeoutStr := getenvDefault("PROVIDER_TIMEOUT", "4s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT: %w", err)
	}
	cfg.ProviderTimeout = timeout

	loc, err := loadDefaultLocation(cfg.GeocoderAPIKey)
	if err != nil {
		return nil, err
	}
	cfg.DefaultLocation = loc

	cfg.AlertsFeedURL = getenvDefault("ALERTS_FEED_URL", "")
	refreshStr := getenvDefault("ALERTS_REFRESH_INTERVAL", "30m")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ALERTS_REFRESH_INTERVAL: %w", err)
	}
	cfg.AlertsRefresh = refresh
	cfg.AlertCountries = splitTrimmed(getenvDefault("ALERT_COUNTRIES", "Fiji"))

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	return cfg, nil
}

// loadDefaultLocation reads the default location from the environment,
// falling back to Suva, Fiji. When a city is configured without
// coordinates, the geocoder resolves them if a key is available.
func loadDefaultLocation(geocoderKey string) (forecast.Location, error) {
	loc := forecast.Location{
		City:     getenvDefault("WEATHER_LOCATION_CITY", "Suva"),
		Country:  getenvDefault("WEATHER_LOCATION_COUNTRY", "Fiji"),
		Lat:      -18.1248,
		Lon:      178.4501,
		Timezone: getenvDefault("WEATHER_LOCATION_TZ", "Pacific/Fiji"),
	}

	latStr := os.Getenv("WEATHER_LOCATION_LAT")
	lonStr := os.Getenv("WEATHER_LOCATION_LON")

	switch {
	case latStr != "" && lonStr != "":
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return loc, fmt.Errorf("invalid WEATHER_LOCATION_LAT: %w", err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return loc, fmt.Errorf("invalid WEATHER_LOCATION_LON: %w", err)
		}
		loc.Lat, loc.Lon = lat, lon

	case os.Getenv("WEATHER_LOCATION_CITY") != "" && geocoderKey != "":
		// A custom city without coordinates: resolve them once at startup.
		if err := resolveCoordinates(&loc, geocoderKey); err != nil {
			return loc, fmt.Errorf("geocoding %s failed: %w", loc.City, err)
		}
	}

	return loc, nil
}

func resolveCoordinates(loc *forecast.Location, apiKey string) error {
	geocoder.ApiKey = apiKey

	coords, err := geocoder.Geocoding(geocoder.Address{
		City:    loc.City,
		Country: loc.Country,
	})
	if err != nil {
		return err
	}

	loc.Lat = coords.Latitude
	loc.Lon = coords.Longitude
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
