package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/plantcare-engine/internal/care"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	// GeocoderAPIKey enables Open-Meteo; it needs coordinates from Google geocoding.
	GeocoderAPIKey string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// FetchInterval controls how often we fetch data for each location.
	FetchInterval time.Duration
	// ReminderInterval controls how often pending reminders are re-planned.
	ReminderInterval time.Duration

	// Locations to track.
	Locations []weather.Location

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// Species table.
	SpeciesFile      string // optional YAML file layered over the built-in table
	SpeciesCacheSize int

	// Adjustment defaults for callers that send no preferences.
	Adjustment care.Preferences

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ReminderInterval, err = getenvDuration("REMINDER_REEVALUATE_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}

	cfg.SpeciesFile = os.Getenv("SPECIES_FILE")
	cfg.SpeciesCacheSize = getenvInt("SPECIES_CACHE_SIZE", 256)

	def := care.DefaultPreferences()
	cfg.Adjustment = care.Preferences{
		Enabled:            getenvBool("ADJUST_ENABLED", def.Enabled),
		RainSkipMM:         getenvFloat("ADJUST_RAIN_SKIP_MM", def.RainSkipMM),
		HeatIncreaseC:      getenvFloat("ADJUST_HEAT_INCREASE_C", def.HeatIncreaseC),
		WindSpeedMS:        getenvFloat("ADJUST_WIND_SPEED_MS", def.WindSpeedMS),
		LowHumidityPercent: getenvFloat("ADJUST_LOW_HUMIDITY_PCT", def.LowHumidityPercent),
	}

	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// loadLocations pairs comma-separated WEATHER_LOCATION_CITY and
// WEATHER_LOCATION_COUNTRY entries. Both empty means no tracked locations.
func loadLocations() ([]weather.Location, error) {
	city := strings.TrimSpace(os.Getenv("WEATHER_LOCATION_CITY"))
	country := strings.TrimSpace(os.Getenv("WEATHER_LOCATION_COUNTRY"))
	if city == "" && country == "" {
		return nil, nil
	}

	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}
	var locs []weather.Location
	for i := range cities {
		c, cc := strings.TrimSpace(cities[i]), strings.TrimSpace(countries[i])
		if c == "" || cc == "" {
			return nil, fmt.Errorf("location %d: city and country are required", i+1)
		}
		locs = append(locs, weather.Location{
			City:    c,
			Country: cc,
		})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
