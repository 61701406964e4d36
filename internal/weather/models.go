package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Location identifies where a plant lives. City/Country are required; coordinates
// are optional and filled by geocoding when a provider needs them.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// WeatherSnapshot is the normalized weather view the care engine consumes.
type WeatherSnapshot struct {
	Location    Location  `json:"location"`
	Timestamp   time.Time `json:"timestamp"` // always UTC
	Temperature float64   `json:"temperatureC"`
	Humidity    float64   `json:"humidityPercent"`
	WindSpeed   float64   `json:"windSpeed"` // m/s
	PrecipMM    float64   `json:"precipMm"`
	// RainForecastMM is the rain expected over the next day.
	RainForecastMM float64   `json:"rainForecastMm"`
	Condition      Condition `json:"condition"`

	Providers []ProviderContribution `json:"providers,omitempty"`
}

// Forecast is a day-ordered list of snapshots, one per day, ascending by Timestamp.
type Forecast []WeatherSnapshot

// ProviderContribution describes data coming from a single provider used in aggregation.
type ProviderContribution struct {
	ProviderName string    `json:"provider"`
	Timestamp    time.Time `json:"timestamp"`
}
