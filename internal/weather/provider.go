package weather

import (
	"context"
	"time"
)

// ProviderReading is a single provider's normalized reading, aggregated into a WeatherSnapshot.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time

	TemperatureC   float64
	HumidityPct    float64
	WindSpeedMS    float64
	PrecipMm       float64
	RainForecastMm float64
	Condition      Condition
}

// Provider abstracts a current-conditions source (OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (ProviderReading, error)
}

// ForecastProvider is implemented by providers that can return daily readings.
type ForecastProvider interface {
	FetchForecast(ctx context.Context, loc Location, days int) ([]ProviderReading, error)
}

// Store is the snapshot persistence contract.
type Store interface {
	SaveSnapshot(loc Location, snapshot WeatherSnapshot)
	GetLatest(loc Location) (WeatherSnapshot, error)
	GetRange(loc Location, from, to time.Time) ([]WeatherSnapshot, error)
}

// FetchObserver receives the outcome of each provider call.
type FetchObserver func(provider string, err error)
