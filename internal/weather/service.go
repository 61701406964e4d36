package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

var (
	// ErrNoProviders is returned when the service has nothing to fetch from.
	ErrNoProviders = errors.New("no weather providers configured")
	// ErrNoForecast is returned when no forecast-capable provider produced data.
	ErrNoForecast = errors.New("no forecast data available")
)

// Service fetches from providers and keeps snapshots in a Store. The care engine
// never calls it directly; the API layer resolves weather here and hands the
// snapshot to the engine.
type Service struct {
	store     Store
	providers []Provider
	observe   FetchObserver
}

// NewService creates a new Service.
func NewService(store Store, providers []Provider) *Service {
	return &Service{
		store:     store,
		providers: providers,
	}
}

// WithObserver registers a callback invoked after every provider call.
func (s *Service) WithObserver(fn FetchObserver) *Service {
	s.observe = fn
	return s
}

func (s *Service) record(provider string, err error) {
	if s.observe != nil {
		s.observe(provider, err)
	}
}

// FetchAndStore fetches data from all providers concurrently for the given location,
// aggregates successful readings, and stores a snapshot.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	if len(s.providers) == 0 {
		log.Printf("ERROR: no providers available to fetch weather data for %s", loc.Key())
		return ErrNoProviders
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []ProviderReading
	)

	for _, p := range s.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()

			r, err := p.Fetch(ctx, loc)
			s.record(p.Name(), err)
			if err != nil {
				// Partial success is fine; the aggregate uses whoever answered.
				log.Printf("weather: provider %s fetch failed for %s: %v", p.Name(), loc.Key(), err)
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}(p)
	}

	wg.Wait()

	if len(readings) == 0 {
		log.Printf("weather: no successful provider readings for %s; keeping last good snapshot", loc.Key())
		return nil
	}

	snapshot := AggregateReadings(loc, readings)
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}
	s.store.SaveSnapshot(loc, snapshot)
	return nil
}

// GetForecast fetches daily readings from forecast-capable providers,
// aggregates them per day, and returns at most days entries.
func (s *Service) GetForecast(ctx context.Context, loc Location, days int) (Forecast, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be greater than zero")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var (
		wg            sync.WaitGroup
		mu            sync.Mutex
		dayReadings   = make(map[string][]ProviderReading)
		dayTimestamps = make(map[string]time.Time)
	)

	for _, p := range s.providers {
		fp, ok := p.(ForecastProvider)
		if !ok {
			continue
		}

		wg.Add(1)
		go func(fp ForecastProvider, name string) {
			defer wg.Done()

			readings, err := fp.FetchForecast(ctx, loc, days)
			s.record(name, err)
			if err != nil {
				log.Printf("weather: provider %s forecast failed for %s: %v", name, loc.Key(), err)
				return
			}

			mu.Lock()
			defer mu.Unlock()

			for _, r := range readings {
				ts := r.Timestamp.UTC()
				k := ts.Format(time.DateOnly)
				dayReadings[k] = append(dayReadings[k], r)
				if _, exists := dayTimestamps[k]; !exists {
					dayTimestamps[k] = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
				}
			}
		}(fp, p.Name())
	}

	wg.Wait()

	if len(dayReadings) == 0 {
		return nil, ErrNoForecast
	}

	keys := make([]string, 0, len(dayReadings))
	for k := range dayReadings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	forecast := make(Forecast, 0, days)
	for _, k := range keys {
		if len(forecast) >= days {
			break
		}
		snapshot := AggregateReadings(loc, dayReadings[k])
		snapshot.Timestamp = dayTimestamps[k]
		forecast = append(forecast, snapshot)
	}

	return forecast, nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (WeatherSnapshot, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]WeatherSnapshot, error) {
	return s.store.GetRange(loc, from, to)
}
