package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/plantcare-engine/internal/weather"
)

var (
	// ErrNotFound is returned when no data is available for a given location.
	ErrNotFound = errors.New("no weather data for location")
)

// MemoryStore is a concurrency-safe in-memory snapshot store with retention by
// count and by age.
type MemoryStore struct {
	mu sync.RWMutex

	// location key -> snapshots, oldest first
	data map[string][]weather.WeatherSnapshot

	maxHistory int           // max snapshots per location; <= 0 is unlimited
	maxAge     time.Duration // max snapshot age; <= 0 is unlimited

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]weather.WeatherSnapshot),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot appends a new snapshot for a location and enforces retention.
func (s *MemoryStore) SaveSnapshot(loc weather.Location, snapshot weather.WeatherSnapshot) {
	key := loc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[key], snapshot)

	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for i < len(history) && history[i].Timestamp.Before(cutoff) {
			i++
		}
		// Always keep the newest snapshot so GetLatest has something to serve.
		if i == len(history) {
			i = len(history) - 1
		}
		history = history[i:]
	}

	s.data[key] = history
}

// GetLatest returns the most recent snapshot for a location.
func (s *MemoryStore) GetLatest(loc weather.Location) (weather.WeatherSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[loc.Key()]
	if len(history) == 0 {
		return weather.WeatherSnapshot{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// GetRange returns all snapshots for a location between from and to (inclusive).
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.WeatherSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []weather.WeatherSnapshot
	for _, snap := range s.data[loc.Key()] {
		if !snap.Timestamp.Before(from) && !snap.Timestamp.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
