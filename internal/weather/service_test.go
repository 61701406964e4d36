package weather_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/plantcare-engine/internal/store"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

var (
	paris   = weather.Location{City: "Paris", Country: "FR"}
	morning = time.Date(2026, time.July, 14, 9, 0, 0, 0, time.UTC)
)

type stubProvider struct {
	name     string
	reading  weather.ProviderReading
	forecast []weather.ProviderReading
	err      error
}

func (s stubProvider) Name() string { return s.name }

func (s stubProvider) Fetch(context.Context, weather.Location) (weather.ProviderReading, error) {
	return s.reading, s.err
}

type forecastStub struct{ stubProvider }

func (s forecastStub) FetchForecast(_ context.Context, _ weather.Location, days int) ([]weather.ProviderReading, error) {
	if s.err != nil {
		return nil, s.err
	}
	if days < len(s.forecast) {
		return s.forecast[:days], nil
	}
	return s.forecast, nil
}

func TestAggregateReadings(t *testing.T) {
	snap := weather.AggregateReadings(paris, []weather.ProviderReading{
		{ProviderName: "a", Timestamp: morning, TemperatureC: 20, HumidityPct: 60, WindSpeedMS: 2, RainForecastMm: 1, Condition: weather.ConditionCloudy},
		{ProviderName: "b", Timestamp: morning.Add(time.Minute), TemperatureC: 24, HumidityPct: 40, WindSpeedMS: 4, RainForecastMm: 6, Condition: weather.ConditionRain},
		{ProviderName: "c", Timestamp: morning, TemperatureC: 22, HumidityPct: 50, WindSpeedMS: 3, Condition: weather.ConditionRain},
	})

	assert.Equal(t, 22.0, snap.Temperature)
	assert.Equal(t, 50.0, snap.Humidity)
	assert.Equal(t, 3.0, snap.WindSpeed)
	assert.Equal(t, 6.0, snap.RainForecastMM)
	assert.Equal(t, weather.ConditionRain, snap.Condition)
	assert.Equal(t, morning.Add(time.Minute), snap.Timestamp)
	assert.Len(t, snap.Providers, 3)
}

func TestAggregateConditionTieGoesToFirstSeen(t *testing.T) {
	snap := weather.AggregateReadings(paris, []weather.ProviderReading{
		{Condition: weather.ConditionClear, Timestamp: morning},
		{Condition: weather.ConditionCloudy, Timestamp: morning},
	})
	assert.Equal(t, weather.ConditionClear, snap.Condition)
}

func TestAggregateEmpty(t *testing.T) {
	snap := weather.AggregateReadings(paris, nil)
	assert.Equal(t, weather.ConditionUnknown, snap.Condition)
	assert.Equal(t, paris, snap.Location)
}

func TestFetchAndStorePartialFailure(t *testing.T) {
	ms := store.NewMemoryStore(10, 0)

	var mu sync.Mutex
	outcomes := map[string]bool{}
	svc := weather.NewService(ms, []weather.Provider{
		stubProvider{name: "ok", reading: weather.ProviderReading{ProviderName: "ok", Timestamp: morning, TemperatureC: 19}},
		stubProvider{name: "down", err: errors.New("timeout")},
	}).WithObserver(func(provider string, err error) {
		mu.Lock()
		defer mu.Unlock()
		outcomes[provider] = err == nil
	})

	require.NoError(t, svc.FetchAndStore(context.Background(), paris))

	snap, err := svc.GetLatest(paris)
	require.NoError(t, err)
	assert.Equal(t, 19.0, snap.Temperature)
	assert.Equal(t, map[string]bool{"ok": true, "down": false}, outcomes)
}

func TestFetchAndStoreKeepsLastGoodSnapshot(t *testing.T) {
	ms := store.NewMemoryStore(10, 0)
	ms.SaveSnapshot(paris, weather.WeatherSnapshot{Location: paris, Timestamp: morning, Temperature: 17})

	svc := weather.NewService(ms, []weather.Provider{stubProvider{name: "down", err: errors.New("boom")}})
	require.NoError(t, svc.FetchAndStore(context.Background(), paris))

	snap, err := svc.GetLatest(paris)
	require.NoError(t, err)
	assert.Equal(t, 17.0, snap.Temperature)
}

func TestFetchAndStoreWithoutProviders(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(10, 0), nil)
	assert.ErrorIs(t, svc.FetchAndStore(context.Background(), paris), weather.ErrNoProviders)
}

func TestGetForecastMergesProvidersByDay(t *testing.T) {
	day := func(i int) time.Time { return morning.Truncate(24*time.Hour).AddDate(0, 0, i) }

	svc := weather.NewService(store.NewMemoryStore(10, 0), []weather.Provider{
		stubProvider{name: "current-only"},
		forecastStub{stubProvider{name: "a", forecast: []weather.ProviderReading{
			{Timestamp: day(1), TemperatureC: 20, RainForecastMm: 2},
			{Timestamp: day(0), TemperatureC: 18},
			{Timestamp: day(2), TemperatureC: 25},
		}}},
		forecastStub{stubProvider{name: "b", forecast: []weather.ProviderReading{
			{Timestamp: day(0).Add(6 * time.Hour), TemperatureC: 22},
			{Timestamp: day(1), TemperatureC: 24, RainForecastMm: 9},
		}}},
	})

	forecast, err := svc.GetForecast(context.Background(), paris, 2)
	require.NoError(t, err)
	require.Len(t, forecast, 2)

	assert.Equal(t, day(0), forecast[0].Timestamp)
	assert.Equal(t, 20.0, forecast[0].Temperature)
	assert.Equal(t, day(1), forecast[1].Timestamp)
	assert.Equal(t, 22.0, forecast[1].Temperature)
	assert.Equal(t, 9.0, forecast[1].RainForecastMM)
}

func TestGetForecastErrors(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(10, 0), []weather.Provider{
		forecastStub{stubProvider{name: "down", err: errors.New("boom")}},
	})

	_, err := svc.GetForecast(context.Background(), paris, 3)
	assert.ErrorIs(t, err, weather.ErrNoForecast)

	_, err = svc.GetForecast(context.Background(), paris, 0)
	assert.Error(t, err)
}
