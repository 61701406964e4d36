package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/plantcare-engine/internal/weather"
)

// GeocodeFunc resolves a city/country pair to coordinates.
type GeocodeFunc func(city, country string) (lat, lon float64, err error)

// GoogleGeocoder returns a GeocodeFunc backed by the Google Geocoding API.
func GoogleGeocoder(apiKey string) GeocodeFunc {
	geocoder.ApiKey = apiKey
	return func(city, country string) (float64, float64, error) {
		loc, err := geocoder.Geocoding(geocoder.Address{
			City:    city,
			Country: country,
		})
		if err != nil {
			return 0, 0, err
		}
		return loc.Latitude, loc.Longitude, nil
	}
}

// OpenMeteoProvider implements weather.Provider and weather.ForecastProvider for
// Open-Meteo. Open-Meteo needs coordinates, so locations without Lat/Lon are
// geocoded once and remembered.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	geocode GeocodeFunc

	mu     sync.Mutex
	coords map[string][2]float64
}

func NewOpenMeteoProvider(client *http.Client, geocode GeocodeFunc) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("openmeteo"),
		geocode: geocode,
		coords:  make(map[string][2]float64),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) resolve(loc weather.Location) (float64, float64, error) {
	if loc.Lat != nil && loc.Lon != nil {
		return *loc.Lat, *loc.Lon, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.coords[loc.Key()]; ok {
		return c[0], c[1], nil
	}
	if p.geocode == nil {
		return 0, 0, fmt.Errorf("openmeteo requires coordinates for %s and no geocoder is configured", loc.Key())
	}
	lat, lon, err := p.geocode(loc.City, loc.Country)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %s: %w", loc.Key(), err)
	}
	p.coords[loc.Key()] = [2]float64{lat, lon}
	return lat, lon, nil
}

func (p *OpenMeteoProvider) query(loc weather.Location) (url.Values, error) {
	lat, lon, err := p.resolve(loc)
	if err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("wind_speed_unit", "ms")
	values.Set("timezone", "UTC")
	return values, nil
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	values, err := p.query(loc)
	if err != nil {
		return weather.ProviderReading{}, err
	}
	values.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,precipitation,weather_code")
	values.Set("daily", "precipitation_sum")
	values.Set("forecast_days", "1")

	var payload struct {
		Current struct {
			Time        string  `json:"time"`
			Temperature float64 `json:"temperature_2m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			Precip      float64 `json:"precipitation"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
		Daily struct {
			PrecipSum []float64 `json:"precipitation_sum"`
		} `json:"daily"`
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return weather.ProviderReading{}, err
	}

	ts, err := time.Parse("2006-01-02T15:04", payload.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	}

	var rain float64
	if len(payload.Daily.PrecipSum) > 0 {
		rain = payload.Daily.PrecipSum[0]
	}

	return weather.ProviderReading{
		ProviderName:   p.name,
		Timestamp:      ts.UTC(),
		TemperatureC:   payload.Current.Temperature,
		HumidityPct:    payload.Current.Humidity,
		WindSpeedMS:    payload.Current.WindSpeed,
		PrecipMm:       payload.Current.Precip,
		RainForecastMm: rain,
		Condition:      mapOpenMeteoCondition(payload.Current.WeatherCode),
	}, nil
}

// FetchForecast returns one reading per day. Each day's rain forecast is that
// day's precipitation sum.
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, loc weather.Location, days int) ([]weather.ProviderReading, error) {
	values, err := p.query(loc)
	if err != nil {
		return nil, err
	}
	values.Set("daily", "temperature_2m_mean,relative_humidity_2m_mean,wind_speed_10m_max,precipitation_sum,weather_code")
	values.Set("forecast_days", fmt.Sprintf("%d", days))

	var payload struct {
		Daily struct {
			Time        []string  `json:"time"`
			Temperature []float64 `json:"temperature_2m_mean"`
			Humidity    []float64 `json:"relative_humidity_2m_mean"`
			WindSpeed   []float64 `json:"wind_speed_10m_max"`
			PrecipSum   []float64 `json:"precipitation_sum"`
			WeatherCode []int     `json:"weather_code"`
		} `json:"daily"`
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return nil, err
	}

	d := payload.Daily
	readings := make([]weather.ProviderReading, 0, len(d.Time))
	for i, day := range d.Time {
		ts, err := time.Parse(time.DateOnly, day)
		if err != nil {
			continue
		}
		r := weather.ProviderReading{ProviderName: p.name, Timestamp: ts}
		r.TemperatureC = at(d.Temperature, i)
		r.HumidityPct = at(d.Humidity, i)
		r.WindSpeedMS = at(d.WindSpeed, i)
		r.PrecipMm = at(d.PrecipSum, i)
		r.RainForecastMm = r.PrecipMm
		if i < len(d.WeatherCode) {
			r.Condition = mapOpenMeteoCondition(d.WeatherCode[i])
		} else {
			r.Condition = weather.ConditionUnknown
		}
		readings = append(readings, r)
	}
	return readings, nil
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

func mapOpenMeteoCondition(code int) weather.Condition {
	// WMO weather interpretation codes, simplified.
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionCloudy
	case code == 45 || code == 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionStorm
	default:
		return weather.ConditionUnknown
	}
}
