package providers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/plantcare-engine/internal/weather"
)

// OpenWeatherProvider implements weather.Provider for OpenWeatherMap.
// Current conditions come from /weather; rain expected over the next 24h is
// summed from the first eight 3-hour steps of /forecast.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) query(loc weather.Location) url.Values {
	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	if loc.Lat != nil && loc.Lon != nil {
		values.Set("lat", fmt.Sprintf("%f", *loc.Lat))
		values.Set("lon", fmt.Sprintf("%f", *loc.Lon))
		return values
	}
	q := loc.City
	if loc.Country != "" {
		q = fmt.Sprintf("%s,%s", loc.City, loc.Country)
	}
	values.Set("q", q)
	return values
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	if p.apiKey == "" {
		return weather.ProviderReading{}, fmt.Errorf("openweather api key is not configured")
	}

	var payload struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			OneH   float64 `json:"1h"`
			ThreeH float64 `json:"3h"`
		} `json:"rain"`
		Weather []openWeatherCondition `json:"weather"`
	}

	u := fmt.Sprintf("%s/weather?%s", p.baseURL, p.query(loc).Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return weather.ProviderReading{}, err
	}

	ts := time.Unix(payload.Dt, 0).UTC()
	if payload.Dt == 0 {
		ts = time.Now().UTC()
	}

	precip := payload.Rain.OneH
	if precip == 0 {
		precip = payload.Rain.ThreeH
	}

	rain, err := p.rainNext24h(ctx, loc)
	if err != nil {
		// Current conditions are still useful without the outlook.
		log.Printf("openweather: rain outlook failed for %s: %v", loc.Key(), err)
	}

	return weather.ProviderReading{
		ProviderName:   p.name,
		Timestamp:      ts,
		TemperatureC:   payload.Main.Temp,
		HumidityPct:    payload.Main.Humidity,
		WindSpeedMS:    payload.Wind.Speed,
		PrecipMm:       precip,
		RainForecastMm: rain,
		Condition:      mapOpenWeatherCondition(payload.Weather),
	}, nil
}

func (p *OpenWeatherProvider) rainNext24h(ctx context.Context, loc weather.Location) (float64, error) {
	values := p.query(loc)
	values.Set("cnt", "8")

	var payload struct {
		List []struct {
			Rain struct {
				ThreeH float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
	}

	u := fmt.Sprintf("%s/forecast?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return 0, err
	}

	var total float64
	for _, step := range payload.List {
		total += step.Rain.ThreeH
	}
	return total, nil
}

type openWeatherCondition struct {
	Main string `json:"main"`
}

func mapOpenWeatherCondition(items []openWeatherCondition) weather.Condition {
	if len(items) == 0 {
		return weather.ConditionUnknown
	}
	switch items[0].Main {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionCloudy
	case "Rain", "Drizzle":
		return weather.ConditionRain
	case "Snow":
		return weather.ConditionSnow
	case "Thunderstorm":
		return weather.ConditionStorm
	case "Mist", "Fog", "Haze":
		return weather.ConditionMist
	default:
		return weather.ConditionUnknown
	}
}
