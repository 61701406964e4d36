package care

import (
	"math"
	"time"

	"github.com/i474232898/plantcare-engine/internal/common"
	"github.com/i474232898/plantcare-engine/internal/species"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

const (
	// DefaultHorizonDays is the simulated span used by the dashboard.
	DefaultHorizonDays = 7
	// MaxHorizonDays caps the horizon; the model is not meant for longer outlooks.
	MaxHorizonDays = 7

	baseConfidence = 0.9
)

// Simulate forward-simulates daily substrate moisture from a single weather
// snapshot. It returns nil when profile or weather is missing.
func Simulate(p *species.Profile, w *weather.WeatherSnapshot, lastWatered time.Time, env Environment, horizonDays int, now time.Time) []MoistureDataPoint {
	if w == nil {
		return nil
	}
	return SimulateForecast(p, weather.Forecast{*w}, lastWatered, env, horizonDays, now)
}

// SimulateForecast is Simulate driven by a daily forecast: day i uses
// forecast[i], and days past the end of the forecast reuse its last entry.
//
// Confidence restarts at 0.9 every day and only compounds across that day's
// own adjustments. It expresses how far today's number can be trusted, not
// accumulated drift, and the dashboard colours each point independently.
func SimulateForecast(p *species.Profile, forecast weather.Forecast, lastWatered time.Time, env Environment, horizonDays int, now time.Time) []MoistureDataPoint {
	if p == nil || len(forecast) == 0 {
		return nil
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if horizonDays > MaxHorizonDays {
		horizonDays = MaxHorizonDays
	}

	th := p.MoistureThresholds
	indoor := env.IsIndoor()
	moisture := initialMoisture(p, lastWatered, now)
	baseLoss := (1 - p.RetentionScore) * 0.2
	start := common.StartOfDay(now)

	points := make([]MoistureDataPoint, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		w := forecast[min(i, len(forecast)-1)]
		confidence := baseConfidence

		tempFactor := math.Max(0, (w.Temperature-20)/30)
		moisture -= baseLoss * (1 + tempFactor)

		humidityFactor := math.Max(0, (70-w.Humidity)/70)
		moisture -= baseLoss * humidityFactor

		if p.Sensitivities.Wind && !indoor {
			windFactor := math.Min(1, w.WindSpeed/20)
			moisture -= baseLoss * windFactor
			confidence *= 1 - windFactor*0.2
		}

		if !indoor && w.RainForecastMM > 0 {
			moisture += math.Min(0.3, w.RainForecastMM/20)
			confidence *= 0.8
		}

		if indoor {
			moisture *= 0.95
			confidence *= 0.9
		}

		moisture = clamp(moisture, th.Min, th.Max)

		points = append(points, MoistureDataPoint{
			Date:       start.AddDate(0, 0, i),
			Moisture:   moisture,
			Optimal:    th.Optimal,
			Confidence: confidence,
		})
	}
	return points
}

// initialMoisture estimates today's moisture from time since the last watering.
// A plant watered just now starts saturated; the floor is the species minimum.
func initialMoisture(p *species.Profile, lastWatered, now time.Time) float64 {
	daysSince := math.Max(0, now.Sub(lastWatered).Hours()/24)
	if p.RetentionScore <= 0 {
		return p.MoistureThresholds.Min
	}
	return math.Max(p.MoistureThresholds.Min, 1-daysSince/(p.RetentionScore*10))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
