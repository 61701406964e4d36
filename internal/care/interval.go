package care

import (
	"math"

	"github.com/i474232898/plantcare-engine/internal/species"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

// MinIntervalDays is the floor applied after rounding. Extreme heat and dry air
// on an already short cadence can otherwise round to zero.
const MinIntervalDays = 1

// CalculateInterval derives the baseline watering cadence in days. The second
// return value is false when there is no profile to work from.
func CalculateInterval(p *species.Profile, temperature, humidity float64, indoor bool) (int, bool) {
	if p == nil {
		return 0, false
	}

	base := p.WateringInterval.Winter
	if temperature > 20 {
		base = p.WateringInterval.Summer
	}
	interval := float64(base)

	// Each step compounds on the running value.
	switch {
	case temperature > 30:
		interval *= 0.7
	case temperature < 15:
		interval *= 1.3
	}

	switch {
	case humidity < 40:
		interval *= 0.8
	case humidity > 70:
		interval *= 1.2
	}

	if indoor {
		interval *= 1.2
	}

	if p.Sensitivities.Temperature {
		if temperature > 25 {
			interval *= 0.9
		} else {
			interval *= 1.1
		}
	}

	days := int(math.Round(interval))
	if days < MinIntervalDays {
		days = MinIntervalDays
	}
	return days, true
}

// IntervalFor is CalculateInterval over a weather snapshot. It reports false
// when weather is unavailable.
func IntervalFor(p *species.Profile, w *weather.WeatherSnapshot, env Environment) (int, bool) {
	if w == nil {
		return 0, false
	}
	return CalculateInterval(p, w.Temperature, w.Humidity, env.IsIndoor())
}
