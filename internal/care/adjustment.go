package care

import (
	"fmt"
	"time"

	"github.com/i474232898/plantcare-engine/internal/species"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

// Preferences are the user's weather thresholds for adjusting a scheduled
// watering. Values are assumed validated upstream; nonsense thresholds give
// odd but safe results.
type Preferences struct {
	Enabled            bool    `json:"enabled"`
	RainSkipMM         float64 `json:"rainSkipMm"`
	HeatIncreaseC      float64 `json:"heatIncreaseC"`
	WindSpeedMS        float64 `json:"windSpeedMs"`
	LowHumidityPercent float64 `json:"lowHumidityPercent"`
}

// DefaultPreferences are used when the caller has none.
func DefaultPreferences() Preferences {
	return Preferences{
		Enabled:            true,
		RainSkipMM:         5,
		HeatIncreaseC:      30,
		WindSpeedMS:        15,
		LowHumidityPercent: 30,
	}
}

// Reasons reported on a WateringAdjustment.
const (
	ReasonDisabled        = "disabled"
	ReasonUnavailable     = "weather or species data unavailable"
	ReasonNormal          = "normal conditions"
	ReasonRain            = "rain expected"
	ReasonHeat            = "high temperature"
	ReasonWind            = "high wind"
	ReasonLowHumidity     = "low humidity"
	ReasonDroughtTolerant = "drought-tolerant species"
	ReasonMoistureLoving  = "moisture-loving species"
	ReasonIndoor          = "indoor plant"
)

// AdjustmentInput carries everything the rule chain reads.
type AdjustmentInput struct {
	Profile       *species.Profile
	Species       string
	Environment   Environment
	Weather       *weather.WeatherSnapshot
	ScheduledDate time.Time
	Preferences   *Preferences
}

// adjustmentRule folds one rule into the running adjustment. General weather
// rules only ever set booleans to true; the species and environment overrides
// may force them either way. Text fields are overwritten by whichever
// applicable rule runs last.
type adjustmentRule func(adj WateringAdjustment, in AdjustmentInput, prefs Preferences) WateringAdjustment

// adjustmentRules run in this exact order. Swapping them changes outcomes for
// combined conditions, e.g. hot, windy and drought-tolerant.
var adjustmentRules = []adjustmentRule{
	rainRule,
	heatRule,
	windRule,
	lowHumidityRule,
	speciesOverride,
	environmentOverride,
}

// Evaluate decides whether one scheduled watering should be skipped or
// intensified given the weather.
func Evaluate(in AdjustmentInput) WateringAdjustment {
	prefs := DefaultPreferences()
	if in.Preferences != nil {
		prefs = *in.Preferences
	}

	passThrough := WateringAdjustment{
		NextWateringDate: in.ScheduledDate,
		Recommendation:   "Water as scheduled",
	}
	if !prefs.Enabled {
		passThrough.Reason = ReasonDisabled
		return passThrough
	}
	if in.Profile == nil || in.Weather == nil {
		passThrough.Reason = ReasonUnavailable
		return passThrough
	}

	adj := passThrough
	adj.Reason = ReasonNormal
	for _, rule := range adjustmentRules {
		adj = rule(adj, in, prefs)
	}
	return adj
}

func rainRule(adj WateringAdjustment, in AdjustmentInput, prefs Preferences) WateringAdjustment {
	if in.Weather.RainForecastMM < prefs.RainSkipMM {
		return adj
	}
	adj.ShouldSkip = true
	adj.NextWateringDate = in.ScheduledDate.Add(day)
	adj.Reason = ReasonRain
	adj.Recommendation = fmt.Sprintf("Skip watering: %.1f mm of rain expected", in.Weather.RainForecastMM)
	return adj
}

func heatRule(adj WateringAdjustment, in AdjustmentInput, prefs Preferences) WateringAdjustment {
	if in.Weather.Temperature < prefs.HeatIncreaseC {
		return adj
	}
	adj.ShouldIncrease = true
	adj.Reason = ReasonHeat
	adj.Recommendation = fmt.Sprintf("Water more: high temperature (%.0f°C)", in.Weather.Temperature)
	return adj
}

func windRule(adj WateringAdjustment, in AdjustmentInput, prefs Preferences) WateringAdjustment {
	if in.Weather.WindSpeed < prefs.WindSpeedMS {
		return adj
	}
	adj.ShouldIncrease = true
	adj.Reason = ReasonWind
	adj.Recommendation = fmt.Sprintf("Water more: high wind (%.0f m/s) dries soil faster", in.Weather.WindSpeed)
	return adj
}

func lowHumidityRule(adj WateringAdjustment, in AdjustmentInput, prefs Preferences) WateringAdjustment {
	if in.Weather.Humidity > prefs.LowHumidityPercent {
		return adj
	}
	adj.ShouldIncrease = true
	adj.Reason = ReasonLowHumidity
	adj.Recommendation = fmt.Sprintf("Water more: low humidity (%.0f%%)", in.Weather.Humidity)
	return adj
}

func speciesOverride(adj WateringAdjustment, in AdjustmentInput, _ Preferences) WateringAdjustment {
	switch {
	case species.IsDroughtTolerant(in.Species):
		adj.ShouldIncrease = false
		adj.Reason = ReasonDroughtTolerant
		adj.Recommendation = "No extra water needed: this species tolerates drought"
	case species.IsMoistureLoving(in.Species):
		adj.ShouldIncrease = true
		adj.Reason = ReasonMoistureLoving
		adj.Recommendation = "Keep soil consistently moist: this species loves moisture"
	}
	return adj
}

// environmentOverride: rain never skips indoor watering, so a rain skip is
// undone along with its postponed date.
func environmentOverride(adj WateringAdjustment, in AdjustmentInput, _ Preferences) WateringAdjustment {
	if !in.Environment.IsIndoor() {
		return adj
	}
	if adj.ShouldSkip {
		adj.ShouldSkip = false
		adj.NextWateringDate = in.ScheduledDate
		adj.Reason = ReasonIndoor
		adj.Recommendation = "Water as scheduled: rain does not reach indoor plants"
	}
	if in.Weather.Temperature >= 25 {
		adj.Reason = ReasonIndoor
		adj.Recommendation = "Check soil moisture: warm indoor conditions"
	}
	return adj
}
