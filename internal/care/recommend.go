package care

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/i474232898/plantcare-engine/internal/species"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

// Icon names understood by the client.
const (
	IconAlert    = "water-alert"
	IconRain     = "weather-rainy"
	IconWater    = "water-outline"
	IconStable   = "check-circle-outline"
	IconNutrient = "flask-outline"
)

// Weather factor labels listed in a water_soon reason.
const (
	FactorHighTemp    = "high temperature"
	FactorStrongWind  = "strong wind"
	FactorLowHumidity = "low humidity"
)

// RecommendationInput carries everything the generator reads.
type RecommendationInput struct {
	Timeline      []MoistureDataPoint
	Profile       *species.Profile
	Weather       *weather.WeatherSnapshot
	LastWatered   time.Time
	Environment   Environment
	GrowingMethod GrowingMethod
	Now           time.Time
}

// Recommend returns the single most important care action right now.
// Hydroponic plants follow their nutrient clock and never reach the soil
// rules. Soil plants without weather or profile get a stable monitor card.
func Recommend(in RecommendationInput) Recommendation {
	if in.GrowingMethod.IsHydroponic() {
		return recommendNutrients(in)
	}
	if in.Profile == nil || in.Weather == nil {
		return Recommendation{
			Type:             Monitor,
			Message:          "Keep an eye on your plant",
			Reason:           "Weather data unavailable",
			Icon:             IconStable,
			Severity:         SeverityInfo,
			EnvironmentLabel: in.Environment.Label(),
		}
	}
	return recommendSoil(in)
}

func recommendNutrients(in RecommendationInput) Recommendation {
	freq := in.GrowingMethod.NutrientSchedule.FrequencyDays
	daysSince := wholeDays(in.Now.Sub(in.LastWatered))
	rec := Recommendation{
		Icon:             IconNutrient,
		EnvironmentLabel: in.Environment.Label(),
	}

	switch {
	case daysSince >= freq:
		rec.Type = Nutrients
		rec.Severity = SeverityWarning
		rec.Message = "Nutrients due"
		rec.Reason = fmt.Sprintf("Last nutrient change was %d days ago (every %d days)", daysSince, freq)
	case daysSince >= freq-2:
		due := in.LastWatered.AddDate(0, 0, freq)
		rec.Type = Nutrients
		rec.Severity = SeverityInfo
		rec.Message = "Nutrients soon"
		rec.Reason = fmt.Sprintf("Nutrient change due in %d days", freq-daysSince)
		rec.Date = &due
	default:
		rec.Type = Monitor
		rec.Severity = SeverityInfo
		rec.Message = "Nutrient solution stable"
		rec.Reason = fmt.Sprintf("%d days until next nutrient change", freq-daysSince)
		rec.Icon = IconStable
	}
	return rec
}

// weatherImpact holds the outdoor weather stressors for a species.
type weatherImpact struct {
	highTemp    bool
	strongWind  bool
	lowHumidity bool
	rainSoon    bool
}

func (w weatherImpact) labels() []string {
	var out []string
	if w.highTemp {
		out = append(out, FactorHighTemp)
	}
	if w.strongWind {
		out = append(out, FactorStrongWind)
	}
	if w.lowHumidity {
		out = append(out, FactorLowHumidity)
	}
	return out
}

// soilState is what the priority cascade inspects.
type soilState struct {
	in               RecommendationInput
	critical         *MoistureDataPoint
	belowOptimal     *MoistureDataPoint
	impact           weatherImpact
	adjustedOptimal  float64
	adjustedMinimum  float64
	environmentLabel string
}

// soilRule returns a recommendation and true when it applies.
type soilRule func(s soilState) (Recommendation, bool)

// soilRules are tried in order; the first that applies wins. When none
// applies the plant is stable.
var soilRules = []soilRule{
	urgentRule,
	rainSoonRule,
	waterSoonRule,
}

func recommendSoil(in RecommendationInput) Recommendation {
	s := newSoilState(in)
	for _, rule := range soilRules {
		if rec, ok := rule(s); ok {
			return rec
		}
	}
	return stable(s)
}

func newSoilState(in RecommendationInput) soilState {
	th := in.Profile.MoistureThresholds
	indoor := in.Environment.IsIndoor()
	factors := in.Profile.Factors(indoor)

	s := soilState{
		in:               in,
		adjustedOptimal:  th.Optimal,
		adjustedMinimum:  th.Min,
		environmentLabel: in.Environment.Label(),
	}
	if !indoor {
		s.adjustedOptimal = th.Optimal * (1 - factors.EvaporationRate)
		s.adjustedMinimum = th.Min * (1 - factors.EvaporationRate)

		w := in.Weather
		s.impact = weatherImpact{
			highTemp:    w.Temperature > 30*(1+factors.TemperatureSensitivity),
			strongWind:  w.WindSpeed > 20*factors.WindSensitivity,
			lowHumidity: w.Humidity < 30*factors.HumidityDependence,
			rainSoon:    w.RainForecastMM > th.Optimal*10,
		}
	}

	for i := range in.Timeline {
		p := &in.Timeline[i]
		if s.critical == nil && p.Moisture < s.adjustedMinimum {
			s.critical = p
		}
		if s.belowOptimal == nil && p.Moisture < s.adjustedOptimal {
			s.belowOptimal = p
		}
	}
	return s
}

func urgentRule(s soilState) (Recommendation, bool) {
	if s.critical == nil {
		return Recommendation{}, false
	}
	date := s.critical.Date
	return Recommendation{
		Type:             Urgent,
		Date:             &date,
		Message:          "Water now",
		Reason:           fmt.Sprintf("Moisture predicted to drop to %d%%, below the safe minimum", percent(s.critical.Moisture)),
		Icon:             IconAlert,
		Severity:         SeverityUrgent,
		EnvironmentLabel: s.environmentLabel,
	}, true
}

func rainSoonRule(s soilState) (Recommendation, bool) {
	if s.in.Environment.IsIndoor() || !s.impact.rainSoon {
		return Recommendation{}, false
	}
	return Recommendation{
		Type:             Skip,
		Message:          "Skip watering",
		Reason:           fmt.Sprintf("%.1f mm of rain expected", s.in.Weather.RainForecastMM),
		Icon:             IconRain,
		Severity:         SeverityInfo,
		EnvironmentLabel: s.environmentLabel,
	}, true
}

func waterSoonRule(s soilState) (Recommendation, bool) {
	if s.belowOptimal == nil {
		return Recommendation{}, false
	}
	date := s.belowOptimal.Date
	reason := "Moisture dropping below optimal"
	if factors := s.impact.labels(); len(factors) > 0 {
		reason += " due to " + strings.Join(factors, ", ")
	}
	return Recommendation{
		Type:             WaterSoon,
		Date:             &date,
		Message:          fmt.Sprintf("Water by %s", date.Format("Mon, Jan 2")),
		Reason:           reason,
		Icon:             IconWater,
		Severity:         SeverityWarning,
		EnvironmentLabel: s.environmentLabel,
	}, true
}

func stable(s soilState) Recommendation {
	return Recommendation{
		Type:             Monitor,
		Message:          "Moisture stable",
		Reason:           "Moisture stays above optimal for the forecast period",
		Icon:             IconStable,
		Severity:         SeverityInfo,
		EnvironmentLabel: s.environmentLabel,
	}
}

func wholeDays(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / day)
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
