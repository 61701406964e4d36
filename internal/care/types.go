// Package care is the predictive care engine: it simulates substrate moisture
// over a short horizon and turns that, plus threshold rules, into watering
// decisions. Every entry point is a pure function of its arguments; callers
// resolve weather and species profiles and pass the current time in.
package care

import "time"

// Environment is where a plant is kept.
type Environment string

const (
	Indoor  Environment = "indoor"
	Outdoor Environment = "outdoor"
)

// IsIndoor reports whether e is Indoor.
func (e Environment) IsIndoor() bool { return e == Indoor }

// Label is the user-facing name of the environment.
func (e Environment) Label() string {
	if e == Indoor {
		return "Indoor"
	}
	return "Outdoor"
}

// Method is the growing method tag.
type Method string

const (
	Soil       Method = "soil"
	Hydroponic Method = "hydroponic"
)

// NutrientSchedule describes a hydroponic nutrient cycle.
type NutrientSchedule struct {
	FrequencyDays int     `json:"frequencyDays" validate:"gte=1"`
	Solution      string  `json:"solution"`
	PPM           float64 `json:"ppm" validate:"gte=0"`
}

// GrowingMethod selects the recommendation branch. NutrientSchedule is only
// meaningful when Method is Hydroponic.
type GrowingMethod struct {
	Method           Method            `json:"type" validate:"omitempty,oneof=soil hydroponic"`
	NutrientSchedule *NutrientSchedule `json:"nutrientSchedule,omitempty"`
}

// IsHydroponic reports whether the method runs on a nutrient clock.
func (g GrowingMethod) IsHydroponic() bool {
	return g.Method == Hydroponic && g.NutrientSchedule != nil
}

// MoistureDataPoint is one simulated day.
type MoistureDataPoint struct {
	Date       time.Time `json:"date"`
	Moisture   float64   `json:"moisture"`
	Optimal    float64   `json:"optimal"`
	Confidence float64   `json:"confidence"`
}

// WateringAdjustment is the evaluator's decision for one scheduled watering.
type WateringAdjustment struct {
	ShouldSkip       bool      `json:"shouldSkip"`
	ShouldIncrease   bool      `json:"shouldIncrease"`
	NextWateringDate time.Time `json:"nextWateringDate"`
	Recommendation   string    `json:"recommendation"`
	Reason           string    `json:"reason"`
}

// RecommendationType is the action a recommendation asks for.
type RecommendationType string

const (
	WaterSoon RecommendationType = "water_soon"
	Skip      RecommendationType = "skip"
	Monitor   RecommendationType = "monitor"
	Urgent    RecommendationType = "urgent"
	Nutrients RecommendationType = "nutrients"
)

// Severity drives presentation and acknowledgement feedback.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityUrgent  Severity = "urgent"
)

// Recommendation is the single care action shown to the user.
type Recommendation struct {
	Type             RecommendationType `json:"type"`
	Date             *time.Time         `json:"date,omitempty"`
	Message          string             `json:"message"`
	Reason           string             `json:"reason"`
	Icon             string             `json:"icon"`
	Severity         Severity           `json:"severity"`
	EnvironmentLabel string             `json:"environmentLabel"`
}

const day = 24 * time.Hour
