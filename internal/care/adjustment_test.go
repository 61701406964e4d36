package care

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func evaluate(env Environment, speciesName string, w *weatherArgs, prefs *Preferences) WateringAdjustment {
	return Evaluate(AdjustmentInput{
		Profile:       testProfile(),
		Species:       speciesName,
		Environment:   env,
		Weather:       testWeather(w.temp, w.humidity, w.wind, w.rain),
		ScheduledDate: testNow,
		Preferences:   prefs,
	})
}

type weatherArgs struct {
	temp, humidity, wind, rain float64
}

const plainSpecies = "Ocimum basilicum"

func TestEvaluateNormalConditions(t *testing.T) {
	adj := evaluate(Outdoor, plainSpecies, &weatherArgs{22, 55, 4, 0}, nil)

	assert.False(t, adj.ShouldSkip)
	assert.False(t, adj.ShouldIncrease)
	assert.Equal(t, testNow, adj.NextWateringDate)
	assert.Equal(t, ReasonNormal, adj.Reason)
}

func TestEvaluateRainSkipsOutdoor(t *testing.T) {
	adj := evaluate(Outdoor, plainSpecies, &weatherArgs{20, 60, 5, 10}, nil)

	assert.True(t, adj.ShouldSkip)
	assert.False(t, adj.ShouldIncrease)
	assert.Equal(t, testNow.Add(24*time.Hour), adj.NextWateringDate)
	assert.Equal(t, ReasonRain, adj.Reason)
}

func TestEvaluateRainThresholdIsInclusive(t *testing.T) {
	adj := evaluate(Outdoor, plainSpecies, &weatherArgs{20, 60, 5, 5}, nil)
	assert.True(t, adj.ShouldSkip)

	adj = evaluate(Outdoor, plainSpecies, &weatherArgs{20, 60, 5, 4.9}, nil)
	assert.False(t, adj.ShouldSkip)
}

func TestEvaluateIndoorOverridesRainButKeepsHeat(t *testing.T) {
	adj := evaluate(Indoor, plainSpecies, &weatherArgs{35, 50, 2, 10}, nil)

	assert.False(t, adj.ShouldSkip)
	assert.True(t, adj.ShouldIncrease)
	assert.Equal(t, testNow, adj.NextWateringDate)
	assert.Equal(t, ReasonIndoor, adj.Reason)
	assert.Contains(t, adj.Recommendation, "Check soil moisture")
}

func TestEvaluateIndoorCoolRain(t *testing.T) {
	adj := evaluate(Indoor, plainSpecies, &weatherArgs{18, 60, 2, 10}, nil)

	assert.False(t, adj.ShouldSkip)
	assert.Equal(t, testNow, adj.NextWateringDate)
	assert.Equal(t, ReasonIndoor, adj.Reason)
	assert.NotContains(t, adj.Recommendation, "Check soil moisture")
}

func TestEvaluateLastApplicableRuleWinsMessage(t *testing.T) {
	adj := evaluate(Outdoor, plainSpecies, &weatherArgs{32, 60, 16, 0}, nil)
	assert.True(t, adj.ShouldIncrease)
	assert.Equal(t, ReasonWind, adj.Reason)

	adj = evaluate(Outdoor, plainSpecies, &weatherArgs{32, 20, 16, 0}, nil)
	assert.True(t, adj.ShouldIncrease)
	assert.Equal(t, ReasonLowHumidity, adj.Reason)

	// Booleans accumulate: rain skip survives a later heat increase.
	adj = evaluate(Outdoor, plainSpecies, &weatherArgs{32, 60, 2, 8}, nil)
	assert.True(t, adj.ShouldSkip)
	assert.True(t, adj.ShouldIncrease)
	assert.Equal(t, ReasonHeat, adj.Reason)
}

func TestEvaluateDroughtTolerantSpecies(t *testing.T) {
	adj := evaluate(Outdoor, "Aloe vera", &weatherArgs{35, 50, 20, 0}, nil)
	assert.False(t, adj.ShouldIncrease)
	assert.Equal(t, ReasonDroughtTolerant, adj.Reason)

	// The species override does not touch the rain skip.
	adj = evaluate(Outdoor, "Aloe vera", &weatherArgs{20, 50, 2, 12}, nil)
	assert.True(t, adj.ShouldSkip)
	assert.False(t, adj.ShouldIncrease)
}

func TestEvaluateMoistureLovingSpecies(t *testing.T) {
	adj := evaluate(Outdoor, "Nephrolepis exaltata", &weatherArgs{18, 60, 2, 0}, nil)
	assert.True(t, adj.ShouldIncrease)
	assert.Equal(t, ReasonMoistureLoving, adj.Reason)
}

func TestEvaluateDisabled(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Enabled = false

	adj := evaluate(Outdoor, plainSpecies, &weatherArgs{40, 10, 25, 30}, &prefs)
	assert.Equal(t, WateringAdjustment{
		NextWateringDate: testNow,
		Recommendation:   "Water as scheduled",
		Reason:           ReasonDisabled,
	}, adj)
}

func TestEvaluateCustomThresholds(t *testing.T) {
	prefs := Preferences{
		Enabled:            true,
		RainSkipMM:         20,
		HeatIncreaseC:      25,
		WindSpeedMS:        50,
		LowHumidityPercent: 0,
	}

	adj := evaluate(Outdoor, plainSpecies, &weatherArgs{26, 50, 20, 10}, &prefs)
	assert.False(t, adj.ShouldSkip)
	assert.True(t, adj.ShouldIncrease)
	assert.Equal(t, ReasonHeat, adj.Reason)
}

func TestEvaluateMissingInputs(t *testing.T) {
	adj := Evaluate(AdjustmentInput{
		Species:       plainSpecies,
		Environment:   Outdoor,
		Weather:       nil,
		Profile:       testProfile(),
		ScheduledDate: testNow,
	})
	assert.False(t, adj.ShouldSkip)
	assert.False(t, adj.ShouldIncrease)
	assert.Equal(t, testNow, adj.NextWateringDate)
	assert.Equal(t, ReasonUnavailable, adj.Reason)

	adj = Evaluate(AdjustmentInput{
		Environment:   Outdoor,
		Weather:       testWeather(40, 10, 30, 20),
		ScheduledDate: testNow,
	})
	assert.False(t, adj.ShouldSkip)
	assert.False(t, adj.ShouldIncrease)
}

func TestEvaluateDeterministic(t *testing.T) {
	a := evaluate(Outdoor, "Aloe vera", &weatherArgs{33, 20, 17, 6}, nil)
	b := evaluate(Outdoor, "Aloe vera", &weatherArgs{33, 20, 17, 6}, nil)
	assert.Equal(t, a, b)
}
