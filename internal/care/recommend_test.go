package care

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeline(values ...float64) []MoistureDataPoint {
	start := testNow.Truncate(day)
	points := make([]MoistureDataPoint, len(values))
	for i, v := range values {
		points[i] = MoistureDataPoint{
			Date:       start.AddDate(0, 0, i),
			Moisture:   v,
			Optimal:    0.6,
			Confidence: 0.9,
		}
	}
	return points
}

func hydroponic(freq int) GrowingMethod {
	return GrowingMethod{
		Method:           Hydroponic,
		NutrientSchedule: &NutrientSchedule{FrequencyDays: freq, Solution: "General Hydroponics Flora", PPM: 800},
	}
}

func TestRecommendHydroponicDue(t *testing.T) {
	rec := Recommend(RecommendationInput{
		Timeline:      timeline(0.1, 0.1),
		Profile:       testProfile(),
		Weather:       testWeather(40, 10, 20, 0),
		LastWatered:   daysAgo(8),
		Environment:   Indoor,
		GrowingMethod: hydroponic(7),
		Now:           testNow,
	})

	assert.Equal(t, Nutrients, rec.Type)
	assert.Equal(t, SeverityWarning, rec.Severity)
	assert.Nil(t, rec.Date)
	assert.Equal(t, "Indoor", rec.EnvironmentLabel)
}

func TestRecommendHydroponicSoon(t *testing.T) {
	last := daysAgo(6)
	rec := Recommend(RecommendationInput{
		LastWatered:   last,
		Environment:   Indoor,
		GrowingMethod: hydroponic(7),
		Now:           testNow,
	})

	assert.Equal(t, Nutrients, rec.Type)
	assert.Equal(t, SeverityInfo, rec.Severity)
	require.NotNil(t, rec.Date)
	assert.True(t, last.AddDate(0, 0, 7).Equal(*rec.Date))
}

func TestRecommendHydroponicStable(t *testing.T) {
	rec := Recommend(RecommendationInput{
		LastWatered:   daysAgo(2),
		Environment:   Outdoor,
		GrowingMethod: hydroponic(7),
		Now:           testNow,
	})

	assert.Equal(t, Monitor, rec.Type)
	assert.Equal(t, SeverityInfo, rec.Severity)
	assert.Contains(t, rec.Reason, "5 days")
}

func TestRecommendHydroponicWithoutScheduleUsesSoilRules(t *testing.T) {
	rec := Recommend(RecommendationInput{
		Timeline:      timeline(0.7, 0.7),
		Profile:       testProfile(),
		Weather:       testWeather(22, 50, 2, 0),
		Environment:   Indoor,
		GrowingMethod: GrowingMethod{Method: Hydroponic},
		Now:           testNow,
	})
	assert.Equal(t, Monitor, rec.Type)
}

func TestRecommendUrgentBeatsWaterSoon(t *testing.T) {
	points := timeline(0.7, 0.5, 0.25)
	rec := Recommend(RecommendationInput{
		Timeline:    points,
		Profile:     testProfile(),
		Weather:     testWeather(22, 50, 2, 0),
		Environment: Indoor,
		Now:         testNow,
	})

	assert.Equal(t, Urgent, rec.Type)
	assert.Equal(t, SeverityUrgent, rec.Severity)
	require.NotNil(t, rec.Date)
	assert.Equal(t, points[2].Date, *rec.Date)
}

func TestRecommendUrgentBeatsRain(t *testing.T) {
	// Outdoor evaporation 0.5 halves the thresholds: min 0.15, optimal 0.3.
	rec := Recommend(RecommendationInput{
		Timeline:    timeline(0.4, 0.1),
		Profile:     testProfile(),
		Weather:     testWeather(22, 50, 2, 20),
		Environment: Outdoor,
		Now:         testNow,
	})
	assert.Equal(t, Urgent, rec.Type)
}

func TestRecommendRainSkipOutdoor(t *testing.T) {
	rec := Recommend(RecommendationInput{
		Timeline:    timeline(0.4, 0.2),
		Profile:     testProfile(),
		Weather:     testWeather(22, 50, 2, 10), // > optimal*10 = 6
		Environment: Outdoor,
		Now:         testNow,
	})

	assert.Equal(t, Skip, rec.Type)
	assert.Equal(t, SeverityInfo, rec.Severity)
	assert.Nil(t, rec.Date)
	assert.Equal(t, "Outdoor", rec.EnvironmentLabel)
}

func TestRecommendRainIgnoredIndoor(t *testing.T) {
	points := timeline(0.7, 0.5)
	rec := Recommend(RecommendationInput{
		Timeline:    points,
		Profile:     testProfile(),
		Weather:     testWeather(22, 50, 2, 10),
		Environment: Indoor,
		Now:         testNow,
	})

	assert.Equal(t, WaterSoon, rec.Type)
	assert.Equal(t, SeverityWarning, rec.Severity)
	require.NotNil(t, rec.Date)
	assert.Equal(t, points[1].Date, *rec.Date)
}

func TestRecommendWaterSoonListsWeatherFactors(t *testing.T) {
	p := testProfile()
	p.EnvironmentFactors.Outdoor.EvaporationRate = 0

	// highTemp: 40 > 30*1.2; strongWind: 12 > 20*0.5; lowHumidity: 50 < 15 is false.
	rec := Recommend(RecommendationInput{
		Timeline:    timeline(0.7, 0.5),
		Profile:     p,
		Weather:     testWeather(40, 50, 12, 0),
		Environment: Outdoor,
		Now:         testNow,
	})

	assert.Equal(t, WaterSoon, rec.Type)
	assert.Contains(t, rec.Reason, FactorHighTemp+", "+FactorStrongWind)
	assert.NotContains(t, rec.Reason, FactorLowHumidity)
}

func TestRecommendStable(t *testing.T) {
	rec := Recommend(RecommendationInput{
		Timeline:    timeline(0.75, 0.7, 0.65),
		Profile:     testProfile(),
		Weather:     testWeather(22, 50, 2, 0),
		Environment: Indoor,
		Now:         testNow,
	})

	assert.Equal(t, Monitor, rec.Type)
	assert.Equal(t, SeverityInfo, rec.Severity)
	assert.Nil(t, rec.Date)
}

func TestRecommendMissingInputs(t *testing.T) {
	rec := Recommend(RecommendationInput{
		Timeline:    timeline(0.1),
		Profile:     testProfile(),
		Environment: Outdoor,
		Now:         testNow,
	})
	assert.Equal(t, Monitor, rec.Type)
	assert.Equal(t, SeverityInfo, rec.Severity)

	rec = Recommend(RecommendationInput{
		Weather:     testWeather(22, 50, 2, 0),
		Environment: Outdoor,
		Now:         testNow,
	})
	assert.Equal(t, Monitor, rec.Type)
}

func TestRecommendFromSimulation(t *testing.T) {
	p := testProfile()
	w := testWeather(35, 25, 5, 0)
	in := RecommendationInput{
		Timeline:    Simulate(p, w, daysAgo(3), Indoor, DefaultHorizonDays, testNow),
		Profile:     p,
		Weather:     w,
		LastWatered: daysAgo(3),
		Environment: Indoor,
		Now:         testNow,
	}

	// Moisture sits at the minimum, which is below optimal but not below min.
	rec := Recommend(in)
	assert.Equal(t, WaterSoon, rec.Type)
	assert.Equal(t, rec, Recommend(in))
}
