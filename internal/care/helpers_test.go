package care

import (
	"time"

	"github.com/i474232898/plantcare-engine/internal/species"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

var testNow = time.Date(2026, time.July, 14, 9, 30, 0, 0, time.UTC)

func testProfile() *species.Profile {
	return &species.Profile{
		ScientificName:     "Testus plantus",
		Category:           species.CategoryHouseplant,
		RetentionScore:     0.4,
		DroughtTolerance:   0.5,
		HumidityPreference: 0.5,
		WateringInterval:   species.WateringInterval{Summer: 7, Winter: 10},
		MoistureThresholds: species.MoistureThresholds{Min: 0.3, Optimal: 0.6, Max: 0.8},
		EnvironmentFactors: species.Environments{
			Indoor: species.EnvironmentFactors{
				EvaporationRate:        0.2,
				TemperatureSensitivity: 0.2,
				WindSensitivity:        0.1,
				HumidityDependence:     0.3,
			},
			Outdoor: species.EnvironmentFactors{
				EvaporationRate:        0.5,
				TemperatureSensitivity: 0.2,
				WindSensitivity:        0.5,
				HumidityDependence:     0.5,
			},
		},
	}
}

func testWeather(temp, humidity, wind, rain float64) *weather.WeatherSnapshot {
	return &weather.WeatherSnapshot{
		Timestamp:      testNow,
		Temperature:    temp,
		Humidity:       humidity,
		WindSpeed:      wind,
		RainForecastMM: rain,
		Condition:      weather.ConditionClear,
	}
}

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}
