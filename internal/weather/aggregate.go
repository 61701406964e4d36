package weather

import "time"

// AggregateReadings combines provider readings into a single WeatherSnapshot.
// Numeric fields are averaged. The condition reported by most providers wins,
// ties going to the one seen first. Rain forecast takes the wettest provider,
// since a missed rain skip costs less than an unneeded one.
func AggregateReadings(loc Location, readings []ProviderReading) WeatherSnapshot {
	if len(readings) == 0 {
		return WeatherSnapshot{
			Location:  loc,
			Timestamp: time.Now().UTC(),
			Condition: ConditionUnknown,
		}
	}

	var (
		sumTemp     float64
		sumHumidity float64
		sumWind     float64
		sumPrecip   float64
		maxRain     float64
	)

	conditionCounts := make(map[Condition]int)
	var conditionOrder []Condition
	providers := make([]ProviderContribution, 0, len(readings))
	var newestTS time.Time

	for _, r := range readings {
		sumTemp += r.TemperatureC
		sumHumidity += r.HumidityPct
		sumWind += r.WindSpeedMS
		sumPrecip += r.PrecipMm
		if r.RainForecastMm > maxRain {
			maxRain = r.RainForecastMm
		}

		if _, seen := conditionCounts[r.Condition]; !seen {
			conditionOrder = append(conditionOrder, r.Condition)
		}
		conditionCounts[r.Condition]++

		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}

		providers = append(providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	n := float64(len(readings))

	bestCond := ConditionUnknown
	bestCount := 0
	for _, cond := range conditionOrder {
		if conditionCounts[cond] > bestCount {
			bestCount = conditionCounts[cond]
			bestCond = cond
		}
	}

	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	return WeatherSnapshot{
		Location:       loc,
		Timestamp:      newestTS,
		Temperature:    sumTemp / n,
		Humidity:       sumHumidity / n,
		WindSpeed:      sumWind / n,
		PrecipMM:       sumPrecip / n,
		RainForecastMM: maxRain,
		Condition:      bestCond,
		Providers:      providers,
	}
}
