package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Care engine metrics
var (
	// RecommendationsTotal counts recommendations served, by type and severity
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantcare_recommendations_total",
			Help: "Total number of care recommendations generated",
		},
		[]string{"type", "severity"},
	)

	// AdjustmentsTotal counts watering adjustments evaluated
	AdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantcare_adjustments_total",
			Help: "Total number of watering adjustments evaluated",
		},
		[]string{"skip", "increase", "reason"},
	)

	// SpeciesFallbackTotal counts lookups that resolved to the fallback profile
	SpeciesFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plantcare_species_fallback_total",
			Help: "Species lookups that fell back to the default profile",
		},
	)

	// DegradedRequestsTotal counts engine calls made without weather data
	DegradedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantcare_degraded_requests_total",
			Help: "Engine calls served without weather data",
		},
		[]string{"operation"},
	)

	// RemindersScheduledTotal counts reminders created
	RemindersScheduledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plantcare_reminders_scheduled_total",
			Help: "Total number of watering reminders scheduled",
		},
	)
)

// Weather provider metrics
var (
	// ProviderFetchTotal tracks provider calls by outcome
	ProviderFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_provider_fetch_total",
			Help: "Total number of weather provider calls",
		},
		[]string{"provider", "status"},
	)
)

// RecordRecommendation records a served recommendation
func RecordRecommendation(recType, severity string) {
	RecommendationsTotal.WithLabelValues(recType, severity).Inc()
}

// RecordAdjustment records an evaluated adjustment
func RecordAdjustment(skip, increase bool, reason string) {
	AdjustmentsTotal.WithLabelValues(strconv.FormatBool(skip), strconv.FormatBool(increase), reason).Inc()
}

// RecordProviderFetch records a provider call; it matches weather.FetchObserver
func RecordProviderFetch(provider string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ProviderFetchTotal.WithLabelValues(provider, status).Inc()
}

// RecordSpeciesFallback records a fallback lookup; it matches species.Store.OnFallback
func RecordSpeciesFallback(string) {
	SpeciesFallbackTotal.Inc()
}

// RecordDegraded records an engine call served without weather
func RecordDegraded(operation string) {
	DegradedRequestsTotal.WithLabelValues(operation).Inc()
}
