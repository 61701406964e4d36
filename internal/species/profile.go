// Package species holds the per-species physiological constants the care
// engine works from. Profiles are static data: loaded once, looked up by
// scientific name, never mutated.
package species

// Category is informational only; no engine rule branches on it.
type Category string

const (
	CategoryHerb       Category = "herb"
	CategorySucculent  Category = "succulent"
	CategoryHouseplant Category = "houseplant"
	CategoryVegetable  Category = "vegetable"
	CategoryFruit      Category = "fruit"
	CategoryFlower     Category = "flower"
)

// WateringInterval is the baseline cadence in days per season.
type WateringInterval struct {
	Summer int `yaml:"summer" json:"summer" validate:"gte=1"`
	Winter int `yaml:"winter" json:"winter" validate:"gte=1"`
}

// MoistureThresholds are fractional substrate saturation bands, Min <= Optimal <= Max.
type MoistureThresholds struct {
	Min     float64 `yaml:"min" json:"min" validate:"gte=0,ltefield=Optimal"`
	Optimal float64 `yaml:"optimal" json:"optimal" validate:"ltefield=Max"`
	Max     float64 `yaml:"max" json:"max" validate:"lte=1"`
}

// Sensitivities gate which adjustment rules apply to a species.
type Sensitivities struct {
	Overwatering  bool `yaml:"overwatering" json:"overwatering"`
	Underwatering bool `yaml:"underwatering" json:"underwatering"`
	Temperature   bool `yaml:"temperature" json:"temperature"`
	Wind          bool `yaml:"wind" json:"wind"`
}

// EnvironmentFactors are all in [0,1].
type EnvironmentFactors struct {
	EvaporationRate        float64 `yaml:"evaporationRate" json:"evaporationRate" validate:"gte=0,lte=1"`
	TemperatureSensitivity float64 `yaml:"temperatureSensitivity" json:"temperatureSensitivity" validate:"gte=0,lte=1"`
	WindSensitivity        float64 `yaml:"windSensitivity" json:"windSensitivity" validate:"gte=0,lte=1"`
	HumidityDependence     float64 `yaml:"humidityDependence" json:"humidityDependence" validate:"gte=0,lte=1"`
}

// Environments holds the factor sets for both placements.
type Environments struct {
	Indoor  EnvironmentFactors `yaml:"indoor" json:"indoor"`
	Outdoor EnvironmentFactors `yaml:"outdoor" json:"outdoor"`
}

// Profile is a species' moisture profile.
type Profile struct {
	ScientificName     string             `yaml:"scientificName" json:"scientificName" validate:"required"`
	CommonName         string             `yaml:"commonName,omitempty" json:"commonName,omitempty"`
	Category           Category           `yaml:"category" json:"category"`
	RetentionScore     float64            `yaml:"retentionScore" json:"retentionScore" validate:"gt=0,lte=1"`
	DroughtTolerance   float64            `yaml:"droughtTolerance" json:"droughtTolerance" validate:"gte=0,lte=1"`
	HumidityPreference float64            `yaml:"humidityPreference" json:"humidityPreference" validate:"gte=0,lte=1"`
	WateringInterval   WateringInterval   `yaml:"wateringInterval" json:"wateringInterval"`
	MoistureThresholds MoistureThresholds `yaml:"moistureThresholds" json:"moistureThresholds"`
	Sensitivities      Sensitivities      `yaml:"sensitivities" json:"sensitivities"`
	EnvironmentFactors Environments       `yaml:"environmentFactors" json:"environmentFactors"`

	// Fallback is true when the profile stands in for an unknown species.
	Fallback bool `yaml:"-" json:"fallback"`
}

// Factors returns the factor set for the given placement.
func (p Profile) Factors(indoor bool) EnvironmentFactors {
	if indoor {
		return p.EnvironmentFactors.Indoor
	}
	return p.EnvironmentFactors.Outdoor
}

// FallbackProfile is the "average houseplant" used whenever a species cannot be resolved.
func FallbackProfile(name string) Profile {
	return Profile{
		ScientificName:     name,
		Category:           CategoryHouseplant,
		RetentionScore:     0.5,
		DroughtTolerance:   0.5,
		HumidityPreference: 0.5,
		WateringInterval:   WateringInterval{Summer: 7, Winter: 10},
		MoistureThresholds: MoistureThresholds{Min: 0.3, Optimal: 0.5, Max: 0.8},
		Sensitivities: Sensitivities{
			Overwatering:  true,
			Underwatering: true,
		},
		EnvironmentFactors: Environments{
			Indoor: EnvironmentFactors{
				EvaporationRate:        0.3,
				TemperatureSensitivity: 0.3,
				WindSensitivity:        0.1,
				HumidityDependence:     0.4,
			},
			Outdoor: EnvironmentFactors{
				EvaporationRate:        0.5,
				TemperatureSensitivity: 0.5,
				WindSensitivity:        0.5,
				HumidityDependence:     0.5,
			},
		},
		Fallback: true,
	}
}
