// Package rating estimates a building's annual energy consumption and
// classifies it into a letter energy rating.
//
// The engine is a pure function of its input: a BuildingProfile is turned
// into an EnergyAssessment by multiplying a construction-era base rate by
// independent adjustment factors for glazing, HVAC, lighting and climate,
// then looking the result up in an ordered table of rating thresholds.
// Nothing in this package performs I/O, logs, or holds mutable state, so
// every function is safe for concurrent use.
package rating

// WindowType is the glazing of the building's windows.
type WindowType int

const (
	// WindowUnknown is the zero value and is never a valid input.
	WindowUnknown WindowType = iota
	// WindowSingleGlazed is single-pane glazing.
	WindowSingleGlazed
	// WindowDoubleGlazed is double-pane glazing.
	WindowDoubleGlazed
)

// HVACType is the building's heating and cooling system.
type HVACType int

const (
	// HVACUnknown is the zero value and is never a valid input.
	HVACUnknown HVACType = iota
	// HVACGas is a gas boiler.
	HVACGas
	// HVACHeatPump is a heat pump.
	HVACHeatPump
	// HVACElectric is direct electric heating.
	HVACElectric
)

// LightingType is the predominant lighting technology.
type LightingType int

const (
	// LightingUnknown is the zero value and is never a valid input.
	LightingUnknown LightingType = iota
	// LightingIncandescent is incandescent lighting.
	LightingIncandescent
	// LightingLED is LED lighting.
	LightingLED
)

// ClimateZone is the climate region the building is located in.
type ClimateZone int

const (
	// ClimateUnknown is the zero value and is never a valid input.
	ClimateUnknown ClimateZone = iota
	// ClimateAtlantic is the wet, mild Atlantic zone.
	ClimateAtlantic
	// ClimateContinental is the inland continental zone.
	ClimateContinental
	// ClimateMediterranean is the warm Mediterranean zone.
	ClimateMediterranean
)

// BuildingProfile holds the attributes of one building. It is a value type;
// the engine never retains or mutates it.
type BuildingProfile struct {
	// SurfaceAreaM2 is the heated floor area in square meters.
	SurfaceAreaM2 float64 `json:"surface_m2" yaml:"surface_m2"`

	// ConstructionYear selects the base consumption rate.
	ConstructionYear int `json:"construction_year" yaml:"construction_year"`

	WindowType   WindowType   `json:"windows"  yaml:"windows"`
	HVACType     HVACType     `json:"hvac"     yaml:"hvac"`
	LightingType LightingType `json:"lighting" yaml:"lighting"`
	ClimateZone  ClimateZone  `json:"climate"  yaml:"climate"`
}

// EnergyAssessment is the result of one estimation.
type EnergyAssessment struct {
	// ConsumptionKwhPerM2Year is the estimated annual consumption.
	ConsumptionKwhPerM2Year float64 `json:"consumption_kwh_per_m2_year" yaml:"consumption_kwh_per_m2_year"`

	// Rating is derived from ConsumptionKwhPerM2Year via RatingFor.
	Rating Rating `json:"rating" yaml:"rating"`
}

// Breakdown exposes every intermediate value of one estimation.
type Breakdown struct {
	BaseRate        float64 `json:"base_rate"        yaml:"base_rate"`
	BaseConsumption float64 `json:"base_consumption" yaml:"base_consumption"`
	WindowFactor    float64 `json:"window_factor"    yaml:"window_factor"`
	HVACFactor      float64 `json:"hvac_factor"      yaml:"hvac_factor"`
	LightingFactor  float64 `json:"lighting_factor"  yaml:"lighting_factor"`
	ClimateFactor   float64 `json:"climate_factor"   yaml:"climate_factor"`

	// CombinedFactor is the product of the four adjustment factors. It is
	// informational; the consumption is computed factor by factor.
	CombinedFactor float64 `json:"combined_factor" yaml:"combined_factor"`

	Assessment EnergyAssessment `json:"assessment" yaml:"assessment"`
}
