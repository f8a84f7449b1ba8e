package rating

import (
	"fmt"
	"math"
)

// BaseRate returns the construction-era base consumption in kWh/m²·year.
func BaseRate(year int) float64 {
	switch {
	case year < RegulationYear:
		return PreRegulationBaseRate
	case year < CurrentCodeYear:
		return RegulatedBaseRate
	default:
		return CurrentCodeBaseRate
	}
}

// WindowFactor returns the adjustment factor for a window type.
func WindowFactor(w WindowType) (float64, error) {
	switch w {
	case WindowSingleGlazed:
		return SingleGlazedFactor, nil
	case WindowDoubleGlazed:
		return DoubleGlazedFactor, nil
	case WindowUnknown:
	}
	return 0, windowSpec.check(w)
}

// HVACFactor returns the adjustment factor for an HVAC system.
func HVACFactor(h HVACType) (float64, error) {
	switch h {
	case HVACGas:
		return GasFactor, nil
	case HVACHeatPump:
		return HeatPumpFactor, nil
	case HVACElectric:
		return ElectricFactor, nil
	case HVACUnknown:
	}
	return 0, hvacSpec.check(h)
}

// LightingFactor returns the adjustment factor for a lighting type.
func LightingFactor(l LightingType) (float64, error) {
	switch l {
	case LightingIncandescent:
		return IncandescentFactor, nil
	case LightingLED:
		return LEDFactor, nil
	case LightingUnknown:
	}
	return 0, lightingSpec.check(l)
}

// ClimateFactor returns the adjustment factor for a climate zone.
func ClimateFactor(c ClimateZone) (float64, error) {
	switch c {
	case ClimateAtlantic:
		return AtlanticFactor, nil
	case ClimateContinental:
		return ContinentalFactor, nil
	case ClimateMediterranean:
		return MediterraneanFactor, nil
	case ClimateUnknown:
	}
	return 0, climateSpec.check(c)
}

// Estimate computes the annual energy consumption and rating for a building.
//
// It returns an error wrapping ErrInvalidInput if the surface area is not a
// finite positive number, if any enum field holds an unrecognized value, or
// if the result overflows. Identical profiles always produce bit-identical
// assessments.
func Estimate(p BuildingProfile) (EnergyAssessment, error) {
	b, err := Explain(p)
	if err != nil {
		return EnergyAssessment{}, err
	}
	return b.Assessment, nil
}

// Explain is Estimate with every intermediate value of the calculation.
func Explain(p BuildingProfile) (Breakdown, error) {
	if math.IsNaN(p.SurfaceAreaM2) || math.IsInf(p.SurfaceAreaM2, 0) || p.SurfaceAreaM2 <= 0 {
		return Breakdown{}, fmt.Errorf("%w: %w: got %v", ErrInvalidInput, ErrInvalidSurface, p.SurfaceAreaM2)
	}

	windowFactor, err := WindowFactor(p.WindowType)
	if err != nil {
		return Breakdown{}, err
	}
	hvacFactor, err := HVACFactor(p.HVACType)
	if err != nil {
		return Breakdown{}, err
	}
	lightingFactor, err := LightingFactor(p.LightingType)
	if err != nil {
		return Breakdown{}, err
	}
	climateFactor, err := ClimateFactor(p.ClimateZone)
	if err != nil {
		return Breakdown{}, err
	}

	baseRate := BaseRate(p.ConstructionYear)
	baseConsumption := p.SurfaceAreaM2 * baseRate

	// Multiplication order is fixed so results are reproducible bit for bit.
	consumption := baseConsumption * windowFactor * hvacFactor * lightingFactor * climateFactor
	if math.IsInf(consumption, 0) {
		return Breakdown{}, fmt.Errorf("%w: %w", ErrInvalidInput, ErrCalculationOverflow)
	}

	return Breakdown{
		BaseRate:        baseRate,
		BaseConsumption: baseConsumption,
		WindowFactor:    windowFactor,
		HVACFactor:      hvacFactor,
		LightingFactor:  lightingFactor,
		ClimateFactor:   climateFactor,
		CombinedFactor:  windowFactor * hvacFactor * lightingFactor * climateFactor,
		Assessment: EnergyAssessment{
			ConsumptionKwhPerM2Year: consumption,
			Rating:                  RatingFor(consumption),
		},
	}, nil
}
