package rating

// Construction-era base rates in kWh per square meter per year.
//
// The era boundaries follow the building-code revisions the rates were
// calibrated against: buildings before 1980 predate thermal regulation,
// buildings from 2007 onwards follow the current technical code.
const (
	// PreRegulationBaseRate applies to buildings constructed before 1980.
	PreRegulationBaseRate = 100.0

	// RegulatedBaseRate applies to buildings constructed from 1980 to 2006.
	RegulatedBaseRate = 70.0

	// CurrentCodeBaseRate applies to buildings constructed in 2007 or later.
	CurrentCodeBaseRate = 50.0

	// RegulationYear is the first year covered by RegulatedBaseRate.
	RegulationYear = 1980

	// CurrentCodeYear is the first year covered by CurrentCodeBaseRate.
	CurrentCodeYear = 2007
)

// Window adjustment factors.
const (
	SingleGlazedFactor = 1.2
	DoubleGlazedFactor = 1.0
)

// HVAC adjustment factors.
const (
	GasFactor      = 1.1
	HeatPumpFactor = 0.8
	ElectricFactor = 1.3
)

// Lighting adjustment factors.
const (
	IncandescentFactor = 1.3
	LEDFactor          = 1.0
)

// Climate zone adjustment factors.
const (
	AtlanticFactor      = 1.2
	ContinentalFactor   = 1.0
	MediterraneanFactor = 0.8
)

// ConsumptionUnit is the display unit for estimated consumption.
const ConsumptionUnit = "kWh/m²·year"
