package rating

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by the estimation engine. Every input violation
// wraps ErrInvalidInput, so callers that only care about "bad input vs.
// everything else" can test a single value with errors.Is.
var (
	// ErrInvalidInput indicates a BuildingProfile outside the engine's input domain.
	ErrInvalidInput = constError("invalid building profile")

	// ErrUnknownWindowType indicates an unrecognized window type.
	ErrUnknownWindowType = constError("unknown window type")

	// ErrUnknownHVACType indicates an unrecognized HVAC system.
	ErrUnknownHVACType = constError("unknown hvac type")

	// ErrUnknownLightingType indicates an unrecognized lighting type.
	ErrUnknownLightingType = constError("unknown lighting type")

	// ErrUnknownClimateZone indicates an unrecognized climate zone.
	ErrUnknownClimateZone = constError("unknown climate zone")

	// ErrUnknownRating indicates a string that is not a rating letter A-G.
	ErrUnknownRating = constError("unknown energy rating")

	// ErrInvalidSurface indicates a surface area that is not a finite positive number.
	ErrInvalidSurface = constError("surface area must be a finite number greater than zero")

	// ErrCalculationOverflow indicates the consumption product is not representable.
	ErrCalculationOverflow = constError("calculation overflow")
)
