package rating

import (
	"fmt"
	"strings"
)

// enumSpec describes the wire tokens, display labels and accepted aliases of
// one enum type. Index 0 of tokens and labels is the unknown value.
type enumSpec[T ~int] struct {
	kind     string
	tokens   []string
	labels   []string
	aliases  map[string]T
	sentinel error
}

//nolint:gochecknoglobals // Immutable lookup tables.
var (
	windowSpec = enumSpec[WindowType]{
		kind:   "WindowType",
		tokens: []string{"", "single", "double"},
		labels: []string{"", "Single glazing", "Double glazing"},
		aliases: map[string]WindowType{
			"singleglazed": WindowSingleGlazed,
			"doubleglazed": WindowDoubleGlazed,
		},
		sentinel: ErrUnknownWindowType,
	}

	hvacSpec = enumSpec[HVACType]{
		kind:   "HVACType",
		tokens: []string{"", "gas", "heatpump", "electric"},
		labels: []string{"", "Gas boiler", "Heat pump", "Electric heating"},
		aliases: map[string]HVACType{
			"heat-pump": HVACHeatPump,
			"heat_pump": HVACHeatPump,
		},
		sentinel: ErrUnknownHVACType,
	}

	lightingSpec = enumSpec[LightingType]{
		kind:     "LightingType",
		tokens:   []string{"", "incandescent", "led"},
		labels:   []string{"", "Incandescent", "LED"},
		aliases:  map[string]LightingType{},
		sentinel: ErrUnknownLightingType,
	}

	climateSpec = enumSpec[ClimateZone]{
		kind:     "ClimateZone",
		tokens:   []string{"", "atlantic", "continental", "mediterranean"},
		labels:   []string{"", "Atlantic", "Continental", "Mediterranean"},
		aliases:  map[string]ClimateZone{},
		sentinel: ErrUnknownClimateZone,
	}
)

func (s enumSpec[T]) valid(v T) bool {
	return v > 0 && int(v) < len(s.tokens)
}

func (s enumSpec[T]) token(v T) string {
	if s.valid(v) {
		return s.tokens[v]
	}
	return fmt.Sprintf("%s(%d)", s.kind, int(v))
}

func (s enumSpec[T]) label(v T) string {
	if s.valid(v) {
		return s.labels[v]
	}
	return s.token(v)
}

func (s enumSpec[T]) values() []T {
	out := make([]T, 0, len(s.tokens)-1)
	for i := 1; i < len(s.tokens); i++ {
		out = append(out, T(i))
	}
	return out
}

// parse matches a token, alias, or glossary name case-insensitively.
func (s enumSpec[T]) parse(raw string) (T, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key != "" {
		for i := 1; i < len(s.tokens); i++ {
			if key == s.tokens[i] {
				return T(i), nil
			}
		}
		if v, ok := s.aliases[key]; ok {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %w %q", ErrInvalidInput, s.sentinel, raw)
}

func (s enumSpec[T]) check(v T) error {
	if s.valid(v) {
		return nil
	}
	return fmt.Errorf("%w: %w %d", ErrInvalidInput, s.sentinel, int(v))
}

// String returns the wire token ("single", "double").
func (w WindowType) String() string { return windowSpec.token(w) }

// Label returns a human-readable name.
func (w WindowType) Label() string { return windowSpec.label(w) }

// MarshalText implements encoding.TextMarshaler.
func (w WindowType) MarshalText() ([]byte, error) {
	if err := windowSpec.check(w); err != nil {
		return nil, err
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *WindowType) UnmarshalText(text []byte) error {
	v, err := ParseWindowType(string(text))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// ParseWindowType parses a window token such as "single" or "DoubleGlazed".
func ParseWindowType(s string) (WindowType, error) { return windowSpec.parse(s) }

// WindowTypes returns every valid window type in declaration order.
func WindowTypes() []WindowType { return windowSpec.values() }

// String returns the wire token ("gas", "heatpump", "electric").
func (h HVACType) String() string { return hvacSpec.token(h) }

// Label returns a human-readable name.
func (h HVACType) Label() string { return hvacSpec.label(h) }

// MarshalText implements encoding.TextMarshaler.
func (h HVACType) MarshalText() ([]byte, error) {
	if err := hvacSpec.check(h); err != nil {
		return nil, err
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HVACType) UnmarshalText(text []byte) error {
	v, err := ParseHVACType(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// ParseHVACType parses an HVAC token such as "gas" or "HeatPump".
func ParseHVACType(s string) (HVACType, error) { return hvacSpec.parse(s) }

// HVACTypes returns every valid HVAC type in declaration order.
func HVACTypes() []HVACType { return hvacSpec.values() }

// String returns the wire token ("incandescent", "led").
func (l LightingType) String() string { return lightingSpec.token(l) }

// Label returns a human-readable name.
func (l LightingType) Label() string { return lightingSpec.label(l) }

// MarshalText implements encoding.TextMarshaler.
func (l LightingType) MarshalText() ([]byte, error) {
	if err := lightingSpec.check(l); err != nil {
		return nil, err
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LightingType) UnmarshalText(text []byte) error {
	v, err := ParseLightingType(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseLightingType parses a lighting token such as "led".
func ParseLightingType(s string) (LightingType, error) { return lightingSpec.parse(s) }

// LightingTypes returns every valid lighting type in declaration order.
func LightingTypes() []LightingType { return lightingSpec.values() }

// String returns the wire token ("atlantic", "continental", "mediterranean").
func (c ClimateZone) String() string { return climateSpec.token(c) }

// Label returns a human-readable name.
func (c ClimateZone) Label() string { return climateSpec.label(c) }

// MarshalText implements encoding.TextMarshaler.
func (c ClimateZone) MarshalText() ([]byte, error) {
	if err := climateSpec.check(c); err != nil {
		return nil, err
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ClimateZone) UnmarshalText(text []byte) error {
	v, err := ParseClimateZone(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseClimateZone parses a climate token such as "atlantic".
func ParseClimateZone(s string) (ClimateZone, error) { return climateSpec.parse(s) }

// ClimateZones returns every valid climate zone in declaration order.
func ClimateZones() []ClimateZone { return climateSpec.values() }
