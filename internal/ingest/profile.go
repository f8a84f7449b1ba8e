// Package ingest turns raw user input into rating.BuildingProfile values.
//
// Input arrives as CLI flags, terminal form fields, or YAML/JSON profile
// files. Everything is validated here, with field-level messages, before a
// profile reaches the estimation engine.
package ingest

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rshade/energylabel/internal/rating"
)

// Year range accepted from user input.
const (
	MinConstructionYear = 1000
	MaxConstructionYear = 2200
)

// Default values mirror the initial state of the assessment form.
const (
	DefaultSurfaceM2        = 100.0
	DefaultConstructionYear = 2000
	DefaultWindows          = "single"
	DefaultHVAC             = "gas"
	DefaultLighting         = "incandescent"
	DefaultClimate          = "continental"
)

// ProfileInput is the unvalidated, string-typed form of a building profile.
type ProfileInput struct {
	// Name optionally identifies the profile in batch files and reports.
	Name string `json:"name,omitempty" yaml:"name,omitempty" validate:"max=128"`

	SurfaceM2        float64 `json:"surface_m2"        yaml:"surface_m2"        validate:"gt=0,finite"`
	ConstructionYear int     `json:"construction_year" yaml:"construction_year" validate:"gte=1000,lte=2200"`
	Windows          string  `json:"windows"           yaml:"windows"           validate:"required,windows"`
	HVAC             string  `json:"hvac"              yaml:"hvac"              validate:"required,hvac"`
	Lighting         string  `json:"lighting"          yaml:"lighting"          validate:"required,lighting"`
	Climate          string  `json:"climate"           yaml:"climate"           validate:"required,climate"`
}

// DefaultInput returns the form defaults.
func DefaultInput() ProfileInput {
	return ProfileInput{
		SurfaceM2:        DefaultSurfaceM2,
		ConstructionYear: DefaultConstructionYear,
		Windows:          DefaultWindows,
		HVAC:             DefaultHVAC,
		Lighting:         DefaultLighting,
		Climate:          DefaultClimate,
	}
}

// FieldError describes one invalid field. It unwraps to rating.ErrInvalidInput.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets callers match any FieldError with errors.Is(err, rating.ErrInvalidInput).
func (e *FieldError) Unwrap() error { return rating.ErrInvalidInput }

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use.
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator with the enum rules registered.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		mustRegister(v, "windows", func(s string) error { _, err := rating.ParseWindowType(s); return err })
		mustRegister(v, "hvac", func(s string) error { _, err := rating.ParseHVACType(s); return err })
		mustRegister(v, "lighting", func(s string) error { _, err := rating.ParseLightingType(s); return err })
		mustRegister(v, "climate", func(s string) error { _, err := rating.ParseClimateZone(s); return err })
		mustRegisterFinite(v)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, parse func(string) error) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return parse(fl.Field().String()) == nil
	})
	if err != nil {
		panic(fmt.Sprintf("registering %q validation: %v", tag, err))
	}
}

func mustRegisterFinite(v *validator.Validate) {
	err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	if err != nil {
		panic(fmt.Sprintf("registering finite validation: %v", err))
	}
}

// Validate checks every field and returns all violations joined together.
func (in ProfileInput) Validate() error {
	err := getValidator().Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", rating.ErrInvalidInput, err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &FieldError{
			Field:  fe.Field(),
			Value:  fmt.Sprintf("%v", fe.Value()),
			Reason: reasonFor(fe),
		})
	}
	return errors.Join(errs...)
}

// reasonFor turns a validator tag into a user-facing sentence.
func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "finite":
		return "must be a finite number"
	case "windows":
		return "must be one of: single, double"
	case "hvac":
		return "must be one of: gas, heatpump, electric"
	case "lighting":
		return "must be one of: incandescent, led"
	case "climate":
		return "must be one of: atlantic, continental, mediterranean"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// Profile validates the input and converts it into a BuildingProfile.
func (in ProfileInput) Profile() (rating.BuildingProfile, error) {
	if err := in.Validate(); err != nil {
		return rating.BuildingProfile{}, err
	}

	windows, err := rating.ParseWindowType(in.Windows)
	if err != nil {
		return rating.BuildingProfile{}, err
	}
	hvac, err := rating.ParseHVACType(in.HVAC)
	if err != nil {
		return rating.BuildingProfile{}, err
	}
	lighting, err := rating.ParseLightingType(in.Lighting)
	if err != nil {
		return rating.BuildingProfile{}, err
	}
	climate, err := rating.ParseClimateZone(in.Climate)
	if err != nil {
		return rating.BuildingProfile{}, err
	}

	return rating.BuildingProfile{
		SurfaceAreaM2:    in.SurfaceM2,
		ConstructionYear: in.ConstructionYear,
		WindowType:       windows,
		HVACType:         hvac,
		LightingType:     lighting,
		ClimateZone:      climate,
	}, nil
}

// FromProfile converts a BuildingProfile back into its input form.
func FromProfile(name string, p rating.BuildingProfile) ProfileInput {
	return ProfileInput{
		Name:             name,
		SurfaceM2:        p.SurfaceAreaM2,
		ConstructionYear: p.ConstructionYear,
		Windows:          p.WindowType.String(),
		HVAC:             p.HVACType.String(),
		Lighting:         p.LightingType.String(),
		Climate:          p.ClimateZone.String(),
	}
}

// FromFields builds a ProfileInput from free-text numeric fields, as typed
// into the interactive form. Numeric parse failures are reported as
// FieldErrors; enum values are checked later by Validate.
func FromFields(surface, year, windows, hvac, lighting, climate string) (ProfileInput, error) {
	in := ProfileInput{
		Windows:  strings.TrimSpace(windows),
		HVAC:     strings.TrimSpace(hvac),
		Lighting: strings.TrimSpace(lighting),
		Climate:  strings.TrimSpace(climate),
	}

	var errs []error

	surface = strings.TrimSpace(surface)
	s, err := strconv.ParseFloat(surface, 64)
	if err != nil {
		errs = append(errs, &FieldError{Field: "surface_m2", Value: surface, Reason: "must be a number"})
	} else {
		in.SurfaceM2 = s
	}

	year = strings.TrimSpace(year)
	y, err := strconv.Atoi(year)
	if err != nil {
		errs = append(errs, &FieldError{Field: "construction_year", Value: year, Reason: "must be a whole number"})
	} else {
		in.ConstructionYear = y
	}

	return in, errors.Join(errs...)
}
