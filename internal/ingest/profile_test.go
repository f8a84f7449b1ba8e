package ingest

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/energylabel/internal/rating"
)

func TestDefaultInput_IsValid(t *testing.T) {
	p, err := DefaultInput().Profile()
	require.NoError(t, err)

	assert.Equal(t, rating.BuildingProfile{
		SurfaceAreaM2:    100,
		ConstructionYear: 2000,
		WindowType:       rating.WindowSingleGlazed,
		HVACType:         rating.HVACGas,
		LightingType:     rating.LightingIncandescent,
		ClimateZone:      rating.ClimateContinental,
	}, p)
}

func TestProfileInput_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(in *ProfileInput)
		wantFields []string
	}{
		{
			name:       "zero surface",
			mutate:     func(in *ProfileInput) { in.SurfaceM2 = 0 },
			wantFields: []string{"surface_m2"},
		},
		{
			name:       "negative surface",
			mutate:     func(in *ProfileInput) { in.SurfaceM2 = -5 },
			wantFields: []string{"surface_m2"},
		},
		{
			name:       "infinite surface",
			mutate:     func(in *ProfileInput) { in.SurfaceM2 = math.Inf(1) },
			wantFields: []string{"surface_m2"},
		},
		{
			name:       "year out of range",
			mutate:     func(in *ProfileInput) { in.ConstructionYear = 20000 },
			wantFields: []string{"construction_year"},
		},
		{
			name:       "unknown window",
			mutate:     func(in *ProfileInput) { in.Windows = "triple" },
			wantFields: []string{"windows"},
		},
		{
			name: "several fields",
			mutate: func(in *ProfileInput) {
				in.HVAC = ""
				in.Lighting = "halogen"
				in.Climate = "tropical"
			},
			wantFields: []string{"hvac", "lighting", "climate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInput()
			tt.mutate(&in)

			err := in.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, rating.ErrInvalidInput)

			for _, field := range tt.wantFields {
				assert.Contains(t, err.Error(), field)
			}

			_, profileErr := in.Profile()
			assert.ErrorIs(t, profileErr, rating.ErrInvalidInput)
		})
	}
}

func TestProfileInput_FieldErrorDetails(t *testing.T) {
	in := DefaultInput()
	in.Windows = "triple"

	err := in.Validate()
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "windows", fe.Field)
	assert.Equal(t, "triple", fe.Value)
	assert.Equal(t, "must be one of: single, double", fe.Reason)
	assert.Equal(t, `windows "triple": must be one of: single, double`, fe.Error())
}

func TestProfileInput_AcceptsGlossaryNames(t *testing.T) {
	in := ProfileInput{
		SurfaceM2:        1,
		ConstructionYear: 1970,
		Windows:          "SingleGlazed",
		HVAC:             "Electric",
		Lighting:         "Incandescent",
		Climate:          "Atlantic",
	}

	p, err := in.Profile()
	require.NoError(t, err)

	got, err := rating.Estimate(p)
	require.NoError(t, err)
	assert.InDelta(t, 243.36, got.ConsumptionKwhPerM2Year, 1e-9)
	assert.Equal(t, rating.RatingF, got.Rating)
}

func TestFromProfile_RoundTrip(t *testing.T) {
	p := rating.BuildingProfile{
		SurfaceAreaM2:    64,
		ConstructionYear: 2012,
		WindowType:       rating.WindowDoubleGlazed,
		HVACType:         rating.HVACHeatPump,
		LightingType:     rating.LightingLED,
		ClimateZone:      rating.ClimateMediterranean,
	}

	in := FromProfile("flat", p)
	assert.Equal(t, "flat", in.Name)
	assert.Equal(t, "heatpump", in.HVAC)

	back, err := in.Profile()
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestFromFields(t *testing.T) {
	t.Run("parses numbers", func(t *testing.T) {
		in, err := FromFields(" 85.5 ", "1999", "double", "gas", "led", "atlantic")
		require.NoError(t, err)
		assert.InDelta(t, 85.5, in.SurfaceM2, 1e-12)
		assert.Equal(t, 1999, in.ConstructionYear)
		assert.Equal(t, "double", in.Windows)
	})

	t.Run("reports non-numeric fields", func(t *testing.T) {
		_, err := FromFields("lots", "199x", "double", "gas", "led", "atlantic")
		require.Error(t, err)
		assert.ErrorIs(t, err, rating.ErrInvalidInput)
		assert.Contains(t, err.Error(), "surface_m2")
		assert.Contains(t, err.Error(), "construction_year")
	})
}
