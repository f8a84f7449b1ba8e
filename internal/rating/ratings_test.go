package rating

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRatingFor_Boundaries(t *testing.T) {
	tests := []struct {
		consumption float64
		want        Rating
	}{
		{0, RatingA},
		{49.99, RatingA},
		{50.00, RatingB},
		{74.99, RatingB},
		{75.00, RatingC},
		{99.99, RatingC},
		{100.00, RatingD},
		{149.99, RatingD},
		{150.00, RatingE},
		{209.99, RatingE},
		{210.00, RatingF},
		{249.99, RatingF},
		{250.00, RatingG},
		{12012, RatingG},
		{math.Inf(1), RatingG},
		{math.NaN(), RatingG},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RatingFor(tt.consumption), "consumption %v", tt.consumption)
	}
}

func TestThresholds(t *testing.T) {
	got := Thresholds()
	require.Len(t, got, 7)

	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].UpperBound, got[i-1].UpperBound, "bounds must be strictly increasing")
		assert.True(t, got[i].Rating.WorseThan(got[i-1].Rating))
	}
	assert.True(t, math.IsInf(got[len(got)-1].UpperBound, 1))
	assert.Equal(t, RatingG, got[len(got)-1].Rating)

	// Callers cannot mutate the engine's table.
	got[0].UpperBound = 1000
	assert.Equal(t, RatingB, RatingFor(50))
}

func TestRating_RankAndParse(t *testing.T) {
	for i, r := range Ratings() {
		assert.Equal(t, i, r.Rank())
		parsed, err := ParseRating(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	lower, err := ParseRating(" c ")
	require.NoError(t, err)
	assert.Equal(t, RatingC, lower)

	_, err = ParseRating("H")
	require.ErrorIs(t, err, ErrUnknownRating)
	assert.Equal(t, -1, Rating("A+").Rank())

	assert.True(t, RatingG.WorseThan(RatingF))
	assert.False(t, RatingA.WorseThan(RatingA))
}

func TestParseEnums(t *testing.T) {
	t.Run("wire tokens", func(t *testing.T) {
		w, err := ParseWindowType("single")
		require.NoError(t, err)
		assert.Equal(t, WindowSingleGlazed, w)

		h, err := ParseHVACType("heatpump")
		require.NoError(t, err)
		assert.Equal(t, HVACHeatPump, h)

		l, err := ParseLightingType("led")
		require.NoError(t, err)
		assert.Equal(t, LightingLED, l)

		c, err := ParseClimateZone("mediterranean")
		require.NoError(t, err)
		assert.Equal(t, ClimateMediterranean, c)
	})

	t.Run("glossary names", func(t *testing.T) {
		w, err := ParseWindowType("DoubleGlazed")
		require.NoError(t, err)
		assert.Equal(t, WindowDoubleGlazed, w)

		h, err := ParseHVACType("HeatPump")
		require.NoError(t, err)
		assert.Equal(t, HVACHeatPump, h)

		l, err := ParseLightingType("LED")
		require.NoError(t, err)
		assert.Equal(t, LightingLED, l)

		c, err := ParseClimateZone("Atlantic")
		require.NoError(t, err)
		assert.Equal(t, ClimateAtlantic, c)
	})

	t.Run("unknown values fail", func(t *testing.T) {
		_, err := ParseWindowType("triple")
		require.ErrorIs(t, err, ErrUnknownWindowType)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), `"triple"`)

		_, err = ParseHVACType("")
		assert.ErrorIs(t, err, ErrUnknownHVACType)

		_, err = ParseLightingType("halogen")
		assert.ErrorIs(t, err, ErrUnknownLightingType)

		_, err = ParseClimateZone("arctic")
		assert.ErrorIs(t, err, ErrUnknownClimateZone)
	})

	t.Run("string of unknown value", func(t *testing.T) {
		assert.Equal(t, "WindowType(0)", WindowUnknown.String())
		assert.Equal(t, "HVACType(7)", HVACType(7).String())
	})
}

func TestBuildingProfile_Encoding(t *testing.T) {
	p := BuildingProfile{
		SurfaceAreaM2:    120.5,
		ConstructionYear: 1985,
		WindowType:       WindowDoubleGlazed,
		HVACType:         HVACElectric,
		LightingType:     LightingIncandescent,
		ClimateZone:      ClimateAtlantic,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"surface_m2": 120.5,
		"construction_year": 1985,
		"windows": "double",
		"hvac": "electric",
		"lighting": "incandescent",
		"climate": "atlantic"
	}`, string(data))

	var fromYAML BuildingProfile
	err = yaml.Unmarshal([]byte(`
surface_m2: 120.5
construction_year: 1985
windows: double
hvac: electric
lighting: incandescent
climate: atlantic
`), &fromYAML)
	require.NoError(t, err)
	assert.Equal(t, p, fromYAML)

	t.Run("unknown enum rejected", func(t *testing.T) {
		var bad BuildingProfile
		err := json.Unmarshal([]byte(`{"windows":"triple"}`), &bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownWindowType)
	})

	t.Run("zero enum cannot be marshalled", func(t *testing.T) {
		_, err := json.Marshal(BuildingProfile{SurfaceAreaM2: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
