package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfiles_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantCount int
		wantFirst string
	}{
		{
			name: "single mapping",
			data: `
name: house
surface_m2: 100
construction_year: 2000
windows: single
hvac: gas
lighting: incandescent
climate: continental
`,
			wantCount: 1,
			wantFirst: "house",
		},
		{
			name: "sequence",
			data: `
- name: a
  surface_m2: 50
  construction_year: 1970
  windows: single
  hvac: electric
  lighting: led
  climate: atlantic
- name: b
  surface_m2: 75
  construction_year: 2015
  windows: double
  hvac: heatpump
  lighting: led
  climate: mediterranean
`,
			wantCount: 2,
			wantFirst: "a",
		},
		{
			name: "wrapped profiles",
			data: `
profiles:
  - name: office
    surface_m2: 300
    construction_year: 1990
    windows: double
    hvac: gas
    lighting: led
    climate: continental
`,
			wantCount: 1,
			wantFirst: "office",
		},
		{
			name:      "json",
			data:      `[{"name":"j","surface_m2":10,"construction_year":2001,"windows":"double","hvac":"gas","lighting":"led","climate":"atlantic"}]`,
			wantCount: 1,
			wantFirst: "j",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProfiles([]byte(tt.data))
			require.NoError(t, err)
			require.Len(t, got, tt.wantCount)
			assert.Equal(t, tt.wantFirst, got[0].Name)

			for _, in := range got {
				_, profileErr := in.Profile()
				assert.NoError(t, profileErr)
			}
		})
	}
}

func TestParseProfiles_Errors(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		_, err := ParseProfiles([]byte(""))
		assert.ErrorIs(t, err, ErrNoProfiles)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := ParseProfiles([]byte("profiles: []"))
		assert.ErrorIs(t, err, ErrNoProfiles)
	})

	t.Run("scalar document", func(t *testing.T) {
		_, err := ParseProfiles([]byte("just text"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseProfiles([]byte("surface_m2: [1, 2"))
		assert.Error(t, err)
	})
}

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- surface_m2: 1
  construction_year: 1970
  windows: single
  hvac: electric
  lighting: incandescent
  climate: atlantic
`), 0o600))

	got, err := LoadProfiles(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "electric", got[0].HVAC)

	_, err = LoadProfiles(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
