package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/energylabel/internal/cli"
	"github.com/rshade/energylabel/internal/rating"
)

// portfolioYAML holds a G-rated house (17,160), an A-rated flat (32) and an
// invalid profile.
const portfolioYAML = `profiles:
  - name: old house
    surface_m2: 100
    construction_year: 1970
    windows: single
    hvac: gas
    lighting: incandescent
    climate: continental
  - name: new flat
    surface_m2: 1
    construction_year: 2010
    windows: double
    hvac: heatpump
    lighting: led
    climate: mediterranean
  - name: broken
    surface_m2: -5
    construction_year: 2000
    windows: single
    hvac: gas
    lighting: led
    climate: atlantic
`

func writeProfileFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAssessBatchCmd_Table(t *testing.T) {
	isolateHome(t)
	file := writeProfileFile(t, "portfolio.yaml", portfolioYAML)

	out, err := executeRoot(t, "assess", "batch", "--file", file)
	require.NoError(t, err)

	assert.Regexp(t, `1\s+old house\s+100.00\s+1970\s+17,160.00\s+G`, out)
	assert.Regexp(t, `2\s+new flat\s+1.00\s+2010\s+32.00\s+A`, out)
	assert.Contains(t, out, "error: surface_m2")
	assert.Contains(t, out, "Assessed: 3  Succeeded: 2  Failed: 1")
	assert.Contains(t, out, "Rating distribution:")
}

func TestAssessBatchCmd_NDJSON(t *testing.T) {
	isolateHome(t)
	file := writeProfileFile(t, "portfolio.yaml", portfolioYAML)

	out, err := executeRoot(t, "assess", "batch", "--file", file, "--output", "ndjson",
		"--concurrency", "2", "--batch-size", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	for i, line := range lines[:3] {
		var item cli.BatchItemOutput
		require.NoError(t, json.Unmarshal([]byte(line), &item))
		assert.Equal(t, i, item.Index, "results keep input order")
	}

	var broken cli.BatchItemOutput
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &broken))
	assert.Equal(t, "broken", broken.Name)
	assert.NotEmpty(t, broken.Error)
	assert.Nil(t, broken.Consumption)

	var summary struct {
		Summary struct {
			Total  int           `json:"total"`
			Failed int           `json:"failed"`
			Best   rating.Rating `json:"best"`
			Worst  rating.Rating `json:"worst"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &summary))
	assert.Equal(t, 3, summary.Summary.Total)
	assert.Equal(t, 1, summary.Summary.Failed)
	assert.Equal(t, rating.RatingA, summary.Summary.Best)
	assert.Equal(t, rating.RatingG, summary.Summary.Worst)
}

func TestAssessBatchCmd_JSON(t *testing.T) {
	isolateHome(t)
	file := writeProfileFile(t, "portfolio.json",
		`[{"surface_m2": 100, "construction_year": 2000, "windows": "single", "hvac": "gas",
		   "lighting": "incandescent", "climate": "continental"}]`)

	out, err := executeRoot(t, "assess", "batch", "--file", file, "--output", "json")
	require.NoError(t, err)

	var got cli.BatchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Results, 1)
	require.NotNil(t, got.Results[0].Consumption)
	assert.InDelta(t, 12012.0, *got.Results[0].Consumption, 1e-6)
	assert.Equal(t, rating.RatingG, got.Results[0].Rating)
	assert.Equal(t, 1, got.Summary.Succeeded)
}

func TestAssessBatchCmd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(file string) []string
		errorMsg string
	}{
		{
			name:     "missing file flag",
			args:     func(string) []string { return nil },
			errorMsg: `required flag(s) "file" not set`,
		},
		{
			name:     "file does not exist",
			args:     func(string) []string { return []string{"--file", "missing.yaml"} },
			errorMsg: "reading profile file",
		},
		{
			name:     "strict mode rejects invalid profiles",
			args:     func(f string) []string { return []string{"--file", f, "--strict"} },
			errorMsg: "profile 3 (broken)",
		},
		{
			name:     "invalid batch size",
			args:     func(f string) []string { return []string{"--file", f, "--batch-size", "5000"} },
			errorMsg: "batch size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			file := writeProfileFile(t, "portfolio.yaml", portfolioYAML)

			_, err := executeRoot(t, append([]string{"assess", "batch"}, tt.args(file)...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestAssessBatchCmd_RatingGate(t *testing.T) {
	isolateHome(t)
	file := writeProfileFile(t, "portfolio.yaml", portfolioYAML)

	out, err := executeRoot(t, "assess", "batch", "--file", file, "--fail-on-rating", "D", "--exit-code", "4")

	var exitErr *cli.RatingExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, exitErr.ExitCode)
	assert.Equal(t, rating.RatingD, exitErr.Threshold)
	assert.Equal(t, rating.RatingG, exitErr.Worst)
	assert.Contains(t, out, "Assessed: 3", "results are rendered before the gate")
}

func TestPartialConfigOverlay(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
		args    func(dir, file string) []string
		check   func(t *testing.T, dir, out string)
	}{
		{
			name:    "batch section without batch size",
			overlay: "batch:\n  concurrency: 8\n",
			args: func(_, file string) []string {
				return []string{"assess", "batch", "--file", file}
			},
			check: func(t *testing.T, _, out string) {
				assert.Contains(t, out, "Assessed: 3  Succeeded: 2  Failed: 1")
			},
		},
		{
			name:    "report section with author only",
			overlay: "report:\n  author: Facilities\n",
			args: func(dir, _ string) []string {
				return []string{"assess", "--report", filepath.Join(dir, "x.txt")}
			},
			check: func(t *testing.T, dir, _ string) {
				data, err := os.ReadFile(filepath.Join(dir, "x.txt"))
				require.NoError(t, err)
				assert.Contains(t, string(data), "Author: Facilities")
			},
		},
		{
			name:    "output section with format only",
			overlay: "output:\n  default_format: table\n",
			args: func(_, _ string) []string {
				return []string{"assess"}
			},
			check: func(t *testing.T, _, out string) {
				assert.Contains(t, out, "12,012.00")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			dir := t.TempDir()
			file := writeProfileFile(t, "portfolio.yaml", portfolioYAML)
			overlay := writeProfileFile(t, "overlay.yaml", tt.overlay)

			out, err := executeRoot(t, append([]string{"--config", overlay}, tt.args(dir, file)...)...)
			require.NoError(t, err)
			tt.check(t, dir, out)
		})
	}
}
