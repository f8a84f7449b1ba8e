package report

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/energylabel/internal/rating"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) //nolint:gochecknoglobals // Test fixture

func sampleReport(t *testing.T, opts ...Option) Report {
	t.Helper()
	profile := rating.BuildingProfile{
		SurfaceAreaM2:    100,
		ConstructionYear: 2000,
		WindowType:       rating.WindowSingleGlazed,
		HVACType:         rating.HVACGas,
		LightingType:     rating.LightingIncandescent,
		ClimateZone:      rating.ClimateContinental,
	}
	assessment, err := rating.Estimate(profile)
	require.NoError(t, err)

	base := []Option{WithClock(func() time.Time { return fixedTime })}
	return New(profile, assessment, append(base, opts...)...)
}

func TestNew(t *testing.T) {
	r := sampleReport(t, WithAuthor("Energy Office"), WithName("office-block"))

	assert.Equal(t, Title, r.Title)
	assert.Len(t, r.ID, 26)
	assert.Equal(t, fixedTime, r.GeneratedAt)
	assert.Equal(t, "Energy Office", r.Author)
	assert.Equal(t, "office-block", r.Name)
	assert.Equal(t, rating.ConsumptionUnit, r.Unit)
	assert.Equal(t, rating.RatingG, r.Assessment.Rating)

	fixed := sampleReport(t, WithID("report-1"))
	assert.Equal(t, "report-1", fixed.ID)
}

func TestLines_Order(t *testing.T) {
	lines := sampleReport(t).Lines()

	want := []string{
		"Energy Efficiency Report",
		"Surface area: 100 m²",
		"Construction year: 2000",
		"Window type: single",
		"HVAC type: gas",
		"Lighting type: incandescent",
		"Climate zone: continental",
		"Estimated consumption: 12012.00 kWh/m²·year",
		"Energy rating: G",
	}
	got := make([]string, 0, len(lines))
	for _, l := range lines {
		got = append(got, l.String())
	}
	assert.Equal(t, want, got)
}

func TestLines_FractionalSurface(t *testing.T) {
	r := sampleReport(t)
	r.Profile.SurfaceAreaM2 = 72.5
	assert.Equal(t, "Surface area: 72.5 m²", r.Lines()[1].String())
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleReport(t, WithAuthor("Energy Office"))))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Energy Efficiency Report\n"))

	order := []string{
		"Energy Efficiency Report",
		"Surface area:",
		"Construction year:",
		"Window type:",
		"HVAC type:",
		"Lighting type:",
		"Climate zone:",
		"Estimated consumption: 12012.00 kWh/m²·year",
		"Energy rating: G",
		"Report ID:",
		"Generated: 2026-03-14T09:30:00Z",
		"Author: Energy Office",
	}
	last := -1
	for _, s := range order {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing %q", s)
		assert.Greater(t, idx, last, "%q out of order", s)
		last = idx
	}
}

// pdfStreamPattern matches the body of each stream object in a PDF.
var pdfStreamPattern = regexp.MustCompile(`(?s)stream\r?\n(.*?)\r?\nendstream`) //nolint:gochecknoglobals // Test fixture

// pdfContent inflates every compressed stream in a PDF and concatenates
// them. Streams that are not zlib data are skipped.
func pdfContent(t *testing.T, data []byte) string {
	t.Helper()
	var out strings.Builder
	for _, m := range pdfStreamPattern.FindAllSubmatch(data, -1) {
		zr, err := zlib.NewReader(bytes.NewReader(m[1]))
		if err != nil {
			continue
		}
		inflated, err := io.ReadAll(zr)
		_ = zr.Close()
		if err != nil {
			continue
		}
		out.Write(inflated)
	}
	return out.String()
}

func TestWrite_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, sampleReport(t, WithAuthor("Energy Office"))))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	content := pdfContent(t, buf.Bytes())
	require.NotEmpty(t, content)

	// Text is drawn as cp1252 literal strings: 0xB2 is "²" and 0xB7 is "·".
	order := []string{
		"(Energy Efficiency Report)Tj",
		"(Surface area:)Tj", "(100 m\xb2)Tj",
		"(Construction year:)Tj", "(2000)Tj",
		"(Window type:)Tj", "(single)Tj",
		"(HVAC type:)Tj", "(gas)Tj",
		"(Lighting type:)Tj", "(incandescent)Tj",
		"(Climate zone:)Tj", "(continental)Tj",
		"(Estimated consumption:)Tj", "(12012.00 kWh/m\xb2\xb7year)Tj",
		"(Energy rating:)Tj", "(G)Tj",
		"(Author: Energy Office)Tj",
	}
	last := -1
	for _, s := range order {
		idx := strings.Index(content, s)
		require.GreaterOrEqual(t, idx, 0, "missing %q", s)
		assert.Greater(t, idx, last, "%q out of order", s)
		last = idx
	}
}

func TestWrite_JSON(t *testing.T) {
	r := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, r))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.ID, decoded["id"])
	assert.Equal(t, "kWh/m²·year", decoded["consumption_unit"])

	profile, ok := decoded["profile"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "single", profile["windows"])

	assessment, ok := decoded["assessment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "G", assessment["rating"])
}

func TestWrite_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatNDJSON, sampleReport(t)))

	out := strings.TrimSuffix(buf.String(), "\n")
	assert.NotContains(t, out, "\n")
	assert.True(t, json.Valid([]byte(out)))
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleReport(t)))

	var decoded struct {
		Title   string                 `yaml:"title"`
		Profile rating.BuildingProfile `yaml:"profile"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, Title, decoded.Title)
	assert.Equal(t, rating.HVACGas, decoded.Profile.HVACType)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("docx"), sampleReport(t))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", DefaultFileName)
	require.NoError(t, WriteFile(path, FormatPDF, sampleReport(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "pdf", want: FormatPDF},
		{in: "PDF", want: FormatPDF},
		{in: " text ", want: FormatText},
		{in: "txt", want: FormatText},
		{in: "json", want: FormatJSON},
		{in: "ndjson", want: FormatNDJSON},
		{in: "yaml", want: FormatYAML},
		{in: "docx", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatPDF, FormatForPath("out/report.pdf", FormatText))
	assert.Equal(t, FormatText, FormatForPath("report.txt", FormatPDF))
	assert.Equal(t, FormatYAML, FormatForPath("report.yml", FormatPDF))
	assert.Equal(t, FormatJSON, FormatForPath("report", FormatJSON))
	assert.Equal(t, FormatPDF, FormatForPath("report.docx", FormatPDF))
	assert.Len(t, Formats(), 5)
}
