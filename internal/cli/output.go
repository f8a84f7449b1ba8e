package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rshade/energylabel/internal/config"
	"github.com/rshade/energylabel/internal/engine"
	"github.com/rshade/energylabel/internal/rating"
)

// Output formats.
const (
	outputFormatTable  = config.FormatTable
	outputFormatJSON   = config.FormatJSON
	outputFormatNDJSON = config.FormatNDJSON
	outputFormatYAML   = config.FormatYAML
)

const tabPadding = 2

// resolveOutputFormat returns the --output value, falling back to the
// configured default, and rejects unknown formats.
func resolveOutputFormat(flag string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	switch format {
	case outputFormatTable, outputFormatJSON, outputFormatNDJSON, outputFormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: table, json, ndjson, yaml)", format)
	}
}

// AssessmentOutput is the structured form of a single assessment.
type AssessmentOutput struct {
	Name        string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Profile     rating.BuildingProfile `json:"profile" yaml:"profile"`
	Consumption float64                `json:"consumption" yaml:"consumption"`
	Unit        string                 `json:"unit" yaml:"unit"`
	Rating      rating.Rating          `json:"rating" yaml:"rating"`
	Breakdown   *rating.Breakdown      `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}

func newAssessmentOutput(name string, profile rating.BuildingProfile, b rating.Breakdown, explain bool) AssessmentOutput {
	out := AssessmentOutput{
		Name:        name,
		Profile:     profile,
		Consumption: b.Assessment.ConsumptionKwhPerM2Year,
		Unit:        rating.ConsumptionUnit,
		Rating:      b.Assessment.Rating,
	}
	if explain {
		out.Breakdown = &b
	}
	return out
}

// renderAssessment renders a single assessment in the given format.
func renderAssessment(w io.Writer, format string, precision int, out AssessmentOutput) error {
	switch format {
	case outputFormatJSON:
		return encodeJSON(w, out, true)
	case outputFormatNDJSON:
		return encodeJSON(w, out, false)
	case outputFormatYAML:
		return encodeYAML(w, out)
	default:
		return renderAssessmentTable(w, precision, out)
	}
}

func renderAssessmentTable(w io.Writer, precision int, out AssessmentOutput) error {
	fmt.Fprintln(w, "Energy Assessment")
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	p := out.Profile
	if out.Name != "" {
		fmt.Fprintf(tw, "Profile:\t%s\n", out.Name)
	}
	fmt.Fprintf(tw, "Surface area:\t%s m²\n", rating.FormatFloat(p.SurfaceAreaM2, precision))
	fmt.Fprintf(tw, "Construction year:\t%d\n", p.ConstructionYear)
	fmt.Fprintf(tw, "Window type:\t%s\n", p.WindowType.Label())
	fmt.Fprintf(tw, "HVAC system:\t%s\n", p.HVACType.Label())
	fmt.Fprintf(tw, "Lighting:\t%s\n", p.LightingType.Label())
	fmt.Fprintf(tw, "Climate zone:\t%s\n", p.ClimateZone.Label())
	fmt.Fprintln(tw, "\t")
	fmt.Fprintf(tw, "Estimated consumption:\t%s %s\n", rating.FormatFloat(out.Consumption, precision), out.Unit)
	fmt.Fprintf(tw, "Energy rating:\t%s\n", out.Rating)
	if err := tw.Flush(); err != nil {
		return err
	}

	if out.Breakdown != nil {
		fmt.Fprintln(w)
		return renderBreakdownTable(w, precision, *out.Breakdown)
	}
	return nil
}

func renderBreakdownTable(w io.Writer, precision int, b rating.Breakdown) error {
	fmt.Fprintln(w, "Breakdown:")
	fmt.Fprintln(w, "----------")

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "  Base rate (by year)\t%s\n", rating.FormatFloat(b.BaseRate, precision))
	fmt.Fprintf(tw, "  Base consumption (rate × surface)\t%s\n", rating.FormatFloat(b.BaseConsumption, precision))
	fmt.Fprintf(tw, "  × Window factor\t%g\n", b.WindowFactor)
	fmt.Fprintf(tw, "  × HVAC factor\t%g\n", b.HVACFactor)
	fmt.Fprintf(tw, "  × Lighting factor\t%g\n", b.LightingFactor)
	fmt.Fprintf(tw, "  × Climate factor\t%g\n", b.ClimateFactor)
	fmt.Fprintf(tw, "  = Combined factor\t%g\n", b.CombinedFactor)
	return tw.Flush()
}

// BatchItemOutput is the structured form of one batch outcome.
type BatchItemOutput struct {
	Index       int                     `json:"index" yaml:"index"`
	Name        string                  `json:"name,omitempty" yaml:"name,omitempty"`
	Profile     *rating.BuildingProfile `json:"profile,omitempty" yaml:"profile,omitempty"`
	Consumption *float64                `json:"consumption,omitempty" yaml:"consumption,omitempty"`
	Rating      rating.Rating           `json:"rating,omitempty" yaml:"rating,omitempty"`
	Error       string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchOutput is the structured form of a batch run.
type BatchOutput struct {
	Results []BatchItemOutput `json:"results" yaml:"results"`
	Summary engine.Summary    `json:"summary" yaml:"summary"`
}

func newBatchOutput(outcomes []engine.Outcome) BatchOutput {
	items := make([]BatchItemOutput, 0, len(outcomes))
	for _, o := range outcomes {
		item := BatchItemOutput{Index: o.Index, Name: o.Name}
		if o.OK() {
			profile := o.Profile
			consumption := o.Assessment().ConsumptionKwhPerM2Year
			item.Profile = &profile
			item.Consumption = &consumption
			item.Rating = o.Assessment().Rating
		} else {
			item.Error = o.Err.Error()
		}
		items = append(items, item)
	}
	return BatchOutput{Results: items, Summary: engine.Summarize(outcomes)}
}

// renderBatch renders batch outcomes followed by their summary.
func renderBatch(w io.Writer, format string, precision int, out BatchOutput) error {
	switch format {
	case outputFormatJSON:
		return encodeJSON(w, out, true)
	case outputFormatNDJSON:
		for _, item := range out.Results {
			if err := encodeJSON(w, item, false); err != nil {
				return err
			}
		}
		return encodeJSON(w, struct {
			Summary engine.Summary `json:"summary"`
		}{out.Summary}, false)
	case outputFormatYAML:
		return encodeYAML(w, out)
	default:
		return renderBatchTable(w, precision, out)
	}
}

func renderBatchTable(w io.Writer, precision int, out BatchOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tSurface (m²)\tYear\tConsumption (kWh/m²·year)\tRating")
	fmt.Fprintln(tw, "-\t----\t------------\t----\t-------------------------\t------")

	for _, item := range out.Results {
		name := item.Name
		if name == "" {
			name = "-"
		}
		if item.Error != "" {
			fmt.Fprintf(tw, "%d\t%s\t-\t-\terror: %s\t-\n", item.Index+1, name, item.Error)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			item.Index+1, name,
			rating.FormatFloat(item.Profile.SurfaceAreaM2, precision),
			item.Profile.ConstructionYear,
			rating.FormatFloat(*item.Consumption, precision),
			item.Rating)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return renderSummaryTable(w, precision, out.Summary)
}

func renderSummaryTable(w io.Writer, precision int, s engine.Summary) error {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Assessed: %d  Succeeded: %d  Failed: %d\n", s.Total, s.Succeeded, s.Failed)
	if s.Succeeded == 0 {
		return nil
	}

	fmt.Fprintf(w, "Consumption: mean %s  min %s  max %s %s\n",
		rating.FormatFloat(s.MeanConsumption, precision),
		rating.FormatFloat(s.MinConsumption, precision),
		rating.FormatFloat(s.MaxConsumption, precision),
		rating.ConsumptionUnit)

	fmt.Fprintln(w, "Rating distribution:")
	for _, c := range s.Distribution {
		fmt.Fprintf(w, "  %s  %-*s %d\n", c.Rating, maxBarWidth, strings.Repeat("█", barLength(c.Count, s.Succeeded)), c.Count)
	}
	return nil
}

const maxBarWidth = 30

func barLength(count, total int) int {
	if total == 0 || count == 0 {
		return 0
	}
	return max(1, count*maxBarWidth/total)
}

func encodeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
