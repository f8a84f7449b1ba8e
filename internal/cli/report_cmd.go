package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/energylabel/internal/config"
	"github.com/rshade/energylabel/internal/engine"
	"github.com/rshade/energylabel/internal/ingest"
	"github.com/rshade/energylabel/internal/logging"
)

// ReportParams holds the parameters for the report command.
// Exported for testing.
type ReportParams struct {
	File    string
	Profile string
	Out     string
	Format  string
}

// NewReportCmd creates the report command, which writes a report for one
// profile read from a file.
func NewReportCmd() *cobra.Command {
	var params ReportParams

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write an energy report for a profile file",
		Long: `Assess one building profile from a YAML or JSON file and write a report.

The report lists the title, every building attribute, the estimated
consumption and the rating. PDF is the default; text, json, ndjson and yaml
are also available. When the file holds several profiles, --profile selects
one by name.`,
		Example: `  # Write the configured default report
  energylabel report --file house.yaml

  # Pick one profile from a portfolio and write plain text
  energylabel report --file buildings.yaml --profile "north wing" --out north.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeReport(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.File, "file", "f", "", "Path to a YAML or JSON profile file (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&params.Profile, "profile", "", "Name of the profile to report when the file holds several")
	cmd.Flags().StringVarP(&params.Out, "out", "o", "",
		"Report path; defaults to report.directory/report.file_name")
	cmd.Flags().StringVar(&params.Format, "format", "",
		"Report format (pdf, text, json, ndjson, yaml); inferred from --out extension when omitted")

	return cmd
}

// executeReport loads a profile, assesses it and writes the report.
func executeReport(cmd *cobra.Command, params ReportParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	inputs, err := ingest.LoadProfiles(ctx, params.File)
	if err != nil {
		return err
	}
	in, err := selectProfile(inputs, params.Profile)
	if err != nil {
		return err
	}

	breakdown, profile, err := engine.New().Assess(ctx, in)
	if err != nil {
		return err
	}

	path := params.Out
	if path == "" {
		path = config.GetGlobalConfig().ReportPath()
	}
	written, err := writeReport(path, params.Format, in.Name, profile, breakdown.Assessment)
	if err != nil {
		return err
	}

	log.Info().
		Ctx(ctx).
		Str("component", "cli").
		Str("operation", "report").
		Str("report_path", written).
		Str("rating", breakdown.Assessment.Rating.String()).
		Msg("report written")
	cmd.Printf("Report written to %s (rating %s)\n", written, breakdown.Assessment.Rating)
	return nil
}

// selectProfile picks the profile named name, or the only profile when name
// is empty.
func selectProfile(inputs []ingest.ProfileInput, name string) (ingest.ProfileInput, error) {
	if name == "" {
		if len(inputs) != 1 {
			return ingest.ProfileInput{}, fmt.Errorf(
				"file holds %d profiles; choose one with --profile", len(inputs))
		}
		return inputs[0], nil
	}
	for _, in := range inputs {
		if in.Name == name {
			return in, nil
		}
	}
	return ingest.ProfileInput{}, fmt.Errorf("no profile named %q in file", name)
}
