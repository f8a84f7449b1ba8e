package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/energylabel/internal/config"
	"github.com/rshade/energylabel/internal/engine"
	"github.com/rshade/energylabel/internal/ingest"
	"github.com/rshade/energylabel/internal/logging"
	"github.com/rshade/energylabel/internal/rating"
	"github.com/rshade/energylabel/internal/report"
)

// AssessParams holds the parameters for the assess command execution.
// Exported for testing.
type AssessParams struct {
	Input        ingest.ProfileInput
	Output       string
	Explain      bool
	ReportPath   string
	ReportFormat string
	Gate         RatingGate
}

// NewAssessCmd creates the assess command, which estimates one building
// described by flags. The batch subcommand assesses a profile file.
func NewAssessCmd() *cobra.Command {
	params := AssessParams{Input: ingest.DefaultInput()}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Estimate energy consumption and rating for one building",
		Long: `Estimate the annual energy consumption per square metre of a building and
assign an A-G efficiency rating.

Consumption is a base rate chosen by construction year, multiplied by the
surface area and by factors for windows, heating, lighting and climate.`,
		Example: `  # Assess with the defaults (100 m², 2000, single glazing, gas, incandescent, continental)
  energylabel assess

  # Assess a renovated building and show how the estimate was built
  energylabel assess --surface 120 --year 2010 --windows double --hvac heatpump \
    --lighting led --climate mediterranean --explain

  # Write a PDF report next to the table output
  energylabel assess --surface 80 --report energy_report.pdf

  # Fail with exit code 3 when the rating is worse than C
  energylabel assess --year 1970 --fail-on-rating C`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeAssess(cmd, params)
		},
	}

	addProfileFlags(cmd, &params.Input)
	addOutputFlag(cmd, &params.Output)
	cmd.Flags().BoolVar(&params.Explain, "explain", false, "Show the base rate and every factor")
	cmd.Flags().StringVar(&params.ReportPath, "report", "", "Also write a report to this path")
	cmd.Flags().StringVar(&params.ReportFormat, "report-format", "",
		"Report format (pdf, text, json, ndjson, yaml); inferred from --report extension when omitted")
	addGateFlags(cmd, &params.Gate)

	cmd.AddCommand(NewAssessBatchCmd())

	return cmd
}

// addProfileFlags registers one flag per building attribute, defaulting to
// the current values of in.
func addProfileFlags(cmd *cobra.Command, in *ingest.ProfileInput) {
	cmd.Flags().StringVar(&in.Name, "name", in.Name, "Optional building name shown in output and reports")
	cmd.Flags().Float64Var(&in.SurfaceM2, "surface", in.SurfaceM2, "Surface area in m² (must be > 0)")
	cmd.Flags().IntVar(&in.ConstructionYear, "year", in.ConstructionYear, "Construction year")
	cmd.Flags().StringVar(&in.Windows, "windows", in.Windows, "Window glazing (single, double)")
	cmd.Flags().StringVar(&in.HVAC, "hvac", in.HVAC, "Heating system (gas, heatpump, electric)")
	cmd.Flags().StringVar(&in.Lighting, "lighting", in.Lighting, "Lighting (incandescent, led)")
	cmd.Flags().StringVar(&in.Climate, "climate", in.Climate,
		"Climate zone (atlantic, continental, mediterranean)")
}

// addOutputFlag registers --output. The configured default is resolved at
// run time so the flag can be built before configuration is loaded.
func addOutputFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVar(dst, "output", "",
		"Output format (table, json, ndjson, yaml); defaults to output.default_format")
}

// addGateFlags registers --fail-on-rating and --exit-code.
func addGateFlags(cmd *cobra.Command, gate *RatingGate) {
	cmd.Flags().StringVar(&gate.FailOnRating, "fail-on-rating", "",
		"Exit with --exit-code when a rating is worse than this letter (A-G)")
	cmd.Flags().IntVar(&gate.ExitCode, "exit-code", DefaultRatingExitCode,
		"Exit code used when --fail-on-rating trips")
}

// executeAssess runs a single assessment and renders it.
func executeAssess(cmd *cobra.Command, params AssessParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := resolveOutputFormat(params.Output)
	if err != nil {
		return err
	}
	if _, _, err = params.Gate.threshold(); err != nil {
		return err
	}

	breakdown, profile, err := engine.New().Assess(ctx, params.Input)
	if err != nil {
		return err
	}

	out := newAssessmentOutput(params.Input.Name, profile, breakdown, params.Explain)
	if err = renderAssessment(cmd.OutOrStdout(), format, config.GetOutputPrecision(), out); err != nil {
		return fmt.Errorf("rendering assessment: %w", err)
	}

	if params.ReportPath != "" {
		path, reportErr := writeReport(params.ReportPath, params.ReportFormat, params.Input.Name, profile, breakdown.Assessment)
		if reportErr != nil {
			return reportErr
		}
		log.Info().
			Ctx(ctx).
			Str("component", "cli").
			Str("operation", "assess").
			Str("report_path", path).
			Msg("report written")
		cmd.PrintErrf("Report written to %s\n", path)
	}

	return params.Gate.check([]engine.Outcome{{
		Name:      params.Input.Name,
		Input:     params.Input,
		Profile:   profile,
		Breakdown: breakdown,
	}})
}

// writeReport writes a report for an assessment. The format comes from
// formatFlag, else the path extension, else report.format in config.
func writeReport(
	path, formatFlag, name string, profile rating.BuildingProfile, assessment rating.EnergyAssessment,
) (string, error) {
	cfg := config.GetGlobalConfig()

	fallback, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return "", fmt.Errorf("invalid report.format in config: %w", err)
	}
	format := report.FormatForPath(path, fallback)
	if formatFlag != "" {
		if format, err = report.ParseFormat(formatFlag); err != nil {
			return "", err
		}
	}

	r := report.New(profile, assessment,
		report.WithName(name), report.WithAuthor(cfg.Report.Author))
	if err = report.WriteFile(path, format, r); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
