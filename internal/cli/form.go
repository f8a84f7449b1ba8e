package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/energylabel/internal/config"
	"github.com/rshade/energylabel/internal/ingest"
	"github.com/rshade/energylabel/internal/logging"
	"github.com/rshade/energylabel/internal/rating"
	"github.com/rshade/energylabel/internal/tui"
)

// errNoTerminal is returned when the form is started without a terminal.
var errNoTerminal = errors.New("the interactive form requires a terminal; use 'energylabel assess' instead")

// FormParams holds the parameters for the form command.
// Exported for testing.
type FormParams struct {
	Input      ingest.ProfileInput
	ReportPath string
	Output     string
}

// NewFormCmd creates the form command, which opens the interactive
// assessment form.
func NewFormCmd() *cobra.Command {
	params := FormParams{Input: ingest.DefaultInput()}

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in building details in an interactive form",
		Long: `Open an interactive form with one field per building attribute.

Enter calculates the estimate, Ctrl+E exports a report of the last
calculation and Esc quits. The last result is printed after the form closes.
Profile flags preset the form fields.`,
		Example: `  # Open the form with the defaults
  energylabel form

  # Preset some fields and export reports to a custom path
  energylabel form --surface 250 --climate atlantic --report reports/office.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeForm(cmd, params)
		},
	}

	addProfileFlags(cmd, &params.Input)
	cmd.Flags().StringVar(&params.ReportPath, "report", "",
		"Path used by the export key; defaults to report.directory/report.file_name")
	addOutputFlag(cmd, &params.Output)

	return cmd
}

// executeForm runs the form until the user quits, then prints the last
// successful assessment.
func executeForm(cmd *cobra.Command, params FormParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNoTerminal
	}

	format, err := resolveOutputFormat(params.Output)
	if err != nil {
		return err
	}

	reportPath := params.ReportPath
	if reportPath == "" {
		reportPath = config.GetGlobalConfig().ReportPath()
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "cli").
		Str("operation", "form").
		Str("report_path", reportPath).
		Msg("launching interactive form")

	model := tui.NewFormModel(ctx, params.Input, newFormExporter(reportPath, params.Input.Name))
	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("running interactive form: %w", err)
	}

	formModel, ok := finalModel.(*tui.FormModel)
	if !ok {
		return fmt.Errorf("unexpected model type: %T, expected *tui.FormModel", finalModel)
	}

	profile, breakdown, ok := formModel.Result()
	if !ok {
		return nil
	}
	cmd.Println()
	out := newAssessmentOutput(params.Input.Name, profile, breakdown, false)
	return renderAssessment(cmd.OutOrStdout(), format, config.GetOutputPrecision(), out)
}

// newFormExporter returns the export callback used by the form.
func newFormExporter(path, name string) tui.ExportFunc {
	return func(ctx context.Context, profile rating.BuildingProfile, assessment rating.EnergyAssessment) (string, error) {
		written, err := writeReport(path, "", name, profile, assessment)
		if err != nil {
			return "", err
		}
		logging.FromContext(ctx).Info().
			Ctx(ctx).
			Str("component", "cli").
			Str("operation", "form_export").
			Str("report_path", written).
			Msg("report written")
		return written, nil
	}
}
