package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/energylabel/internal/config"
	"github.com/rshade/energylabel/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the energylabel CLI.
// It wires up configuration, logging and tracing, then the assess, form,
// report, ratings and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.Result
		configPath string
	)

	cmd := &cobra.Command{
		Use:     "energylabel",
		Short:   "Building energy efficiency estimator",
		Long:    "energylabel: Estimate annual building energy consumption and assign an A-G efficiency rating",
		Version: ver,
		Example: rootCmdExample,
		// Errors are printed once by main.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("config") {
				config.SetOverlayPath(configPath)
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"additional config file merged over ~/.energylabel/config.yaml")
	cmd.AddCommand(
		NewAssessCmd(), NewFormCmd(), NewReportCmd(), NewRatingsCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Assess a building with the default inputs
  energylabel assess

  # Assess a renovated building and export a PDF report
  energylabel assess --surface 120 --year 2010 --windows double --hvac heatpump \
    --lighting led --climate mediterranean --report energy_report.pdf

  # Assess every profile in a file, failing when any is worse than D
  energylabel assess batch --file buildings.yaml --fail-on-rating D

  # Fill in the interactive form
  energylabel form

  # Print the rating thresholds
  energylabel ratings

  # Initialize configuration
  energylabel config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
