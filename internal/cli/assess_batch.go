package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/energylabel/internal/config"
	"github.com/rshade/energylabel/internal/engine"
	"github.com/rshade/energylabel/internal/engine/batch"
	"github.com/rshade/energylabel/internal/ingest"
	"github.com/rshade/energylabel/internal/logging"
)

// AssessBatchParams holds the parameters for the assess batch command.
// Exported for testing.
type AssessBatchParams struct {
	File        string
	Output      string
	Concurrency int
	BatchSize   int
	Strict      bool
	Gate        RatingGate
}

// NewAssessBatchCmd creates the "assess batch" subcommand, which assesses
// every profile in a YAML or JSON file.
func NewAssessBatchCmd() *cobra.Command {
	var params AssessBatchParams

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Assess every building profile in a file",
		Long: `Assess every building profile in a YAML or JSON file.

The file may hold a single profile, a list of profiles, or a mapping with a
"profiles" list. Each profile uses the keys name, surface_m2,
construction_year, windows, hvac, lighting and climate.

Invalid profiles are reported per row and do not stop the others unless
--strict is set.`,
		Example: `  # Assess a portfolio
  energylabel assess batch --file buildings.yaml

  # Stream results as NDJSON with more parallelism
  energylabel assess batch --file buildings.yaml --output ndjson --concurrency 8

  # Fail the pipeline when any building is rated worse than D
  energylabel assess batch --file buildings.yaml --fail-on-rating D --exit-code 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeAssessBatch(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.File, "file", "f", "", "Path to a YAML or JSON profile file (required)")
	_ = cmd.MarkFlagRequired("file")
	addOutputFlag(cmd, &params.Output)
	cmd.Flags().IntVar(&params.Concurrency, "concurrency", 0,
		"Batches assessed in parallel; defaults to batch.concurrency")
	cmd.Flags().IntVar(&params.BatchSize, "batch-size", 0,
		"Profiles per batch; defaults to batch.batch_size")
	cmd.Flags().BoolVar(&params.Strict, "strict", false, "Fail when any profile is invalid")
	addGateFlags(cmd, &params.Gate)

	return cmd
}

// executeAssessBatch loads, assesses and renders a profile file.
func executeAssessBatch(cmd *cobra.Command, params AssessBatchParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(params.Output)
	if err != nil {
		return err
	}
	if _, _, err = params.Gate.threshold(); err != nil {
		return err
	}

	concurrency := params.Concurrency
	if concurrency <= 0 {
		concurrency = cfg.Batch.Concurrency
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = cfg.Batch.BatchSize
	}

	inputs, err := ingest.LoadProfiles(ctx, params.File)
	if err != nil {
		return err
	}

	eng := engine.New(
		engine.WithConcurrency(concurrency),
		engine.WithBatchSize(batchSize),
		engine.WithProgress(func(s batch.Snapshot) {
			log.Debug().
				Ctx(ctx).
				Str("component", "cli").
				Str("operation", "assess_batch").
				Int("processed", s.ProcessedItems).
				Int("total", s.TotalItems).
				Float64("percent", s.PercentComplete()).
				Msg("batch progress")
		}),
	)

	outcomes, err := eng.AssessAll(ctx, inputs)
	if err != nil {
		return err
	}

	if params.Strict {
		if err = joinOutcomeErrors(outcomes); err != nil {
			return err
		}
	}

	out := newBatchOutput(outcomes)
	if err = renderBatch(cmd.OutOrStdout(), format, config.GetOutputPrecision(), out); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}

	return params.Gate.check(outcomes)
}

// joinOutcomeErrors collects per-profile failures, labelled by position.
func joinOutcomeErrors(outcomes []engine.Outcome) error {
	var errs []error
	for _, o := range outcomes {
		if o.OK() {
			continue
		}
		label := fmt.Sprintf("profile %d", o.Index+1)
		if o.Name != "" {
			label = fmt.Sprintf("profile %d (%s)", o.Index+1, o.Name)
		}
		errs = append(errs, fmt.Errorf("%s: %w", label, o.Err))
	}
	return errors.Join(errs...)
}
