// Package engine assesses building profiles, singly or in bulk.
//
// It sits between ingest (validated user input) and the rating package (the
// pure estimation model), adding structured logging, bounded concurrency for
// batches and summary statistics.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rshade/energylabel/internal/engine/batch"
	"github.com/rshade/energylabel/internal/ingest"
	"github.com/rshade/energylabel/internal/logging"
	"github.com/rshade/energylabel/internal/rating"
)

// DefaultConcurrency is the number of batches assessed in parallel.
const DefaultConcurrency = 4

// ErrNoProfiles is returned by AssessAll for an empty input.
var ErrNoProfiles = errors.New("no profiles to assess")

// Engine assesses building profiles.
type Engine struct {
	concurrency int
	batchSize   int
	onProgress  batch.ProgressCallback
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency sets how many batches run in parallel. Values below 1
// mean sequential processing.
func WithConcurrency(n int) Option {
	return func(e *Engine) { e.concurrency = n }
}

// WithBatchSize sets the number of profiles per batch.
func WithBatchSize(n int) Option {
	return func(e *Engine) { e.batchSize = n }
}

// WithProgress registers a callback invoked after each batch.
func WithProgress(cb batch.ProgressCallback) Option {
	return func(e *Engine) { e.onProgress = cb }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		concurrency: DefaultConcurrency,
		batchSize:   batch.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Outcome is the result of assessing one profile. Exactly one of Err and
// Breakdown is meaningful.
type Outcome struct {
	Index     int
	Name      string
	Input     ingest.ProfileInput
	Profile   rating.BuildingProfile
	Breakdown rating.Breakdown
	Err       error
}

// Assessment returns the consumption and rating of a successful outcome.
func (o Outcome) Assessment() rating.EnergyAssessment {
	return o.Breakdown.Assessment
}

// OK reports whether the profile was assessed.
func (o Outcome) OK() bool { return o.Err == nil }

// Assess validates in and estimates its consumption.
func (e *Engine) Assess(ctx context.Context, in ingest.ProfileInput) (rating.Breakdown, rating.BuildingProfile, error) {
	log := logging.FromContext(ctx)

	profile, err := in.Profile()
	if err != nil {
		log.Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "assess").
			Str("profile", in.Name).
			Err(err).
			Msg("profile rejected")
		return rating.Breakdown{}, rating.BuildingProfile{}, err
	}

	breakdown, err := rating.Explain(profile)
	if err != nil {
		return rating.Breakdown{}, profile, fmt.Errorf("estimating %s: %w", displayName(in.Name), err)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "assess").
		Str("profile", in.Name).
		Float64("surface_m2", profile.SurfaceAreaM2).
		Int("construction_year", profile.ConstructionYear).
		Float64("consumption", breakdown.Assessment.ConsumptionKwhPerM2Year).
		Str("rating", string(breakdown.Assessment.Rating)).
		Msg("profile assessed")

	return breakdown, profile, nil
}

// AssessAll assesses every input. Results are returned in input order and
// per-profile failures are recorded on the Outcome without stopping the
// others. The returned error is non-nil only for an empty input, invalid
// batch settings or context cancellation.
func (e *Engine) AssessAll(ctx context.Context, inputs []ingest.ProfileInput) ([]Outcome, error) {
	if len(inputs) == 0 {
		return nil, ErrNoProfiles
	}

	log := logging.FromContext(ctx)
	start := time.Now()

	proc, err := batch.NewProcessor[ingest.ProfileInput](e.batchSize)
	if err != nil {
		return nil, err
	}
	if e.onProgress != nil {
		proc.WithProgressCallback(e.onProgress)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "assess_all").
		Int("profiles", len(inputs)).
		Int("batch_size", e.batchSize).
		Int("concurrency", e.concurrency).
		Msg("starting batch assessment")

	outcomes := make([]Outcome, len(inputs))
	callback := func(ctx context.Context, items []ingest.ProfileInput, offset int) error {
		for i, in := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			idx := offset + i
			breakdown, profile, assessErr := e.Assess(ctx, in)
			outcomes[idx] = Outcome{
				Index:     idx,
				Name:      in.Name,
				Input:     in,
				Profile:   profile,
				Breakdown: breakdown,
				Err:       assessErr,
			}
		}
		return nil
	}

	if e.concurrency > 1 {
		err = proc.ProcessConcurrent(ctx, inputs, callback, e.concurrency)
	} else {
		err = proc.Process(ctx, inputs, callback)
	}
	if err != nil {
		return nil, fmt.Errorf("assessing profiles: %w", err)
	}

	summary := Summarize(outcomes)
	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "assess_all").
		Int("profiles", summary.Total).
		Int("failed", summary.Failed).
		Dur("duration_ms", time.Since(start)).
		Msg("batch assessment complete")

	return outcomes, nil
}

func displayName(name string) string {
	if name == "" {
		return "profile"
	}
	return fmt.Sprintf("profile %q", name)
}
