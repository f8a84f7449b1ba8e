package cli

import (
	"fmt"

	"github.com/rshade/energylabel/internal/engine"
	"github.com/rshade/energylabel/internal/rating"
)

// DefaultRatingExitCode is the exit code used when --fail-on-rating trips.
const DefaultRatingExitCode = 3

// RatingExitError carries an exit code for assessments rated worse than the
// --fail-on-rating threshold. It is used to communicate the exit code from
// a command to main.
type RatingExitError struct {
	ExitCode  int
	Threshold rating.Rating
	Worst     rating.Rating
}

func (e *RatingExitError) Error() string {
	return fmt.Sprintf("energy rating %s is worse than the allowed %s", e.Worst, e.Threshold)
}

// RatingGate holds the --fail-on-rating and --exit-code flag values.
type RatingGate struct {
	FailOnRating string
	ExitCode     int
}

// threshold parses FailOnRating. An empty value disables the gate.
func (g RatingGate) threshold() (rating.Rating, bool, error) {
	if g.FailOnRating == "" {
		return "", false, nil
	}
	r, err := rating.ParseRating(g.FailOnRating)
	if err != nil {
		return "", false, fmt.Errorf("invalid --fail-on-rating: %w", err)
	}
	return r, true, nil
}

// check returns a RatingExitError when any successful outcome is rated
// worse than the threshold.
func (g RatingGate) check(outcomes []engine.Outcome) error {
	threshold, enabled, err := g.threshold()
	if err != nil || !enabled {
		return err
	}
	if !engine.AnyWorseThan(outcomes, threshold) {
		return nil
	}

	code := g.ExitCode
	if code <= 0 {
		code = DefaultRatingExitCode
	}
	return &RatingExitError{
		ExitCode:  code,
		Threshold: threshold,
		Worst:     engine.Summarize(outcomes).Worst,
	}
}
