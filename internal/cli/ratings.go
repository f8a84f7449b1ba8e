package cli

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/energylabel/internal/rating"
)

// RatingBand is one row of the rating scale. Max is nil for the open-ended
// worst band.
type RatingBand struct {
	Rating rating.Rating `json:"rating" yaml:"rating"`
	Min    float64       `json:"min" yaml:"min"`
	Max    *float64      `json:"max,omitempty" yaml:"max,omitempty"`
}

// NewRatingsCmd creates the ratings command, which prints the consumption
// band of every rating letter.
func NewRatingsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Show the consumption band of each rating",
		Long: `Show the annual consumption band, in kWh/m²·year, of every rating from A to G.

Each band includes its lower bound and excludes its upper bound.`,
		Example: `  energylabel ratings
  energylabel ratings --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			return renderRatingBands(cmd.OutOrStdout(), format, ratingBands())
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

// ratingBands converts the threshold table into closed-open bands.
func ratingBands() []RatingBand {
	thresholds := rating.Thresholds()
	bands := make([]RatingBand, 0, len(thresholds))
	lower := 0.0
	for _, t := range thresholds {
		band := RatingBand{Rating: t.Rating, Min: lower}
		if !math.IsInf(t.UpperBound, 1) {
			upper := t.UpperBound
			band.Max = &upper
			lower = upper
		}
		bands = append(bands, band)
	}
	return bands
}

func renderRatingBands(w io.Writer, format string, bands []RatingBand) error {
	switch format {
	case outputFormatJSON:
		return encodeJSON(w, bands, true)
	case outputFormatNDJSON:
		for _, b := range bands {
			if err := encodeJSON(w, b, false); err != nil {
				return err
			}
		}
		return nil
	case outputFormatYAML:
		return encodeYAML(w, bands)
	default:
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		fmt.Fprintf(tw, "Rating\tConsumption (%s)\n", rating.ConsumptionUnit)
		fmt.Fprintln(tw, "------\t------------------------")
		for _, b := range bands {
			fmt.Fprintf(tw, "%s\t%s\n", b.Rating, bandRange(b))
		}
		return tw.Flush()
	}
}

func bandRange(b RatingBand) string {
	switch {
	case b.Max == nil:
		return fmt.Sprintf(">= %g", b.Min)
	case b.Min == 0:
		return fmt.Sprintf("< %g", *b.Max)
	default:
		return fmt.Sprintf("%g - %g", b.Min, *b.Max)
	}
}
