package rating

import (
	"fmt"
	"math"
	"strings"
)

// Rating is an energy rating letter, A (best) to G (worst).
type Rating string

// Energy rating letters in order from best to worst.
const (
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingD Rating = "D"
	RatingE Rating = "E"
	RatingF Rating = "F"
	RatingG Rating = "G"
)

// Threshold pairs an exclusive upper consumption bound with the rating
// assigned to consumption values below it.
type Threshold struct {
	UpperBound float64 `json:"upper_bound" yaml:"upper_bound"`
	Rating     Rating  `json:"rating"      yaml:"rating"`
}

// thresholds is scanned in order; the first bound the consumption is below
// wins. Consumption at or above the last bound is rated worstRating.
//
//nolint:gochecknoglobals // Immutable lookup table.
var thresholds = [...]Threshold{
	{UpperBound: 50, Rating: RatingA},
	{UpperBound: 75, Rating: RatingB},
	{UpperBound: 100, Rating: RatingC},
	{UpperBound: 150, Rating: RatingD},
	{UpperBound: 210, Rating: RatingE},
	{UpperBound: 250, Rating: RatingF},
}

const worstRating = RatingG

//nolint:gochecknoglobals // Immutable lookup table.
var ratingOrder = [...]Rating{RatingA, RatingB, RatingC, RatingD, RatingE, RatingF, RatingG}

// RatingFor returns the rating for a consumption value in kWh/m²·year.
// It is total over float64: NaN compares false against every bound and is
// therefore rated G.
func RatingFor(consumption float64) Rating {
	for _, t := range thresholds {
		if consumption < t.UpperBound {
			return t.Rating
		}
	}
	return worstRating
}

// Thresholds returns a copy of the ordered threshold table, followed by a
// final entry with an infinite bound for the worst rating.
func Thresholds() []Threshold {
	out := make([]Threshold, 0, len(thresholds)+1)
	out = append(out, thresholds[:]...)
	return append(out, Threshold{UpperBound: math.Inf(1), Rating: worstRating})
}

// Ratings returns every rating letter from best to worst.
func Ratings() []Rating {
	return append([]Rating(nil), ratingOrder[:]...)
}

// Rank returns the position of r from best (0) to worst (6), or -1 for an
// unknown rating.
func (r Rating) Rank() int {
	for i, v := range ratingOrder {
		if v == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is one of A-G.
func (r Rating) Valid() bool { return r.Rank() >= 0 }

// WorseThan reports whether r is a strictly worse rating than other.
func (r Rating) WorseThan(other Rating) bool {
	return r.Rank() > other.Rank()
}

// String implements fmt.Stringer.
func (r Rating) String() string { return string(r) }

// ParseRating parses a rating letter case-insensitively.
func ParseRating(s string) (Rating, error) {
	r := Rating(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownRating, s)
	}
	return r, nil
}
