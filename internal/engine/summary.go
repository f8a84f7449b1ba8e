package engine

import (
	"math"

	"github.com/rshade/energylabel/internal/rating"
)

// RatingCount is the number of profiles that received a rating.
type RatingCount struct {
	Rating rating.Rating `json:"rating" yaml:"rating"`
	Count  int           `json:"count" yaml:"count"`
}

// Summary aggregates a batch of outcomes.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`

	// Distribution lists every rating A-G in order, including zero counts.
	Distribution []RatingCount `json:"distribution" yaml:"distribution"`

	// Best and Worst are empty when nothing succeeded.
	Best  rating.Rating `json:"best,omitempty" yaml:"best,omitempty"`
	Worst rating.Rating `json:"worst,omitempty" yaml:"worst,omitempty"`

	MeanConsumption float64 `json:"mean_consumption" yaml:"mean_consumption"`
	MinConsumption  float64 `json:"min_consumption" yaml:"min_consumption"`
	MaxConsumption  float64 `json:"max_consumption" yaml:"max_consumption"`
}

// Summarize computes the rating distribution and consumption statistics of
// the successful outcomes.
func Summarize(outcomes []Outcome) Summary {
	ratings := rating.Ratings()
	counts := make(map[rating.Rating]int, len(ratings))

	s := Summary{Total: len(outcomes)}
	var sum float64
	minC, maxC := math.Inf(1), math.Inf(-1)

	for _, o := range outcomes {
		if !o.OK() {
			s.Failed++
			continue
		}
		s.Succeeded++

		a := o.Assessment()
		counts[a.Rating]++
		sum += a.ConsumptionKwhPerM2Year
		minC = math.Min(minC, a.ConsumptionKwhPerM2Year)
		maxC = math.Max(maxC, a.ConsumptionKwhPerM2Year)

		if s.Best == "" || s.Best.WorseThan(a.Rating) {
			s.Best = a.Rating
		}
		if s.Worst == "" || a.Rating.WorseThan(s.Worst) {
			s.Worst = a.Rating
		}
	}

	s.Distribution = make([]RatingCount, 0, len(ratings))
	for _, r := range ratings {
		s.Distribution = append(s.Distribution, RatingCount{Rating: r, Count: counts[r]})
	}

	if s.Succeeded > 0 {
		s.MeanConsumption = sum / float64(s.Succeeded)
		s.MinConsumption = minC
		s.MaxConsumption = maxC
	}
	return s
}

// AnyWorseThan reports whether a successful outcome is rated worse than
// threshold.
func AnyWorseThan(outcomes []Outcome, threshold rating.Rating) bool {
	for _, o := range outcomes {
		if o.OK() && o.Assessment().Rating.WorseThan(threshold) {
			return true
		}
	}
	return false
}
