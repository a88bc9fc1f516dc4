// Package aggregate accumulates evaluation results and computes summary
// statistics over them.
package aggregate

import (
	"math"

	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
)

// Aggregator collects results in the order they are produced. It is the
// only component that appends to the result list; results themselves are
// never mutated.
type Aggregator struct {
	results []catalog.Result
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Add appends one result.
func (a *Aggregator) Add(r catalog.Result) {
	a.results = append(a.results, r)
}

// Results returns the accumulated results in arrival order.
func (a *Aggregator) Results() []catalog.Result {
	return a.results
}

// Summary holds aggregate statistics over total scores. Mean, Max, and Min
// are nil when no results have been recorded.
type Summary struct {
	Count         int                          `json:"count"`
	Mean          *float64                     `json:"mean,omitempty"`
	Max           *float64                     `json:"max,omitempty"`
	Min           *float64                     `json:"min,omitempty"`
	CategoryMeans map[catalog.Category]float64 `json:"category_means,omitempty"`

	// Categories lists every category seen, in first-seen order, so
	// renderings of CategoryMeans are deterministic.
	Categories []catalog.Category `json:"categories,omitempty"`
}

// Summarize computes summary statistics across all recorded results. An
// empty result list yields a Summary with nil statistics rather than a
// division error; callers render the no-results sentinel from it.
func (a *Aggregator) Summarize() Summary {
	s := Summary{Count: len(a.results)}
	if len(a.results) == 0 {
		return s
	}

	sums := make(map[catalog.Category]float64)
	counts := make(map[catalog.Category]int)

	total := 0.0
	minScore := a.results[0].Scores.Total
	maxScore := a.results[0].Scores.Total
	for _, r := range a.results {
		score := r.Scores.Total
		total += score
		minScore = math.Min(minScore, score)
		maxScore = math.Max(maxScore, score)

		if _, seen := counts[r.Category]; !seen {
			s.Categories = append(s.Categories, r.Category)
		}
		sums[r.Category] += score
		counts[r.Category]++
	}

	mean := round2(total / float64(len(a.results)))
	s.Mean = &mean
	s.Max = &maxScore
	s.Min = &minScore

	s.CategoryMeans = make(map[catalog.Category]float64, len(counts))
	for cat, sum := range sums {
		s.CategoryMeans[cat] = round2(sum / float64(counts[cat]))
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
