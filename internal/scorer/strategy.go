// Package scorer turns a model's raw response into rubric scores. Two
// strategies exist: structured JSON comparison against computed expected
// values (primary) and keyword heuristics over free text (legacy). The
// strategy is chosen once per catalog, never per response.
package scorer

import (
	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
)

// Strategy scores a single (prompt, response) pair. Implementations must be
// deterministic: scoring the same pair twice yields identical scores.
type Strategy interface {
	// Name returns the strategy identifier (e.g. "structured").
	Name() string

	// Score computes the four sub-scores and combined total, all in
	// [0, 100]. It never fails: malformed responses score zero.
	Score(prompt catalog.Prompt, response string) catalog.Scores
}

// GetStrategy returns a Strategy for the given scoring mode name.
func GetStrategy(name string) (Strategy, error) {
	switch name {
	case catalog.ScoringStructured, "":
		return NewStructuredStrategy(), nil
	case catalog.ScoringHeuristic:
		return &HeuristicStrategy{}, nil
	default:
		return nil, &UnsupportedStrategyError{Name: name}
	}
}

// UnsupportedStrategyError is returned when an unknown scoring mode is
// requested.
type UnsupportedStrategyError struct {
	Name string
}

func (e *UnsupportedStrategyError) Error() string {
	return "unsupported scoring strategy: " + e.Name
}
